package staff

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

type memoryStaffRepo struct {
	members map[string]Member
}

func newMemoryStaffRepo() *memoryStaffRepo {
	return &memoryStaffRepo{members: make(map[string]Member)}
}

func (r *memoryStaffRepo) Get(ctx context.Context, id string) (Member, error) {
	m, ok := r.members[id]
	if !ok {
		return Member{}, ErrNotFound
	}
	return m, nil
}

func (r *memoryStaffRepo) List(ctx context.Context, req ListRequest) ([]Member, int, error) {
	var out []Member
	for _, m := range r.members {
		if req.Status != "" && m.Status != req.Status {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, len(out), nil
}

func (r *memoryStaffRepo) ListActive(ctx context.Context) ([]Member, error) {
	members, _, err := r.List(ctx, ListRequest{Status: StatusActive})
	return members, err
}

func (r *memoryStaffRepo) Create(ctx context.Context, m Member) error {
	r.members[m.ID] = m
	return nil
}

func (r *memoryStaffRepo) Update(ctx context.Context, m Member) error {
	if _, ok := r.members[m.ID]; !ok {
		return ErrNotFound
	}
	r.members[m.ID] = m
	return nil
}

func (r *memoryStaffRepo) SetStatus(ctx context.Context, id string, status Status) error {
	m, ok := r.members[id]
	if !ok {
		return ErrNotFound
	}
	m.Status = status
	r.members[id] = m
	return nil
}

func TestCreateDefaultsToActive(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryStaffRepo()
	svc := NewService(repo)

	m, err := svc.Create(ctx, CreateStaffRequest{Name: "Aye Chan", Position: "Chef", Salary: 50000})
	require.NoError(t, err)
	require.NotEmpty(t, m.ID)
	require.Equal(t, StatusActive, m.Status)
	require.True(t, m.Active())
	require.False(t, m.CreatedAt.IsZero())

	stored, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, m, stored)
}

func TestUpdateAppliesPartialEdit(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryStaffRepo()
	svc := NewService(repo)

	m, err := svc.Create(ctx, CreateStaffRequest{Name: "Aye Chan", Position: "Chef", Salary: 50000})
	require.NoError(t, err)

	salary := 55000.0
	updated, err := svc.Update(ctx, m.ID, UpdateStaffRequest{Salary: &salary})
	require.NoError(t, err)
	require.Equal(t, 55000.0, updated.Salary)
	require.Equal(t, "Aye Chan", updated.Name, "omitted fields stay unchanged")
	require.Equal(t, "Chef", updated.Position)
}

func TestUpdateUnknownMember(t *testing.T) {
	svc := NewService(newMemoryStaffRepo())

	name := "Nobody"
	_, err := svc.Update(context.Background(), "ghost", UpdateStaffRequest{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDeactivateKeepsRecord(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryStaffRepo()
	svc := NewService(repo)

	m, err := svc.Create(ctx, CreateStaffRequest{Name: "Aye Chan", Salary: 50000})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, m.ID))

	stored, err := svc.Get(ctx, m.ID)
	require.NoError(t, err)
	require.Equal(t, StatusInactive, stored.Status)
	require.False(t, stored.Active())

	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	require.Empty(t, active)
}
