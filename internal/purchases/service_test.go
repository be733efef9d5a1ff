package purchases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memoryPurchaseRepo struct {
	records map[string]Record
}

func newMemoryPurchaseRepo() *memoryPurchaseRepo {
	return &memoryPurchaseRepo{records: make(map[string]Record)}
}

func (r *memoryPurchaseRepo) Get(ctx context.Context, id string) (Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (r *memoryPurchaseRepo) List(ctx context.Context, req ListRequest) ([]Record, int, error) {
	var out []Record
	for _, rec := range r.records {
		if req.Status != "" && rec.Status != req.Status {
			continue
		}
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (r *memoryPurchaseRepo) Create(ctx context.Context, rec Record) error {
	r.records[rec.ID] = rec
	return nil
}

func TestCreateDefaultsToPending(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo)

	rec, err := svc.Create(ctx, CreatePurchaseRequest{
		Name:        "Rice 50kg",
		TotalAmount: 85000,
		Supplier:    "City Mart",
	}, "admin-1")
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID)
	require.Equal(t, StatusPending, rec.Status)
	require.Equal(t, "admin-1", rec.CreatedBy)
	require.False(t, rec.PurchaseDate.IsZero(), "purchase date defaults to now")

	stored, err := svc.Get(ctx, rec.ID)
	require.NoError(t, err)
	require.Equal(t, rec, stored)
}

func TestCreateHonorsExplicitFields(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemoryPurchaseRepo())

	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	rec, err := svc.Create(ctx, CreatePurchaseRequest{
		Name:         "Cooking oil",
		TotalAmount:  42000,
		Status:       StatusCompleted,
		PurchaseDate: &date,
	}, "manager-1")
	require.NoError(t, err)
	require.Equal(t, StatusCompleted, rec.Status)
	require.Equal(t, date, rec.PurchaseDate)
}

func TestGetUnknownRecord(t *testing.T) {
	svc := NewService(newMemoryPurchaseRepo())

	_, err := svc.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListFiltersByStatus(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryPurchaseRepo()
	svc := NewService(repo)

	_, err := svc.Create(ctx, CreatePurchaseRequest{Name: "A", TotalAmount: 100}, "u")
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreatePurchaseRequest{Name: "B", TotalAmount: 200, Status: StatusCompleted}, "u")
	require.NoError(t, err)

	completed, total, err := svc.List(ctx, ListRequest{Status: StatusCompleted})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Equal(t, "B", completed[0].Name)
}
