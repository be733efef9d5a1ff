package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Service manages the staff directory. The payroll engine consumes it
// read-only; writes come from the back-office HTTP surface.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs the staff service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns one staff member.
func (s *Service) Get(ctx context.Context, id string) (Member, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of staff members plus the total count.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Member, int, error) {
	return s.repo.List(ctx, req)
}

// ListActive returns every member eligible for payroll, in name order.
func (s *Service) ListActive(ctx context.Context) ([]Member, error) {
	return s.repo.ListActive(ctx)
}

// Create registers a new staff member as active.
func (s *Service) Create(ctx context.Context, req CreateStaffRequest) (Member, error) {
	now := s.now()
	m := Member{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Position:  req.Position,
		Salary:    req.Salary,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return Member{}, fmt.Errorf("create staff: %w", err)
	}
	return m, nil
}

// Update applies a partial edit.
func (s *Service) Update(ctx context.Context, id string, req UpdateStaffRequest) (Member, error) {
	m, err := s.repo.Get(ctx, id)
	if err != nil {
		return Member{}, err
	}
	if req.Name != nil {
		m.Name = *req.Name
	}
	if req.Position != nil {
		m.Position = *req.Position
	}
	if req.Salary != nil {
		m.Salary = *req.Salary
	}
	if req.Status != nil {
		m.Status = *req.Status
	}
	m.UpdatedAt = s.now()
	if err := s.repo.Update(ctx, m); err != nil {
		return Member{}, fmt.Errorf("update staff: %w", err)
	}
	return m, nil
}

// Deactivate marks a member inactive. Records are never hard-deleted so
// historical payments keep a valid staff reference.
func (s *Service) Deactivate(ctx context.Context, id string) error {
	return s.repo.SetStatus(ctx, id, StatusInactive)
}
