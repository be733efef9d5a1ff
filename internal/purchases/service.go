package purchases

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CreatePurchaseRequest records a manual expense.
type CreatePurchaseRequest struct {
	Name         string     `json:"name" validate:"required,max=200"`
	Description  string     `json:"description" validate:"max=1000"`
	TotalAmount  int64      `json:"total_amount" validate:"required,gt=0"`
	Status       Status     `json:"status" validate:"omitempty,oneof=pending completed cancelled"`
	Supplier     string     `json:"supplier" validate:"max=200"`
	PurchaseDate *time.Time `json:"purchase_date,omitempty"`
	Notes        string     `json:"notes" validate:"max=1000"`
}

// Service manages the expense ledger surface. Payroll-generated purchases
// bypass this service and are written inside the disbursement transaction.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService constructs the purchases service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Get returns one purchase record.
func (s *Service) Get(ctx context.Context, id string) (Record, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of purchase records plus the total count.
func (s *Service) List(ctx context.Context, req ListRequest) ([]Record, int, error) {
	return s.repo.List(ctx, req)
}

// Create records a manual expense entry.
func (s *Service) Create(ctx context.Context, req CreatePurchaseRequest, createdBy string) (Record, error) {
	status := req.Status
	if status == "" {
		status = StatusPending
	}
	purchaseDate := s.now()
	if req.PurchaseDate != nil {
		purchaseDate = *req.PurchaseDate
	}
	rec := Record{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		TotalAmount:  req.TotalAmount,
		Status:       status,
		Supplier:     req.Supplier,
		PurchaseDate: purchaseDate,
		Notes:        req.Notes,
		CreatedBy:    createdBy,
		CreatedAt:    s.now(),
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return Record{}, fmt.Errorf("create purchase: %w", err)
	}
	return rec, nil
}
