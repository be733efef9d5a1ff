package purchases

import "time"

// Status enumerates purchase record statuses.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Record is an expense ledger entry. TotalAmount is whole currency minor
// units; fractional source amounts are rounded before they reach the ledger.
type Record struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	TotalAmount  int64     `json:"total_amount"`
	Status       Status    `json:"status"`
	Supplier     string    `json:"supplier"`
	PurchaseDate time.Time `json:"purchase_date"`
	Notes        string    `json:"notes"`
	CreatedBy    string    `json:"created_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// ListRequest filters purchase listings.
type ListRequest struct {
	Status  Status
	Page    int
	PerPage int
}
