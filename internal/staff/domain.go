package staff

import "time"

// Status enumerates employment statuses.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Member is a staff record. Salary is expressed in currency minor units and
// may carry a fractional part; rounding is the payroll engine's concern.
type Member struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Salary    float64   `json:"salary"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Active reports whether the member is eligible for payroll.
func (m Member) Active() bool {
	return m.Status == StatusActive
}

// ListRequest filters staff listings.
type ListRequest struct {
	Status  Status
	Page    int
	PerPage int
}
