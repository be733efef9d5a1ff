package payroll

import (
	"fmt"
	"time"
)

// PaymentStatus enumerates salary payment statuses.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// PayPeriod identifies the month a salary payment covers. At most one
// payment may exist per staff member per period.
type PayPeriod struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// PeriodFromDate derives the pay period from a payment date.
func PeriodFromDate(t time.Time) PayPeriod {
	return PayPeriod{Year: t.Year(), Month: int(t.Month())}
}

// Valid reports whether the period is well formed.
func (p PayPeriod) Valid() bool {
	return p.Year > 0 && p.Month >= 1 && p.Month <= 12
}

// String renders the period as "YYYY-MM".
func (p PayPeriod) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Payment is a persisted salary payment. Amount keeps the unrounded salary;
// the linked purchase record carries the rounded expense amount.
type Payment struct {
	ID          string        `json:"id"`
	StaffID     string        `json:"staff_id"`
	StaffName   string        `json:"staff_name"`
	Amount      float64       `json:"amount"`
	PaymentDate time.Time     `json:"payment_date"`
	PurchaseID  string        `json:"purchase_id"`
	Year        int           `json:"year"`
	Month       int           `json:"month"`
	Status      PaymentStatus `json:"status"`
	Notes       string        `json:"notes"`
	CreatedBy   string        `json:"created_by"`
	CreatedAt   time.Time     `json:"created_at"`
}

// Period returns the pay period the payment covers.
func (p Payment) Period() PayPeriod {
	return PayPeriod{Year: p.Year, Month: p.Month}
}

// DisbursedPayment describes one successful disbursement.
type DisbursedPayment struct {
	StaffID    string  `json:"staff_id"`
	StaffName  string  `json:"staff_name"`
	Amount     float64 `json:"amount"`
	PaymentID  string  `json:"payment_id"`
	PurchaseID string  `json:"purchase_id"`
}

// SkippedStaff describes a roster member skipped during a bulk run.
type SkippedStaff struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Reason    string `json:"reason"`
}

// FailedStaff describes a roster member whose disbursement failed.
type FailedStaff struct {
	StaffID   string `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Error     string `json:"error"`
}

// DisbursementResult is the per-run outcome. It is never persisted; when the
// run's commit fails the whole run is void regardless of its contents.
type DisbursementResult struct {
	Successful []DisbursedPayment `json:"successful"`
	Skipped    []SkippedStaff     `json:"skipped"`
	Failed     []FailedStaff      `json:"failed"`
}

// Total returns the number of roster members accounted for.
func (r DisbursementResult) Total() int {
	return len(r.Successful) + len(r.Skipped) + len(r.Failed)
}

// ListPaymentsRequest filters payment listings.
type ListPaymentsRequest struct {
	StaffID string
	Year    int
	Month   int
	Page    int
	PerPage int
}
