package dashboard

// Summary aggregates back-office figures for the current pay period.
type Summary struct {
	ActiveStaff    int     `json:"active_staff"`
	InactiveStaff  int     `json:"inactive_staff"`
	MonthPurchases int64   `json:"month_purchases"`
	MonthPayroll   float64 `json:"month_payroll"`
	MonthPayments  int     `json:"month_payments"`
	Year           int     `json:"year"`
	Month          int     `json:"month"`
}
