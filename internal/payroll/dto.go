package payroll

import "time"

// DisburseRequest is the body for both single and bulk disbursement
// endpoints. Both fields are optional.
type DisburseRequest struct {
	PaymentDate *time.Time `json:"payment_date,omitempty"`
	Notes       string     `json:"notes" validate:"max=1000"`
}

// RunSummary counts a bulk run's outcomes.
type RunSummary struct {
	Paid    int `json:"paid"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
	Total   int `json:"total"`
}

// Summarize builds a RunSummary from a result.
func Summarize(result DisbursementResult) RunSummary {
	return RunSummary{
		Paid:    len(result.Successful),
		Skipped: len(result.Skipped),
		Failed:  len(result.Failed),
		Total:   result.Total(),
	}
}

// DisburseRunResponse is the bulk endpoint response.
type DisburseRunResponse struct {
	Result  DisbursementResult `json:"result"`
	Summary RunSummary         `json:"summary"`
}
