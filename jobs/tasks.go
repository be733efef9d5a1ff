package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypePayrollNotify notifies operators after a disbursement run.
	TaskTypePayrollNotify = "payroll:notify"
)

// PayrollNotifyPayload describes a completed disbursement run.
type PayrollNotifyPayload struct {
	Kind      string `json:"kind"`
	Paid      int    `json:"paid"`
	Skipped   int    `json:"skipped"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	StaffName string `json:"staff_name,omitempty"`
}

// NewPayrollNotifyTask constructs an Asynq task.
func NewPayrollNotifyTask(payload PayrollNotifyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypePayrollNotify, data, asynq.Queue(QueueDefault)), nil
}

// HandlePayrollNotifyTask processes TaskTypePayrollNotify tasks. Delivery is
// currently a structured log line; operators tail the worker output.
func HandlePayrollNotifyTask(ctx context.Context, t *asynq.Task) error {
	var payload PayrollNotifyPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	slog.Default().Info("payroll run completed",
		slog.String("kind", payload.Kind),
		slog.Int("paid", payload.Paid),
		slog.Int("skipped", payload.Skipped),
		slog.Int("failed", payload.Failed),
		slog.Int("total", payload.Total),
		slog.String("staff", payload.StaffName))
	return nil
}
