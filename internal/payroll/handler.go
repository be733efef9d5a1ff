package payroll

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/shared"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/jobs"
)

// Handler exposes payroll endpoints. Notification dispatch after successful
// runs happens here; the engine itself never notifies.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	tasks    *asynq.Client
	validate *validator.Validate
}

// NewHandler builds a Handler instance. The task client may be nil, in which
// case notifications are skipped.
func NewHandler(logger *slog.Logger, service *Service, tasks *asynq.Client) *Handler {
	return &Handler{logger: logger, service: service, tasks: tasks, validate: validator.New()}
}

// MountRoutes registers payroll routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireRoles(h.logger))
		r.Get("/payroll/payments", h.listPayments)
	})
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireRoles(h.logger, shared.RoleAdmin, shared.RoleManager))
		r.Post("/payroll/staff/{staffID}/payments", h.disburseOne)
		r.Post("/payroll/run", h.disburseAll)
	})
}

func (h *Handler) decodeDisburseRequest(r *http.Request) (DisburseRequest, error) {
	var req DisburseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		return DisburseRequest{}, errors.New("invalid request body")
	}
	if err := h.validate.Struct(req); err != nil {
		return DisburseRequest{}, err
	}
	return req, nil
}

func (h *Handler) disburseOne(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeDisburseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	opts := DisburseOptions{
		Notes:     req.Notes,
		CreatedBy: shared.IdentityFromContext(r.Context()).UserID,
	}
	if req.PaymentDate != nil {
		opts.PaymentDate = *req.PaymentDate
	}

	disbursed, err := h.service.DisburseOne(r.Context(), chi.URLParam(r, "staffID"), opts)
	if err != nil {
		h.respondDisburseError(w, err)
		return
	}

	h.notify(r, jobs.PayrollNotifyPayload{
		Kind:      "single",
		Paid:      1,
		Total:     1,
		StaffName: disbursed.StaffName,
	})
	httpx.JSON(w, http.StatusCreated, disbursed)
}

func (h *Handler) disburseAll(w http.ResponseWriter, r *http.Request) {
	req, err := h.decodeDisburseRequest(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	opts := DisburseOptions{
		Notes:     req.Notes,
		CreatedBy: shared.IdentityFromContext(r.Context()).UserID,
	}
	if req.PaymentDate != nil {
		opts.PaymentDate = *req.PaymentDate
	}

	result, err := h.service.DisburseAll(r.Context(), opts)
	if err != nil {
		h.respondDisburseError(w, err)
		return
	}

	summary := Summarize(result)
	if summary.Paid > 0 {
		h.notify(r, jobs.PayrollNotifyPayload{
			Kind:    "bulk",
			Paid:    summary.Paid,
			Skipped: summary.Skipped,
			Failed:  summary.Failed,
			Total:   summary.Total,
		})
	}
	httpx.JSON(w, http.StatusOK, DisburseRunResponse{Result: result, Summary: summary})
}

func (h *Handler) listPayments(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	staffID := r.URL.Query().Get("staff_id")
	if staffID != "" {
		if err := uuid.Validate(staffID); err != nil {
			httpx.RespondError(w, fmt.Errorf("%w: staff_id must be a uuid", httpx.ErrValidation))
			return
		}
	}

	payments, total, err := h.service.ListPayments(r.Context(), ListPaymentsRequest{
		StaffID: staffID,
		Year:    year,
		Month:   month,
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.logger.Error("list salary payments", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"payments":   payments,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

// respondDisburseError maps engine errors to status codes. Storage driver
// details are logged server-side but never sent to the client.
func (h *Handler) respondDisburseError(w http.ResponseWriter, err error) {
	var alreadyPaid *AlreadyPaidError
	switch {
	case errors.Is(err, ErrStaffNotFound):
		httpx.Problem(w, http.StatusNotFound, "Not Found", err.Error())
	case errors.Is(err, ErrInactiveStaff), errors.Is(err, ErrInvalidPeriod):
		httpx.Problem(w, http.StatusBadRequest, "Invalid State", err.Error())
	case errors.As(err, &alreadyPaid):
		httpx.ProblemWith(w, http.StatusBadRequest, "Already Paid", err.Error(), alreadyPaid.Payment)
	case errors.Is(err, ErrAlreadyPaid):
		httpx.Problem(w, http.StatusBadRequest, "Already Paid", err.Error())
	default:
		h.logger.Error("disbursement failed", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

func (h *Handler) notify(r *http.Request, payload jobs.PayrollNotifyPayload) {
	if h.tasks == nil {
		return
	}
	task, err := jobs.NewPayrollNotifyTask(payload)
	if err != nil {
		h.logger.Warn("build payroll notify task", slog.Any("error", err))
		return
	}
	if _, err := h.tasks.EnqueueContext(r.Context(), task); err != nil {
		h.logger.Warn("enqueue payroll notify task", slog.Any("error", err))
	}
}
