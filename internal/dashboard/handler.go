package dashboard

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/shared"
)

// Handler exposes the dashboard endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers dashboard routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireRoles(h.logger))
		r.Get("/dashboard/summary", h.summary)
	})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	month, _ := strconv.Atoi(r.URL.Query().Get("month"))

	var (
		summary Summary
		err     error
	)
	if year > 0 && month >= 1 && month <= 12 {
		summary, err = h.service.SummaryFor(r.Context(), year, month)
	} else {
		summary, err = h.service.CurrentSummary(r.Context())
	}
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
