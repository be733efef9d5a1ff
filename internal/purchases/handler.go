package purchases

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/shared"
)

// Handler exposes purchase ledger endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler builds a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers purchase routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireRoles(h.logger))
		r.Get("/purchases", h.list)
		r.Get("/purchases/{id}", h.show)
	})
	r.Group(func(r chi.Router) {
		r.Use(shared.RequireRoles(h.logger, shared.RoleAdmin, shared.RoleManager))
		r.Post("/purchases", h.create)
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))

	records, total, err := h.service.List(r.Context(), ListRequest{
		Status:  Status(r.URL.Query().Get("status")),
		Page:    page,
		PerPage: perPage,
	})
	if err != nil {
		h.logger.Error("list purchases", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}

	httpx.JSON(w, http.StatusOK, map[string]any{
		"purchases":  records,
		"pagination": shared.NewPagination(page, perPage, total),
	})
}

func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			h.logger.Error("get purchase", slog.Any("error", err))
		}
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, rec)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req CreatePurchaseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: invalid request body", httpx.ErrValidation))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %s", httpx.ErrValidation, err))
		return
	}

	id := shared.IdentityFromContext(r.Context())
	rec, err := h.service.Create(r.Context(), req, id.UserID)
	if err != nil {
		h.logger.Error("create purchase", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusCreated, rec)
}
