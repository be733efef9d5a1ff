package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/dashboard"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/payroll"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/purchases"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/staff"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	StaffHandler     *staff.Handler
	PurchasesHandler *purchases.Handler
	PayrollHandler   *payroll.Handler
	DashboardHandler *dashboard.Handler
}

// NewRouter constructs the chi.Router with service defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if params.StaffHandler != nil {
			params.StaffHandler.MountRoutes(r)
		}
		if params.PurchasesHandler != nil {
			params.PurchasesHandler.MountRoutes(r)
		}
		if params.PayrollHandler != nil {
			params.PayrollHandler.MountRoutes(r)
		}
		if params.DashboardHandler != nil {
			params.DashboardHandler.MountRoutes(r)
		}
	})

	return r
}
