package shared

import (
	"log/slog"
	"net/http"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
)

// RequireRoles guards a route group, rejecting callers without one of the
// listed roles. Unauthenticated requests get 401, others 403.
func RequireRoles(logger *slog.Logger, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := IdentityFromContext(r.Context())
			if !id.Authenticated() {
				httpx.RespondError(w, httpx.ErrUnauthorized)
				return
			}
			if len(roles) > 0 && !id.HasAnyRole(roles...) {
				if logger != nil {
					logger.Warn("role denied",
						slog.String("user_id", id.UserID),
						slog.String("role", id.Role),
						slog.String("path", r.URL.Path))
				}
				httpx.RespondError(w, httpx.ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
