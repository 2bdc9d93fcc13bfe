package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/authz"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
)

// RequireRole создает middleware, пропускающий только пользователей с одной
// из перечисленных ролей. Должен стоять после AuthMiddleware.
func RequireRole(log *slog.Logger, allowedRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			if !authz.Allowed(user.Role, allowedRoles...) {
				log.Error("access denied",
					slog.String("role", user.Role))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
