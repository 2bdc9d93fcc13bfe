// Package middlewarectx содержит HTTP middleware для аутентификации по cookie
// с JWT токеном и для проверки роли пользователя.
//
// AuthMiddleware достает токен сессии из cookie "token", разрешает его
// в пользователя и кладет пользователя в контекст запроса для обработчиков.
// В случае ошибки проверки возвращает HTTP 401 Unauthorized.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// User — ключ для аутентифицированного пользователя в контексте.
const User Key = "user"

// TokenCookie имя cookie с токеном сессии.
const TokenCookie = "token"

// Service описывает интерфейс сервиса для разрешения токена сессии в пользователя.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware возвращает HTTP middleware, который проверяет JWT из cookie "token".
//
// Если токен валиден, добавляет пользователя в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func AuthMiddleware(authService Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.AuthMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			cookie, err := r.Cookie(TokenCookie)
			if err != nil || cookie.Value == "" {
				log.Error("missing session cookie")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
				return
			}

			user, err := authService.Authenticate(r.Context(), cookie.Value)
			if err != nil {
				log.Error("invalid or expired token", sl.Err(err))
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), User, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext возвращает аутентифицированного пользователя из контекста запроса.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok
}
