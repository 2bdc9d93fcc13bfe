// Package me реализует HTTP-обработчик чтения текущего пользователя.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
)

// Handler обрабатывает HTTP-запросы чтения текущего пользователя.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{
		log: log,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Description Возвращает профиль аутентифицированного пользователя.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Профиль пользователя"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": user,
	}))
}
