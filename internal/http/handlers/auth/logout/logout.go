// Package logout реализует HTTP-обработчик выхода: удаляет cookie сессии.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/cookie"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
)

// Handler обрабатывает HTTP-запросы выхода.
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
// @Summary Выход
// @Description Удаляет cookie с токеном сессии.
// @Tags Auth
// @Produce  json
// @Success 200 {object} map[string]any "Выход выполнен"
// @Router /auth/logout [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	cookie.ClearSession(w)

	log.Info("logout success")
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"message": "logged out",
	}))
}
