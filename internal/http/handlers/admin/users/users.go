// Package users реализует HTTP-обработчик для списка пользователей с их
// покупками. Доступно только администраторам.
package users

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

// Handler обрабатывает HTTP-запросы на чтение списка пользователей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения пользователей с покупками.
type Service interface {
	ListWithPlans(ctx context.Context) ([]*models.UserWithPlans, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список пользователей
// @Description Возвращает всех пользователей с их покупками и последним купленным планом. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список пользователей"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.users"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	users, err := h.service.ListWithPlans(r.Context())
	if err != nil {
		log.Error("failed to list users", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list users"))
		return
	}

	log.Info("success to list users", slog.Int("count", len(users)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"users": users,
	}))
}
