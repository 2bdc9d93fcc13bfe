// Package userrole реализует HTTP-обработчик смены роли пользователя.
// Допустимы только роли "admin" и "user". Доступно только администраторам.
package userrole

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/services/user"
)

// Handler обрабатывает HTTP-запросы на смену роли пользователя.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики смены роли.
type Service interface {
	UpdateRole(ctx context.Context, userUID, role string) (*models.User, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Сменить роль пользователя
// @Description Назначает пользователю роль "admin" или "user". Только для администраторов.
// @Tags Admin
// @Accept  json
// @Produce  json
// @Param id path string true "UID пользователя"
// @Param request body models.UpdateRoleRequest true "Новая роль"
// @Success 200 {object} map[string]any "Роль обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID или роль"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/users/{id}/role [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.userrole"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	if _, err := uuid.Parse(idStr); err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	var req models.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	updated, err := h.service.UpdateRole(r.Context(), idStr, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrInvalidRole):
			log.Error("invalid role", slog.String("role", req.Role))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid role"))
		case errors.Is(err, user.ErrNotFound):
			log.Error("user not found", slog.String("id", idStr))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
		default:
			log.Error("failed to update role", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not update role"))
		}
		return
	}

	log.Info("success to update role",
		slog.String("id", idStr), slog.String("role", updated.Role))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user": updated,
	}))
}
