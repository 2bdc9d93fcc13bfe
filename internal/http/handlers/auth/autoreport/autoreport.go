// Package autoreport реализует HTTP-обработчик переключения автоматических
// отчетов для текущего пользователя.
package autoreport

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/services/user"
)

// Handler обрабатывает HTTP-запросы переключения авто-отчетов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики переключения авто-отчетов.
type Service interface {
	SetAutoReport(ctx context.Context, userUID string, enabled bool) error
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
// @Summary Переключить авто-отчеты
// @Description Включает или выключает автоматическую отправку отчетов после встречи.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body models.AutoReportRequest true "Флаг авто-отчетов"
// @Success 200 {object} map[string]any "Настройка обновлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/auto-report [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.autoreport"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AutoReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	principal, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.SetAutoReport(r.Context(), principal.UID, *req.Enabled); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			log.Error("user not found", slog.String("uid", principal.UID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update auto-report", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update auto-report"))
		return
	}

	log.Info("success to update auto-report",
		slog.String("uid", principal.UID), slog.Bool("enabled", *req.Enabled))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"auto_report_enabled": *req.Enabled,
	}))
}
