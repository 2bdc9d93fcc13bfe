// Package create реализует HTTP-обработчик приёма захваченной встречи.
//
// Handler принимает JSON от клиента захвата, валидирует его, привязывает
// встречу к текущему пользователю и вызывает бизнес-логику приёма. Если у
// пользователя включены авто-отчеты, сервис публикует задание в очередь.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы приёма встреч.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики приёма встречи.
type Service interface {
	Ingest(ctx context.Context, user *models.User, req models.IngestMeetingRequest) (string, error)
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
// @Summary Сохранить встречу
// @Description Принимает метаданные захваченной встречи от имени текущего пользователя.
// @Tags Meetings
// @Accept  json
// @Produce  json
// @Param request body models.IngestMeetingRequest true "Данные встречи"
// @Success 200 {object} map[string]any "Встреча сохранена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /meetings [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.meeting.create"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.IngestMeetingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
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
	log.Info("all fields are validated")

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Ingest(r.Context(), user, req)
	if err != nil {
		log.Error("failed to ingest meeting", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not save meeting"))
		return
	}

	log.Info("success to ingest meeting", slog.String("id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"meeting_id": id,
	}))
}
