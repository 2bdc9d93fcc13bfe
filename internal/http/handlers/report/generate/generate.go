// Package generate реализует HTTP-обработчик генерации отчета по встрече.
//
// Handler валидирует запрос, передает данные встречи внешнему сервису отчетов
// и возвращает полученный документ как есть. Ошибки внешнего сервиса
// возвращаются со статусом 500 и текстом статуса ответа, без повторов.
package generate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/reportclient"
	"github.com/oceanmeet/meeting-hub/internal/services/meeting"
)

// Handler обрабатывает HTTP-запросы генерации отчета.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики генерации отчета.
type Service interface {
	Generate(ctx context.Context, user *models.User, req models.ReportRequest) (*reportclient.Report, error)
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
// @Summary Сгенерировать отчет
// @Description Запрашивает отчет по встрече у внешнего сервиса и возвращает документ.
// @Tags Reports
// @Accept  json
// @Produce  octet-stream
// @Param request body models.ReportRequest true "Параметры отчета"
// @Success 200 {file} binary "Документ отчета"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет доступа к встрече"
// @Failure 404 {object} response.ErrorResponse "Встреча не найдена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка внешнего сервиса отчетов"
// @Router /reports [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.report.generate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.Any("request", req))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	report, err := h.service.Generate(r.Context(), user, req)
	if err != nil {
		switch {
		case errors.Is(err, meeting.ErrNotFound):
			log.Error("meeting not found", slog.String("meeting_id", req.MeetingID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("meeting not found"))
		case errors.Is(err, meeting.ErrForbidden):
			log.Error("meeting access denied", slog.String("meeting_id", req.MeetingID))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not allowed to read this meeting"))
		case errors.Is(err, reportclient.ErrUpstream):
			log.Error("report service failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error(err.Error()))
		default:
			log.Error("failed to generate report", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not generate report"))
		}
		return
	}

	filename := fmt.Sprintf("report-%s.%s", req.MeetingID, req.ReportFormat)
	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(report.Content); err != nil {
		log.Error("failed to write report body", sl.Err(err))
		return
	}

	log.Info("success to generate report", slog.String("meeting_id", req.MeetingID))
}
