// Package stats реализует HTTP-обработчик сводной статистики.
// Статистика пересчитывается при каждом запросе. Доступно только администраторам.
package stats

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

// Handler обрабатывает HTTP-запросы на чтение сводной статистики.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики подсчета статистики.
type Service interface {
	Compute(ctx context.Context) (*models.Stats, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Сводная статистика
// @Description Возвращает статистику по пользователям, покупкам и планам. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Статистика"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/stats [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.stats"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	result, err := h.service.Compute(r.Context())
	if err != nil {
		log.Error("failed to compute stats", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not compute stats"))
		return
	}

	log.Info("success to compute stats",
		slog.Int("total_users", result.TotalUsers),
		slog.Int("total_transactions", result.TotalTransactions))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"stats": result,
	}))
}
