// Package list реализует HTTP-обработчик для получения каталога тарифных планов.
package list

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение каталога планов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс каталога тарифных планов.
type Service interface {
	List() []models.Plan
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список тарифных планов
// @Description Возвращает статический каталог тарифных планов в заданном порядке.
// @Tags Plans
// @Produce  json
// @Success 200 {object} map[string]any "Каталог планов"
// @Router /plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.list"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	plans := h.service.List()

	log.Info("success to list plans", slog.Int("count", len(plans)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"plans": plans,
	}))
}
