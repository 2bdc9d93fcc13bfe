// Package myplans реализует HTTP-обработчик для списка покупок текущего пользователя.
package myplans

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
)

// Handler обрабатывает HTTP-запросы на чтение покупок текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения покупок пользователя.
type Service interface {
	ListOwn(ctx context.Context, userUID string) ([]*models.Transaction, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои покупки
// @Description Возвращает покупки текущего пользователя, новые первыми.
// @Tags Plans
// @Produce  json
// @Success 200 {object} map[string]any "Список покупок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/my-plans [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.myplans"
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

	txs, err := h.service.ListOwn(r.Context(), user.UID)
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list transactions"))
		return
	}

	log.Info("success to list transactions", slog.Int("count", len(txs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transactions": txs,
	}))
}
