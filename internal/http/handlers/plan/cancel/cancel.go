// Package cancel реализует HTTP-обработчик отмены покупки тарифного плана.
//
// Отменять покупку может её владелец или администратор. Запись удаляется
// навсегда; повторная отмена возвращает 404.
package cancel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/oceanmeet/meeting-hub/internal/http/middlewarectx"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/services/transaction"
)

// Handler обрабатывает HTTP-запросы на отмену покупки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отмены покупки.
type Service interface {
	Cancel(ctx context.Context, user *models.User, id string) error
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Отменить покупку
// @Description Удаляет покупку. Разрешено владельцу или администратору.
// @Tags Plans
// @Produce  json
// @Param id path string true "ID покупки"
// @Success 200 {object} map[string]any "Покупка отменена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Нет прав на отмену"
// @Failure 404 {object} response.ErrorResponse "Покупка не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /plans/cancel/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.cancel"
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

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	if err := h.service.Cancel(r.Context(), user, idStr); err != nil {
		switch {
		case errors.Is(err, transaction.ErrNotFound):
			log.Error("transaction not found", slog.String("id", idStr))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("transaction not found"))
		case errors.Is(err, transaction.ErrForbidden):
			log.Error("cancel forbidden", slog.String("id", idStr))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("not allowed to cancel this transaction"))
		default:
			log.Error("failed to cancel transaction", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not cancel transaction"))
		}
		return
	}

	log.Info("success to cancel transaction", slog.String("id", idStr))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"cancelled_id": idStr,
	}))
}
