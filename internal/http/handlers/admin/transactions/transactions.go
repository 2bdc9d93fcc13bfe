// Package transactions реализует HTTP-обработчик для списка всех покупок
// с данными владельцев. Доступно только администраторам.
package transactions

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

// Handler обрабатывает HTTP-запросы на чтение всех покупок.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения всех покупок.
type Service interface {
	ListAll(ctx context.Context) ([]*models.TransactionWithOwner, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все покупки
// @Description Возвращает все покупки с именем, email и ролью владельца. Только для администраторов.
// @Tags Admin
// @Produce  json
// @Success 200 {object} map[string]any "Список покупок"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /admin/transactions [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.admin.transactions"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	txs, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list transactions", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list transactions"))
		return
	}

	log.Info("success to list all transactions", slog.Int("count", len(txs)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transactions": txs,
	}))
}
