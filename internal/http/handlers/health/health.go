// Package health реализует HTTP-обработчик проверки готовности сервиса.
package health

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
)

// Handler обрабатывает HTTP-запросы проверки готовности.
type Handler struct {
	log     *slog.Logger
	storage Storage
}

// Storage описывает интерфейс проверки готовности хранилища.
type Storage interface {
	CheckDatabaseReady(ctx context.Context) error
}

// New создает новый Handler с переданными логгером и хранилищем.
func New(log *slog.Logger, storage Storage) *Handler {
	return &Handler{
		log:     log,
		storage: storage,
	}
}

// ServeHTTP godoc
// @Summary Проверка готовности
// @Description Возвращает OK, когда база данных доступна и схема применена.
// @Tags Health
// @Produce  json
// @Success 200 {object} map[string]any "Сервис готов"
// @Failure 503 {object} response.ErrorResponse "Сервис не готов"
// @Router /health [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.health"

	if err := h.storage.CheckDatabaseReady(r.Context()); err != nil {
		h.log.Error("database not ready", slog.String("op", op), sl.Err(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		render.JSON(w, r, response.Error("database not ready"))
		return
	}

	w.WriteHeader(http.StatusOK)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"status": "ok",
	}))
}
