// Package purchase реализует HTTP-обработчик покупки тарифного плана.
//
// Handler принимает JSON-запрос с именем и ценой плана, валидирует их,
// извлекает пользователя из контекста и вызывает бизнес-логику покупки.
// Администраторам покупка запрещена; имя и цена сверяются с каталогом.
package purchase

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
	"github.com/oceanmeet/meeting-hub/internal/services/plan"
	"github.com/oceanmeet/meeting-hub/internal/services/transaction"
)

// Handler обрабатывает HTTP-запросы на покупку тарифного плана.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики покупки плана.
type Service interface {
	Purchase(ctx context.Context, user *models.User, req models.PurchaseRequest) (*models.Transaction, error)
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
// @Summary Купить тарифный план
// @Description Записывает покупку плана текущим пользователем. Цена фиксируется из каталога.
// @Tags Plans
// @Accept  json
// @Produce  json
// @Param request body models.PurchaseRequest true "Имя и цена плана"
// @Success 200 {object} map[string]any "Успешная покупка"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Администраторам покупка запрещена"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при покупке"
// @Router /plans/purchase [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.plan.purchase"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.PurchaseRequest
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

	tx, err := h.service.Purchase(r.Context(), user, req)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrAdminPurchase):
			log.Error("admin purchase rejected", slog.String("email", user.Email))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("admin cannot purchase plans"))
		case errors.Is(err, plan.ErrInvalidPlan):
			log.Error("invalid plan", slog.String("plan", req.PlanName))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid plan"))
		default:
			log.Error("failed to purchase plan", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not purchase plan"))
		}
		return
	}

	log.Info("success to purchase plan", slog.String("id", tx.ID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"transaction": tx,
	}))
}
