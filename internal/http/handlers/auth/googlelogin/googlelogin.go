// Package googlelogin реализует HTTP-обработчик начала входа через Google:
// генерирует state, сохраняет его в cookie и перенаправляет на страницу согласия.
package googlelogin

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/oceanmeet/meeting-hub/internal/http/cookie"
)

// Handler обрабатывает HTTP-запросы начала входа через Google.
type Handler struct {
	log   *slog.Logger
	oauth OAuthClient
}

// OAuthClient описывает интерфейс построения ссылки авторизации Google.
type OAuthClient interface {
	AuthURL(state string) string
}

// New создает новый Handler с переданными логгером и OAuth-клиентом.
func New(log *slog.Logger, oauth OAuthClient) *Handler {
	return &Handler{
		log:   log,
		oauth: oauth,
	}
}

// ServeHTTP godoc
// @Summary Вход через Google
// @Description Перенаправляет на страницу согласия Google. State сохраняется в cookie.
// @Tags Auth
// @Success 307 "Редирект на Google"
// @Router /oauth/google [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.googlelogin"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	state := uuid.NewString()
	cookie.SetOAuthState(w, state)

	log.Info("redirecting to google consent page")
	http.Redirect(w, r, h.oauth.AuthURL(state), http.StatusTemporaryRedirect)
}
