// Package googlecallback реализует HTTP-обработчик завершения входа через Google:
// сверяет state, обменивает код на профиль, создает пользователя при первом входе,
// выставляет cookie сессии и перенаправляет на фронтенд.
package googlecallback

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/oceanmeet/meeting-hub/internal/http/cookie"
	"github.com/oceanmeet/meeting-hub/internal/http/response"
	"github.com/oceanmeet/meeting-hub/internal/lib/sl"
	"github.com/oceanmeet/meeting-hub/internal/models"
	"github.com/oceanmeet/meeting-hub/internal/oauth"
)

// Handler обрабатывает HTTP-запросы завершения входа через Google.
type Handler struct {
	log         *slog.Logger
	oauth       OAuthClient
	service     Service
	frontendURL string
	tokenTTL    time.Duration
}

// OAuthClient описывает интерфейс обмена кода авторизации на профиль.
type OAuthClient interface {
	ResolveProfile(ctx context.Context, code string) (*oauth.Profile, error)
}

// Service описывает интерфейс бизнес-логики входа через Google.
type Service interface {
	LoginWithGoogle(ctx context.Context, email, name string) (string, *models.User, error)
}

// New создает новый Handler с переданными логгером, OAuth-клиентом и сервисом.
func New(log *slog.Logger, oauthClient OAuthClient, service Service, frontendURL string, tokenTTL time.Duration) *Handler {
	return &Handler{
		log:         log,
		oauth:       oauthClient,
		service:     service,
		frontendURL: frontendURL,
		tokenTTL:    tokenTTL,
	}
}

// ServeHTTP godoc
// @Summary Завершение входа через Google
// @Description Обменивает код авторизации на профиль, выпускает токен сессии в cookie и перенаправляет на фронтенд.
// @Tags Auth
// @Param state query string true "State из cookie"
// @Param code query string true "Код авторизации Google"
// @Success 307 "Редирект на фронтенд"
// @Failure 400 {object} response.ErrorResponse "Некорректный state или код"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /oauth/google/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.googlecallback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stateCookie, err := r.Cookie(cookie.OAuthState)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		log.Error("oauth state mismatch")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid oauth state"))
		return
	}
	cookie.ClearOAuthState(w)

	code := r.URL.Query().Get("code")
	if code == "" {
		log.Error("authorization code missing")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("authorization code missing"))
		return
	}

	profile, err := h.oauth.ResolveProfile(r.Context(), code)
	if err != nil {
		log.Error("failed to resolve google profile", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to resolve google profile"))
		return
	}

	token, user, err := h.service.LoginWithGoogle(r.Context(), profile.Email, profile.Name)
	if err != nil {
		log.Error("google login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not login"))
		return
	}

	cookie.SetSession(w, token, h.tokenTTL)

	log.Info("google login success", slog.String("email", user.Email))
	http.Redirect(w, r, h.frontendURL, http.StatusTemporaryRedirect)
}
