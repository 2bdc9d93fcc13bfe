// Package oauth содержит клиент входа через Google: построение ссылки
// авторизации и обмен кода на профиль пользователя.
package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/oceanmeet/meeting-hub/internal/config"
)

// ErrInvalidCode возвращается, когда обмен кода авторизации не удался.
var ErrInvalidCode = errors.New("invalid authorization code")

// Profile профиль пользователя Google, достаточный для выпуска токена сессии.
type Profile struct {
	Email string
	Name  string
}

// GoogleClient выполняет OAuth-обмен с Google.
type GoogleClient struct {
	conf       *oauth2.Config
	httpClient *http.Client
}

// NewGoogleClient создает новый экземпляр GoogleClient.
func NewGoogleClient(cfg config.GoogleOAuth) *GoogleClient {
	return &GoogleClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: google.Endpoint,
		},
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthURL возвращает ссылку авторизации Google с заданным state.
// Всегда показывается выбор аккаунта.
func (c *GoogleClient) AuthURL(state string) string {
	return c.conf.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

// ResolveProfile обменивает код авторизации на профиль пользователя.
func (c *GoogleClient) ResolveProfile(ctx context.Context, code string) (*Profile, error) {
	tok, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, ErrInvalidCode
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://www.googleapis.com/oauth2/v2/userinfo", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+tok.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned status %d", resp.StatusCode)
	}

	var u struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&u); err != nil {
		return nil, err
	}
	if u.Email == "" {
		return nil, errors.New("google profile has no email")
	}
	return &Profile{Email: u.Email, Name: u.Name}, nil
}
