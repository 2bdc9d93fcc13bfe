// Package cookie содержит помощники для работы с cookie сессии и OAuth state.
package cookie

import (
	"net/http"
	"time"
)

const (
	// Session имя cookie с токеном сессии.
	Session = "token"
	// OAuthState имя короткоживущего cookie со state для OAuth-обмена.
	OAuthState = "oauth_state"
)

// SetSession выставляет HTTP-only cookie с токеном сессии.
func SetSession(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     Session,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSession удаляет cookie с токеном сессии.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     Session,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// SetOAuthState выставляет короткоживущий cookie со state OAuth-обмена.
func SetOAuthState(w http.ResponseWriter, state string) {
	http.SetCookie(w, &http.Cookie{
		Name:     OAuthState,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearOAuthState удаляет cookie со state OAuth-обмена.
func ClearOAuthState(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     OAuthState,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
