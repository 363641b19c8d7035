package auth

import (
	"net/http"
	"time"
)

const CookieName = "token"

// SetSessionCookie stores the token in an HttpOnly cookie. Secure cookies use
// SameSite=None so the SPA may call the API cross-site; browsers refuse
// SameSite=None without Secure, so plain-http development falls back to Lax.
func SetSessionCookie(w http.ResponseWriter, token string, ttl time.Duration, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
	})
}

func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: sameSite(secure),
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func TokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Authenticated reports whether the request carries a valid session cookie.
func (m *Manager) Authenticated(r *http.Request) bool {
	if m == nil {
		return false
	}
	_, err := m.Verify(TokenFromRequest(r))
	return err == nil
}

func sameSite(secure bool) http.SameSite {
	if secure {
		return http.SameSiteNoneMode
	}
	return http.SameSiteLaxMode
}
