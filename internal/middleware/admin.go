package middleware

import (
	"net/http"

	"djazair-backend/internal/auth"
	"djazair-backend/internal/transport"
)

// AdminAuth lets a request through only with a valid session cookie. Missing
// and invalid cookies get the same 401 so callers learn nothing about why.
func AdminAuth(manager *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil {
				transport.WriteError(w, http.StatusServiceUnavailable, "admin auth not configured", nil)
				return
			}
			if !manager.Authenticated(r) {
				transport.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
