package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"djazair-backend/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAdminAuth(t *testing.T) {
	manager := auth.NewManager("secret", time.Hour)
	h := AdminAuth(manager)(okHandler())

	tok, err := manager.Issue()
	require.NoError(t, err)
	foreign, err := auth.NewManager("other", time.Hour).Issue()
	require.NoError(t, err)

	cases := []struct {
		name   string
		cookie string
		want   int
	}{
		{"no cookie", "", http.StatusUnauthorized},
		{"valid", tok, http.StatusNoContent},
		{"foreign signature", foreign, http.StatusUnauthorized},
		{"garbage", "abc", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodDelete, "/api/gallery", nil)
			if tc.cookie != "" {
				r.AddCookie(&http.Cookie{Name: auth.CookieName, Value: tc.cookie})
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			assert.Equal(t, tc.want, rec.Code)
			if tc.want == http.StatusUnauthorized {
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestAdminAuthNotConfigured(t *testing.T) {
	rec := httptest.NewRecorder()
	AdminAuth(nil)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
