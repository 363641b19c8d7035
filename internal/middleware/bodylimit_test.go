package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyLimit(t *testing.T) {
	var readErr error
	h := BodyLimit(8, 16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, readErr = io.ReadAll(r.Body)
	}))

	cases := []struct {
		name        string
		contentType string
		size        int
		wantErr     bool
	}{
		{"json within limit", "application/json", 8, false},
		{"json over limit", "application/json", 9, true},
		{"multipart within limit", "multipart/form-data; boundary=x", 16, false},
		{"multipart over limit", "multipart/form-data; boundary=x", 17, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", tc.size)))
			r.Header.Set("Content-Type", tc.contentType)
			h.ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, tc.wantErr, readErr != nil)
		})
	}
}
