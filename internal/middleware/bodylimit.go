package middleware

import (
	"mime"
	"net/http"
)

const (
	MaxJSONBodyBytes = 1 << 20
	// multipart bodies carry the file plus form fields and boundaries
	MaxMultipartBodyBytes = 11 << 20
)

// BodyLimit caps request bodies: multipart uploads get the larger envelope,
// everything else the JSON ceiling.
func BodyLimit(jsonLimit, multipartLimit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil && r.Body != http.NoBody {
				limit := jsonLimit
				if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "multipart/form-data" {
					limit = multipartLimit
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
