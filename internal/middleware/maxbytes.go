package middleware

import (
	"net/http"
)

// DefaultMaxBodyBytes caps signup and exercise bodies when no limit is configured (1 MiB).
const DefaultMaxBodyBytes = 1 << 20

// MaxBytes wraps request bodies in http.MaxBytesReader. Requests that declare a larger
// Content-Length are refused with 413 before the handler runs.
func MaxBytes(maxBytes int64) func(http.Handler) http.Handler {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > maxBytes {
				writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
