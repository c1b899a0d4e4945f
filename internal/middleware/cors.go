package middleware

import (
	"net/http"
	"strings"
)

// AllowedMethods are the methods the tracker API answers to.
var AllowedMethods = []string{"GET", "POST", "OPTIONS"}

// AllowedHeaders are the request headers browsers may send cross-origin.
var AllowedHeaders = []string{"Accept", "Content-Type", "X-Request-Id"}

// CORS sets Access-Control headers for listed origins and answers OPTIONS preflight with 204.
// "*" in origins allows any origin. An empty list disables CORS entirely.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}
	anyOrigin := false
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		if o == "*" {
			anyOrigin = true
			continue
		}
		allowed[o] = struct{}{}
	}
	methods := strings.Join(AllowedMethods, ", ")
	headers := strings.Join(AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" {
				if _, ok := allowed[origin]; ok {
					w.Header().Set("Access-Control-Allow-Origin", origin)
					w.Header().Add("Vary", "Origin")
				} else if anyOrigin {
					w.Header().Set("Access-Control-Allow-Origin", "*")
				}
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
