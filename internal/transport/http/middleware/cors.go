package middleware

import (
	"net/http"
	"strings"
)

// CORS allows the configured front-end origin to call the API with
// credentials (the session cookie rides on cross-origin requests only when
// Allow-Credentials is set and the origin is echoed back exactly).
func CORS(allowedOrigin string) func(http.Handler) http.Handler {
	allowedMethods := strings.Join([]string{"GET", "POST", "OPTIONS"}, ", ")
	allowedHeaders := strings.Join([]string{"Accept", "Content-Type"}, ", ")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin != "" && origin == allowedOrigin {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
				w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
				w.Header().Set("Access-Control-Max-Age", "3600")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
