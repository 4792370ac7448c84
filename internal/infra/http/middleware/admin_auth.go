package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// AdminAuth guards the dashboard api with a single shared key, either in
// the X-Admin-Key header or a ?key= query parameter. An empty configured
// key locks the endpoints entirely, never opens them.
func AdminAuth(apiKey string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("X-Admin-Key")
			if key == "" {
				key = r.URL.Query().Get("key")
			}

			if apiKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(apiKey)) != 1 {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]any{
					"ok":      false,
					"error":   "UNAUTHORIZED",
					"message": "unauthorized",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
