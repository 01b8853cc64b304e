package server

import (
	"net/http"
	"strings"

	"github.com/gokatarajesh/trivia-api/internal/config"
)

// CORS sets the configured Access-Control headers on every response unless a
// handler already did, and answers preflight OPTIONS requests with 204.
func CORS(cfg config.CORS) func(http.Handler) http.Handler {
	origins := strings.Join(cfg.AllowedOrigins, ",")
	methods := strings.Join(cfg.AllowedMethods, ",")
	headers := strings.Join(cfg.AllowedHeaders, ",")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			setIfAbsent(h, "Access-Control-Allow-Origin", origins)
			setIfAbsent(h, "Access-Control-Allow-Methods", methods)
			setIfAbsent(h, "Access-Control-Allow-Headers", headers)

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func setIfAbsent(h http.Header, key, value string) {
	if value == "" || h.Get(key) != "" {
		return
	}
	h.Set(key, value)
}
