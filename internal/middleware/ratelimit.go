package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// PublicFormLimit limits public form posts per client IP. GET requests are
// never limited. Exceeding the limit answers 429 with a plain text body.
func PublicFormLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	limiter := httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("form rate limit exceeded", "path", r.URL.Path, "remote_addr", r.RemoteAddr)
			http.Error(w, "Too many submissions. Please wait a moment and try again.", http.StatusTooManyRequests)
		}),
	)

	return func(next http.Handler) http.Handler {
		limited := limiter(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				limited.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ChatLimit limits chat requests per client IP and answers with a JSON
// error body the widget can display.
func ChatLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(requests, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			slog.Warn("chat rate limit exceeded", "remote_addr", r.RemoteAddr)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "Too many messages. Please slow down.",
			})
		}),
	)
}
