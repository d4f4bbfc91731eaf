package middleware

import (
	"log/slog"
	"net/http"

	"filippo.io/csrf/gorilla"
)

// CSRF returns cross-site request forgery protection for state-changing
// requests. filippo.io/csrf/gorilla checks Fetch metadata and Origin headers
// rather than a cookie. trustedOrigins are host values such as
// "localhost:8080".
func CSRF(authKey []byte, trustedOrigins ...string) func(http.Handler) http.Handler {
	opts := []csrf.Option{csrf.ErrorHandler(http.HandlerFunc(csrfErrorHandler))}
	if len(trustedOrigins) > 0 {
		opts = append(opts, csrf.TrustedOrigins(trustedOrigins))
	}
	return csrf.Protect(authKey, opts...)
}

// DevTrustedOrigins are the hosts trusted when running locally.
func DevTrustedOrigins(addr string) []string {
	return []string{addr, "localhost:8080", "127.0.0.1:8080"}
}

func csrfErrorHandler(w http.ResponseWriter, r *http.Request) {
	reason := "unknown"
	if err := csrf.FailureReason(r); err != nil {
		reason = err.Error()
	}
	slog.Warn("CSRF validation failed",
		"reason", reason,
		"method", r.Method,
		"path", r.URL.Path,
		"origin", r.Header.Get("Origin"),
		"sec_fetch_site", r.Header.Get("Sec-Fetch-Site"),
	)
	http.Error(w, "Forbidden - CSRF validation failed", http.StatusForbidden)
}
