// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/mileusna/useragent"

	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/util"
)

// Recorder stores one analytics row.
type Recorder interface {
	Track(ctx context.Context, page, event string, metadata map[string]any) error
}

// CountryResolver maps an IP address to an ISO country code.
type CountryResolver interface {
	Country(ip string) string
}

// untrackedPrefixes are never recorded as page views.
var untrackedPrefixes = []string{"/admin", "/api", "/static", "/uploads", "/health", "/metrics", "/favicon"}

// ParsedUA holds the parts of a user agent kept in analytics metadata.
type ParsedUA struct {
	Browser string
	OS      string
	Device  string
	Bot     bool
}

// ParseUserAgent extracts browser, OS, and device type from a user agent string.
func ParseUserAgent(s string) ParsedUA {
	ua := useragent.Parse(s)

	p := ParsedUA{Browser: ua.Name, OS: ua.OS, Bot: ua.Bot}
	if p.Browser == "" {
		p.Browser = "Unknown"
	}
	if p.OS == "" {
		p.OS = "Unknown"
	}

	switch {
	case ua.Bot:
		p.Device = "bot"
	case ua.Tablet:
		p.Device = "tablet"
	case ua.Mobile:
		p.Device = "mobile"
	default:
		p.Device = "desktop"
	}
	return p
}

// PageName derives the analytics page label from a path: "/" is "home",
// "/events/3/diwali" is "event", otherwise the first path segment.
func PageName(path string) string {
	path = strings.Trim(path, "/")
	if path == "" {
		return "home"
	}
	first, rest, _ := strings.Cut(path, "/")
	if first == "events" && rest != "" {
		return "event"
	}
	return first
}

// Track records a page_view row for every successful public GET page
// request. Bots, assets and admin or API traffic are skipped. countries may
// be nil.
func Track(rec Recorder, countries CountryResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || !trackable(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			if status := ww.Status(); status != 0 && status != http.StatusOK {
				return
			}
			ua := ParseUserAgent(r.UserAgent())
			if ua.Bot {
				return
			}

			meta := map[string]any{
				"path":    r.URL.Path,
				"browser": ua.Browser,
				"os":      ua.OS,
				"device":  ua.Device,
			}
			if ref := r.Referer(); ref != "" {
				meta["referrer"] = ref
			}
			if countries != nil {
				if c := countries.Country(util.ClientIP(r)); c != "" {
					meta["country"] = c
				}
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), 2*time.Second)
			defer cancel()
			if err := rec.Track(ctx, PageName(r.URL.Path), store.AnalyticsPageView, meta); err != nil {
				slog.Debug("page view not recorded", "path", r.URL.Path, "error", err)
			}
		})
	}
}

func trackable(path string) bool {
	for _, p := range untrackedPrefixes {
		if strings.HasPrefix(path, p) {
			return false
		}
	}
	return true
}
