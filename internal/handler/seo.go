package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/seo"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/views"
)

// SEOHandler serves robots.txt and sitemap.xml.
type SEOHandler struct {
	catalog *service.EventCatalog
	siteURL string
	isDev   bool
}

// NewSEOHandler creates a new SEOHandler. An empty siteURL is derived from
// each request.
func NewSEOHandler(catalog *service.EventCatalog, siteURL string, isDev bool) *SEOHandler {
	return &SEOHandler{catalog: catalog, siteURL: strings.TrimRight(siteURL, "/"), isDev: isDev}
}

func (h *SEOHandler) baseURL(r *http.Request) string {
	if h.siteURL != "" {
		return h.siteURL
	}
	scheme := "https"
	if r.TLS == nil && h.isDev {
		scheme = "http"
	}
	return scheme + "://" + r.Host
}

// Robots handles GET /robots.txt. Development servers ask crawlers to stay away.
func (h *SEOHandler) Robots(w http.ResponseWriter, r *http.Request) {
	body := seo.BuildRobots(seo.RobotsConfig{
		SiteURL:     h.baseURL(r),
		DisallowAll: h.isDev,
	})
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(body))
}

// Sitemap handles GET /sitemap.xml. Only approved events are listed.
func (h *SEOHandler) Sitemap(w http.ResponseWriter, r *http.Request) {
	b := seo.NewSitemapBuilder(h.baseURL(r))
	b.AddHomepage()
	b.AddPage("/events", seo.ChangeFreqDaily, "0.9")
	b.AddPage("/about", seo.ChangeFreqMonthly, "0.5")
	b.AddPage("/submit", seo.ChangeFreqMonthly, "0.4")
	b.AddPage("/contact", seo.ChangeFreqMonthly, "0.4")

	events, err := h.catalog.ListApproved(r.Context())
	if err != nil {
		slog.Error("failed to list events for sitemap", "error", err)
	}
	entries := make([]seo.SitemapEvent, 0, len(events))
	for _, e := range events {
		entries = append(entries, seo.SitemapEvent{Path: views.EventURL(e), UpdatedAt: e.CreatedAt})
	}
	b.AddEvents(entries)

	out, err := b.Build()
	if err != nil {
		logAndInternalError(w, "failed to build sitemap", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(out)
}
