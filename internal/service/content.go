package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// Editable site content keys.
var (
	TextKeys = []string{
		"hero_title", "hero_subtitle", "about_title", "about_text",
		"contact_phone", "contact_email", "contact_address",
	}
	ImageKeys  = []string{"hero_image", "about_image1", "about_image2"}
	SocialKeys = []string{"social_instagram", "social_facebook", "social_twitter", "social_youtube"}
)

// ContentDefaults fill in any key that has no stored row.
var ContentDefaults = map[string]string{
	"hero_title":      "Celebrate India, Everywhere",
	"hero_subtitle":   "Discover Indian festivals, cultural events, and community gatherings across the United States.",
	"about_title":     "About Bharat Abroad",
	"about_text":      "We are a community-driven platform connecting the Indian diaspora across the United States through culture, festivals, and shared experiences.",
	"contact_phone":   "",
	"contact_email":   "hello@bharatabroad.com",
	"contact_address": "",
}

// IsContentKey reports whether key is one of the editable keys.
func IsContentKey(key string) bool {
	return slices.Contains(TextKeys, key) || slices.Contains(ImageKeys, key) || slices.Contains(SocialKeys, key)
}

// IsImageKey reports whether key holds an image URL.
func IsImageKey(key string) bool {
	return slices.Contains(ImageKeys, key)
}

// Content is a key to value view of site_content with defaults applied.
type Content map[string]string

// Get returns the value for key or "".
func (c Content) Get(key string) string {
	return c[key]
}

const contentCacheKey = "content:all"

// ContentService reads and writes site content through the cache.
type ContentService struct {
	queries *store.Queries
	cache   *cache.JSONCache[map[string]string]
}

// NewContentService creates a new ContentService.
func NewContentService(db *sql.DB, c cache.Cache, ttl time.Duration) *ContentService {
	return &ContentService{
		queries: store.New(db),
		cache:   cache.NewJSONCache[map[string]string](c, ttl),
	}
}

// Stored returns only the values present in the database.
func (s *ContentService) Stored(ctx context.Context) (map[string]string, error) {
	m, err := s.cache.Load(ctx, contentCacheKey, func() (*map[string]string, error) {
		rows, err := s.queries.ListSiteContent(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing site content: %w", err)
		}
		out := make(map[string]string, len(rows))
		for _, r := range rows {
			out[r.Key] = r.Value
		}
		return &out, nil
	})
	if err != nil {
		return nil, err
	}
	return *m, nil
}

// Values returns stored content merged over ContentDefaults. A database
// failure yields the defaults alone.
func (s *ContentService) Values(ctx context.Context) Content {
	out := make(Content, len(ContentDefaults))
	for k, v := range ContentDefaults {
		out[k] = v
	}

	stored, err := s.Stored(ctx)
	if err != nil {
		slog.Error("failed to load site content, using defaults", "error", err)
		return out
	}
	for k, v := range stored {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Save upserts one key and invalidates the cached content.
func (s *ContentService) Save(ctx context.Context, key, value string) (store.SiteContent, error) {
	row, err := s.queries.UpsertSiteContent(ctx, store.UpsertSiteContentParams{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		return store.SiteContent{}, fmt.Errorf("saving content %q: %w", key, err)
	}
	s.Invalidate(ctx)
	return row, nil
}

// Invalidate drops the cached content.
func (s *ContentService) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, contentCacheKey); err != nil {
		slog.Warn("failed to invalidate content cache", "error", err)
	}
}
