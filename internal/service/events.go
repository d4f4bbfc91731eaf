package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/olegiv/bharat-abroad/internal/cache"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// ErrEventNotFound is returned for missing or unapproved events.
var ErrEventNotFound = errors.New("event not found")

const approvedEventsKey = "events:approved"

// EventSubmission is the public event submission form.
type EventSubmission struct {
	Title       string `form:"title" validate:"notblank,max=200"`
	Date        string `form:"date" validate:"notblank,max=100"`
	Location    string `form:"location" validate:"notblank,max=200"`
	Category    string `form:"category" validate:"notblank,max=50"`
	Description string `form:"description" validate:"notblank,max=5000"`
	Organizer   string `form:"organizer" validate:"notblank,max=200"`
	Email       string `form:"email" validate:"required,email,max=254"`
	Image       string `form:"image" validate:"omitempty,url,max=2000"`
}

// EventCatalog serves approved events to the public site and accepts
// submissions for moderation.
type EventCatalog struct {
	queries *store.Queries
	cache   *cache.JSONCache[[]store.Event]
}

// NewEventCatalog creates a new EventCatalog.
func NewEventCatalog(db *sql.DB, c cache.Cache, ttl time.Duration) *EventCatalog {
	return &EventCatalog{
		queries: store.New(db),
		cache:   cache.NewJSONCache[[]store.Event](c, ttl),
	}
}

// ListApproved returns every approved event, newest first.
func (s *EventCatalog) ListApproved(ctx context.Context) ([]store.Event, error) {
	events, err := s.cache.Load(ctx, approvedEventsKey, func() (*[]store.Event, error) {
		rows, err := s.queries.ListEventsByStatus(ctx, store.EventStatusApproved)
		if err != nil {
			return nil, fmt.Errorf("listing approved events: %w", err)
		}
		return &rows, nil
	})
	if err != nil {
		return nil, err
	}
	return *events, nil
}

// Featured returns up to n of the newest approved events.
func (s *EventCatalog) Featured(ctx context.Context, n int) ([]store.Event, error) {
	events, err := s.ListApproved(ctx)
	if err != nil {
		return nil, err
	}
	if len(events) > n {
		events = events[:n]
	}
	return events, nil
}

// GetApproved returns one approved event.
func (s *EventCatalog) GetApproved(ctx context.Context, id int64) (store.Event, error) {
	e, err := s.queries.GetEvent(ctx, id)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && e.Status != store.EventStatusApproved) {
		return store.Event{}, ErrEventNotFound
	}
	if err != nil {
		return store.Event{}, fmt.Errorf("loading event: %w", err)
	}
	return e, nil
}

// Submit stores a new event awaiting moderation. The status is always pending
// and an empty image is stored as NULL.
func (s *EventCatalog) Submit(ctx context.Context, in EventSubmission) (store.Event, error) {
	image := strings.TrimSpace(in.Image)

	e, err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Title:       cleanText(in.Title),
		Date:        cleanText(in.Date),
		Location:    cleanText(in.Location),
		Category:    cleanText(in.Category),
		Description: cleanText(in.Description),
		Organizer:   cleanText(in.Organizer),
		Email:       strings.TrimSpace(in.Email),
		Image:       sql.NullString{String: image, Valid: image != ""},
		Status:      store.EventStatusPending,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		return store.Event{}, fmt.Errorf("creating event: %w", err)
	}

	slog.Info("event submitted", "id", e.ID, "title", e.Title)
	return e, nil
}

// Invalidate drops the cached approved list.
func (s *EventCatalog) Invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, approvedEventsKey); err != nil {
		slog.Warn("failed to invalidate events cache", "error", err)
	}
}
