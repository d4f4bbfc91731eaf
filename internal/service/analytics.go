package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// AnalyticsService appends rows to the analytics table.
type AnalyticsService struct {
	queries *store.Queries
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(db *sql.DB) *AnalyticsService {
	return &AnalyticsService{queries: store.New(db)}
}

// Track records one analytics event. Metadata is stored as a JSON object.
func (s *AnalyticsService) Track(ctx context.Context, page, event string, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	err := s.queries.CreateAnalyticsEvent(ctx, store.CreateAnalyticsEventParams{
		Page:      page,
		Event:     event,
		Metadata:  metadataJSON,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		slog.Error("failed to record analytics", "page", page, "event", event, "error", err)
		return err
	}
	return nil
}

// Prune deletes analytics rows older than the retention window.
func (s *AnalyticsService) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	n, err := s.queries.DeleteAnalyticsBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning analytics: %w", err)
	}
	return n, nil
}
