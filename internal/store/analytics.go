package store

import (
	"context"
	"time"
)

const analyticsColumns = `id, page, event, metadata, created_at`

func scanAnalyticsEvent(s scanner) (AnalyticsEvent, error) {
	var a AnalyticsEvent
	err := s.Scan(&a.ID, &a.Page, &a.Event, &a.Metadata, &a.CreatedAt)
	return a, err
}

type CreateAnalyticsEventParams struct {
	Page      string
	Event     string
	Metadata  string
	CreatedAt time.Time
}

const createAnalyticsEvent = `INSERT INTO analytics (page, event, metadata, created_at) VALUES (?, ?, ?, ?)`

func (q *Queries) CreateAnalyticsEvent(ctx context.Context, arg CreateAnalyticsEventParams) error {
	_, err := q.db.ExecContext(ctx, createAnalyticsEvent, arg.Page, arg.Event, arg.Metadata, arg.CreatedAt)
	return err
}

const listRecentAnalytics = `SELECT ` + analyticsColumns + ` FROM analytics ORDER BY created_at DESC, id DESC LIMIT ?`

// ListRecentAnalytics returns at most limit rows, newest first.
func (q *Queries) ListRecentAnalytics(ctx context.Context, limit int64) ([]AnalyticsEvent, error) {
	rows, err := q.db.QueryContext(ctx, listRecentAnalytics, limit)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAnalyticsEvent)
}

const deleteAnalyticsBefore = `DELETE FROM analytics WHERE created_at < ?`

// DeleteAnalyticsBefore removes rows older than cutoff and reports how many went.
func (q *Queries) DeleteAnalyticsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteAnalyticsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
