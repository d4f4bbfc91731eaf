package store

import (
	"context"
	"time"
)

func scanSiteContent(s scanner) (SiteContent, error) {
	var c SiteContent
	err := s.Scan(&c.Key, &c.Value, &c.UpdatedAt)
	return c, err
}

const listSiteContent = `SELECT key, value, updated_at FROM site_content ORDER BY key`

func (q *Queries) ListSiteContent(ctx context.Context) ([]SiteContent, error) {
	rows, err := q.db.QueryContext(ctx, listSiteContent)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSiteContent)
}

type UpsertSiteContentParams struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

const upsertSiteContent = `INSERT INTO site_content (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
RETURNING key, value, updated_at`

func (q *Queries) UpsertSiteContent(ctx context.Context, arg UpsertSiteContentParams) (SiteContent, error) {
	return scanSiteContent(q.db.QueryRowContext(ctx, upsertSiteContent, arg.Key, arg.Value, arg.UpdatedAt))
}
