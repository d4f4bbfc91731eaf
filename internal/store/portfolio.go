package store

import (
	"context"
	"time"
)

const portfolioColumns = `id, title, category, location, guests, date, image, description, created_at, updated_at`

func scanPortfolioItem(s scanner) (PortfolioItem, error) {
	var p PortfolioItem
	err := s.Scan(
		&p.ID,
		&p.Title,
		&p.Category,
		&p.Location,
		&p.Guests,
		&p.Date,
		&p.Image,
		&p.Description,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type CreatePortfolioItemParams struct {
	Title       string
	Category    string
	Location    string
	Guests      string
	Date        string
	Image       string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const createPortfolioItem = `INSERT INTO portfolio (
    title, category, location, guests, date, image, description, created_at, updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + portfolioColumns

func (q *Queries) CreatePortfolioItem(ctx context.Context, arg CreatePortfolioItemParams) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, createPortfolioItem,
		arg.Title,
		arg.Category,
		arg.Location,
		arg.Guests,
		arg.Date,
		arg.Image,
		arg.Description,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanPortfolioItem(row)
}

type UpdatePortfolioItemParams struct {
	ID          int64
	Title       string
	Category    string
	Location    string
	Guests      string
	Date        string
	Image       string
	Description string
	UpdatedAt   time.Time
}

const updatePortfolioItem = `UPDATE portfolio SET
    title = ?, category = ?, location = ?, guests = ?, date = ?, image = ?, description = ?, updated_at = ?
WHERE id = ?
RETURNING ` + portfolioColumns

func (q *Queries) UpdatePortfolioItem(ctx context.Context, arg UpdatePortfolioItemParams) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, updatePortfolioItem,
		arg.Title,
		arg.Category,
		arg.Location,
		arg.Guests,
		arg.Date,
		arg.Image,
		arg.Description,
		arg.UpdatedAt,
		arg.ID,
	)
	return scanPortfolioItem(row)
}

const listPortfolioItems = `SELECT ` + portfolioColumns + ` FROM portfolio ORDER BY created_at DESC, id DESC`

func (q *Queries) ListPortfolioItems(ctx context.Context) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, listPortfolioItems)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanPortfolioItem)
}

const getPortfolioItem = `SELECT ` + portfolioColumns + ` FROM portfolio WHERE id = ?`

func (q *Queries) GetPortfolioItem(ctx context.Context, id int64) (PortfolioItem, error) {
	return scanPortfolioItem(q.db.QueryRowContext(ctx, getPortfolioItem, id))
}

const deletePortfolioItem = `DELETE FROM portfolio WHERE id = ?`

func (q *Queries) DeletePortfolioItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deletePortfolioItem, id)
	if err != nil {
		return err
	}
	return affected(res)
}
