package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, title, date, location, category, description, organizer, email, image, status, created_at`

func scanEvent(s scanner) (Event, error) {
	var e Event
	err := s.Scan(
		&e.ID,
		&e.Title,
		&e.Date,
		&e.Location,
		&e.Category,
		&e.Description,
		&e.Organizer,
		&e.Email,
		&e.Image,
		&e.Status,
		&e.CreatedAt,
	)
	return e, err
}

type CreateEventParams struct {
	Title       string
	Date        string
	Location    string
	Category    string
	Description string
	Organizer   string
	Email       string
	Image       sql.NullString
	Status      string
	CreatedAt   time.Time
}

const createEvent = `INSERT INTO events (
    title, date, location, category, description, organizer, email, image, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING ` + eventColumns

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, createEvent,
		arg.Title,
		arg.Date,
		arg.Location,
		arg.Category,
		arg.Description,
		arg.Organizer,
		arg.Email,
		arg.Image,
		arg.Status,
		arg.CreatedAt,
	)
	return scanEvent(row)
}

const listEvents = `SELECT ` + eventColumns + ` FROM events ORDER BY created_at DESC, id DESC`

// ListEvents returns every event regardless of status, newest first.
func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

const listEventsByStatus = `SELECT ` + eventColumns + ` FROM events WHERE status = ? ORDER BY created_at DESC, id DESC`

func (q *Queries) ListEventsByStatus(ctx context.Context, status string) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEventsByStatus, status)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanEvent)
}

const getEvent = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`

func (q *Queries) GetEvent(ctx context.Context, id int64) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, getEvent, id))
}

type UpdateEventStatusParams struct {
	ID     int64
	Status string
}

const updateEventStatus = `UPDATE events SET status = ? WHERE id = ? RETURNING ` + eventColumns

// UpdateEventStatus changes only the status column and returns the stored row.
func (q *Queries) UpdateEventStatus(ctx context.Context, arg UpdateEventStatusParams) (Event, error) {
	return scanEvent(q.db.QueryRowContext(ctx, updateEventStatus, arg.Status, arg.ID))
}

const deleteEvent = `DELETE FROM events WHERE id = ?`

// DeleteEvent returns sql.ErrNoRows when no row matched.
func (q *Queries) DeleteEvent(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteEvent, id)
	if err != nil {
		return err
	}
	return affected(res)
}
