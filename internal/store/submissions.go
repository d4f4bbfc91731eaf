package store

import (
	"context"
	"time"
)

const submissionColumns = `id, name, email, phone, event_type, message, status, created_at`

func scanSubmission(s scanner) (ContactSubmission, error) {
	var c ContactSubmission
	err := s.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Phone,
		&c.EventType,
		&c.Message,
		&c.Status,
		&c.CreatedAt,
	)
	return c, err
}

type CreateContactSubmissionParams struct {
	Name      string
	Email     string
	Phone     string
	EventType string
	Message   string
	Status    string
	CreatedAt time.Time
}

const createContactSubmission = `INSERT INTO contact_submissions (
    name, email, phone, event_type, message, status, created_at
) VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING ` + submissionColumns

func (q *Queries) CreateContactSubmission(ctx context.Context, arg CreateContactSubmissionParams) (ContactSubmission, error) {
	row := q.db.QueryRowContext(ctx, createContactSubmission,
		arg.Name,
		arg.Email,
		arg.Phone,
		arg.EventType,
		arg.Message,
		arg.Status,
		arg.CreatedAt,
	)
	return scanSubmission(row)
}

const listContactSubmissions = `SELECT ` + submissionColumns + ` FROM contact_submissions ORDER BY created_at DESC, id DESC`

func (q *Queries) ListContactSubmissions(ctx context.Context) ([]ContactSubmission, error) {
	rows, err := q.db.QueryContext(ctx, listContactSubmissions)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSubmission)
}

const getContactSubmission = `SELECT ` + submissionColumns + ` FROM contact_submissions WHERE id = ?`

func (q *Queries) GetContactSubmission(ctx context.Context, id int64) (ContactSubmission, error) {
	return scanSubmission(q.db.QueryRowContext(ctx, getContactSubmission, id))
}

type UpdateContactSubmissionStatusParams struct {
	ID     int64
	Status string
}

const updateContactSubmissionStatus = `UPDATE contact_submissions SET status = ? WHERE id = ? RETURNING ` + submissionColumns

func (q *Queries) UpdateContactSubmissionStatus(ctx context.Context, arg UpdateContactSubmissionStatusParams) (ContactSubmission, error) {
	return scanSubmission(q.db.QueryRowContext(ctx, updateContactSubmissionStatus, arg.Status, arg.ID))
}

const deleteContactSubmission = `DELETE FROM contact_submissions WHERE id = ?`

func (q *Queries) DeleteContactSubmission(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteContactSubmission, id)
	if err != nil {
		return err
	}
	return affected(res)
}
