package store

import (
	"context"
	"database/sql"
	"time"
)

const adminUserColumns = `id, username, password_hash, role, created_at, updated_at, last_login_at`

func scanAdminUser(s scanner) (AdminUser, error) {
	var u AdminUser
	err := s.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	return u, err
}

type CreateAdminUserParams struct {
	Username     string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

const createAdminUser = `INSERT INTO admin_users (username, password_hash, role, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
RETURNING ` + adminUserColumns

func (q *Queries) CreateAdminUser(ctx context.Context, arg CreateAdminUserParams) (AdminUser, error) {
	row := q.db.QueryRowContext(ctx, createAdminUser,
		arg.Username,
		arg.PasswordHash,
		arg.Role,
		arg.CreatedAt,
		arg.UpdatedAt,
	)
	return scanAdminUser(row)
}

const getAdminUserByID = `SELECT ` + adminUserColumns + ` FROM admin_users WHERE id = ?`

func (q *Queries) GetAdminUserByID(ctx context.Context, id int64) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx, getAdminUserByID, id))
}

const getAdminUserByUsername = `SELECT ` + adminUserColumns + ` FROM admin_users WHERE username = ?`

func (q *Queries) GetAdminUserByUsername(ctx context.Context, username string) (AdminUser, error) {
	return scanAdminUser(q.db.QueryRowContext(ctx, getAdminUserByUsername, username))
}

const listAdminUsers = `SELECT ` + adminUserColumns + ` FROM admin_users ORDER BY created_at ASC, id ASC`

func (q *Queries) ListAdminUsers(ctx context.Context) ([]AdminUser, error) {
	rows, err := q.db.QueryContext(ctx, listAdminUsers)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanAdminUser)
}

const countAdminUsers = `SELECT COUNT(*) FROM admin_users`

func (q *Queries) CountAdminUsers(ctx context.Context) (int64, error) {
	var n int64
	err := q.db.QueryRowContext(ctx, countAdminUsers).Scan(&n)
	return n, err
}

type UpdateAdminUserPasswordParams struct {
	ID           int64
	PasswordHash string
	UpdatedAt    time.Time
}

const updateAdminUserPassword = `UPDATE admin_users SET password_hash = ?, updated_at = ? WHERE id = ?`

func (q *Queries) UpdateAdminUserPassword(ctx context.Context, arg UpdateAdminUserPasswordParams) error {
	res, err := q.db.ExecContext(ctx, updateAdminUserPassword, arg.PasswordHash, arg.UpdatedAt, arg.ID)
	if err != nil {
		return err
	}
	return affected(res)
}

type UpdateAdminUserLastLoginParams struct {
	ID          int64
	LastLoginAt sql.NullTime
}

const updateAdminUserLastLogin = `UPDATE admin_users SET last_login_at = ? WHERE id = ?`

func (q *Queries) UpdateAdminUserLastLogin(ctx context.Context, arg UpdateAdminUserLastLoginParams) error {
	_, err := q.db.ExecContext(ctx, updateAdminUserLastLogin, arg.LastLoginAt, arg.ID)
	return err
}

const deleteAdminUser = `DELETE FROM admin_users WHERE id = ?`

func (q *Queries) DeleteAdminUser(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, deleteAdminUser, id)
	if err != nil {
		return err
	}
	return affected(res)
}
