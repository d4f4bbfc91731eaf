// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the business rules for admin accounts, the public
// event catalog, contact enquiries, site content and analytics recording.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/olegiv/bharat-abroad/internal/auth"
	"github.com/olegiv/bharat-abroad/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("superadmin role required")
	ErrSelfDelete         = errors.New("you cannot delete your own account")
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrPasswordMismatch   = errors.New("new passwords do not match")
	ErrWrongPassword      = errors.New("current password is incorrect")
	ErrMissingFields      = errors.New("all fields are required")
	ErrInvalidRole        = errors.New("role must be admin or superadmin")
	ErrUserNotFound       = errors.New("user not found")
)

// AccountService manages admin credentials.
type AccountService struct {
	queries *store.Queries
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{queries: store.New(db)}
}

// Authenticate verifies username and password. Unknown users and wrong
// passwords both yield ErrInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (store.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return store.AdminUser{}, ErrInvalidCredentials
	}

	user, err := s.queries.GetAdminUserByUsername(ctx, username)
	if errors.Is(err, sql.ErrNoRows) {
		// Match the timing of the known-user path.
		_, _ = auth.CheckPassword(password, dummyHash())
		return store.AdminUser{}, ErrInvalidCredentials
	}
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("loading admin user: %w", err)
	}

	ok, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		slog.Error("stored password hash is unreadable", "user_id", user.ID, "error", err)
		return store.AdminUser{}, ErrInvalidCredentials
	}
	if !ok {
		return store.AdminUser{}, ErrInvalidCredentials
	}

	if auth.NeedsRehash(user.PasswordHash) {
		if hash, err := auth.HashPassword(password); err == nil {
			if err := s.queries.UpdateAdminUserPassword(ctx, store.UpdateAdminUserPasswordParams{
				ID: user.ID, PasswordHash: hash, UpdatedAt: time.Now().UTC(),
			}); err != nil {
				slog.Warn("failed to upgrade password hash", "user_id", user.ID, "error", err)
			}
		}
	}

	now := time.Now().UTC()
	if err := s.queries.UpdateAdminUserLastLogin(ctx, store.UpdateAdminUserLastLoginParams{
		ID: user.ID, LastLoginAt: sql.NullTime{Time: now, Valid: true},
	}); err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	} else {
		user.LastLoginAt = sql.NullTime{Time: now, Valid: true}
	}

	return user, nil
}

// NewUser is the input for AddUser.
type NewUser struct {
	Username string
	Password string
	Role     string
}

// AddUser creates an admin account. Only a superadmin may call it.
func (s *AccountService) AddUser(ctx context.Context, actor store.AdminUser, in NewUser) (store.AdminUser, error) {
	if !actor.IsSuperadmin() {
		return store.AdminUser{}, ErrForbidden
	}

	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return store.AdminUser{}, ErrMissingFields
	}
	if err := auth.ValidatePassword(in.Password); err != nil {
		return store.AdminUser{}, err
	}

	role := in.Role
	if role == "" {
		role = store.RoleAdmin
	}
	if role != store.RoleAdmin && role != store.RoleSuperadmin {
		return store.AdminUser{}, ErrInvalidRole
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.queries.CreateAdminUser(ctx, store.CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if store.IsUniqueViolation(err) {
		return store.AdminUser{}, ErrDuplicateUsername
	}
	if err != nil {
		return store.AdminUser{}, fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("admin user created", "id", user.ID, "username", user.Username, "role", user.Role, "by", actor.ID)
	return user, nil
}

// DeleteUser removes another admin account. Only a superadmin may call it.
func (s *AccountService) DeleteUser(ctx context.Context, actor store.AdminUser, id int64) error {
	if !actor.IsSuperadmin() {
		return ErrForbidden
	}
	if actor.ID == id {
		return ErrSelfDelete
	}

	if err := s.queries.DeleteAdminUser(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("deleting admin user: %w", err)
	}

	slog.Info("admin user deleted", "id", id, "by", actor.ID)
	return nil
}

// ResetPassword sets a new password for any account. Only a superadmin may call it.
func (s *AccountService) ResetPassword(ctx context.Context, actor store.AdminUser, id int64, password string) error {
	if !actor.IsSuperadmin() {
		return ErrForbidden
	}
	if err := auth.ValidatePassword(password); err != nil {
		return err
	}
	return s.setPassword(ctx, id, password)
}

// ChangePassword lets any admin replace their own password.
func (s *AccountService) ChangePassword(ctx context.Context, actor store.AdminUser, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return ErrMissingFields
	}
	if next != confirm {
		return ErrPasswordMismatch
	}
	if err := auth.ValidatePassword(next); err != nil {
		return err
	}

	user, err := s.queries.GetAdminUserByID(ctx, actor.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("loading admin user: %w", err)
	}

	ok, err := auth.CheckPassword(current, user.PasswordHash)
	if err != nil || !ok {
		return ErrWrongPassword
	}

	return s.setPassword(ctx, actor.ID, next)
}

func (s *AccountService) setPassword(ctx context.Context, id int64, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	err = s.queries.UpdateAdminUserPassword(ctx, store.UpdateAdminUserPasswordParams{
		ID: id, PasswordHash: hash, UpdatedAt: time.Now().UTC(),
	})
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	return nil
}

// dummyHash is a valid argon2id hash of a random string.
var dummyHash = sync.OnceValue(func() string {
	pw, _ := auth.RandomPassword(16)
	h, _ := auth.HashPassword(pw)
	return h
})
