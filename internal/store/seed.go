// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/olegiv/bharat-abroad/internal/auth"
)

// DefaultAdminUsername is used when no bootstrap username is configured.
const DefaultAdminUsername = "admin"

// Bootstrap holds the credentials for the first superadmin.
type Bootstrap struct {
	Username string
	Password string
}

// Seed creates the first superadmin when admin_users is empty.
// A missing password is replaced by a random one that is logged once.
func Seed(ctx context.Context, db *sql.DB, b Bootstrap) error {
	queries := New(db)

	count, err := queries.CountAdminUsers(ctx)
	if err != nil {
		return fmt.Errorf("counting admin users: %w", err)
	}
	if count > 0 {
		slog.Debug("admin users present, skipping seed", "count", count)
		return nil
	}

	username := b.Username
	if username == "" {
		username = DefaultAdminUsername
	}

	password := b.Password
	generated := password == ""
	if generated {
		if password, err = auth.RandomPassword(18); err != nil {
			return err
		}
	} else if err := auth.ValidatePassword(password); err != nil {
		return fmt.Errorf("bootstrap admin password: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	user, err := queries.CreateAdminUser(ctx, CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleSuperadmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating superadmin: %w", err)
	}

	if generated {
		slog.Warn("created superadmin with generated password; change it after first login",
			"id", user.ID,
			"username", user.Username,
			"password", password,
		)
	} else {
		slog.Info("created superadmin", "id", user.ID, "username", user.Username)
	}

	return nil
}
