// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package testutil provides shared test helpers.
package testutil

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/olegiv/bharat-abroad/internal/auth"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// TestLogger returns a logger that only prints warnings and errors.
func TestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// TestDB returns an in-memory database with all migrations applied.
// The pool is pinned to one connection so every query sees the same memory
// database.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateAdmin inserts an admin user with the given password and role.
func CreateAdmin(t *testing.T, db *sql.DB, username, password, role string) store.AdminUser {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	now := time.Now().UTC()
	user, err := store.New(db).CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
	return user
}

// CreateEvent inserts an event with the given title, status and creation time.
func CreateEvent(t *testing.T, db *sql.DB, title, category, location, status string, createdAt time.Time) store.Event {
	t.Helper()

	event, err := store.New(db).CreateEvent(context.Background(), store.CreateEventParams{
		Title:       title,
		Date:        "2026-03-14",
		Location:    location,
		Category:    category,
		Description: title + " description",
		Organizer:   "Bharat Abroad",
		Email:       "events@example.com",
		Status:      status,
		CreatedAt:   createdAt,
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	return event
}

// CreateSubmission inserts a contact submission.
func CreateSubmission(t *testing.T, db *sql.DB, name, email, eventType, status string) store.ContactSubmission {
	t.Helper()

	sub, err := store.New(db).CreateContactSubmission(context.Background(), store.CreateContactSubmissionParams{
		Name:      name,
		Email:     email,
		Phone:     "555-0100",
		EventType: eventType,
		Message:   "Hello from " + name,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateContactSubmission: %v", err)
	}
	return sub
}
