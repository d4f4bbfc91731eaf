// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package session configures cookie sessions backed by SQLite and provides
// the single-use form tokens that guard public forms against double submits.
package session

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"net/http"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
)

// KeyAdminID holds the authenticated admin's ID.
const KeyAdminID = "admin_id"

const formTokenPrefix = "form_token:"

// Options control session expiry and cookie security.
type Options struct {
	Lifetime    time.Duration
	IdleTimeout time.Duration
	IsDev       bool
}

// New creates a session manager backed by the sessions table in db.
func New(db *sql.DB, opts Options) *scs.SessionManager {
	sm := scs.New()
	sm.Store = sqlite3store.New(db)

	sm.Lifetime = opts.Lifetime
	if sm.Lifetime <= 0 {
		sm.Lifetime = 12 * time.Hour
	}
	sm.IdleTimeout = opts.IdleTimeout

	sm.Cookie.Name = "bharat_session"
	sm.Cookie.HttpOnly = true
	sm.Cookie.SameSite = http.SameSiteLaxMode
	sm.Cookie.Secure = !opts.IsDev
	if !opts.IsDev {
		sm.Cookie.Name = "__Host-bharat_session"
	}

	return sm
}

// IssueFormToken stores a fresh token for form and returns it for rendering.
// A later render replaces any token still outstanding.
func IssueFormToken(ctx context.Context, sm *scs.SessionManager, form string) string {
	token := uuid.NewString()
	sm.Put(ctx, formTokenPrefix+form, token)
	return token
}

// ConsumeFormToken removes the stored token for form and reports whether it
// matched. A second call with the same token always fails.
func ConsumeFormToken(ctx context.Context, sm *scs.SessionManager, form, token string) bool {
	stored := sm.PopString(ctx, formTokenPrefix+form)
	if stored == "" || token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}
