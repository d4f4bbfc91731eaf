// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, request protection and visitor tracking.
package middleware

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/bharat-abroad/internal/session"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyAdmin holds the authenticated store.AdminUser.
const ContextKeyAdmin ContextKey = "admin"

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/admin/login"

// LoadAdmin loads the signed-in admin into the request context and
// redirects to the login page when there is none. A session pointing at a
// deleted admin is destroyed.
func LoadAdmin(sm *scs.SessionManager, db *sql.DB) func(http.Handler) http.Handler {
	queries := store.New(db)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			adminID := sm.GetInt64(r.Context(), session.KeyAdminID)
			if adminID == 0 {
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			admin, err := queries.GetAdminUserByID(r.Context(), adminID)
			if err != nil {
				if err != sql.ErrNoRows {
					slog.Error("failed to load admin", "error", err, "admin_id", adminID)
				}
				_ = sm.Destroy(r.Context())
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithAdmin(r.Context(), admin)))
		})
	}
}

// WithAdmin returns a copy of ctx carrying admin.
func WithAdmin(ctx context.Context, admin store.AdminUser) context.Context {
	return context.WithValue(ctx, ContextKeyAdmin, admin)
}

// GetAdmin retrieves the current admin from the request context.
// Returns nil if no admin is in context.
func GetAdmin(r *http.Request) *store.AdminUser {
	admin, ok := r.Context().Value(ContextKeyAdmin).(store.AdminUser)
	if !ok {
		return nil
	}
	return &admin
}

// RequireSuperadmin rejects admins without the superadmin role with 403.
func RequireSuperadmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		admin := GetAdmin(r)
		if admin == nil {
			http.Redirect(w, r, LoginPath, http.StatusSeeOther)
			return
		}
		if !admin.IsSuperadmin() {
			slog.Warn("access denied",
				"status", http.StatusForbidden,
				"method", r.Method,
				"path", r.URL.Path,
				"admin_id", admin.ID,
				"role", admin.Role,
				"required_role", store.RoleSuperadmin,
			)
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
