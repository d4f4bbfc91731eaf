// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/session"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/util"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

const redirectAdmin = "/admin"

// AuthHandler handles admin sign-in and sign-out.
type AuthHandler struct {
	accounts        *service.AccountService
	dashboard       *dashboard.Service
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(accounts *service.AccountService, dash *dashboard.Service, renderer *render.Renderer,
	sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		accounts:        accounts,
		dashboard:       dash,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// LoginForm renders the login page. Signed-in admins go straight to the
// dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetInt64(r.Context(), session.KeyAdminID) > 0 {
		http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
		return
	}

	msg := ""
	if f := h.renderer.PopFlash(r); !f.Empty() {
		msg = f.Message
	}
	renderPage(w, h.renderer, http.StatusOK, adminviews.LoginPage(msg, ""))
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		renderPage(w, h.renderer, http.StatusBadRequest, adminviews.LoginPage("Invalid form data", ""))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	clientIP := util.ClientIP(r)

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsLocked(username); locked {
			slog.Warn("login attempt on locked account", "username", username, "ip", clientIP)
			renderPage(w, h.renderer, http.StatusTooManyRequests,
				adminviews.LoginPage(lockedMessage(remaining), username))
			return
		}
	}

	admin, err := h.accounts.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, service.ErrInvalidCredentials) {
			slog.Error("database error during login", "error", err)
			renderPage(w, h.renderer, http.StatusInternalServerError,
				adminviews.LoginPage("Something went wrong. Please try again.", username))
			return
		}

		slog.Warn("login failed", "username", username, "ip", clientIP)
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailure(username); locked {
				renderPage(w, h.renderer, http.StatusTooManyRequests,
					adminviews.LoginPage(lockedMessage(lockDuration), username))
				return
			}
		}
		renderPage(w, h.renderer, http.StatusUnauthorized, adminviews.LoginPage("Invalid username or password", username))
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccess(username)
	}

	// Renew the token to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "failed to renew session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), session.KeyAdminID, admin.ID)

	slog.Info("admin logged in", "admin_id", admin.ID, "username", admin.Username, "ip", clientIP)
	http.Redirect(w, r, redirectAdmin, http.StatusSeeOther)
}

// Logout drops the admin's cached snapshot and ends the session.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if adminID := h.sessionManager.GetInt64(r.Context(), session.KeyAdminID); adminID > 0 {
		h.dashboard.Forget(r.Context(), store.AdminUser{ID: adminID})
		slog.Info("admin logged out", "admin_id", adminID)
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token on logout", "error", err)
	}
	h.sessionManager.Remove(r.Context(), session.KeyAdminID)

	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}

func lockedMessage(d time.Duration) string {
	return fmt.Sprintf("Too many failed attempts. Try again in %s.", formatDuration(d))
}

// formatDuration formats a lockout duration for people.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return "less than a minute"
	}
	minutes := int(d.Round(time.Minute).Minutes())
	if minutes == 1 {
		return "1 minute"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := minutes / 60
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
