// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/bharat-abroad/internal/auth"
	"github.com/olegiv/bharat-abroad/internal/blob"
	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/imaging"
	"github.com/olegiv/bharat-abroad/internal/middleware"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

// Admin redirect targets.
const (
	redirectAdminSubmissions = "/admin/submissions"
	redirectAdminEvents      = "/admin/events"
	redirectAdminPortfolio   = "/admin/portfolio"
	redirectAdminContent     = "/admin/content"
	redirectAdminUsers       = "/admin/users"
	redirectAdminSettings    = "/admin/settings"
)

const msgSomethingWrong = "Something went wrong. Please try again."

// Uploader stores an image and returns its public URL.
type Uploader interface {
	Upload(r io.Reader) (string, error)
}

// AdminHandler serves the back office. Every operation acts on behalf of
// the admin loaded into the request context.
type AdminHandler struct {
	dashboard *dashboard.Service
	renderer  *render.Renderer
	uploads   Uploader
	now       func() time.Time
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(dash *dashboard.Service, renderer *render.Renderer, uploads Uploader) *AdminHandler {
	return &AdminHandler{
		dashboard: dash,
		renderer:  renderer,
		uploads:   uploads,
		now:       time.Now,
	}
}

// currentAdmin returns the admin for r. Admin routes sit behind
// middleware.LoadAdmin so the zero value is never used in practice.
func currentAdmin(r *http.Request) store.AdminUser {
	if admin := middleware.GetAdmin(r); admin != nil {
		return *admin
	}
	return store.AdminUser{}
}

func (h *AdminHandler) pageContext(r *http.Request, title string, snap *dashboard.Snapshot) adminviews.PageContext {
	newSubs, pendingEvents := 0, 0
	for _, s := range snap.Submissions {
		if s.Status == store.SubmissionStatusNew {
			newSubs++
		}
	}
	for _, e := range snap.Events {
		if e.Status == store.EventStatusPending {
			pendingEvents++
		}
	}

	return adminviews.PageContext{
		Title:       title,
		Admin:       currentAdmin(r),
		Flash:       h.renderer.PopFlash(r),
		CurrentPath: r.URL.Path,
		Failed:      snap.Failed,
		Now:         h.now(),
		Badges: map[string]int{
			redirectAdminSubmissions: newSubs,
			redirectAdminEvents:      pendingEvents,
		},
	}
}

// Dashboard handles GET /admin.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	stats := dashboard.ComputeStats(snap, h.now())
	renderPage(w, h.renderer, http.StatusOK, adminviews.DashboardPage(h.pageContext(r, "Dashboard", snap), snap, stats))
}

// Analytics handles GET /admin/analytics.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	stats := dashboard.ComputeStats(snap, h.now())
	renderPage(w, h.renderer, http.StatusOK, adminviews.AnalyticsPage(h.pageContext(r, "Analytics", snap), stats, snap.Analytics))
}

// Refresh handles POST /admin/refresh and returns to the page it came from.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	target := r.PostFormValue("return")
	if target != redirectAdmin && !strings.HasPrefix(target, redirectAdmin+"/") {
		target = redirectAdmin
	}

	snap := h.dashboard.Refresh(r.Context(), currentAdmin(r))
	if len(snap.Failed) > 0 {
		flashAndRedirect(w, r, h.renderer, target, "Refreshed with errors", render.FlashWarning)
		return
	}
	flashSuccess(w, r, h.renderer, target, "Data refreshed")
}

// actionError maps a dashboard error to a flash message, logging anything
// unexpected.
func actionError(err error, what string) string {
	switch {
	case errors.Is(err, dashboard.ErrNotFound):
		return what + " not found"
	case errors.Is(err, dashboard.ErrInvalidStatus):
		return "Invalid status"
	case errors.Is(err, dashboard.ErrTitleRequired):
		return "Title is required"
	case errors.Is(err, dashboard.ErrUnknownKey):
		return "Unknown content key"
	case errors.Is(err, dashboard.ErrNotImageKey):
		return "That content key does not hold an image"
	case errors.Is(err, dashboard.ErrNothingToSave):
		return "No changes to save"
	case errors.Is(err, blob.ErrTooLarge):
		return "Image is larger than 10 MB"
	case errors.Is(err, imaging.ErrUnsupportedFormat):
		return "Unsupported image format"
	}
	if msg := accountError(err); msg != "" {
		return msg
	}
	slog.Error("admin action failed", "what", what, "error", err)
	return msgSomethingWrong
}

func accountError(err error) string {
	switch {
	case errors.Is(err, service.ErrForbidden):
		return "Superadmin role required"
	case errors.Is(err, service.ErrSelfDelete):
		return "You cannot delete your own account"
	case errors.Is(err, service.ErrDuplicateUsername):
		return "Username already exists"
	case errors.Is(err, service.ErrPasswordMismatch):
		return "New passwords do not match"
	case errors.Is(err, service.ErrWrongPassword):
		return "Current password is incorrect"
	case errors.Is(err, service.ErrMissingFields):
		return "All fields are required"
	case errors.Is(err, service.ErrInvalidRole):
		return "Role must be admin or superadmin"
	case errors.Is(err, service.ErrUserNotFound):
		return "User not found"
	case errors.Is(err, auth.ErrPasswordTooShort):
		return "Password must be at least 6 characters"
	}
	return ""
}
