package handler

import (
	"log/slog"
	"net/http"

	"github.com/olegiv/bharat-abroad/internal/service"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

// Users handles GET /admin/users.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	renderPage(w, h.renderer, http.StatusOK, adminviews.UsersPage(h.pageContext(r, "Admin Users", snap), snap.Users))
}

// UserCreate handles POST /admin/users.
func (h *AdminHandler) UserCreate(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminUsers) {
		return
	}

	in := service.NewUser{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}

	u, err := h.dashboard.AddUser(r.Context(), currentAdmin(r), in)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, actionError(err, "User"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User "+u.Username+" created")
}

// UserDelete handles POST /admin/users/{id}/delete.
func (h *AdminHandler) UserDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminUsers, "User not found")
		return
	}

	if err := h.dashboard.DeleteUser(r.Context(), currentAdmin(r), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, actionError(err, "User"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "User deleted")
}

// UserPassword handles POST /admin/users/{id}/password.
func (h *AdminHandler) UserPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminUsers, "User not found")
		return
	}

	admin := currentAdmin(r)
	if err := h.dashboard.ResetPassword(r.Context(), admin, id, r.PostFormValue("password")); err != nil {
		flashError(w, r, h.renderer, redirectAdminUsers, actionError(err, "User"))
		return
	}
	slog.Info("admin password reset", "target_id", id, "admin_id", admin.ID)
	flashSuccess(w, r, h.renderer, redirectAdminUsers, "Password reset")
}

// Settings handles GET /admin/settings.
func (h *AdminHandler) Settings(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	renderPage(w, h.renderer, http.StatusOK, adminviews.SettingsPage(h.pageContext(r, "Settings", snap)))
}

// SettingsPassword handles POST /admin/settings/password.
func (h *AdminHandler) SettingsPassword(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminSettings) {
		return
	}

	admin := currentAdmin(r)
	err := h.dashboard.ChangePassword(r.Context(), admin,
		r.PostFormValue("current_password"), r.PostFormValue("new_password"), r.PostFormValue("confirm_password"))
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminSettings, actionError(err, "User"))
		return
	}
	slog.Info("admin changed own password", "admin_id", admin.ID)
	flashSuccess(w, r, h.renderer, redirectAdminSettings, "Password updated")
}
