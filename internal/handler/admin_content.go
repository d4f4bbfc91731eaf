package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/bharat-abroad/internal/blob"
	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/render"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

// Content handles GET /admin/content.
func (h *AdminHandler) Content(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	renderPage(w, h.renderer, http.StatusOK,
		adminviews.ContentPage(h.pageContext(r, "Site Content", snap), snap.Content, snap.Drafts))
}

// ContentDraft handles POST /admin/content/draft.
func (h *AdminHandler) ContentDraft(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectAdminContent) {
		return
	}

	key := r.PostFormValue("key")
	if err := h.dashboard.SetDraft(r.Context(), currentAdmin(r), key, r.PostFormValue("value")); err != nil {
		flashError(w, r, h.renderer, redirectAdminContent, actionError(err, "Content"))
		return
	}
	flashAndRedirect(w, r, h.renderer, redirectAdminContent, adminviews.KeyLabel(key)+" draft kept, not yet saved", render.FlashInfo)
}

// ContentSave handles POST /admin/content/{key}/save. A posted value
// becomes the draft before it is committed.
func (h *AdminHandler) ContentSave(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	admin := currentAdmin(r)

	if err := r.ParseForm(); err == nil && r.PostForm.Has("value") {
		if err := h.dashboard.SetDraft(r.Context(), admin, key, r.PostForm.Get("value")); err != nil {
			flashError(w, r, h.renderer, redirectAdminContent, actionError(err, "Content"))
			return
		}
	}

	if err := h.dashboard.SaveContent(r.Context(), admin, key); err != nil {
		flashError(w, r, h.renderer, redirectAdminContent, actionError(err, "Content"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminContent, adminviews.KeyLabel(key)+" saved")
}

// ContentSaveAll handles POST /admin/content/save-all.
func (h *AdminHandler) ContentSaveAll(w http.ResponseWriter, r *http.Request) {
	saved, err := h.dashboard.SaveAllContent(r.Context(), currentAdmin(r))
	if err != nil {
		slog.Error("bulk content save stopped", "saved", saved, "error", err)
		msg := "Saving stopped at an error. Nothing was saved."
		if len(saved) > 0 {
			msg = "Saving stopped at an error after: " + labels(saved) + "."
		}
		flashError(w, r, h.renderer, redirectAdminContent, msg)
		return
	}

	if len(saved) == 0 {
		flashAndRedirect(w, r, h.renderer, redirectAdminContent, "No changes to save", render.FlashInfo)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminContent, fmt.Sprintf("Saved %d item(s)", len(saved)))
}

// ContentImage handles POST /admin/content/{key}/image. The uploaded URL is
// saved immediately.
func (h *AdminHandler) ContentImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	r.Body = http.MaxBytesReader(w, r.Body, blob.MaxUploadSize+maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		flashError(w, r, h.renderer, redirectAdminContent, "Invalid form data or image too large")
		return
	}

	url, uploaded, err := h.uploadFormFile(r, "image_file")
	if err != nil {
		slog.Warn("content image upload failed", "key", key, "error", err)
		flashError(w, r, h.renderer, redirectAdminContent, "Image upload failed: "+actionError(err, "Image"))
		return
	}
	if !uploaded {
		flashError(w, r, h.renderer, redirectAdminContent, "Choose an image to upload")
		return
	}

	if err := h.dashboard.SaveImageContent(r.Context(), currentAdmin(r), key, url); err != nil {
		if !errors.Is(err, dashboard.ErrNotImageKey) {
			slog.Error("failed to save image content", "key", key, "url", url, "error", err)
		}
		flashError(w, r, h.renderer, redirectAdminContent, actionError(err, "Content"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminContent, adminviews.KeyLabel(key)+" updated")
}

func labels(keys []string) string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = adminviews.KeyLabel(k)
	}
	return strings.Join(out, ", ")
}
