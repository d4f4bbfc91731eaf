package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/blob"
	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/store"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

// maxMultipartMemory is the part of a multipart form kept in memory.
const maxMultipartMemory = 1 << 20

// Portfolio handles GET /admin/portfolio.
func (h *AdminHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	renderPage(w, h.renderer, http.StatusOK, adminviews.PortfolioPage(h.pageContext(r, "Portfolio", snap), snap.Portfolio))
}

// PortfolioNew handles GET /admin/portfolio/new.
func (h *AdminHandler) PortfolioNew(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	renderPage(w, h.renderer, http.StatusOK,
		adminviews.PortfolioFormPage(h.pageContext(r, "New Portfolio Item", snap), store.PortfolioItem{}, true, ""))
}

// PortfolioEdit handles GET /admin/portfolio/{id}.
func (h *AdminHandler) PortfolioEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminPortfolio, "Portfolio item not found")
		return
	}

	admin := currentAdmin(r)
	item, err := h.dashboard.Portfolio(r.Context(), admin, id)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminPortfolio, actionError(err, "Portfolio item"))
		return
	}

	snap := h.dashboard.Load(r.Context(), admin)
	renderPage(w, h.renderer, http.StatusOK,
		adminviews.PortfolioFormPage(h.pageContext(r, "Edit Portfolio Item", snap), item, false, ""))
}

// PortfolioCreate handles POST /admin/portfolio.
func (h *AdminHandler) PortfolioCreate(w http.ResponseWriter, r *http.Request) {
	h.savePortfolio(w, r, 0)
}

// PortfolioUpdate handles POST /admin/portfolio/{id}.
func (h *AdminHandler) PortfolioUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminPortfolio, "Portfolio item not found")
		return
	}
	h.savePortfolio(w, r, id)
}

// savePortfolio stores the editor form. An uploaded file replaces the image
// URL; if the upload fails the pasted or previous URL is kept and a warning
// is shown.
func (h *AdminHandler) savePortfolio(w http.ResponseWriter, r *http.Request, id int64) {
	r.Body = http.MaxBytesReader(w, r.Body, blob.MaxUploadSize+maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		flashError(w, r, h.renderer, redirectAdminPortfolio, "Invalid form data or image too large")
		return
	}

	in := dashboard.PortfolioInput{
		ID:          id,
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Category:    strings.TrimSpace(r.PostFormValue("category")),
		Location:    strings.TrimSpace(r.PostFormValue("location")),
		Guests:      strings.TrimSpace(r.PostFormValue("guests")),
		Date:        strings.TrimSpace(r.PostFormValue("date")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}

	uploadWarning := ""
	if url, uploaded, err := h.uploadFormFile(r, "image_file"); err != nil {
		slog.Warn("portfolio image upload failed", "error", err)
		uploadWarning = "Image upload failed (" + actionError(err, "Image") + "). The previous image was kept."
	} else if uploaded {
		in.Image = url
	}

	admin := currentAdmin(r)
	item, err := h.dashboard.SavePortfolio(r.Context(), admin, in)
	if err != nil {
		if errors.Is(err, dashboard.ErrTitleRequired) {
			snap := h.dashboard.Load(r.Context(), admin)
			title := "Edit Portfolio Item"
			if id == 0 {
				title = "New Portfolio Item"
			}
			formItem := store.PortfolioItem{ID: id, Title: in.Title, Category: in.Category, Location: in.Location,
				Guests: in.Guests, Date: in.Date, Image: in.Image, Description: in.Description}
			renderPage(w, h.renderer, http.StatusUnprocessableEntity,
				adminviews.PortfolioFormPage(h.pageContext(r, title, snap), formItem, id == 0, "Title is required"))
			return
		}
		flashError(w, r, h.renderer, redirectAdminPortfolio, actionError(err, "Portfolio item"))
		return
	}

	if uploadWarning != "" {
		flashAndRedirect(w, r, h.renderer, redirectAdminPortfolio, "Saved \""+item.Title+"\". "+uploadWarning, render.FlashWarning)
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminPortfolio, "Saved \""+item.Title+"\"")
}

// PortfolioDelete handles POST /admin/portfolio/{id}/delete.
func (h *AdminHandler) PortfolioDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminPortfolio, "Portfolio item not found")
		return
	}

	if err := h.dashboard.DeletePortfolio(r.Context(), currentAdmin(r), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminPortfolio, actionError(err, "Portfolio item"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminPortfolio, "Portfolio item deleted")
}

// uploadFormFile stores the named file field if one was sent. uploaded is
// false when the field is absent or empty.
func (h *AdminHandler) uploadFormFile(r *http.Request, field string) (url string, uploaded bool, err error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		return "", false, nil
	}
	if header.Size > blob.MaxUploadSize {
		return "", false, blob.ErrTooLarge
	}

	url, err = h.uploads.Upload(file)
	if err != nil {
		return "", false, err
	}
	return url, true, nil
}
