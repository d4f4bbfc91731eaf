package handler

import (
	"net/http"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

// Events handles GET /admin/events.
func (h *AdminHandler) Events(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	search := r.URL.Query().Get("q")
	events := dashboard.FilterEvents(snap.Events, search)
	renderPage(w, h.renderer, http.StatusOK, adminviews.EventsPage(h.pageContext(r, "Events", snap), events, search))
}

// EventStatus handles POST /admin/events/{id}/status.
func (h *AdminHandler) EventStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminEvents, "Event not found")
		return
	}

	status := r.PostFormValue("status")
	e, err := h.dashboard.SetEventStatus(r.Context(), currentAdmin(r), id, status)
	if err != nil {
		flashError(w, r, h.renderer, redirectAdminEvents, actionError(err, "Event"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminEvents, "\""+e.Title+"\" is now "+e.Status)
}

// EventDelete handles POST /admin/events/{id}/delete.
func (h *AdminHandler) EventDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminEvents, "Event not found")
		return
	}

	if err := h.dashboard.DeleteEvent(r.Context(), currentAdmin(r), id); err != nil {
		flashError(w, r, h.renderer, redirectAdminEvents, actionError(err, "Event"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminEvents, "Event deleted")
}
