// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/bharat-abroad/internal/catalog"
	"github.com/olegiv/bharat-abroad/internal/metrics"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/session"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/validation"
	"github.com/olegiv/bharat-abroad/internal/views"
)

// Form names used for single-use tokens and metrics.
const (
	FormSubmitEvent = "submit_event"
	FormContact     = "contact"
)

// Form outcomes reported to metrics.
const (
	outcomeCreated   = "created"
	outcomeInvalid   = "invalid"
	outcomeDuplicate = "duplicate"
	outcomeError     = "error"
)

const homePortfolioLimit = 6

// Services bundles the domain services shared by handlers.
type Services struct {
	Content   *service.ContentService
	Catalog   *service.EventCatalog
	Contact   *service.ContactService
	Analytics *service.AnalyticsService
	Accounts  *service.AccountService
}

// PublicHandler serves the public site.
type PublicHandler struct {
	queries     *store.Queries
	renderer    *render.Renderer
	sm          *scs.SessionManager
	svc         Services
	validator   *validation.Validator
	metrics     *metrics.Metrics
	chatEnabled bool
}

// NewPublicHandler creates a new PublicHandler.
func NewPublicHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, svc Services,
	m *metrics.Metrics, chatEnabled bool) *PublicHandler {
	return &PublicHandler{
		queries:     store.New(db),
		renderer:    renderer,
		sm:          sm,
		svc:         svc,
		validator:   validation.New(),
		metrics:     m,
		chatEnabled: chatEnabled,
	}
}

func (h *PublicHandler) site(r *http.Request) views.Site {
	return views.Site{
		Content:     h.svc.Content.Values(r.Context()),
		Path:        r.URL.Path,
		Flash:       h.renderer.PopFlash(r),
		ChatEnabled: h.chatEnabled,
	}
}

// Home handles GET /.
func (h *PublicHandler) Home(w http.ResponseWriter, r *http.Request) {
	featured, err := h.svc.Catalog.Featured(r.Context(), 3)
	if err != nil {
		slog.Error("failed to load featured events", "error", err)
	}

	portfolio, err := h.queries.ListPortfolioItems(r.Context())
	if err != nil {
		slog.Error("failed to load portfolio", "error", err)
	}
	if len(portfolio) > homePortfolioLimit {
		portfolio = portfolio[:homePortfolioLimit]
	}

	renderPage(w, h.renderer, http.StatusOK, views.HomePage(h.site(r), featured, portfolio))
}

// Events handles GET /events. Filtering runs over the cached approved list.
func (h *PublicHandler) Events(w http.ResponseWriter, r *http.Request) {
	f := catalog.FilterFromQuery(r.URL.Query())

	events, err := h.svc.Catalog.ListApproved(r.Context())
	if err != nil {
		slog.Error("failed to list events", "error", err)
	}

	renderPage(w, h.renderer, http.StatusOK, views.EventsPage(h.site(r), f, f.Apply(events)))
}

// Event handles GET /events/{id} and /events/{id}/{slug}. Requests with a
// stale or missing slug are redirected to the canonical URL.
func (h *PublicHandler) Event(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		h.NotFound(w, r)
		return
	}

	e, err := h.svc.Catalog.GetApproved(r.Context(), id)
	if errors.Is(err, service.ErrEventNotFound) {
		h.NotFound(w, r)
		return
	}
	if err != nil {
		logAndInternalError(w, "failed to load event", "error", err, "event_id", id)
		return
	}

	if canonical := views.EventURL(e); r.URL.Path != canonical {
		http.Redirect(w, r, canonical, http.StatusMovedPermanently)
		return
	}

	renderPage(w, h.renderer, http.StatusOK, views.EventPage(h.site(r), e))
}

// About handles GET /about.
func (h *PublicHandler) About(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.renderer, http.StatusOK, views.AboutPage(h.site(r)))
}

// NotFound renders the 404 page.
func (h *PublicHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	renderPage(w, h.renderer, http.StatusNotFound, views.NotFoundPage(h.site(r)))
}

// SubmitForm handles GET /submit.
func (h *PublicHandler) SubmitForm(w http.ResponseWriter, r *http.Request) {
	token := session.IssueFormToken(r.Context(), h.sm, FormSubmitEvent)
	renderPage(w, h.renderer, http.StatusOK, views.SubmitPage(h.site(r), views.SubmitForm{Token: token}))
}

// Submit handles POST /submit. A missing or replayed form token is treated
// as a duplicate and shows the confirmation without inserting.
func (h *PublicHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in := service.EventSubmission{
		Title:       r.PostFormValue("title"),
		Date:        r.PostFormValue("date"),
		Location:    r.PostFormValue("location"),
		Category:    r.PostFormValue("category"),
		Description: r.PostFormValue("description"),
		Organizer:   r.PostFormValue("organizer"),
		Email:       strings.TrimSpace(r.PostFormValue("email")),
		Image:       strings.TrimSpace(r.PostFormValue("image")),
	}

	if !session.ConsumeFormToken(r.Context(), h.sm, FormSubmitEvent, r.PostFormValue(views.FormTokenField)) {
		slog.Info("duplicate event submission ignored")
		h.metrics.FormOutcome(FormSubmitEvent, outcomeDuplicate)
		renderPage(w, h.renderer, http.StatusOK, views.SubmitDonePage(h.site(r)))
		return
	}

	rerender := func(status int, errs validation.Errors, msg string) {
		renderPage(w, h.renderer, status, views.SubmitPage(h.site(r), views.SubmitForm{
			Values: in,
			Errors: errs,
			Token:  session.IssueFormToken(r.Context(), h.sm, FormSubmitEvent),
			Error:  msg,
		}))
	}

	if errs := h.validator.Struct(in); errs != nil {
		h.metrics.FormOutcome(FormSubmitEvent, outcomeInvalid)
		rerender(http.StatusUnprocessableEntity, errs, "")
		return
	}

	e, err := h.svc.Catalog.Submit(r.Context(), in)
	if err != nil {
		slog.Error("failed to submit event", "error", err)
		h.metrics.FormOutcome(FormSubmitEvent, outcomeError)
		rerender(http.StatusInternalServerError, nil, views.GenericError)
		return
	}

	h.metrics.FormOutcome(FormSubmitEvent, outcomeCreated)
	h.track(r.Context(), "submit", store.AnalyticsEventSubmit, map[string]any{"event_id": e.ID, "category": e.Category})
	renderPage(w, h.renderer, http.StatusOK, views.SubmitDonePage(h.site(r)))
}

// ContactForm handles GET /contact.
func (h *PublicHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	token := session.IssueFormToken(r.Context(), h.sm, FormContact)
	renderPage(w, h.renderer, http.StatusOK, views.ContactPage(h.site(r), views.ContactFormState{Token: token}))
}

// Contact handles POST /contact.
func (h *PublicHandler) Contact(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	in := service.ContactForm{
		Name:      r.PostFormValue("name"),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Phone:     r.PostFormValue("phone"),
		EventType: r.PostFormValue("event_type"),
		Message:   r.PostFormValue("message"),
	}

	if !session.ConsumeFormToken(r.Context(), h.sm, FormContact, r.PostFormValue(views.FormTokenField)) {
		slog.Info("duplicate contact submission ignored")
		h.metrics.FormOutcome(FormContact, outcomeDuplicate)
		renderPage(w, h.renderer, http.StatusOK, views.ContactDonePage(h.site(r)))
		return
	}

	rerender := func(status int, errs validation.Errors, msg string) {
		renderPage(w, h.renderer, status, views.ContactPage(h.site(r), views.ContactFormState{
			Values: in,
			Errors: errs,
			Token:  session.IssueFormToken(r.Context(), h.sm, FormContact),
			Error:  msg,
		}))
	}

	if errs := h.validator.Struct(in); errs != nil {
		h.metrics.FormOutcome(FormContact, outcomeInvalid)
		rerender(http.StatusUnprocessableEntity, errs, "")
		return
	}

	sub, err := h.svc.Contact.Submit(r.Context(), in)
	if err != nil {
		slog.Error("failed to save contact submission", "error", err)
		h.metrics.FormOutcome(FormContact, outcomeError)
		rerender(http.StatusInternalServerError, nil, views.GenericError)
		return
	}

	h.metrics.FormOutcome(FormContact, outcomeCreated)
	h.track(r.Context(), "contact", store.AnalyticsContactSubmit, map[string]any{"submission_id": sub.ID, "event_type": sub.EventType})
	renderPage(w, h.renderer, http.StatusOK, views.ContactDonePage(h.site(r)))
}

// track records an analytics row. Failures are logged by the service and
// never affect the response.
func (h *PublicHandler) track(ctx context.Context, page, event string, metadata map[string]any) {
	_ = h.svc.Analytics.Track(ctx, page, event, metadata)
}
