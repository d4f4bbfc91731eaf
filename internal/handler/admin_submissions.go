package handler

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/export"
	"github.com/olegiv/bharat-abroad/internal/store"
	adminviews "github.com/olegiv/bharat-abroad/internal/views/admin"
)

func submissionURL(id int64) string {
	return redirectAdminSubmissions + "?selected=" + strconv.FormatInt(id, 10)
}

// Submissions handles GET /admin/submissions.
func (h *AdminHandler) Submissions(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))
	q := r.URL.Query()

	v := adminviews.SubmissionsView{
		Search: q.Get("q"),
		Status: q.Get("status"),
		Total:  len(snap.Submissions),
	}
	v.Submissions = dashboard.FilterSubmissions(snap.Submissions, v.Search, v.Status)

	if id, err := strconv.ParseInt(q.Get("selected"), 10, 64); err == nil {
		for i := range snap.Submissions {
			if snap.Submissions[i].ID == id {
				v.Selected = &snap.Submissions[i]
				break
			}
		}
	}

	renderPage(w, h.renderer, http.StatusOK, adminviews.SubmissionsPage(h.pageContext(r, "Submissions", snap), v))
}

// SubmissionStatus handles POST /admin/submissions/{id}/status.
func (h *AdminHandler) SubmissionStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminSubmissions, "Submission not found")
		return
	}

	status := r.PostFormValue("status")
	if _, err := h.dashboard.SetSubmissionStatus(r.Context(), currentAdmin(r), id, status); err != nil {
		flashError(w, r, h.renderer, submissionURL(id), actionError(err, "Submission"))
		return
	}
	flashSuccess(w, r, h.renderer, submissionURL(id), "Status updated to "+status)
}

// SubmissionDelete handles POST /admin/submissions/{id}/delete.
func (h *AdminHandler) SubmissionDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminSubmissions, "Submission not found")
		return
	}

	if err := h.dashboard.DeleteSubmission(r.Context(), currentAdmin(r), id); err != nil {
		flashError(w, r, h.renderer, submissionURL(id), actionError(err, "Submission"))
		return
	}
	flashSuccess(w, r, h.renderer, redirectAdminSubmissions, "Submission deleted")
}

// SubmissionReply handles POST /admin/submissions/{id}/reply. The browser is
// sent to a mailto URI only after the submission is marked contacted.
func (h *AdminHandler) SubmissionReply(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r)
	if !ok {
		flashError(w, r, h.renderer, redirectAdminSubmissions, "Submission not found")
		return
	}

	reply := strings.TrimSpace(r.PostFormValue("reply"))
	if reply == "" {
		flashError(w, r, h.renderer, submissionURL(id), "Reply cannot be empty")
		return
	}

	admin := currentAdmin(r)
	sub, err := h.dashboard.SetSubmissionStatus(r.Context(), admin, id, store.SubmissionStatusContacted)
	if err != nil {
		flashError(w, r, h.renderer, submissionURL(id), actionError(err, "Submission"))
		return
	}

	slog.Info("enquiry reply opened", "submission_id", id, "admin_id", admin.ID)
	http.Redirect(w, r, export.ReplyMailto(sub, reply), http.StatusSeeOther)
}

// SubmissionsExport handles GET /admin/submissions/export.
func (h *AdminHandler) SubmissionsExport(w http.ResponseWriter, r *http.Request) {
	snap := h.dashboard.Load(r.Context(), currentAdmin(r))

	var buf bytes.Buffer
	if err := export.WriteSubmissionsCSV(&buf, snap.Submissions); err != nil {
		logAndInternalError(w, "failed to export submissions", "error", err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="submissions.csv"`)
	_, _ = w.Write(buf.Bytes())
}
