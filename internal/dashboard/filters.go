package dashboard

import (
	"strings"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// StatusAll disables the submission status filter.
const StatusAll = "all"

// FilterSubmissions keeps submissions whose name or email contains search
// (case-insensitive) and whose status matches.
func FilterSubmissions(subs []store.ContactSubmission, search, status string) []store.ContactSubmission {
	q := strings.ToLower(strings.TrimSpace(search))
	out := make([]store.ContactSubmission, 0, len(subs))
	for _, s := range subs {
		if q != "" && !strings.Contains(strings.ToLower(s.Name), q) && !strings.Contains(strings.ToLower(s.Email), q) {
			continue
		}
		if status != "" && status != StatusAll && s.Status != status {
			continue
		}
		out = append(out, s)
	}
	return out
}

// FilterEvents keeps events whose title or category contains search.
func FilterEvents(events []store.Event, search string) []store.Event {
	q := strings.ToLower(strings.TrimSpace(search))
	if q == "" {
		return events
	}
	out := make([]store.Event, 0, len(events))
	for _, e := range events {
		if strings.Contains(strings.ToLower(e.Title), q) || strings.Contains(strings.ToLower(e.Category), q) {
			out = append(out, e)
		}
	}
	return out
}
