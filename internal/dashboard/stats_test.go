package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/store"
)

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 3, 15, 18, 0, 0, 0, time.UTC) // Sunday
	view := func(page string, daysAgo int) store.AnalyticsEvent {
		return store.AnalyticsEvent{Page: page, Event: store.AnalyticsPageView, CreatedAt: now.AddDate(0, 0, -daysAgo)}
	}

	snap := &Snapshot{
		Analytics: []store.AnalyticsEvent{
			view("/", 0), view("/", 0), view("/events", 1), view("/about", 6), view("/", 9),
			{Page: "/contact", Event: store.AnalyticsContactSubmit, CreatedAt: now},
		},
		Submissions: []store.ContactSubmission{
			{Status: store.SubmissionStatusNew, EventType: "Wedding"},
			{Status: store.SubmissionStatusNew, EventType: ""},
			{Status: store.SubmissionStatusClosed, EventType: "Wedding"},
			{Status: store.SubmissionStatusContacted, EventType: "Corporate"},
		},
		Events: []store.Event{
			{Status: store.EventStatusPending}, {Status: store.EventStatusApproved}, {Status: store.EventStatusPending},
		},
	}

	st := ComputeStats(snap, now)

	assert.Equal(t, 5, st.TotalViews)
	assert.Equal(t, 2, st.TodayViews)
	assert.Equal(t, 2, st.NewSubmissions)
	assert.Equal(t, 2, st.PendingEvents)

	require.Len(t, st.Last7, 7)
	assert.Equal(t, "Mon", st.Last7[0].Label, "oldest first")
	assert.Equal(t, "Sun", st.Last7[6].Label)
	assert.Equal(t, 1, st.Last7[0].Count)
	assert.Equal(t, 1, st.Last7[5].Count)
	assert.Equal(t, 2, st.Last7[6].Count)
	assert.Equal(t, 2, st.MaxDayViews)

	assert.Equal(t, []NameCount{{"Wedding", 2}, {"Corporate", 1}, {"General", 1}}, st.SubmissionTypes)
	assert.Equal(t, NameCount{"/", 3}, st.TopPages[0])
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(&Snapshot{}, time.Now())
	assert.Zero(t, st.TotalViews)
	assert.Len(t, st.Last7, 7)
	assert.Equal(t, 1, st.MaxDayViews, "never zero so bar widths can divide by it")
	assert.Empty(t, st.SubmissionTypes)
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 50, Percent(1, 2))
	assert.Equal(t, 0, Percent(3, 0))
}

func TestFilters(t *testing.T) {
	subs := []store.ContactSubmission{
		{ID: 1, Name: "Asha Rao", Email: "asha@example.com", Status: store.SubmissionStatusNew},
		{ID: 2, Name: "Ravi", Email: "ravi@RAO.dev", Status: store.SubmissionStatusClosed},
		{ID: 3, Name: "Neha", Email: "neha@example.com", Status: store.SubmissionStatusNew},
	}
	assert.Len(t, FilterSubmissions(subs, "", StatusAll), 3)
	assert.Len(t, FilterSubmissions(subs, "rao", StatusAll), 2, "name or email, case-insensitive")
	assert.Len(t, FilterSubmissions(subs, "rao", store.SubmissionStatusNew), 1)
	assert.Len(t, FilterSubmissions(subs, "", store.SubmissionStatusContacted), 0)

	events := []store.Event{
		{ID: 1, Title: "Holi Mixer", Category: "Festival"},
		{ID: 2, Title: "Carnatic Night", Category: "Music"},
	}
	assert.Len(t, FilterEvents(events, ""), 2)
	assert.Len(t, FilterEvents(events, "music"), 1)
	assert.Len(t, FilterEvents(events, "HOLI"), 1)
}
