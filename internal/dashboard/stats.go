package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// DayCount is one bar of the seven day chart.
type DayCount struct {
	Label string
	Date  time.Time
	Count int
}

// NameCount pairs a label with a tally.
type NameCount struct {
	Name  string
	Count int
}

// Stats are the dashboard and analytics figures derived from a snapshot.
type Stats struct {
	TotalViews      int
	TodayViews      int
	NewSubmissions  int
	PendingEvents   int
	Last7           []DayCount
	MaxDayViews     int
	SubmissionTypes []NameCount
	TopPages        []NameCount
}

// ComputeStats aggregates snap relative to now. Dates are compared in now's
// location.
func ComputeStats(snap *Snapshot, now time.Time) Stats {
	loc := now.Location()
	day := func(t time.Time) time.Time {
		t = t.In(loc)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	}
	today := day(now)

	var st Stats
	st.Last7 = make([]DayCount, 7)
	for i := range st.Last7 {
		d := today.AddDate(0, 0, i-6)
		st.Last7[i] = DayCount{Label: d.Format("Mon"), Date: d}
	}

	pages := map[string]int{}
	for _, a := range snap.Analytics {
		if a.Event != store.AnalyticsPageView {
			continue
		}
		st.TotalViews++
		pages[a.Page]++

		d := day(a.CreatedAt)
		if d.Equal(today) {
			st.TodayViews++
		}
		for i := range st.Last7 {
			if st.Last7[i].Date.Equal(d) {
				st.Last7[i].Count++
			}
		}
	}

	st.MaxDayViews = 1
	for _, d := range st.Last7 {
		st.MaxDayViews = max(st.MaxDayViews, d.Count)
	}

	types := map[string]int{}
	for _, s := range snap.Submissions {
		if s.Status == store.SubmissionStatusNew {
			st.NewSubmissions++
		}
		t := strings.TrimSpace(s.EventType)
		if t == "" {
			t = "General"
		}
		types[t]++
	}

	for _, e := range snap.Events {
		if e.Status == store.EventStatusPending {
			st.PendingEvents++
		}
	}

	st.SubmissionTypes = ranked(types)
	st.TopPages = ranked(pages)
	return st
}

// ranked sorts counts descending, ties broken by name.
func ranked(m map[string]int) []NameCount {
	out := make([]NameCount, 0, len(m))
	for name, n := range m {
		out = append(out, NameCount{Name: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Percent returns n as a share of total in the range 0..100.
func Percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}
