package admin

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/store"
)

func statCard(icon, label string, value int, sub string) g.Node {
	return Div(Class("stat-card"),
		Span(Class("stat-icon"), g.Text(icon)),
		P(Class("stat-value"), g.Text(strconv.Itoa(value))),
		P(Class("stat-label"), g.Text(label)),
		P(Class("muted small"), g.Text(sub)),
	)
}

// barChart draws the seven day page view chart with CSS bar heights.
func barChart(days []dashboard.DayCount, maxViews int) g.Node {
	bars := make([]g.Node, 0, len(days))
	for _, d := range days {
		pct := d.Count * 100 / max(maxViews, 1)
		bars = append(bars, Div(Class("bar"),
			Span(Class("bar-count"), g.Text(strconv.Itoa(d.Count))),
			Div(Class("bar-fill"), Style("height: "+strconv.Itoa(pct)+"%")),
			Span(Class("bar-label"), g.Text(d.Label)),
		))
	}
	return Div(Class("bar-chart"), g.Group(bars))
}

func breakdown(items []dashboard.NameCount, total int, empty string) g.Node {
	if len(items) == 0 {
		return P(Class("muted"), g.Text(empty))
	}
	rows := make([]g.Node, 0, len(items))
	for _, it := range items {
		pct := dashboard.Percent(it.Count, total)
		rows = append(rows, Div(Class("breakdown-row"),
			Div(Class("breakdown-label"),
				Span(g.Text(it.Name)),
				Span(Class("muted"), g.Text(strconv.Itoa(it.Count))),
			),
			Div(Class("progress"), Div(Class("progress-fill"), Style("width: "+strconv.Itoa(pct)+"%"))),
		))
	}
	return g.Group(rows)
}

// DashboardPage renders the overview tab.
func DashboardPage(pc PageContext, snap *dashboard.Snapshot, stats dashboard.Stats) g.Node {
	recentSubs := make([]g.Node, 0, 5)
	for _, s := range snap.Submissions[:min(5, len(snap.Submissions))] {
		recentSubs = append(recentSubs, Li(Class("list-row"),
			A(Href("/admin/submissions?selected="+strconv.FormatInt(s.ID, 10)),
				Strong(g.Text(s.Name)), Span(Class("muted"), g.Text(" · "+s.EventType)),
			),
			statusBadge(s.Status),
		))
	}
	recentEvents := make([]g.Node, 0, 5)
	for _, e := range snap.Events[:min(5, len(snap.Events))] {
		recentEvents = append(recentEvents, Li(Class("list-row"),
			Span(Strong(g.Text(e.Title)), Span(Class("muted"), g.Text(" · "+e.Location))),
			statusBadge(e.Status),
		))
	}

	return Layout(pc, nil,
		Div(Class("stat-grid"),
			statCard("👁️", "Total Page Views", stats.TotalViews, strconv.Itoa(stats.TodayViews)+" today"),
			statCard("📬", "New Enquiries", stats.NewSubmissions, strconv.Itoa(len(snap.Submissions))+" total"),
			statCard("🎉", "Pending Events", stats.PendingEvents, strconv.Itoa(len(snap.Events))+" total"),
			statCard("🖼️", "Portfolio Items", len(snap.Portfolio), "Active"),
		),
		Div(Class("grid-2"),
			card("Page Views — Last 7 Days", barChart(stats.Last7, stats.MaxDayViews)),
			card("Enquiries by Type", breakdown(stats.SubmissionTypes, len(snap.Submissions), "No enquiries yet")),
		),
		Div(Class("grid-2"),
			card("Recent Enquiries",
				g.If(len(recentSubs) == 0, P(Class("muted"), g.Text("No enquiries yet"))),
				Ul(Class("list"), g.Group(recentSubs)),
			),
			card("Recent Events",
				g.If(len(recentEvents) == 0, P(Class("muted"), g.Text("No events yet"))),
				Ul(Class("list"), g.Group(recentEvents)),
			),
		),
	)
}

// AnalyticsPage renders the analytics tab.
func AnalyticsPage(pc PageContext, stats dashboard.Stats, recent []store.AnalyticsEvent) g.Node {
	rows := make([]g.Node, 0, len(recent))
	for _, a := range recent[:min(50, len(recent))] {
		rows = append(rows, Tr(
			Td(g.Text(a.Page)),
			Td(Span(Class("tag"), g.Text(a.Event))),
			Td(Class("muted"), g.Text(formatDateTime(a.CreatedAt))),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(3, "No activity recorded yet"))
	}

	return Layout(pc, nil,
		Div(Class("stat-grid"),
			statCard("👁️", "Total Page Views", stats.TotalViews, "All recorded"),
			statCard("📅", "Today", stats.TodayViews, "Page views today"),
		),
		card("📊 Page Views — Last 7 Days", barChart(stats.Last7, stats.MaxDayViews)),
		Div(Class("grid-2"),
			card("Top Pages", breakdown(stats.TopPages, stats.TotalViews, "No page views yet")),
			card("Recent Activity",
				Table(Class("table"),
					THead(Tr(Th(g.Text("Page")), Th(g.Text("Event")), Th(g.Text("Time")))),
					TBody(g.Group(rows)),
				),
			),
		),
	)
}
