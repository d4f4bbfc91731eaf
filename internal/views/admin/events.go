package admin

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// EventsPage renders the moderation queue.
func EventsPage(pc PageContext, events []store.Event, search string) g.Node {
	rows := make([]g.Node, 0, len(events))
	for _, e := range events {
		var actions []g.Node
		for _, st := range dashboard.EventStatuses {
			if st == e.Status {
				continue
			}
			actions = append(actions, postButton(idPath("/admin/events", e.ID, "status"),
				statusAction(st), "btn btn-small btn-"+st, "", hiddenInput("status", st)))
		}
		actions = append(actions, postButton(idPath("/admin/events", e.ID, "delete"),
			"🗑", "btn btn-small btn-danger", "Delete this event?"))

		rows = append(rows, Tr(
			Td(Strong(g.Text(e.Title)), Br(), Span(Class("muted small"), g.Text(e.Organizer+" · "+e.Email))),
			Td(g.Text(e.Category)),
			Td(g.Text(e.Date)),
			Td(g.Text(e.Location)),
			Td(statusBadge(e.Status)),
			Td(Class("actions"), g.Group(actions)),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(6, "No events match"))
	}

	return Layout(pc, nil,
		card("Events ("+strconv.Itoa(len(events))+")",
			Form(Method("get"), Action("/admin/events"), Class("toolbar"),
				Input(Type("search"), Name("q"), Value(search), Placeholder("Search title or category...")),
				Button(Type("submit"), Class("btn btn-ghost"), g.Text("Search")),
			),
			Table(Class("table"),
				THead(Tr(
					Th(g.Text("Event")), Th(g.Text("Category")), Th(g.Text("Date")),
					Th(g.Text("Location")), Th(g.Text("Status")), Th(g.Text("Actions")),
				)),
				TBody(g.Group(rows)),
			),
		),
	)
}

func statusAction(status string) string {
	switch status {
	case store.EventStatusApproved:
		return "✓ Approve"
	case store.EventStatusRejected:
		return "✕ Reject"
	default:
		return "↺ Pending"
	}
}
