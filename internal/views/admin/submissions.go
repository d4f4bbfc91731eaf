package admin

import (
	"net/url"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// SubmissionsView is the state of the submissions tab.
type SubmissionsView struct {
	Submissions []store.ContactSubmission
	Total       int
	Search      string
	Status      string
	Selected    *store.ContactSubmission
}

// SubmissionsPage renders the enquiry inbox.
func SubmissionsPage(pc PageContext, v SubmissionsView) g.Node {
	statusOpts := []g.Node{Option(Value(dashboard.StatusAll), g.If(v.Status == dashboard.StatusAll || v.Status == "", Selected()), g.Text("All statuses"))}
	for _, s := range dashboard.SubmissionStatuses {
		statusOpts = append(statusOpts, Option(Value(s), g.If(s == v.Status, Selected()), g.Text(s)))
	}

	rows := make([]g.Node, 0, len(v.Submissions))
	for _, s := range v.Submissions {
		class := ""
		if v.Selected != nil && v.Selected.ID == s.ID {
			class = "selected"
		}
		rows = append(rows, Tr(g.If(class != "", Class(class)),
			Td(A(Href(selectURL(v, s.ID)), Strong(g.Text(s.Name)))),
			Td(g.Text(s.Email)),
			Td(g.Text(s.EventType)),
			Td(statusBadge(s.Status)),
			Td(Class("muted"), g.Text(formatDate(s.CreatedAt))),
		))
	}
	if len(rows) == 0 {
		rows = append(rows, emptyRow(5, "No submissions match"))
	}

	export := A(Href("/admin/submissions/export"), Class("btn btn-ghost"), g.Text("⬇ Export CSV"))

	return Layout(pc, export,
		Div(Class("split"),
			card("Submissions ("+strconv.Itoa(len(v.Submissions))+" of "+strconv.Itoa(v.Total)+")",
				Form(Method("get"), Action("/admin/submissions"), Class("toolbar"),
					Input(Type("search"), Name("q"), Value(v.Search), Placeholder("Search name or email...")),
					Select(Name("status"), Data("autosubmit", ""), g.Group(statusOpts)),
					Button(Type("submit"), Class("btn btn-ghost"), g.Text("Filter")),
				),
				Table(Class("table"),
					THead(Tr(Th(g.Text("Name")), Th(g.Text("Email")), Th(g.Text("Type")), Th(g.Text("Status")), Th(g.Text("Date")))),
					TBody(g.Group(rows)),
				),
			),
			g.If(v.Selected != nil, submissionDetail(v)),
		),
	)
}

func selectURL(v SubmissionsView, id int64) string {
	u := "/admin/submissions?selected=" + strconv.FormatInt(id, 10)
	if v.Search != "" {
		u += "&q=" + url.QueryEscape(v.Search)
	}
	if v.Status != "" && v.Status != dashboard.StatusAll {
		u += "&status=" + url.QueryEscape(v.Status)
	}
	return u
}

func submissionDetail(v SubmissionsView) g.Node {
	s := v.Selected
	base := "/admin/submissions"

	statusButtons := make([]g.Node, 0, len(dashboard.SubmissionStatuses))
	for _, st := range dashboard.SubmissionStatuses {
		class := "btn btn-small"
		if st == s.Status {
			class += " active"
		}
		statusButtons = append(statusButtons,
			postButton(idPath(base, s.ID, "status"), st, class, "", hiddenInput("status", st)))
	}

	return card("Enquiry Details",
		Dl(Class("details"),
			Dt(g.Text("Name")), Dd(g.Text(s.Name)),
			Dt(g.Text("Email")), Dd(A(Href("mailto:"+s.Email), g.Text(s.Email))),
			Dt(g.Text("Phone")), Dd(g.Text(s.Phone)),
			Dt(g.Text("Event Type")), Dd(g.Text(s.EventType)),
			Dt(g.Text("Received")), Dd(g.Text(formatDateTime(s.CreatedAt))),
			Dt(g.Text("Status")), Dd(statusBadge(s.Status)),
		),
		P(Class("message"), g.Text(s.Message)),
		Div(Class("button-row"), g.Group(statusButtons)),
		Form(Method("post"), Action(idPath(base, s.ID, "reply")), Class("reply-form"),
			Label(For("reply"), g.Text("Reply")),
			Textarea(ID("reply"), Name("reply"), g.Attr("rows", "5"), Placeholder("Write your reply..."), Required()),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("✉️ Send Reply")),
		),
		postButton(idPath(base, s.ID, "delete"), "🗑 Delete", "btn btn-danger", "Delete this submission?"),
	)
}
