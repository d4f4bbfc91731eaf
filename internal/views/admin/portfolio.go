package admin

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// PortfolioPage lists portfolio items as cards.
func PortfolioPage(pc PageContext, items []store.PortfolioItem) g.Node {
	cards := make([]g.Node, 0, len(items))
	for _, p := range items {
		cards = append(cards, Div(Class("portfolio-card"),
			g.If(p.Image != "", Img(Src(p.Image), Alt(p.Title), g.Attr("loading", "lazy"))),
			Div(Class("portfolio-body"),
				H4(g.Text(p.Title)),
				P(Class("muted small"), g.Text(joinNonEmpty(" · ", p.Category, p.Location, p.Guests, p.Date))),
				P(g.Text(truncate(p.Description, 120))),
				Div(Class("button-row"),
					A(Href(idPath("/admin/portfolio", p.ID, "")), Class("btn btn-small btn-ghost"), g.Text("✏️ Edit")),
					postButton(idPath("/admin/portfolio", p.ID, "delete"), "🗑 Delete", "btn btn-small btn-danger",
						"Delete this portfolio item?"),
				),
			),
		))
	}

	add := A(Href("/admin/portfolio/new"), Class("btn btn-primary"), g.Text("+ Add Item"))
	return Layout(pc, add,
		g.If(len(cards) == 0, card("", P(Class("muted"), g.Text("No portfolio items yet. Add your first one.")))),
		Div(Class("portfolio-grid"), g.Group(cards)),
	)
}

// PortfolioFormPage renders the create or edit form. errMsg is shown above
// the fields when non-empty.
func PortfolioFormPage(pc PageContext, item store.PortfolioItem, isNew bool, errMsg string) g.Node {
	action := "/admin/portfolio"
	submit := "Add Item"
	if !isNew {
		action = idPath("/admin/portfolio", item.ID, "")
		submit = "Save Changes"
	}

	return Layout(pc, A(Href("/admin/portfolio"), Class("btn btn-ghost"), g.Text("← Back")),
		card("",
			g.If(errMsg != "", Div(Class("flash flash-error"), Role("alert"), g.Text(errMsg))),
			Form(Method("post"), Action(action), g.Attr("enctype", "multipart/form-data"), Class("stack"),
				textField("Title", "title", item.Title, true),
				Div(Class("grid-2"),
					textField("Category", "category", item.Category, false),
					textField("Location", "location", item.Location, false),
				),
				Div(Class("grid-2"),
					textField("Guests", "guests", item.Guests, false),
					textField("Date", "date", item.Date, false),
				),
				Div(Class("field"),
					Label(For("image_file"), g.Text("Image")),
					g.If(item.Image != "", Img(Src(item.Image), Alt(""), Class("preview"))),
					Input(Type("file"), ID("image_file"), Name("image_file"), g.Attr("accept", "image/*")),
					Input(Type("url"), Name("image"), Value(item.Image), Placeholder("or paste an image URL")),
				),
				Div(Class("field"),
					Label(For("description"), g.Text("Description")),
					Textarea(ID("description"), Name("description"), g.Attr("rows", "5"), g.Text(item.Description)),
				),
				Button(Type("submit"), Class("btn btn-primary"), Data("disable-on-submit", "Saving..."), g.Text(submit)),
			),
		),
	)
}

func textField(label, name, value string, required bool) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Input(Type("text"), ID(name), Name(name), Value(value), g.If(required, Required())),
	)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := ""
	for _, p := range parts {
		if p == "" {
			continue
		}
		if out != "" {
			out += sep
		}
		out += p
	}
	return out
}

func idLabel(id int64) string {
	return "#" + strconv.FormatInt(id, 10)
}
