package views

import (
	"database/sql"
	"fmt"
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/util"
	"github.com/olegiv/bharat-abroad/internal/validation"
)

// FormTokenField is the hidden input carrying the single-use form token.
const FormTokenField = "form_token"

// EventURL returns the canonical detail URL for an event.
func EventURL(e store.Event) string {
	slug := util.Slugify(e.Title)
	if slug == "" || e.ID == 0 {
		return fmt.Sprintf("/events/%d", e.ID)
	}
	return fmt.Sprintf("/events/%d/%s", e.ID, slug)
}

func eventImage(e store.Event, class string) g.Node {
	if e.Image.Valid && e.Image.String != "" {
		return Img(Src(e.Image.String), Alt(e.Title), Class(class), g.Attr("loading", "lazy"))
	}
	return Div(Class(class+" placeholder"), g.Text("🎉"))
}

func eventCard(e store.Event) g.Node {
	href := EventURL(e)
	if e.ID == 0 {
		href = "/events"
	}
	return Article(Class("card event-card"),
		eventImage(e, "card-image"),
		Div(Class("card-body"),
			Span(Class("badge"), g.Text(e.Category)),
			H3(g.Text(e.Title)),
			P(Class("muted"), g.Text("📅 "+e.Date)),
			P(Class("muted"), g.Text("📍 "+e.Location)),
			A(Href(href), Class("btn btn-primary btn-block"), g.Text("View Details")),
		),
	)
}

func eventGrid(events []store.Event) g.Node {
	cards := make([]g.Node, 0, len(events))
	for _, e := range events {
		cards = append(cards, eventCard(e))
	}
	return Div(Class("grid grid-events"), g.Group(cards))
}

func portfolioCard(p store.PortfolioItem) g.Node {
	return Article(Class("card portfolio-card"),
		g.If(p.Image != "", Img(Src(p.Image), Alt(p.Title), Class("card-image"), g.Attr("loading", "lazy"))),
		Div(Class("card-body"),
			g.If(p.Category != "", Span(Class("badge"), g.Text(p.Category))),
			H3(g.Text(p.Title)),
			g.If(p.Location != "", P(Class("muted"), g.Text("📍 "+p.Location))),
			g.If(p.Guests != "", P(Class("muted"), g.Text("👥 "+p.Guests+" guests"))),
			g.If(p.Description != "", P(g.Text(p.Description))),
		),
	)
}

// field renders a labelled input with its validation error.
type field struct {
	Label       string
	Name        string
	Type        string
	Value       string
	Placeholder string
	Required    bool
}

func (f field) node(errs validation.Errors) g.Node {
	typ := f.Type
	if typ == "" {
		typ = "text"
	}
	label := f.Label
	if f.Required {
		label += " *"
	}
	return Div(Class("form-group"),
		Label(For(f.Name), g.Text(label)),
		Input(ID(f.Name), Name(f.Name), Type(typ), Value(f.Value),
			g.If(f.Placeholder != "", Placeholder(f.Placeholder)),
			g.If(f.Required, Required()),
		),
		fieldError(errs, f.Name),
	)
}

func textarea(label, name, value, placeholder string, rows int, required bool, errs validation.Errors) g.Node {
	if required {
		label += " *"
	}
	return Div(Class("form-group"),
		Label(For(name), g.Text(label)),
		Textarea(ID(name), Name(name), g.Attr("rows", strconv.Itoa(rows)),
			g.If(placeholder != "", Placeholder(placeholder)),
			g.If(required, Required()),
			g.Text(value),
		),
		fieldError(errs, name),
	)
}

func selectField(label, name, value, prompt string, options []string, required bool, errs validation.Errors) g.Node {
	if required {
		label += " *"
	}
	opts := make([]g.Node, 0, len(options)+1)
	if prompt != "" {
		opts = append(opts, Option(Value(""), g.Text(prompt)))
	}
	for _, o := range options {
		opts = append(opts, Option(Value(o), g.If(o == value, Selected()), g.Text(o)))
	}
	return Div(Class("form-group"),
		Label(For(name), g.Text(label)),
		Select(ID(name), Name(name), g.If(required, Required()), g.Group(opts)),
		fieldError(errs, name),
	)
}

func fieldError(errs validation.Errors, name string) g.Node {
	msg, ok := errs[name]
	if !ok {
		return g.Group(nil)
	}
	return P(Class("field-error"), g.Text(msg))
}

func tokenInput(token string) g.Node {
	return Input(Type("hidden"), Name(FormTokenField), Value(token))
}

func submitButton(label string) g.Node {
	return Button(Type("submit"), Class("btn btn-primary btn-block"),
		Data("disable-on-submit", "Submitting..."), g.Text(label))
}

func alert(msg string) g.Node {
	if msg == "" {
		return g.Group(nil)
	}
	return Div(Class("flash flash-error"), Role("alert"), g.Text(msg))
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
