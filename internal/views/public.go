// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package views

import (
	"net/url"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/catalog"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/validation"
)

// GenericError is shown when a public form could not be saved.
const GenericError = "Something went wrong. Please try again."

// FallbackFeatured is shown on the home page until an event is approved.
var FallbackFeatured = []store.Event{
	{
		Title:    "Holi Festival of Colors",
		Date:     "March 15, 2026",
		Location: "Chicago, IL",
		Category: "Festival",
		Image:    nullString("https://images.unsplash.com/photo-1592906209472-a36b1f3782ef?w=400"),
	},
	{
		Title:    "Diwali Night Gala",
		Date:     "April 2, 2026",
		Location: "New York, NY",
		Category: "Cultural",
		Image:    nullString("https://images.unsplash.com/photo-1574265865559-54e2716c4aec?w=400"),
	},
	{
		Title:    "Bharatanatyam Dance Show",
		Date:     "April 20, 2026",
		Location: "San Francisco, CA",
		Category: "Arts",
		Image:    nullString("https://images.unsplash.com/photo-1604608672516-f1b9c8c0b9a8?w=400"),
	},
}

type categoryTile struct {
	Label    string
	Icon     string
	Category string
}

var categoryTiles = []categoryTile{
	{"Festivals", "🎉", "Festival"},
	{"Music", "🎵", "Music"},
	{"Food", "🍛", "Food"},
	{"Arts", "🎨", "Arts"},
	{"Spirituality", "🕉️", "Spirituality"},
	{"Sports", "🏏", "Sports"},
}

// HomePage renders the landing page.
func HomePage(site Site, featured []store.Event, portfolio []store.PortfolioItem) g.Node {
	if len(featured) == 0 {
		featured = FallbackFeatured
	}
	c := site.Content

	tiles := make([]g.Node, 0, len(categoryTiles))
	for _, t := range categoryTiles {
		tiles = append(tiles, A(Class("tile"), Href(eventsURL("", t.Category, "")),
			Span(Class("tile-icon"), g.Text(t.Icon)),
			Span(g.Text(t.Label)),
		))
	}

	var highlights g.Node = g.Group(nil)
	if len(portfolio) > 0 {
		cards := make([]g.Node, 0, 3)
		for _, p := range portfolio[:min(3, len(portfolio))] {
			cards = append(cards, portfolioCard(p))
		}
		highlights = Section(Class("section container"),
			H2(g.Text("Our Celebrations")),
			Div(Class("grid grid-3"), g.Group(cards)),
		)
	}

	heroStyle := ""
	if img := c.Get("hero_image"); img != "" {
		heroStyle = "background-image: linear-gradient(rgba(0,0,0,.35), rgba(0,0,0,.35)), url('" + img + "')"
	}

	return Layout(site, "",
		Section(Class("hero"), g.If(heroStyle != "", Style(heroStyle)),
			H1(g.Text(c.Get("hero_title"))),
			P(Class("lead"), g.Text(c.Get("hero_subtitle"))),
			Div(Class("hero-actions"),
				A(Href("/events"), Class("btn btn-light"), g.Text("Browse Events")),
				A(Href("/submit"), Class("btn btn-outline"), g.Text("+ Submit Your Event")),
			),
		),
		Section(Class("section container"),
			H2(Class("center"), g.Text("Browse by Category")),
			Div(Class("grid grid-tiles"), g.Group(tiles)),
		),
		Section(Class("section section-alt"),
			Div(Class("container"),
				Div(Class("section-header"),
					H2(g.Text("Featured Events")),
					A(Href("/events"), g.Text("View all →")),
				),
				eventGrid(featured),
			),
		),
		highlights,
		Section(Class("cta"),
			Span(Class("cta-icon"), g.Text("🤖")),
			H2(g.Text("Ask Bharat AI")),
			P(g.Text("Have questions about Indian culture, festivals, or events near you? Our AI assistant is here to help!")),
			g.If(site.ChatEnabled, Button(Type("button"), Class("btn btn-light"), Data("chat-open", ""), g.Text("Ask →"))),
		),
	)
}

// EventsPage renders the filtered events directory.
func EventsPage(site Site, f catalog.Filter, events []store.Event) g.Node {
	category := f.Category
	if category == "" {
		category = catalog.AllCategories
	}

	chips := make([]g.Node, 0, len(catalog.Categories))
	for _, cat := range catalog.Categories {
		class := "chip"
		if cat == category {
			class = "chip active"
		}
		chips = append(chips, A(Class(class), Href(eventsURL(f.Search, cat, f.City)), g.Text(cat)))
	}

	var results g.Node
	if len(events) == 0 {
		results = Div(Class("empty"),
			Span(Class("empty-icon"), g.Text("🙁")),
			P(g.Text(catalog.EmptyText)),
		)
	} else {
		results = eventGrid(events)
	}

	return Layout(site, "Events",
		Section(Class("section container"),
			Div(Class("page-header center"),
				H1(g.Text("Indian Events Across the US")),
				P(Class("muted"), g.Text("Find festivals, cultural events, and community gatherings near you")),
			),
			Form(Method("get"), Action("/events"), Class("filters"),
				Div(Class("search"),
					Span(g.Text("🔍")),
					Input(Type("search"), Name("q"), Value(f.Search), Placeholder("Search events...")),
				),
				Select(Name("city"), Data("autosubmit", ""), Class("city-select"),
					g.Group(cityOptions(f.City)),
				),
				Input(Type("hidden"), Name("category"), Value(category)),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Search")),
			),
			Div(Class("chips"), g.Group(chips)),
			g.If(len(events) > 0, P(Class("muted result-count"), g.Text(catalog.ResultText(len(events))))),
			results,
		),
	)
}

// eventsURL builds a directory link, leaving out filters that match
// everything.
func eventsURL(search, category, city string) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if category != "" && category != catalog.AllCategories {
		q.Set("category", category)
	}
	if city != "" && city != catalog.AllCities {
		q.Set("city", city)
	}
	if len(q) == 0 {
		return "/events"
	}
	return "/events?" + q.Encode()
}

func cityOptions(selected string) []g.Node {
	if selected == "" {
		selected = catalog.AllCities
	}
	opts := make([]g.Node, 0, len(catalog.Cities))
	for _, c := range catalog.Cities {
		opts = append(opts, Option(Value(c), g.If(c == selected, Selected()), g.Text(c)))
	}
	return opts
}

// EventPage renders one approved event.
func EventPage(site Site, e store.Event) g.Node {
	return Layout(site, e.Title,
		Article(Class("section container event-detail"),
			eventImage(e, "detail-image"),
			Span(Class("badge"), g.Text(e.Category)),
			H1(g.Text(e.Title)),
			P(Class("muted"), g.Text("📅 "+e.Date)),
			P(Class("muted"), g.Text("📍 "+e.Location)),
			P(Class("muted"), g.Text("🙋 Organized by "+e.Organizer)),
			Div(Class("prose"), g.Text(e.Description)),
			P(A(Href("mailto:"+e.Email), Class("btn btn-primary"), g.Text("Contact Organizer"))),
			P(A(Href("/events"), g.Text("← Back to events"))),
		),
	)
}

type stat struct{ Label, Value string }

var aboutStats = []stat{
	{"Events Listed", "500+"},
	{"Cities Covered", "50+"},
	{"Community Members", "10,000+"},
	{"States Covered", "30+"},
}

type member struct{ Name, Role, Emoji string }

var team = []member{
	{"Aryan", "Founder & Developer", "👨‍💻"},
	{"Community", "Event Organizers", "🤝"},
	{"Bharat AI", "AI Assistant", "🤖"},
}

// Mission is the fixed mission statement on the About page.
const Mission = "Whether you moved to the US last year or were born here, the thread of Indian culture " +
	"runs deep. Bharat Abroad exists to make sure that thread never breaks, by helping you find your " +
	"community, celebrate your traditions, and discover the vibrant Indian culture happening right in your city."

// AboutPage renders the About page.
func AboutPage(site Site) g.Node {
	c := site.Content

	stats := make([]g.Node, 0, len(aboutStats))
	for _, s := range aboutStats {
		stats = append(stats, Div(Class("card stat"),
			P(Class("stat-value"), g.Text(s.Value)),
			P(Class("muted"), g.Text(s.Label)),
		))
	}
	members := make([]g.Node, 0, len(team))
	for _, m := range team {
		members = append(members, Div(Class("card member"),
			Span(Class("member-emoji"), g.Text(m.Emoji)),
			H3(g.Text(m.Name)),
			P(Class("muted"), g.Text(m.Role)),
		))
	}
	var images []g.Node
	for _, key := range []string{"about_image1", "about_image2"} {
		if src := c.Get(key); src != "" {
			images = append(images, Img(Src(src), Alt(c.Get("about_title")), Class("about-image")))
		}
	}

	return Layout(site, "About",
		Section(Class("hero hero-compact"),
			H1(g.Text(c.Get("about_title"))),
			Div(Class("lead"), Markdown(c.Get("about_text"))),
		),
		g.If(len(images) > 0, Section(Class("container about-images"), g.Group(images))),
		Section(Class("section container center narrow"),
			Span(Class("big-emoji"), g.Text("🇮🇳")),
			H2(g.Text("Our Mission")),
			P(Class("muted"), g.Text(Mission)),
		),
		Section(Class("section section-alt"),
			Div(Class("container grid grid-4"), g.Group(stats)),
		),
		Section(Class("section container center"),
			H2(g.Text("Who We Are")),
			Div(Class("grid grid-3"), g.Group(members)),
		),
		Section(Class("cta"),
			H2(g.Text("Want to list your event?")),
			P(g.Text("Join hundreds of organizers already sharing their events on Bharat Abroad.")),
			A(Href("/submit"), Class("btn btn-light"), g.Text("+ Submit Your Event")),
		),
	)
}

// SubmitForm is the state of the event submission page.
type SubmitForm struct {
	Values service.EventSubmission
	Errors validation.Errors
	Token  string
	Error  string
}

// SubmitPage renders the event submission form.
func SubmitPage(site Site, f SubmitForm) g.Node {
	v := f.Values
	categories := catalog.Categories[1:]

	return Layout(site, "Submit an Event",
		Section(Class("section container narrow"),
			Div(Class("page-header center"),
				H1(g.Text("Submit an Event")),
				P(Class("muted"), g.Text("Share your Indian cultural event with the community across the US")),
			),
			Form(Method("post"), Action("/submit"), Class("card form"),
				alert(f.Error),
				tokenInput(f.Token),
				field{Label: "Event Title", Name: "title", Value: v.Title, Placeholder: "e.g. Holi Festival of Colors", Required: true}.node(f.Errors),
				Div(Class("form-row"),
					field{Label: "Event Date", Name: "date", Type: "date", Value: v.Date, Required: true}.node(f.Errors),
					field{Label: "Location", Name: "location", Value: v.Location, Placeholder: "e.g. Chicago, IL", Required: true}.node(f.Errors),
				),
				selectField("Category", "category", v.Category, "Select a category", categories, true, f.Errors),
				textarea("Event Description", "description", v.Description, "Tell us about your event...", 4, true, f.Errors),
				Div(Class("form-row"),
					field{Label: "Organizer Name", Name: "organizer", Value: v.Organizer, Placeholder: "Your name or organization", Required: true}.node(f.Errors),
					field{Label: "Contact Email", Name: "email", Type: "email", Value: v.Email, Placeholder: "you@example.com", Required: true}.node(f.Errors),
				),
				field{Label: "Event Image URL (optional)", Name: "image", Type: "url", Value: v.Image, Placeholder: "https://..."}.node(f.Errors),
				submitButton("Submit Event"),
				P(Class("muted small center"), g.Text("Events are reviewed by our team before publishing.")),
			),
		),
	)
}

// SubmitDonePage confirms an event submission.
func SubmitDonePage(site Site) g.Node {
	return Layout(site, "Event Submitted",
		confirmation("🎉", "Event Submitted!",
			"Thank you for submitting your event. Our team will review it and publish it shortly.",
			"/submit", "Submit Another Event"),
	)
}

// EventTypes are the enquiry categories offered on the contact form.
var EventTypes = []string{"Wedding", "Corporate", "Festival", "Birthday", "Cultural", "Other"}

// ContactFormState is the state of the contact page.
type ContactFormState struct {
	Values service.ContactForm
	Errors validation.Errors
	Token  string
	Error  string
}

// ContactPage renders the enquiry form.
func ContactPage(site Site, f ContactFormState) g.Node {
	v := f.Values
	return Layout(site, "Contact",
		Section(Class("section container narrow"),
			Div(Class("page-header center"),
				H1(g.Text("Get in Touch")),
				P(Class("muted"), g.Text("Planning a celebration? Tell us about it and we will get back to you.")),
			),
			Form(Method("post"), Action("/contact"), Class("card form"),
				alert(f.Error),
				tokenInput(f.Token),
				Div(Class("form-row"),
					field{Label: "Your Name", Name: "name", Value: v.Name, Required: true}.node(f.Errors),
					field{Label: "Email", Name: "email", Type: "email", Value: v.Email, Required: true}.node(f.Errors),
				),
				Div(Class("form-row"),
					field{Label: "Phone", Name: "phone", Type: "tel", Value: v.Phone}.node(f.Errors),
					selectField("Event Type", "event_type", v.EventType, "Select a type", EventTypes, false, f.Errors),
				),
				textarea("Message", "message", v.Message, "Tell us about your event...", 5, true, f.Errors),
				submitButton("Send Message"),
			),
		),
	)
}

// ContactDonePage confirms an enquiry.
func ContactDonePage(site Site) g.Node {
	return Layout(site, "Message Sent",
		confirmation("🙏", "Thank You!",
			"Your message has been received. Our team will get back to you soon.",
			"/", "Back to Home"),
	)
}

// NotFoundPage renders a 404 page.
func NotFoundPage(site Site) g.Node {
	return Layout(site, "Not Found",
		confirmation("🧭", "Page not found",
			"The page you are looking for does not exist or is no longer listed.",
			"/events", "Browse Events"),
	)
}

func confirmation(icon, title, text, href, action string) g.Node {
	return Section(Class("section container narrow center confirmation"),
		Span(Class("big-emoji"), g.Text(icon)),
		H2(g.Text(title)),
		P(Class("muted"), g.Text(text)),
		A(Href(href), Class("btn btn-primary"), g.Text(action)),
	)
}
