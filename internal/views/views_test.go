package views

import (
	"database/sql"
	"strings"
	"testing"

	g "github.com/maragudk/gomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/catalog"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
	"github.com/olegiv/bharat-abroad/internal/store"
	"github.com/olegiv/bharat-abroad/internal/validation"
)

func renderString(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func testSite() Site {
	content := service.Content{}
	for k, v := range service.ContentDefaults {
		content[k] = v
	}
	content["contact_phone"] = "+1 555 0100"
	content["social_instagram"] = "https://instagram.com/bharatabroad"
	return Site{Content: content, Path: "/", ChatEnabled: true}
}

func TestEventURL(t *testing.T) {
	assert.Equal(t, "/events/4/diwali-night-gala", EventURL(store.Event{ID: 4, Title: "Diwali Night Gala"}))
	assert.Equal(t, "/events/5", EventURL(store.Event{ID: 5, Title: "!!!"}))
}

func TestEventsURL(t *testing.T) {
	assert.Equal(t, "/events", eventsURL("", catalog.AllCategories, catalog.AllCities))
	assert.Equal(t, "/events?category=Music&city=Austin%2C+TX&q=holi", eventsURL("holi", "Music", "Austin, TX"))
}

func TestLayout(t *testing.T) {
	site := testSite()
	site.Flash = render.Flash{Message: "Saved", Type: render.FlashSuccess}
	html := renderString(t, Layout(site, "Events", g.Text("body")))

	assert.Contains(t, html, "<title>Events | Bharat Abroad</title>")
	assert.Contains(t, html, `class="flash flash-success"`)
	assert.Contains(t, html, "+1 555 0100")
	assert.Contains(t, html, "https://instagram.com/bharatabroad")
	assert.Contains(t, html, "© 2026 Bharat Abroad")
	assert.Contains(t, html, `id="chat-panel"`)
	assert.NotContains(t, html, "Facebook", "unset social links are hidden")

	site.ChatEnabled = false
	assert.NotContains(t, renderString(t, Layout(site, "", g.Text("x"))), `id="chat-panel"`)
}

func TestHomePage_FallbackFeatured(t *testing.T) {
	html := renderString(t, HomePage(testSite(), nil, nil))
	assert.Contains(t, html, "Celebrate India, Everywhere")
	assert.Contains(t, html, "Holi Festival of Colors")
	assert.Contains(t, html, "Bharatanatyam Dance Show")
	assert.Contains(t, html, `href="/events?category=Festival"`)
	assert.NotContains(t, html, "Our Celebrations")
}

func TestHomePage_Featured(t *testing.T) {
	featured := []store.Event{{ID: 9, Title: "Navratri Garba", Category: "Festival", Date: "2026-10-01", Location: "Dallas, TX"}}
	portfolio := []store.PortfolioItem{{ID: 1, Title: "Grand Wedding", Guests: "300"}}

	html := renderString(t, HomePage(testSite(), featured, portfolio))
	assert.Contains(t, html, "Navratri Garba")
	assert.Contains(t, html, `href="/events/9/navratri-garba"`)
	assert.NotContains(t, html, "Holi Festival of Colors")
	assert.Contains(t, html, "Grand Wedding")
	assert.Contains(t, html, "300 guests")
}

func TestEventsPage(t *testing.T) {
	f := catalog.Filter{Search: "holi", Category: "Festival"}
	events := []store.Event{{ID: 1, Title: "Holi Mela", Category: "Festival", Image: sql.NullString{String: "https://img.example/h.jpg", Valid: true}}}

	html := renderString(t, EventsPage(testSite(), f, events))
	assert.Contains(t, html, "1 event(s) found")
	assert.Contains(t, html, `value="holi"`)
	assert.Contains(t, html, `class="chip active" href="/events?category=Festival&amp;q=holi"`)
	assert.Contains(t, html, `src="https://img.example/h.jpg"`)

	html = renderString(t, EventsPage(testSite(), catalog.Filter{}, nil))
	assert.Equal(t, 1, strings.Count(html, catalog.EmptyText))
	assert.NotContains(t, html, "event(s) found")
}

func TestEventPage_EscapesContent(t *testing.T) {
	e := store.Event{ID: 2, Title: "<script>x</script>", Description: "Fun & games", Organizer: "Sangam", Email: "o@example.com"}
	html := renderString(t, EventPage(testSite(), e))
	assert.NotContains(t, html, "<script>x</script>")
	assert.Contains(t, html, "Fun &amp; games")
	assert.Contains(t, html, "mailto:o@example.com")
}

func TestAboutPage_MarkdownIsSanitized(t *testing.T) {
	site := testSite()
	site.Content["about_text"] = "We **celebrate** together.<script>alert(1)</script>"
	html := renderString(t, AboutPage(site))

	assert.Contains(t, html, "<strong>celebrate</strong>")
	assert.NotContains(t, html, "alert(1)")
	assert.Contains(t, html, "10,000+")
	assert.Contains(t, html, "Who We Are")
}

func TestSubmitPage(t *testing.T) {
	html := renderString(t, SubmitPage(testSite(), SubmitForm{
		Values: service.EventSubmission{Title: "Holi", Category: "Arts"},
		Errors: validation.Errors{"email": "This field is required"},
		Token:  "tok-1",
		Error:  GenericError,
	}))

	assert.Contains(t, html, `name="form_token" value="tok-1"`)
	assert.Contains(t, html, GenericError)
	assert.Contains(t, html, "This field is required")
	assert.Contains(t, html, `<option value="Arts" selected>Arts</option>`)
	assert.NotContains(t, html, `<option value="All"`)
}

func TestConfirmationPages(t *testing.T) {
	assert.Contains(t, renderString(t, SubmitDonePage(testSite())), "Submit Another Event")
	assert.Contains(t, renderString(t, ContactDonePage(testSite())), "Thank You!")
	assert.Contains(t, renderString(t, NotFoundPage(testSite())), "Page not found")
}

func TestContactPage(t *testing.T) {
	html := renderString(t, ContactPage(testSite(), ContactFormState{
		Values: service.ContactForm{Name: "Asha", EventType: "Wedding"},
		Token:  "tok-2",
	}))
	assert.Contains(t, html, `value="Asha"`)
	assert.Contains(t, html, `<option value="Wedding" selected>Wedding</option>`)
	assert.Contains(t, html, `value="tok-2"`)
}
