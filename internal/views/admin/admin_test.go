package admin

import (
	"database/sql"
	"strings"
	"testing"
	"time"

	g "github.com/maragudk/gomponents"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/bharat-abroad/internal/dashboard"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/store"
)

func renderString(t *testing.T, n g.Node) string {
	t.Helper()
	var b strings.Builder
	require.NoError(t, n.Render(&b))
	return b.String()
}

func testContext(role string) PageContext {
	return PageContext{
		Title:       "Dashboard",
		Admin:       store.AdminUser{ID: 1, Username: "priya", Role: role},
		CurrentPath: "/admin",
		Now:         time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
		Badges:      map[string]int{"/admin/submissions": 3},
	}
}

func TestPageContext_IsActive(t *testing.T) {
	pc := PageContext{CurrentPath: "/admin/portfolio/4/edit"}
	assert.True(t, pc.IsActive("/admin/portfolio"))
	assert.False(t, pc.IsActive("/admin"))
	assert.False(t, pc.IsActive("/admin/port"))

	pc.CurrentPath = "/admin"
	assert.True(t, pc.IsActive("/admin"))
}

func TestLayout_SidebarByRole(t *testing.T) {
	html := renderString(t, Layout(testContext(store.RoleAdmin), nil))
	assert.NotContains(t, html, `href="/admin/users"`)
	assert.Contains(t, html, "Saturday, March 14, 2026")
	assert.Contains(t, html, `<span class="tab-badge">3</span>`)

	html = renderString(t, Layout(testContext(store.RoleSuperadmin), nil))
	assert.Contains(t, html, `href="/admin/users"`)
}

func TestLayout_FlashAndFailures(t *testing.T) {
	pc := testContext(store.RoleAdmin)
	pc.Flash = render.Flash{Message: "Status updated", Type: render.FlashSuccess}
	pc.Failed = []string{"analytics", "users"}

	html := renderString(t, Layout(pc, nil))
	assert.Contains(t, html, "Status updated")
	assert.Contains(t, html, "may be out of date: analytics, users.")
}

func TestDashboardPage(t *testing.T) {
	snap := &dashboard.Snapshot{
		Submissions: []store.ContactSubmission{
			{ID: 1, Name: "Asha", EventType: "Wedding", Status: store.SubmissionStatusNew},
			{ID: 2, Name: "Ravi", EventType: "Corporate", Status: store.SubmissionStatusClosed},
		},
		Events: []store.Event{{ID: 7, Title: "Holi Fest", Location: "Austin, TX", Status: store.EventStatusPending}},
	}
	stats := dashboard.Stats{
		TotalViews:      42,
		TodayViews:      5,
		NewSubmissions:  1,
		PendingEvents:   1,
		Last7:           []dashboard.DayCount{{Label: "Sat", Count: 5}},
		MaxDayViews:     5,
		SubmissionTypes: []dashboard.NameCount{{Name: "Wedding", Count: 1}, {Name: "Corporate", Count: 1}},
	}

	html := renderString(t, DashboardPage(testContext(store.RoleAdmin), snap, stats))
	assert.Contains(t, html, "Total Page Views")
	assert.Contains(t, html, `<p class="stat-value">42</p>`)
	assert.Contains(t, html, "5 today")
	assert.Contains(t, html, "height: 100%")
	assert.Contains(t, html, "width: 50%")
	assert.Contains(t, html, "Holi Fest")
	assert.Contains(t, html, `href="/admin/submissions?selected=1"`)
}

func TestSubmissionsPage_Detail(t *testing.T) {
	sub := store.ContactSubmission{ID: 9, Name: "Asha", Email: "asha@example.com", EventType: "Wedding",
		Message: "<b>hi</b>", Status: store.SubmissionStatusNew}
	pc := testContext(store.RoleAdmin)
	pc.CurrentPath = "/admin/submissions"

	html := renderString(t, SubmissionsPage(pc, SubmissionsView{
		Submissions: []store.ContactSubmission{sub},
		Total:       4,
		Search:      "ash",
		Selected:    &sub,
	}))

	assert.Contains(t, html, "Submissions (1 of 4)")
	assert.Contains(t, html, `action="/admin/submissions/9/status"`)
	assert.Contains(t, html, `action="/admin/submissions/9/reply"`)
	assert.Contains(t, html, `data-confirm="Delete this submission?"`)
	assert.Contains(t, html, `href="/admin/submissions/export"`)
	assert.Contains(t, html, `href="/admin/submissions?selected=9&amp;q=ash"`)
	assert.Contains(t, html, "&lt;b&gt;hi&lt;/b&gt;")
}

func TestSubmissionsPage_Empty(t *testing.T) {
	html := renderString(t, SubmissionsPage(testContext(store.RoleAdmin), SubmissionsView{Status: store.SubmissionStatusClosed}))
	assert.Contains(t, html, "No submissions match")
	assert.NotContains(t, html, "Enquiry Details")
}

func TestEventsPage_ActionsExcludeCurrentStatus(t *testing.T) {
	events := []store.Event{{ID: 3, Title: "Navratri Garba", Status: store.EventStatusApproved}}
	html := renderString(t, EventsPage(testContext(store.RoleAdmin), events, ""))

	assert.Contains(t, html, "✕ Reject")
	assert.Contains(t, html, "↺ Pending")
	assert.NotContains(t, html, "✓ Approve")
	assert.Contains(t, html, `data-confirm="Delete this event?"`)
}

func TestPortfolioPages(t *testing.T) {
	items := []store.PortfolioItem{{ID: 2, Title: "Sangeet Night", Category: "Wedding", Guests: "300"}}
	html := renderString(t, PortfolioPage(testContext(store.RoleAdmin), items))
	assert.Contains(t, html, "Wedding · 300")
	assert.Contains(t, html, `href="/admin/portfolio/2"`)

	html = renderString(t, PortfolioFormPage(testContext(store.RoleAdmin), items[0], false, "Title is required"))
	assert.Contains(t, html, `action="/admin/portfolio/2"`)
	assert.Contains(t, html, "Save Changes")
	assert.Contains(t, html, "Title is required")

	html = renderString(t, PortfolioFormPage(testContext(store.RoleAdmin), store.PortfolioItem{}, true, ""))
	assert.Contains(t, html, `action="/admin/portfolio"`)
}

func TestContentPage_UnsavedMarker(t *testing.T) {
	saved := map[string]string{"hero_title": "Welcome", "hero_image": "/uploads/site/hero.jpg"}
	drafts := map[string]string{"hero_title": "Namaste"}

	html := renderString(t, ContentPage(testContext(store.RoleAdmin), saved, drafts))
	assert.Contains(t, html, `value="Namaste"`)
	assert.Contains(t, html, "● unsaved")
	assert.Contains(t, html, `formaction="/admin/content/hero_title/save"`)
	assert.Contains(t, html, `action="/admin/content/save-all"`)
	assert.Contains(t, html, `action="/admin/content/hero_image/image"`)

	html = renderString(t, ContentPage(testContext(store.RoleAdmin), saved, map[string]string{"hero_title": "Welcome"}))
	assert.NotContains(t, html, "● unsaved")
	assert.NotContains(t, html, "save-all")
}

func TestKeyLabel(t *testing.T) {
	assert.Equal(t, "Hero Title", KeyLabel("hero_title"))
	assert.Equal(t, "About Image1", KeyLabel("about_image1"))
}

func TestUsersPage(t *testing.T) {
	pc := testContext(store.RoleSuperadmin)
	users := []store.AdminUser{
		pc.Admin,
		{ID: 2, Username: "dev", Role: store.RoleAdmin, LastLoginAt: sql.NullTime{}},
	}

	html := renderString(t, UsersPage(pc, users))
	assert.Contains(t, html, "Admin Users (2)")
	assert.Contains(t, html, " (you)")
	assert.Contains(t, html, `action="/admin/users/2/delete"`)
	assert.NotContains(t, html, `action="/admin/users/1/delete"`)
	assert.Contains(t, html, "Never")
}

func TestSettingsAndLoginPages(t *testing.T) {
	html := renderString(t, SettingsPage(testContext(store.RoleAdmin)))
	assert.Contains(t, html, "Change Your Password")
	assert.Contains(t, html, `name="confirm_password"`)

	html = renderString(t, LoginPage("Invalid username or password", "priya"))
	assert.Contains(t, html, "Invalid username or password")
	assert.Contains(t, html, `value="priya"`)
	assert.NotContains(t, html, "sidebar")
}
