// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package admin renders the back office with gomponents.
package admin

import (
	"strconv"
	"strings"
	"time"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/store"
)

// PageContext carries shared data for all admin views.
type PageContext struct {
	Title       string
	Admin       store.AdminUser
	Flash       render.Flash
	CurrentPath string
	// Failed lists collections that could not be loaded on the last refresh.
	Failed []string
	Now    time.Time
	// Badges are counts shown beside sidebar tabs, keyed by tab path.
	Badges map[string]int
}

// IsActive returns true if the given path matches the current path.
func (pc PageContext) IsActive(path string) bool {
	if path == "/admin" {
		return pc.CurrentPath == "/admin"
	}
	return pc.CurrentPath == path || strings.HasPrefix(pc.CurrentPath, path+"/")
}

type tab struct {
	Label      string
	Icon       string
	Path       string
	Superadmin bool
}

var tabs = []tab{
	{"Dashboard", "📊", "/admin", false},
	{"Submissions", "📬", "/admin/submissions", false},
	{"Events", "🎉", "/admin/events", false},
	{"Portfolio", "🖼️", "/admin/portfolio", false},
	{"Content", "📝", "/admin/content", false},
	{"Analytics", "📈", "/admin/analytics", false},
	{"Users", "👥", "/admin/users", true},
	{"Settings", "⚙️", "/admin/settings", false},
}

// Layout wraps an admin page. actions are rendered in the page header next
// to the refresh button.
func Layout(pc PageContext, actions g.Node, children ...g.Node) g.Node {
	if actions == nil {
		actions = g.Group(nil)
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("robots"), Content("noindex")),
				Link(Rel("stylesheet"), Href("/static/css/admin.css")),
				TitleEl(g.Text(pc.Title+" | Bharat Abroad Admin")),
			),
			Body(Class("admin"),
				sidebar(pc),
				Main(Class("admin-main"),
					Header(Class("admin-header"),
						Div(
							H1(g.Text(pc.Title)),
							P(Class("muted"), g.Text(pc.Now.Format("Monday, January 2, 2006"))),
						),
						Div(Class("admin-actions"),
							actions,
							Form(Method("post"), Action("/admin/refresh"),
								Input(Type("hidden"), Name("return"), Value(pc.CurrentPath)),
								Button(Type("submit"), Class("btn btn-ghost"), g.Text("🔄 Refresh")),
							),
						),
					),
					flash(pc.Flash),
					failedBanner(pc.Failed),
					g.Group(children),
				),
				Script(Src("/static/js/site.js"), Defer()),
			),
		),
	)
}

func sidebar(pc PageContext) g.Node {
	links := make([]g.Node, 0, len(tabs))
	for _, t := range tabs {
		if t.Superadmin && !pc.Admin.IsSuperadmin() {
			continue
		}
		class := "tab"
		if pc.IsActive(t.Path) {
			class = "tab active"
		}
		badge := pc.Badges[t.Path]
		links = append(links, A(Class(class), Href(t.Path),
			Span(g.Text(t.Icon)),
			Span(Class("tab-label"), g.Text(t.Label)),
			g.If(badge > 0, Span(Class("tab-badge"), g.Text(strconv.Itoa(badge)))),
		))
	}

	return Aside(Class("sidebar"),
		Div(Class("sidebar-brand"),
			Div(Class("brand-name"), g.Text("Bharat Abroad")),
			Div(Class("muted"), g.Text("Admin Dashboard")),
		),
		Nav(Class("sidebar-nav"), g.Group(links)),
		Div(Class("sidebar-footer"),
			Div(Class("muted"), g.Text("👤 "+pc.Admin.Username+" · "+pc.Admin.Role)),
			A(Href("/"), Target("_blank"), Class("btn btn-ghost btn-block"), g.Text("🌐 View Site")),
			Form(Method("post"), Action("/admin/logout"),
				Button(Type("submit"), Class("btn btn-link btn-block"), g.Text("Sign Out")),
			),
		),
	)
}

func flash(f render.Flash) g.Node {
	if f.Empty() {
		return g.Group(nil)
	}
	return Div(Class("flash flash-"+f.Type), Role("alert"), g.Text(f.Message))
}

func failedBanner(failed []string) g.Node {
	if len(failed) == 0 {
		return g.Group(nil)
	}
	return Div(Class("flash flash-warning"), Role("alert"),
		g.Text("Some data could not be loaded and may be out of date: "+strings.Join(failed, ", ")+"."),
	)
}

func card(title string, children ...g.Node) g.Node {
	return Section(Class("panel"),
		g.If(title != "", H3(g.Text(title))),
		g.Group(children),
	)
}

// postButton renders a one-button form. A non-empty confirm text asks the
// browser to confirm first.
func postButton(action, label, class, confirm string, hidden ...g.Node) g.Node {
	return Form(Method("post"), Action(action), Class("inline"),
		g.If(confirm != "", Data("confirm", confirm)),
		g.Group(hidden),
		Button(Type("submit"), Class(class), g.Text(label)),
	)
}

func hiddenInput(name, value string) g.Node {
	return Input(Type("hidden"), Name(name), Value(value))
}

func statusBadge(status string) g.Node {
	return Span(Class("status status-"+status), g.Text(status))
}

func formatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}

func formatDateTime(t time.Time) string {
	return t.Local().Format("Jan 2, 2006 3:04 PM")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}

func idPath(prefix string, id int64, suffix string) string {
	p := prefix + "/" + strconv.FormatInt(id, 10)
	if suffix != "" {
		p += "/" + suffix
	}
	return p
}

func emptyRow(cols int, text string) g.Node {
	return Tr(Td(g.Attr("colspan", strconv.Itoa(cols)), Class("empty"), g.Text(text)))
}
