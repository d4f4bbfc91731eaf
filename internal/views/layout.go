// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package views renders the public site with gomponents.
package views

import (
	"strconv"
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/chat"
	"github.com/olegiv/bharat-abroad/internal/render"
	"github.com/olegiv/bharat-abroad/internal/service"
)

// SiteName is shown in titles and the footer.
const SiteName = "Bharat Abroad"

// CopyrightYear is fixed in the footer.
const CopyrightYear = 2026

// Site carries the data every public page needs.
type Site struct {
	Content     service.Content
	Path        string
	Flash       render.Flash
	ChatEnabled bool
}

type navLink struct {
	Label string
	Href  string
}

var navLinks = []navLink{
	{"Home", "/"},
	{"Events", "/events"},
	{"About", "/about"},
	{"Contact", "/contact"},
}

// Layout wraps page content with the head, navigation, footer and chat
// widget.
func Layout(site Site, title string, children ...g.Node) g.Node {
	fullTitle := SiteName
	if title != "" {
		fullTitle = title + " | " + SiteName
	}

	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("description"), Content(site.Content.Get("hero_subtitle"))),
				Link(Rel("stylesheet"), Href("/static/css/site.css")),
				TitleEl(g.Text(fullTitle)),
			),
			Body(
				navbar(site),
				flash(site.Flash),
				Main(Class("main"), g.Group(children)),
				footer(site),
				g.If(site.ChatEnabled, chatWidget()),
				Script(Src("/static/js/site.js"), Defer()),
			),
		),
	)
}

func navbar(site Site) g.Node {
	links := make([]g.Node, 0, len(navLinks)+1)
	for _, l := range navLinks {
		links = append(links, A(Href(l.Href), g.Text(l.Label),
			g.If(isActive(site.Path, l.Href), Class("active")),
		))
	}
	links = append(links, A(Href("/submit"), Class("btn btn-primary"), g.Text("+ Submit Event")))

	return Nav(Class("navbar"),
		Div(Class("container navbar-inner"),
			A(Href("/"), Class("brand"),
				Span(g.Text("🇮🇳")),
				Span(Class("brand-accent"), g.Text("Bharat")),
				Span(g.Text("Abroad")),
			),
			Div(Class("nav-links"), g.Group(links)),
		),
	)
}

func isActive(current, href string) bool {
	if href == "/" {
		return current == "/"
	}
	return current == href || strings.HasPrefix(current, href+"/")
}

func flash(f render.Flash) g.Node {
	if f.Empty() {
		return g.Group(nil)
	}
	return Div(Class("container"),
		Div(Class("flash flash-"+f.Type), Role("alert"), g.Text(f.Message)),
	)
}

var socialLabels = []navLink{
	{"Instagram", "social_instagram"},
	{"Facebook", "social_facebook"},
	{"Twitter", "social_twitter"},
	{"YouTube", "social_youtube"},
}

func footer(site Site) g.Node {
	c := site.Content

	var contact []g.Node
	if v := c.Get("contact_phone"); v != "" {
		contact = append(contact, P(g.Text("📞 "), A(Href("tel:"+v), g.Text(v))))
	}
	if v := c.Get("contact_email"); v != "" {
		contact = append(contact, P(g.Text("✉️ "), A(Href("mailto:"+v), g.Text(v))))
	}
	if v := c.Get("contact_address"); v != "" {
		contact = append(contact, P(g.Text("📍 "+v)))
	}

	var social []g.Node
	for _, s := range socialLabels {
		if url := c.Get(s.Href); url != "" {
			social = append(social, A(Href(url), Target("_blank"), Rel("noopener"), g.Text(s.Label)))
		}
	}

	return Footer(Class("footer"),
		Div(Class("container footer-inner"),
			Div(g.Group(contact)),
			g.If(len(social) > 0, Div(Class("social"), g.Group(social))),
			P(Class("copyright"),
				g.Text("© "+strconv.Itoa(CopyrightYear)+" "+SiteName+". Made with ❤️ for the Indian diaspora in the US."),
			),
		),
	)
}

func chatWidget() g.Node {
	return Div(ID("chat"), Class("chat"),
		Button(ID("chat-toggle"), Class("chat-toggle"), Type("button"),
			Aria("label", "Open chat"), g.Text("🤖")),
		Div(ID("chat-panel"), Class("chat-panel"), g.Attr("hidden"),
			Div(Class("chat-header"),
				Span(g.Text("🤖")),
				Div(
					P(Class("chat-title"), g.Text("Bharat AI")),
					P(Class("chat-subtitle"), g.Text("Your Indian culture assistant")),
				),
			),
			Div(ID("chat-messages"), Class("chat-messages"), Data("greeting", chat.Greeting),
				Div(Class("chat-msg chat-msg-assistant"), g.Text(chat.Greeting)),
			),
			Form(ID("chat-form"), Class("chat-form"),
				Input(ID("chat-input"), Type("text"), Name("message"),
					Placeholder("Ask me anything..."), g.Attr("maxlength", strconv.Itoa(chat.MaxMessageLength)),
					g.Attr("autocomplete", "off")),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Send")),
			),
		),
	)
}
