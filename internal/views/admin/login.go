package admin

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

// LoginPage renders the sign-in form.
func LoginPage(errMsg, username string) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				Meta(Name("robots"), Content("noindex")),
				Link(Rel("stylesheet"), Href("/static/css/admin.css")),
				TitleEl(g.Text("Sign In | Bharat Abroad Admin")),
			),
			Body(Class("login"),
				Main(Class("login-card"),
					Div(Class("login-brand"),
						Span(Class("login-icon"), g.Text("🪔")),
						H1(g.Text("Bharat Abroad")),
						P(Class("muted"), g.Text("Admin Dashboard")),
					),
					g.If(errMsg != "", Div(Class("flash flash-error"), Role("alert"), g.Text(errMsg))),
					Form(Method("post"), Action("/admin/login"), Class("stack"),
						Div(Class("field"),
							Label(For("username"), g.Text("Username")),
							Input(Type("text"), ID("username"), Name("username"), Value(username), Required(),
								g.Attr("autofocus"), g.Attr("autocomplete", "username")),
						),
						passwordField("Password", "password", "current-password"),
						Button(Type("submit"), Class("btn btn-primary btn-block"), Data("disable-on-submit", "Signing in..."),
							g.Text("Sign In")),
					),
					A(Href("/"), Class("muted small"), g.Text("← Back to site")),
				),
			),
		),
	)
}
