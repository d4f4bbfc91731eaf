package admin

import (
	"strconv"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// UsersPage lists admin accounts. Only superadmins reach it.
func UsersPage(pc PageContext, users []store.AdminUser) g.Node {
	rows := make([]g.Node, 0, len(users))
	for _, u := range users {
		self := u.ID == pc.Admin.ID
		lastLogin := "Never"
		if u.LastLoginAt.Valid {
			lastLogin = formatDateTime(u.LastLoginAt.Time)
		}
		rows = append(rows, Tr(
			Td(Class("muted"), g.Text(idLabel(u.ID))),
			Td(Strong(g.Text(u.Username)), g.If(self, Span(Class("muted"), g.Text(" (you)")))),
			Td(Span(Class("tag"), g.Text(u.Role))),
			Td(Class("muted"), g.Text(lastLogin)),
			Td(Class("actions"),
				g.If(!self, g.Group([]g.Node{
					Form(Method("post"), Action(idPath("/admin/users", u.ID, "password")), Class("inline"),
						Input(Type("password"), Name("password"), Placeholder("New password"), Required(),
							g.Attr("autocomplete", "new-password")),
						Button(Type("submit"), Class("btn btn-small btn-ghost"), g.Text("Reset")),
					),
					postButton(idPath("/admin/users", u.ID, "delete"), "🗑", "btn btn-small btn-danger", "Delete this user?"),
				})),
			),
		))
	}

	return Layout(pc, nil,
		card("Admin Users ("+strconv.Itoa(len(users))+")",
			Table(Class("table"),
				THead(Tr(Th(g.Text("ID")), Th(g.Text("Username")), Th(g.Text("Role")), Th(g.Text("Last Login")), Th(g.Text("Actions")))),
				TBody(g.Group(rows)),
			),
		),
		card("Add Admin User",
			Form(Method("post"), Action("/admin/users"), Class("stack"),
				textField("Username", "username", "", true),
				Div(Class("field"),
					Label(For("new_password"), g.Text("Password")),
					Input(Type("password"), ID("new_password"), Name("password"), Required(), g.Attr("autocomplete", "new-password")),
				),
				Div(Class("field"),
					Label(For("role"), g.Text("Role")),
					Select(ID("role"), Name("role"),
						Option(Value(store.RoleAdmin), g.Text("Admin")),
						Option(Value(store.RoleSuperadmin), g.Text("Superadmin")),
					),
				),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("+ Add User")),
			),
		),
	)
}

// SettingsPage shows account details and the change-password form.
func SettingsPage(pc PageContext) g.Node {
	return Layout(pc, nil,
		card("Account",
			Dl(Class("details"),
				Dt(g.Text("Username")), Dd(g.Text(pc.Admin.Username)),
				Dt(g.Text("Role")), Dd(g.Text(pc.Admin.Role)),
				Dt(g.Text("Member since")), Dd(g.Text(formatDate(pc.Admin.CreatedAt))),
			),
		),
		card("Change Your Password",
			Form(Method("post"), Action("/admin/settings/password"), Class("stack"),
				passwordField("Current Password", "current_password", "current-password"),
				passwordField("New Password", "new_password", "new-password"),
				passwordField("Confirm New Password", "confirm_password", "new-password"),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Update Password")),
			),
		),
	)
}

func passwordField(label, name, autocomplete string) g.Node {
	return Div(Class("field"),
		Label(For(name), g.Text(label)),
		Input(Type("password"), ID(name), Name(name), Required(), g.Attr("autocomplete", autocomplete)),
	)
}
