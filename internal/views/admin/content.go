package admin

import (
	"strings"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"

	"github.com/olegiv/bharat-abroad/internal/service"
)

// KeyLabel turns a content key such as hero_title into "Hero Title".
func KeyLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// ContentPage renders the site content editor. saved holds stored values,
// drafts the admin's unsaved edits.
func ContentPage(pc PageContext, saved, drafts map[string]string) g.Node {
	dirty := 0
	for k, v := range drafts {
		if saved[k] != v {
			dirty++
		}
	}

	saveAll := postButton("/admin/content/save-all", "💾 Save All", "btn btn-primary", "")
	if dirty == 0 {
		saveAll = g.Group(nil)
	}

	return Layout(pc, saveAll,
		card("Text Content", contentFields(service.TextKeys, saved, drafts)),
		card("Images", imageFields(saved)),
		card("Social Links", contentFields(service.SocialKeys, saved, drafts)),
	)
}

func contentFields(keys []string, saved, drafts map[string]string) g.Node {
	nodes := make([]g.Node, 0, len(keys))
	for _, key := range keys {
		value, hasDraft := drafts[key]
		if !hasDraft {
			value = saved[key]
		}
		unsaved := hasDraft && value != saved[key]

		var input g.Node
		if key == "about_text" || key == "hero_subtitle" {
			input = Textarea(ID(key), Name("value"), g.Attr("rows", "4"), g.Text(value))
		} else {
			input = Input(Type("text"), ID(key), Name("value"), Value(value))
		}

		nodes = append(nodes, Form(Method("post"), Action("/admin/content/draft"), Class("content-field"),
			hiddenInput("key", key),
			Label(For(key), g.Text(KeyLabel(key)),
				g.If(unsaved, Span(Class("unsaved"), g.Text(" ● unsaved"))),
			),
			input,
			Div(Class("button-row"),
				Button(Type("submit"), Class("btn btn-small btn-ghost"), g.Text("Keep Draft")),
				Button(Type("submit"), g.Attr("formaction", "/admin/content/"+key+"/save"), Class("btn btn-small btn-primary"),
					g.Text("Save")),
			),
		))
	}
	return g.Group(nodes)
}

func imageFields(saved map[string]string) g.Node {
	nodes := make([]g.Node, 0, len(service.ImageKeys))
	for _, key := range service.ImageKeys {
		url := saved[key]
		nodes = append(nodes, Form(Method("post"), Action("/admin/content/"+key+"/image"),
			g.Attr("enctype", "multipart/form-data"), Class("content-field"),
			Label(For(key), g.Text(KeyLabel(key))),
			g.If(url != "", Img(Src(url), Alt(KeyLabel(key)), Class("preview"))),
			g.If(url == "", P(Class("muted small"), g.Text("No image uploaded"))),
			Input(Type("file"), ID(key), Name("image_file"), g.Attr("accept", "image/*"), Required()),
			Button(Type("submit"), Class("btn btn-small btn-primary"), Data("disable-on-submit", "Uploading..."),
				g.Text("Upload")),
		))
	}
	return g.Group(nodes)
}
