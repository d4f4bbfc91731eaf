package views

import (
	"bytes"

	g "github.com/maragudk/gomponents"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
)

var (
	md       = goldmark.New()
	mdPolicy = bluemonday.UGCPolicy()
)

// Markdown renders admin-authored markdown as sanitized HTML. Plain text
// comes out as a single paragraph.
func Markdown(src string) g.Node {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return g.Text(src)
	}
	return g.Raw(mdPolicy.SanitizeReader(&buf).String())
}
