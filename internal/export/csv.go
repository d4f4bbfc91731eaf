// Package export renders contact submissions for use outside the back office.
package export

import (
	"io"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// DateLayout is the timestamp format used in exports.
const DateLayout = "2006-01-02 15:04:05"

var csvHeader = []string{"Name", "Email", "Phone", "Event Type", "Message", "Status", "Date"}

// WriteSubmissionsCSV writes a header and one row per submission. Every field
// is quoted, embedded quotes are doubled and rows end with a bare newline
// separator (no trailing newline).
func WriteSubmissionsCSV(w io.Writer, subs []store.ContactSubmission) error {
	var b strings.Builder
	writeRow(&b, csvHeader)
	for _, s := range subs {
		b.WriteByte('\n')
		writeRow(&b, []string{
			s.Name,
			s.Email,
			s.Phone,
			s.EventType,
			s.Message,
			s.Status,
			s.CreatedAt.UTC().Format(DateLayout),
		})
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeRow(b *strings.Builder, fields []string) {
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(f, `"`, `""`))
		b.WriteByte('"')
	}
}
