package export

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// ReplySubject is the subject line of every enquiry reply.
const ReplySubject = "Re: Your Enquiry — Bharat Abroad"

// ReplyBody wraps reply in the standard greeting and signature.
func ReplyBody(name, reply string) string {
	return fmt.Sprintf("Dear %s,\n\n%s\n\nWarm regards,\nBharat Abroad Team", name, reply)
}

// ReplyMailto builds a mailto URI that opens a reply to sub in the admin's
// mail client.
func ReplyMailto(sub store.ContactSubmission, reply string) string {
	return "mailto:" + url.PathEscape(sub.Email) +
		"?subject=" + encodeComponent(ReplySubject) +
		"&body=" + encodeComponent(ReplyBody(sub.Name, reply))
}

// encodeComponent percent-encodes s for a URI query value, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
