// Package render writes gomponents pages and carries flash messages across
// redirects in the session.
package render

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/alexedwards/scs/v2"
	g "github.com/maragudk/gomponents"
)

// Flash types.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashWarning = "warning"
	FlashInfo    = "info"
)

const (
	sessionKeyFlash     = "flash"
	sessionKeyFlashType = "flash_type"
)

// Flash is a one-shot message shown on the next rendered page.
type Flash struct {
	Message string
	Type    string
}

// Empty reports whether there is nothing to show.
func (f Flash) Empty() bool {
	return f.Message == ""
}

// Renderer writes pages and manages flash messages.
type Renderer struct {
	sessionManager *scs.SessionManager
}

// New creates a Renderer. sm may be nil, in which case flashes are dropped.
func New(sm *scs.SessionManager) *Renderer {
	return &Renderer{sessionManager: sm}
}

// SetFlash sets a flash message in the session.
func (r *Renderer) SetFlash(req *http.Request, message, flashType string) {
	if r.sessionManager == nil {
		return
	}
	r.sessionManager.Put(req.Context(), sessionKeyFlash, message)
	r.sessionManager.Put(req.Context(), sessionKeyFlashType, flashType)
}

// PopFlash removes and returns the pending flash message.
func (r *Renderer) PopFlash(req *http.Request) Flash {
	if r.sessionManager == nil {
		return Flash{}
	}
	msg := r.sessionManager.PopString(req.Context(), sessionKeyFlash)
	if msg == "" {
		return Flash{}
	}
	typ := r.sessionManager.PopString(req.Context(), sessionKeyFlashType)
	if typ == "" {
		typ = FlashInfo
	}
	return Flash{Message: msg, Type: typ}
}

// Page renders node with the given status. The node is rendered into a
// buffer first so a rendering error never produces a half-written page.
func (r *Renderer) Page(w http.ResponseWriter, status int, node g.Node) error {
	buf := new(bytes.Buffer)
	if err := node.Render(buf); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
