package render

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexedwards/scs/v2"
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRequest(t *testing.T, sm *scs.SessionManager) *http.Request {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ctx, err := sm.Load(context.Background(), "")
	require.NoError(t, err)
	return req.WithContext(ctx)
}

func TestFlash(t *testing.T) {
	sm := scs.New()
	r := New(sm)
	req := sessionRequest(t, sm)

	assert.True(t, r.PopFlash(req).Empty())

	r.SetFlash(req, "Event approved", FlashSuccess)
	f := r.PopFlash(req)
	assert.Equal(t, Flash{Message: "Event approved", Type: FlashSuccess}, f)
	assert.True(t, r.PopFlash(req).Empty(), "flash is shown once")
}

func TestFlash_DefaultType(t *testing.T) {
	sm := scs.New()
	r := New(sm)
	req := sessionRequest(t, sm)

	sm.Put(req.Context(), sessionKeyFlash, "hello")
	assert.Equal(t, FlashInfo, r.PopFlash(req).Type)
}

func TestFlash_NoSessionManager(t *testing.T) {
	r := New(nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	r.SetFlash(req, "ignored", FlashError)
	assert.True(t, r.PopFlash(req).Empty())
}

type failingNode struct{}

func (failingNode) Render(io.Writer) error { return errors.New("boom") }

func TestPage(t *testing.T) {
	r := New(nil)

	rr := httptest.NewRecorder()
	require.NoError(t, r.Page(rr, http.StatusCreated, Div(Class("x"), g.Text("<hi>"))))
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `<div class="x">&lt;hi&gt;</div>`, rr.Body.String())

	rr = httptest.NewRecorder()
	assert.Error(t, r.Page(rr, http.StatusOK, failingNode{}))
	assert.Empty(t, rr.Body.String())
}
