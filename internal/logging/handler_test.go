package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

type countRecorder map[string]int

func (c countRecorder) LogRecorded(level string) { c[level]++ }

// discardHandler is a slog.Handler that discards all logs.
type discardHandler struct{}

func (h discardHandler) Enabled(context.Context, slog.Level) bool  { return true }
func (h discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return h }
func (h discardHandler) WithGroup(string) slog.Handler             { return h }

func TestCountingHandler_CountsWarnAndAbove(t *testing.T) {
	rec := countRecorder{}
	logger := slog.New(NewCountingHandler(discardHandler{}, rec))

	logger.Info("started")
	logger.Warn("slow fetch")
	logger.Error("fetch failed")
	logger.Error("fetch failed again")

	assert.Equal(t, 1, rec["warn"])
	assert.Equal(t, 2, rec["error"])
	assert.Zero(t, rec["info"])
}

func TestCountingHandler_WithAttrsKeepsRecorder(t *testing.T) {
	rec := countRecorder{}
	logger := slog.New(NewCountingHandler(discardHandler{}, rec)).With("component", "chat").WithGroup("req")

	logger.Warn("upstream slow")

	assert.Equal(t, 1, rec["warn"])
}

func TestCountingHandler_NilRecorder(t *testing.T) {
	logger := slog.New(NewCountingHandler(discardHandler{}, nil))
	assert.NotPanics(t, func() { logger.Error("boom") })
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew_Format(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, slog.LevelInfo, false, nil).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), `"msg":"hello"`)

	buf.Reset()
	New(&buf, slog.LevelInfo, true, nil).Info("hello", "k", "v")
	assert.Contains(t, buf.String(), "msg=hello")

	buf.Reset()
	New(&buf, slog.LevelWarn, true, nil).Info("hidden")
	assert.Empty(t, buf.String())
}
