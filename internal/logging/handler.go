// Package logging builds the process logger. Records at WARN and above are
// also counted per level so alert rules can fire on error bursts.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

// Recorder receives one call per counted record.
type Recorder interface {
	LogRecorded(level string)
}

// CountingHandler is a slog.Handler that wraps another handler and reports
// WARN and ERROR records to a Recorder.
type CountingHandler struct {
	inner    slog.Handler
	recorder Recorder
	level    slog.Level // Minimum level to count (default: WARN)
}

// NewCountingHandler creates a CountingHandler that wraps the given handler.
func NewCountingHandler(inner slog.Handler, rec Recorder) *CountingHandler {
	return &CountingHandler{
		inner:    inner,
		recorder: rec,
		level:    slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *CountingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *CountingHandler) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= h.level && h.recorder != nil {
		h.recorder.LogRecorded(levelName(r.Level))
	}
	return h.inner.Handle(ctx, r)
}

// WithAttrs implements slog.Handler.
func (h *CountingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &CountingHandler{
		inner:    h.inner.WithAttrs(attrs),
		recorder: h.recorder,
		level:    h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *CountingHandler) WithGroup(name string) slog.Handler {
	return &CountingHandler{
		inner:    h.inner.WithGroup(name),
		recorder: h.recorder,
		level:    h.level,
	}
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warn"
	default:
		return "info"
	}
}

// ParseLevel maps a config value to a slog level. Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New returns a logger writing to w. Development gets human-readable text;
// everything else gets JSON.
func New(w io.Writer, level slog.Level, dev bool, rec Recorder) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}

	var inner slog.Handler
	if dev {
		inner = slog.NewTextHandler(w, opts)
	} else {
		inner = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewCountingHandler(inner, rec))
}
