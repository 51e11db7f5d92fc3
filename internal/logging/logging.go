// Package logging builds the application logger: a tint console handler for
// humans, fanned out to an in-memory ring buffer that the /api/logs endpoint
// serves back for quick in-app diagnostics.
package logging

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/lmittmann/tint"
)

// Entry is one captured log record.
type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// Recorder keeps the most recent log entries in a fixed-size ring buffer.
// Safe for concurrent use.
type Recorder struct {
	mu   sync.Mutex
	buf  []Entry
	next int
	full bool
}

// NewRecorder creates a recorder that retains up to size entries.
func NewRecorder(size int) *Recorder {
	if size < 1 {
		size = 1
	}
	return &Recorder{buf: make([]Entry, size)}
}

func (r *Recorder) add(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buf[r.next] = e
	r.next++
	if r.next == len(r.buf) {
		r.next = 0
		r.full = true
	}
}

// Recent returns up to limit entries, newest first, optionally filtered by
// level ("debug", "info", "warn", "error"). An empty level matches everything.
func (r *Recorder) Recent(level string, limit int) []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.next
	if r.full {
		n = len(r.buf)
	}
	level = strings.ToLower(level)

	out := make([]Entry, 0, limit)
	for i := 0; i < n && len(out) < limit; i++ {
		// Walk backwards from the most recently written slot.
		idx := (r.next - 1 - i + len(r.buf)) % len(r.buf)
		e := r.buf[idx]
		if level != "" && e.Level != level {
			continue
		}
		out = append(out, e)
	}
	return out
}

// recordHandler is a slog.Handler that copies every record into a Recorder.
type recordHandler struct {
	rec *Recorder
}

func (h recordHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.rec.add(Entry{
		Time:    r.Time,
		Level:   strings.ToLower(r.Level.String()),
		Message: r.Message,
	})
	return nil
}

func (h recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordHandler) WithGroup(string) slog.Handler      { return h }

// fanoutHandler dispatches each record to all wrapped handlers.
type fanoutHandler struct {
	handlers []slog.Handler
}

func (h fanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, inner := range h.handlers {
		if inner.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h fanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var firstErr error
	for _, inner := range h.handlers {
		if !inner.Enabled(ctx, r.Level) {
			continue
		}
		if err := inner.Handle(ctx, r.Clone()); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (h fanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		out[i] = inner.WithAttrs(attrs)
	}
	return fanoutHandler{handlers: out}
}

func (h fanoutHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(h.handlers))
	for i, inner := range h.handlers {
		out[i] = inner.WithGroup(name)
	}
	return fanoutHandler{handlers: out}
}

// ParseLevel maps a config string to a slog.Level, defaulting to info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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

// New builds the application logger and its recorder. Console output goes to
// stderr at the given level; the recorder captures every record regardless of
// level so error history survives a quieter console setting.
func New(level string, bufferSize int) (*slog.Logger, *Recorder) {
	rec := NewRecorder(bufferSize)
	console := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      ParseLevel(level),
		TimeFormat: time.Kitchen,
	})
	logger := slog.New(fanoutHandler{handlers: []slog.Handler{console, recordHandler{rec: rec}}})
	return logger, rec
}
