package logger

import (
	"context"
	"log/slog"
	"sync"
)

// LogEntry represents a simplified log record for testing
type LogEntry map[string]any

// CaptureHandler is a memory-backed slog.Handler for tests that need to
// assert on emitted log records.
type CaptureHandler struct {
	mu      *sync.Mutex
	entries *[]LogEntry
	attrs   []slog.Attr
}

// NewCaptureHandler creates an empty CaptureHandler.
func NewCaptureHandler() *CaptureHandler {
	return &CaptureHandler{
		mu:      &sync.Mutex{},
		entries: &[]LogEntry{},
	}
}

// NewCaptureLogger returns a logger backed by a new CaptureHandler.
func NewCaptureLogger() (*slog.Logger, *CaptureHandler) {
	h := NewCaptureHandler()
	return slog.New(h), h
}

// Enabled satisfies slog.Handler; every level is captured.
func (h *CaptureHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

// Handle satisfies slog.Handler
func (h *CaptureHandler) Handle(_ context.Context, r slog.Record) error {
	entry := make(LogEntry)
	entry["level"] = r.Level.String()
	entry["message"] = r.Message

	for _, attr := range h.attrs {
		entry[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	h.mu.Lock()
	*h.entries = append(*h.entries, entry)
	h.mu.Unlock()
	return nil
}

// WithAttrs satisfies slog.Handler; attributes are flattened into each entry.
func (h *CaptureHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	merged = append(merged, attrs...)
	return &CaptureHandler{mu: h.mu, entries: h.entries, attrs: merged}
}

// WithGroup satisfies slog.Handler; groups are ignored.
func (h *CaptureHandler) WithGroup(_ string) slog.Handler {
	return h
}

// Entries returns a copy of all captured log entries
func (h *CaptureHandler) Entries() []LogEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]LogEntry, len(*h.entries))
	copy(out, *h.entries)
	return out
}

// Messages returns the messages of captured entries at the given level
// ("DEBUG", "INFO", "WARN", "ERROR"), or of all entries when level is empty.
func (h *CaptureHandler) Messages(level string) []string {
	var msgs []string
	for _, e := range h.Entries() {
		if level == "" || e["level"] == level {
			msgs = append(msgs, e["message"].(string))
		}
	}
	return msgs
}
