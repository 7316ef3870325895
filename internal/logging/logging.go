// Package logging provides the host logging sink: a single Log operation,
// backed by log/slog for command-line use.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// Logger is the sink the assembler reports through.
type Logger interface {
	Log(msg string)
}

// LoggerFunc adapts a plain function to Logger.
type LoggerFunc func(msg string)

// Log implements Logger.
func (f LoggerFunc) Log(msg string) { f(msg) }

// Discard drops every message.
var Discard Logger = LoggerFunc(func(string) {})

// Slog writes messages as slog records at a fixed level.
type Slog struct {
	logger *slog.Logger
	level  slog.Level
}

// New builds a slog-backed sink writing to w. format "json" selects the JSON
// handler; anything else the text handler. Records below minLevel are
// dropped, but Log emits at info or minLevel, whichever is higher, so run
// reports and dry-run content always reach w.
func New(w io.Writer, format string, minLevel slog.Level) *Slog {
	opts := &slog.HandlerOptions{Level: minLevel}
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return FromSlog(slog.New(handler), max(slog.LevelInfo, minLevel))
}

// FromSlog wraps an existing slog logger; messages are emitted at level.
func FromSlog(l *slog.Logger, level slog.Level) *Slog {
	return &Slog{logger: l, level: level}
}

// Log implements Logger.
func (s *Slog) Log(msg string) {
	s.logger.Log(context.Background(), s.level, msg)
}

// Slog returns the underlying slog logger.
func (s *Slog) Slog() *slog.Logger {
	return s.logger
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
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

// Recorder keeps every message in memory.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

// Log implements Logger.
func (r *Recorder) Log(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
}

// Messages returns a copy of the recorded messages in order.
func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.messages...)
}
