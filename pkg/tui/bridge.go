package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusFadeDelay is how long a message stays in the status bar.
const statusFadeDelay = 5 * time.Second

// Bridge delivers log records from outside the event loop into a running
// program. Messages sent
// before SetProgram are dropped.
type Bridge struct {
	program atomic.Pointer[tea.Program]
}

// SetProgram sets the program that receives messages. Safe to call from
// any goroutine.
func (b *Bridge) SetProgram(p *tea.Program) {
	b.program.Store(p)
}

func (b *Bridge) send(msg tea.Msg) {
	if b == nil {
		return
	}
	if p := b.program.Load(); p != nil {
		p.Send(msg)
	}
}

// statusMsg puts a message in the status bar.
type statusMsg struct {
	Text  string
	Level slog.Level
}

// fadeMsg clears status message Seq if it is still showing.
type fadeMsg struct {
	Seq int
}

func fadeAfter(seq int) tea.Cmd {
	return tea.Tick(statusFadeDelay, func(time.Time) tea.Msg {
		return fadeMsg{Seq: seq}
	})
}

// LogHandler is a slog.Handler that shows records at or above its level
// in the status bar. Handlers derived with WithAttrs or WithGroup share
// the bridge.
type LogHandler struct {
	level  slog.Level
	bridge *Bridge
	attrs  []slog.Attr
	groups []string
}

// NewLogHandler returns a handler delivering through b.
func NewLogHandler(level slog.Level, b *Bridge) *LogHandler {
	return &LogHandler{level: level, bridge: b}
}

func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats the record as "message (key=value, ...)".
func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	h.bridge.send(statusMsg{Text: h.summary(record), Level: record.Level})
	return nil
}

func (h *LogHandler) summary(record slog.Record) string {
	prefix := ""
	if len(h.groups) > 0 {
		prefix = strings.Join(h.groups, ".") + "."
	}
	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{
		level:  h.level,
		bridge: h.bridge,
		attrs:  append(cloneSlice(h.attrs), attrs...),
		groups: cloneSlice(h.groups),
	}
}

func (h *LogHandler) WithGroup(name string) slog.Handler {
	return &LogHandler{
		level:  h.level,
		bridge: h.bridge,
		attrs:  cloneSlice(h.attrs),
		groups: append(cloneSlice(h.groups), name),
	}
}

func cloneSlice[T any](source []T) []T {
	if source == nil {
		return nil
	}
	out := make([]T, len(source))
	copy(out, source)
	return out
}
