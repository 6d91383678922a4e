// Package statusbar renders the one-line footer of the calendar UI.
package statusbar

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"tableflip.dev/tickal/pkg/tui/theme"
)

// Mode represents the UI mode that influences footer layout.
type Mode int

const (
	ModeNormal Mode = iota
	ModeDragging
)

// Model tracks footer/help/status rendering state.
type Model struct {
	mode       Mode
	helpLine   string
	statusLine string
	level      slog.Level
	context    string
	seq        int
}

var (
	footer       = theme.Default().Footer
	helpStyle    = footer.Help
	statusStyle  = footer.Status
	warnStyle    = footer.Warn
	errorStyle   = footer.Error
	contextStyle = footer.Context
	dragStyle    = footer.Drag
)

// New returns a footer model with sensible defaults.
func New() Model {
	return Model{mode: ModeNormal, level: slog.LevelInfo}
}

// SetMode updates the visual mode.
func (m *Model) SetMode(mode Mode) {
	m.mode = mode
}

// Mode returns the current mode.
func (m Model) Mode() Mode {
	return m.mode
}

// SetHelp sets the contextual help line.
func (m *Model) SetHelp(help string) {
	m.helpLine = help
}

// SetContext sets the view summary, e.g. "month · due".
func (m *Model) SetContext(ctx string) {
	m.context = ctx
}

// SetStatus shows an informational message and returns its sequence
// number, used to fade only the message that is still showing.
func (m *Model) SetStatus(status string) int {
	return m.SetStatusLevel(status, slog.LevelInfo)
}

// SetStatusLevel shows a message styled by level.
func (m *Model) SetStatusLevel(status string, level slog.Level) int {
	m.statusLine = status
	m.level = level
	m.seq++
	return m.seq
}

// Status returns the message currently shown.
func (m Model) Status() string {
	return m.statusLine
}

// Fade clears the status if seq is still the latest message.
func (m *Model) Fade(seq int) {
	if seq == m.seq {
		m.statusLine = ""
		m.level = slog.LevelInfo
	}
}

// View renders the footer line.
func (m Model) View() string {
	var segments []string
	if m.mode == ModeDragging {
		segments = append(segments, dragStyle.Render(" DRAG "))
	}
	if m.statusLine != "" {
		segments = append(segments, m.statusStyle().Render(m.statusLine))
	} else if m.helpLine != "" {
		segments = append(segments, helpStyle.Render(m.helpLine))
	}
	if m.context != "" {
		segments = append(segments, contextStyle.Render(m.context))
	}
	if len(segments) == 0 {
		return " "
	}
	return strings.Join(segments, " │ ")
}

func (m Model) statusStyle() lipgloss.Style {
	switch {
	case m.level >= slog.LevelError:
		return errorStyle
	case m.level >= slog.LevelWarn:
		return warnStyle
	default:
		return statusStyle
	}
}
