// Package tui is the interactive calendar: a bubbletea program that
// renders the calendar views and reschedules tickets by keyboard drag and
// drop.
package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/store"
	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
	"tableflip.dev/tickal/pkg/tui/statusbar"
)

// Source is where the calendar reads tickets and change events from.
type Source interface {
	Query(ctx context.Context, f app.Filter) []*ticket.Ticket
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// Options configure a Model.
type Options struct {
	Source     Source
	Controller *reschedule.Controller
	Config     calendar.ViewConfig
	Filter     app.Filter
	Clock      clock.Clock
	Logger     *slog.Logger
}

// Model is the bubbletea model of the calendar.
type Model struct {
	ctx    context.Context
	src    Source
	ctrl   *reschedule.Controller
	cfg    calendar.ViewConfig
	filter app.Filter
	clock  clock.Clock
	logger *slog.Logger

	tickets []*ticket.Ticket
	view    calendar.View
	viewErr error
	loaded  bool

	// row and col address the focused grid cell, or the list row and
	// owner column.
	row, col int
	pick     int

	keys   keyMap
	help   help.Model
	status statusbar.Model
	width  int
	height int
}

type ticketsMsg struct {
	tickets []*ticket.Ticket
}

type watchMsg struct {
	events <-chan store.Event
}

type changedMsg struct {
	events <-chan store.Event
}

type commitMsg struct {
	move reschedule.Move
	err  error
}

// New returns a model showing o.Config. The controller is required.
func New(ctx context.Context, o Options) Model {
	m := Model{
		ctx:    ctx,
		src:    o.Source,
		ctrl:   o.Controller,
		cfg:    o.Config,
		filter: o.Filter,
		clock:  clock.Or(o.Clock),
		logger: o.Logger,
		keys:   defaultKeys(),
		help:   help.New(),
		status: statusbar.New(),
	}
	if m.ctrl == nil {
		m.ctrl = &reschedule.Controller{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.status.SetHelp(m.help.ShortHelpView(m.keys.ShortHelp()))
	m.rebuild()
	m.focusAnchor()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.watch())
}

func (m Model) load() tea.Cmd {
	src, ctx, f := m.src, m.ctx, m.filter
	return func() tea.Msg {
		if src == nil {
			return ticketsMsg{}
		}
		return ticketsMsg{tickets: src.Query(ctx, f)}
	}
}

func (m Model) watch() tea.Cmd {
	src, ctx, logger := m.src, m.ctx, m.logger
	return func() tea.Msg {
		if src == nil {
			return nil
		}
		events, err := src.Watch(ctx)
		if err != nil {
			logger.Warn("live reload unavailable", "err", err)
			return nil
		}
		if events == nil {
			return nil
		}
		return watchMsg{events: events}
	}
}

func waitForChange(events <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-events; !ok {
			return nil
		}
		return changedMsg{events: events}
	}
}

func (m Model) commit(mv reschedule.Move) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return commitMsg{move: mv, err: ctrl.Commit(ctx, mv)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case ticketsMsg:
		m.tickets = msg.tickets
		m.loaded = true
		m.rebuild()
		return m, nil

	case watchMsg:
		return m, waitForChange(msg.events)

	case changedMsg:
		return m, tea.Batch(m.load(), waitForChange(msg.events))

	case commitMsg:
		return m.committed(msg)

	case statusMsg:
		seq := m.status.SetStatusLevel(msg.Text, msg.Level)
		return m, fadeAfter(seq)

	case fadeMsg:
		m.status.Fade(msg.Seq)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) committed(msg commitMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.rebuild()
		seq := m.status.SetStatusLevel(fmt.Sprintf("%q stays put: %v", msg.move.Title, msg.err), slog.LevelError)
		return m, tea.Batch(fadeAfter(seq), m.load())
	}
	// Apply the result locally so the ticket does not flash back to its
	// old cell before the reload lands.
	for i, t := range m.tickets {
		if t != nil && t.ID == msg.move.TicketID {
			cp := t.Clone()
			cp.DueDate = ticket.At(msg.move.To)
			m.tickets[i] = cp
		}
	}
	m.rebuild()
	seq := m.status.SetStatus(fmt.Sprintf("moved %q to %s", msg.move.Title, msg.move.To.Format("Mon Jan 2 15:04")))
	return m, tea.Batch(fadeAfter(seq), m.load())
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.ctrl.Cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Cancel):
		if m.dragging() {
			m.ctrl.Cancel()
			m.status.SetMode(statusbar.ModeNormal)
			return m.flash("drag cancelled", slog.LevelInfo)
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1, 0)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(0, -1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(0, 1)
	case key.Matches(msg, m.keys.Next):
		return m.navigate(calendar.Advance)
	case key.Matches(msg, m.keys.Prev):
		return m.navigate(calendar.Retreat)
	case key.Matches(msg, m.keys.Today):
		m.cfg.Anchor = m.clock.Now()
		m.rebuild()
		m.focusAnchor()
	case key.Matches(msg, m.keys.Day):
		m.setGranularity(calendar.Day)
	case key.Matches(msg, m.keys.Week):
		m.setGranularity(calendar.Week)
	case key.Matches(msg, m.keys.Month):
		m.setGranularity(calendar.Month)
	case key.Matches(msg, m.keys.Year):
		m.setGranularity(calendar.Year)
	case key.Matches(msg, m.keys.List):
		m.setGranularity(calendar.List)
	case key.Matches(msg, m.keys.Field):
		m.cancelDrag()
		m.cfg.DateField = m.cfg.DateField.Next()
		m.rebuild()
		m.focusAnchor()
		return m.flash("keyed on "+m.cfg.DateField.Label()+" date", slog.LevelInfo)
	case key.Matches(msg, m.keys.Business):
		m.cfg.BusinessHoursOnly = !m.cfg.BusinessHoursOnly
		m.rebuild()
		m.focusAnchor()
	case key.Matches(msg, m.keys.Weekends):
		m.cfg.IncludeWeekends = !m.cfg.IncludeWeekends
		m.rebuild()
		m.focusAnchor()
	case key.Matches(msg, m.keys.Cycle):
		if n := len(m.focusedTickets()); n > 0 {
			m.pick = (m.pick + 1) % n
		}
	case key.Matches(msg, m.keys.Pick):
		return m.pickUp()
	case key.Matches(msg, m.keys.Drop):
		return m.drop()
	}
	return m, nil
}

func (m Model) flash(text string, level slog.Level) (tea.Model, tea.Cmd) {
	seq := m.status.SetStatusLevel(text, level)
	return m, fadeAfter(seq)
}

func (m Model) navigate(step func(calendar.ViewConfig) (calendar.ViewConfig, error)) (tea.Model, tea.Cmd) {
	cfg, err := step(m.cfg)
	if err != nil {
		return m.flash(err.Error(), slog.LevelError)
	}
	m.cfg = cfg
	m.rebuild()
	m.focusAnchor()
	m.hover()
	return m, nil
}

func (m *Model) setGranularity(g calendar.Granularity) {
	if g == calendar.List {
		m.cancelDrag()
	}
	m.cfg.Granularity = g
	m.rebuild()
	m.focusAnchor()
	m.hover()
}

func (m Model) pickUp() (tea.Model, tea.Cmd) {
	if m.dragging() {
		return m, nil
	}
	if m.cfg.Granularity == calendar.List {
		return m.flash("pick tickets up from a calendar grid", slog.LevelWarn)
	}
	t := m.focusedTicket()
	if t == nil {
		return m.flash("nothing here to pick up", slog.LevelInfo)
	}
	if err := m.ctrl.Begin(m.cfg, t); err != nil {
		if errors.Is(err, reschedule.ErrNotDraggable) {
			return m.flash("only due dates can be rescheduled, press f to switch", slog.LevelWarn)
		}
		return m.flash(err.Error(), slog.LevelError)
	}
	m.status.SetMode(statusbar.ModeDragging)
	m.hover()
	return m.flash(fmt.Sprintf("moving %q, enter drops, esc cancels", t.Title), slog.LevelInfo)
}

func (m Model) drop() (tea.Model, tea.Cmd) {
	if !m.dragging() {
		return m, nil
	}
	cell, ok := m.focusedCell()
	if !ok {
		return m, nil
	}
	mv, err := m.ctrl.Drop(cell)
	m.status.SetMode(statusbar.ModeNormal)
	if err != nil {
		return m.flash("cannot drop there, drag cancelled", slog.LevelWarn)
	}
	m.rebuild()
	seq := m.status.SetStatus(fmt.Sprintf("moving %q to %s…", mv.Title, mv.To.Format("Mon Jan 2 15:04")))
	return m, tea.Batch(fadeAfter(seq), m.commit(mv))
}

func (m *Model) cancelDrag() {
	if m.dragging() {
		m.ctrl.Cancel()
		m.status.SetMode(statusbar.ModeNormal)
	}
}

func (m Model) dragging() bool {
	return m.ctrl.State() != reschedule.Idle
}

// hover tells the controller about the focused cell while dragging.
func (m *Model) hover() {
	if !m.dragging() {
		return
	}
	cell, ok := m.focusedCell()
	if !ok {
		return
	}
	if err := m.ctrl.Hover(cell); errors.Is(err, reschedule.ErrInvalidTarget) {
		m.status.SetStatusLevel("cannot drop here", slog.LevelWarn)
	}
}

func (m *Model) rebuild() {
	v, err := calendar.Build(m.cfg, m.ctrl.Overlay(m.tickets))
	m.view = v
	// Shown in place of the grid. Logging here would send to the program
	// from its own event loop.
	m.viewErr = err
	m.status.SetContext(m.context())
	m.clamp()
}

func (m Model) bounds() (rows, cols int) {
	if m.cfg.Granularity == calendar.List {
		if m.view.List == nil {
			return 0, 0
		}
		return len(m.view.List.Rows), max(1, len(m.view.List.Owners))
	}
	return m.view.Grid.Rows, m.view.Grid.Columns
}

func (m *Model) clamp() {
	rows, cols := m.bounds()
	m.row = min(max(m.row, 0), max(rows-1, 0))
	m.col = min(max(m.col, 0), max(cols-1, 0))
	if n := len(m.focusedTickets()); m.pick >= n {
		m.pick = 0
	}
}

func (m *Model) moveCursor(dr, dc int) {
	m.row += dr
	m.col += dc
	m.pick = 0
	m.clamp()
	m.hover()
}

// focusAnchor puts the cursor on the cell holding the anchor.
func (m *Model) focusAnchor() {
	m.row, m.col, m.pick = 0, 0, 0
	anchor := m.cfg.Anchor
	if m.cfg.Granularity == calendar.List {
		if m.view.List != nil {
			for i, r := range m.view.List.Rows {
				if !r.Date.Before(timeutil.StartOfDay(anchor)) {
					m.row = i
					break
				}
			}
		}
		m.clamp()
		return
	}

	content := m.view.Grid.Content()
	if len(content) == 0 {
		return
	}
	target := content[0]
	if c, ok := m.view.Grid.Find(calendar.BucketKey(anchor, m.cfg.Granularity)); ok {
		target = c
	} else {
		for _, c := range content {
			if timeutil.SameDay(c.Start, anchor) {
				target = c
				break
			}
		}
	}
	m.row, m.col = target.Row, target.Col
	m.clamp()
}

func (m Model) focusedCell() (calendar.Cell, bool) {
	if m.cfg.Granularity == calendar.List {
		return calendar.Cell{}, false
	}
	return m.view.Grid.At(m.row, m.col)
}

// focusedTickets are the tickets the focused cell shows.
func (m Model) focusedTickets() []*ticket.Ticket {
	if m.cfg.Granularity == calendar.List {
		if m.view.List == nil || m.row >= len(m.view.List.Rows) {
			return nil
		}
		cells := m.view.List.Rows[m.row].Cells
		if m.col >= len(cells) {
			return nil
		}
		return cells[m.col]
	}
	cell, ok := m.focusedCell()
	if !ok {
		return nil
	}
	shown, _ := m.view.Buckets.Display(cell)
	return shown
}

func (m Model) focusedTicket() *ticket.Ticket {
	tickets := m.focusedTickets()
	if m.pick < len(tickets) {
		return tickets[m.pick]
	}
	return nil
}

// Config returns the current view configuration.
func (m Model) Config() calendar.ViewConfig {
	return m.cfg
}

// Run starts the program and blocks until the user quits. Messages sent
// through bridge reach the program while it runs.
func Run(ctx context.Context, o Options, bridge *Bridge) error {
	p := tea.NewProgram(New(ctx, o), tea.WithAltScreen(), tea.WithContext(ctx))
	bridge.SetProgram(p)
	defer bridge.SetProgram(nil)
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) now() time.Time {
	return m.clock.Now()
}
