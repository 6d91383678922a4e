package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
	"tableflip.dev/tickal/pkg/tui/theme"
)

var (
	th               = theme.Default()
	titleStyle       = th.Calendar.Title
	headerStyle      = th.Calendar.Header
	labelStyle       = th.Calendar.Label
	todayStyle       = th.Calendar.Today
	placeholderStyle = th.Calendar.Placeholder
	emptyStyle       = th.Calendar.Empty
	moreStyle        = th.Calendar.More
	focusStyle       = th.Calendar.Focus
	dropStyle        = th.Calendar.Drop
	errorStyle       = th.Calendar.Error
	draggedStyle     = th.Ticket.Dragged
	urgentStyle      = th.Ticket.Urgent
	highStyle        = th.Ticket.High
	resolvedStyle    = th.Ticket.Resolved
)

const (
	hourLabelWidth = 5
	yearCellWidth  = 4
	listDateWidth  = 10
)

func (m Model) View() string {
	if !m.loaded {
		return "loading tickets…"
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title()))
	b.WriteString("\n\n")
	if m.viewErr != nil {
		b.WriteString(errorStyle.Render(m.viewErr.Error()))
	} else {
		switch m.cfg.Granularity {
		case calendar.Day:
			b.WriteString(m.renderGrid([]string{m.cfg.Anchor.Local().Format("Monday")}, m.hourLabel, false))
		case calendar.Week:
			b.WriteString(m.renderGrid(m.weekHeaders(), m.hourLabel, false))
		case calendar.Month:
			b.WriteString(m.renderGrid([]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}, nil, true))
		case calendar.Year:
			b.WriteString(m.renderYear())
		case calendar.List:
			b.WriteString(m.renderList())
		}
	}
	b.WriteString("\n\n")
	b.WriteString(m.renderDetail())
	b.WriteString("\n")
	b.WriteString(m.status.View())
	if m.help.ShowAll {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}
	return b.String()
}

func (m Model) title() string {
	anchor := m.cfg.Anchor.Local()
	switch m.cfg.Granularity {
	case calendar.Day:
		return anchor.Format("Monday, January 2 2006")
	case calendar.Week:
		return "Week of " + timeutil.StartOfWeek(anchor).Format("January 2 2006")
	case calendar.Month:
		return anchor.Format("January 2006")
	case calendar.Year:
		return anchor.Format("2006")
	case calendar.List:
		if m.view.List != nil {
			return m.view.List.Start.Format("Jan 2") + " – " + m.view.List.End.Format("Jan 2 2006")
		}
	}
	return ""
}

// context is the view summary shown in the status bar.
func (m Model) context() string {
	parts := []string{m.cfg.Granularity.String(), "by " + m.cfg.DateField.Label()}
	if m.cfg.Draggable() {
		parts = append(parts, "drag on")
	}
	if m.cfg.BusinessHoursOnly && (m.cfg.Granularity == calendar.Day || m.cfg.Granularity == calendar.Week) {
		parts = append(parts, "business hours")
	}
	if m.cfg.Granularity == calendar.List && !m.cfg.IncludeWeekends {
		parts = append(parts, "weekdays")
	}
	if m.view.List != nil {
		parts = append(parts, fmt.Sprintf("%d tickets", m.view.List.Total()))
	} else {
		parts = append(parts, fmt.Sprintf("%d tickets", m.view.Buckets.Total()))
		if n := len(m.view.Buckets.Unscheduled); n > 0 {
			parts = append(parts, fmt.Sprintf("%d without %s date", n, m.cfg.DateField.Label()))
		}
	}
	return strings.Join(parts, " · ")
}

func (m Model) hourLabel(row int) string {
	hours := m.cfg.Hours()
	if row < len(hours) {
		return fmt.Sprintf("%02d:00", hours[row])
	}
	return ""
}

func (m Model) weekHeaders() []string {
	first := timeutil.StartOfWeek(m.cfg.Anchor)
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = timeutil.AddUnits(first, i, timeutil.Day).Format("Mon 2")
	}
	return headers
}

func (m Model) columnWidth(cols, labelWidth int) int {
	if m.width <= 0 {
		return 16
	}
	w := (m.width - labelWidth - cols) / cols
	return min(max(w, 6), 32)
}

// renderGrid draws day, week and month grids. Every ticket in a cell is
// listed; rows grow to fit the fullest cell.
func (m Model) renderGrid(headers []string, rowLabel func(int) string, dayLabels bool) string {
	g := m.view.Grid
	labelWidth := 0
	if rowLabel != nil {
		labelWidth = hourLabelWidth + 1
	}
	cw := m.columnWidth(g.Columns, labelWidth)

	var lines []string
	var hdr []string
	if rowLabel != nil {
		hdr = append(hdr, strings.Repeat(" ", hourLabelWidth))
	}
	for _, h := range headers {
		hdr = append(hdr, headerStyle.Render(pad(h, cw)))
	}
	lines = append(lines, strings.Join(hdr, " "))

	dragged := m.ctrl.Session().Ticket
	for r := 0; r < g.Rows; r++ {
		blocks := make([][]string, g.Columns)
		styles := make([]*lipgloss.Style, g.Columns)
		height := 1
		for c := 0; c < g.Columns; c++ {
			cell, ok := g.At(r, c)
			blocks[c] = m.cellLines(cell, ok, cw, dayLabels, dragged)
			styles[c] = m.cellStyle(r, c)
			height = max(height, len(blocks[c]))
		}
		for i := 0; i < height; i++ {
			var parts []string
			if rowLabel != nil {
				label := ""
				if i == 0 {
					label = rowLabel(r)
				}
				parts = append(parts, labelStyle.Render(pad(label, hourLabelWidth)))
			}
			for c := 0; c < g.Columns; c++ {
				line := ""
				if i < len(blocks[c]) {
					line = blocks[c][i]
				}
				line = pad(line, cw)
				if styles[c] != nil {
					line = styles[c].Render(line)
				}
				parts = append(parts, line)
			}
			lines = append(lines, strings.Join(parts, " "))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) cellLines(cell calendar.Cell, ok bool, cw int, dayLabel bool, dragged *ticket.Ticket) []string {
	if !ok {
		return nil
	}
	if cell.Placeholder {
		return []string{placeholderStyle.Render(cell.Label)}
	}
	var lines []string
	if dayLabel {
		style := labelStyle
		if timeutil.SameDay(cell.Start, m.now()) {
			style = todayStyle
		}
		lines = append(lines, style.Render(cell.Label))
	}
	shown, more := m.view.Buckets.Display(cell)
	for _, t := range shown {
		lines = append(lines, ticketLine(t, cw, dragged))
	}
	if more > 0 {
		lines = append(lines, moreStyle.Render(fmt.Sprintf("+%d more", more)))
	}
	if !dayLabel && len(shown) == 0 {
		lines = append(lines, emptyStyle.Render("·"))
	}
	return lines
}

// cellStyle highlights the focused cell; nil leaves the cell plain.
func (m Model) cellStyle(row, col int) *lipgloss.Style {
	if row != m.row || col != m.col {
		return nil
	}
	if m.dragging() {
		return &dropStyle
	}
	return &focusStyle
}

func ticketLine(t *ticket.Ticket, w int, dragged *ticket.Ticket) string {
	text := runewidth.Truncate(t.Status.Glyph().Symbol+" "+t.Title, w, "…")
	switch {
	case dragged != nil && dragged.ID == t.ID:
		return draggedStyle.Render(text)
	case t.Status.Resolved():
		return resolvedStyle.Render(text)
	case t.Priority == glyph.Urgent:
		return urgentStyle.Render(text)
	case t.Priority == glyph.High:
		return highStyle.Render(text)
	}
	return text
}

// renderYear draws twelve month columns of day markers. Tickets appear
// in the detail pane, capped per cell.
func (m Model) renderYear() string {
	g := m.view.Grid
	var lines []string
	hdr := []string{"  "}
	for c := 0; c < g.Columns; c++ {
		month := time.Month(c + 1).String()[:3]
		hdr = append(hdr, headerStyle.Render(pad(month, yearCellWidth)))
	}
	lines = append(lines, strings.Join(hdr, ""))

	for r := 0; r < g.Rows; r++ {
		parts := []string{labelStyle.Render(fmt.Sprintf("%2d", r+1))}
		for c := 0; c < g.Columns; c++ {
			cell, ok := g.At(r, c)
			text := ""
			switch {
			case !ok || cell.Placeholder:
			case m.view.Buckets.Count(cell) == 0:
				text = emptyStyle.Render("  ·")
			default:
				n := m.view.Buckets.Count(cell)
				mark := fmt.Sprintf("%3d", n)
				if n > 99 {
					mark = " 99+"
				}
				style := labelStyle.Bold(true)
				if timeutil.SameDay(cell.Start, m.now()) {
					style = todayStyle
				}
				text = style.Render(mark)
			}
			text = pad(text, yearCellWidth)
			if s := m.cellStyle(r, c); s != nil {
				text = s.Render(text)
			}
			parts = append(parts, text)
		}
		lines = append(lines, strings.Join(parts, ""))
	}
	return strings.Join(lines, "\n")
}

// renderList draws the date by owner table, windowed around the cursor.
func (m Model) renderList() string {
	p := m.view.List
	if p == nil {
		return ""
	}
	cols := max(1, len(p.Owners))
	cw := m.columnWidth(cols, listDateWidth+1)

	hdr := []string{headerStyle.Render(pad("Date", listDateWidth))}
	for _, o := range p.Owners {
		hdr = append(hdr, headerStyle.Render(pad(ownerName(o), cw)))
	}
	lines := []string{strings.Join(hdr, " ")}

	first, last := 0, len(p.Rows)
	if visible := m.height - 10; m.height > 0 && visible > 0 && visible < len(p.Rows) {
		first = min(max(m.row-visible/2, 0), len(p.Rows)-visible)
		last = first + visible
	}
	for r := first; r < last; r++ {
		row := p.Rows[r]
		style := labelStyle
		if timeutil.SameDay(row.Date, m.now()) {
			style = todayStyle
		}
		parts := []string{style.Render(pad(row.Date.Format("Mon Jan 2"), listDateWidth))}
		for c, cell := range row.Cells {
			text := emptyStyle.Render("·")
			if len(cell) > 0 {
				titles := make([]string, 0, len(cell))
				for _, t := range cell {
					titles = append(titles, t.Title)
				}
				text = runewidth.Truncate(strings.Join(titles, ", "), cw, "…")
			}
			text = pad(text, cw)
			if r == m.row && c == m.col {
				text = focusStyle.Render(text)
			}
			parts = append(parts, text)
		}
		lines = append(lines, strings.Join(parts, " "))
	}
	return strings.Join(lines, "\n")
}

// renderDetail lists the focused cell's tickets with the pick marked.
func (m Model) renderDetail() string {
	var heading string
	more := 0
	if m.cfg.Granularity == calendar.List {
		if m.view.List == nil || m.row >= len(m.view.List.Rows) {
			return ""
		}
		heading = m.view.List.Rows[m.row].Date.Format("Monday, January 2")
		if m.col < len(m.view.List.Owners) {
			heading += " · " + ownerName(m.view.List.Owners[m.col])
		}
	} else {
		cell, ok := m.focusedCell()
		if !ok || cell.Placeholder {
			if cell.Resolution == calendar.ResolutionHour {
				return emptyStyle.Render("no such hour")
			}
			return emptyStyle.Render("no such day")
		}
		heading = cell.Start.Format("Monday, January 2")
		if cell.Resolution == calendar.ResolutionHour {
			heading += " " + cell.Label
		}
		_, more = m.view.Buckets.Display(cell)
	}

	lines := []string{headerStyle.Render(heading)}
	tickets := m.focusedTickets()
	if len(tickets) == 0 {
		lines = append(lines, emptyStyle.Render("  nothing scheduled"))
	}
	for i, t := range tickets {
		marker := "  "
		if i == m.pick {
			marker = "> "
		}
		line := marker + t.Status.Glyph().Symbol + " " + t.Priority.Glyph().Symbol + " " + t.Title
		if t.Assignee != "" {
			line += "  @" + t.Assignee
		}
		line += "  " + emptyStyle.Render("["+t.Project+"]")
		if due, ok := ticket.DueDate.Of(t); ok {
			line += emptyStyle.Render("  due " + due.Format("Jan 2 15:04"))
		}
		lines = append(lines, line)
	}
	if more > 0 {
		lines = append(lines, moreStyle.Render(fmt.Sprintf("  +%d more", more)))
	}
	out := strings.Join(lines, "\n")
	if m.width > 0 {
		out = wordwrap.String(out, m.width)
	}
	return out
}

func ownerName(o string) string {
	if o == calendar.Unassigned {
		return "unassigned"
	}
	return o
}

// pad right-pads s with spaces to visible width w.
func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
