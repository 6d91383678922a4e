package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69f8b99dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " ticket")
	default:
		_, _ = c.Fprintln(pp.out(), " tickets")
	}
}

// Tickets prints one line per ticket, or a faint "none".
func (pp *PrettyPrint) Tickets(tickets ...*ticket.Ticket) {
	if len(tickets) == 0 {
		f := color.New(color.Faint, color.Italic)
		if pp.ShowID {
			_, _ = f.Fprint(pp.out(), spacing)
		}
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}

	for _, t := range tickets {
		pp.ticketLine("", t)
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) ticketLine(indent string, t *ticket.Ticket) {
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	if pp.ShowID {
		_, _ = y.Fprint(pp.out(), t.ID)
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", max(1, len(spacing)-len(t.ID))))
	}
	_, _ = fmt.Fprintf(pp.out(), "%s%s\n", indent, Summary(t))
}

// Summary is the one-line form of a ticket used inside cells.
func Summary(t *ticket.Ticket) string {
	title := t.Title
	if t.Status.Resolved() {
		title = color.New(color.CrossedOut).Sprint(title)
	}
	s := fmt.Sprintf("%s %s %s", t.Status.Glyph().Symbol, priorityColor(t).Sprint(t.Priority.Glyph().Symbol), title)
	if t.Assignee != "" {
		s += color.New(color.Faint).Sprintf(" @%s", t.Assignee)
	}
	return s
}

func priorityColor(t *ticket.Ticket) *color.Color {
	switch t.Priority {
	case glyph.Urgent:
		return color.New(color.FgHiRed, color.Bold)
	case glyph.High:
		return color.New(color.FgYellow)
	case glyph.Low:
		return color.New(color.Faint)
	default:
		return color.New()
	}
}
