package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
)

const timeLayout = "2006-01-02 15:04"

// List renders the list view as a date by owner table.
func (pp *PrettyPrint) List(p calendar.ListProjection) {
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	pp.TitleWithCount(fmt.Sprintf("%s to %s by %s", p.Start.Format("Jan 2"), p.End.Format("Jan 2 2006"), p.Field.Label()), p.Total())

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.Wrap = true

	header := []interface{}{bold.Sprint("Date")}
	for _, o := range p.Owners {
		header = append(header, bold.Sprint(OwnerName(o)))
	}
	tbl.AddRow(header...)

	for _, r := range p.Rows {
		row := []interface{}{r.Date.Format("Mon Jan 2")}
		for _, cell := range r.Cells {
			if len(cell) == 0 {
				row = append(row, faint.Sprint("·"))
				continue
			}
			titles := make([]string, 0, len(cell))
			for _, t := range cell {
				titles = append(titles, t.Status.Glyph().Symbol+" "+t.Title)
			}
			row = append(row, strings.Join(titles, "\n"))
		}
		tbl.AddRow(row...)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// OwnerName is the display name of an owner column.
func OwnerName(owner string) string {
	if owner == calendar.Unassigned {
		return "unassigned"
	}
	return owner
}

// TicketTable prints tickets with their dates, one per row.
func (pp *PrettyPrint) TicketTable(tickets []*ticket.Ticket) {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 50
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Project"), bold.Sprint("Status"), bold.Sprint("Priority"),
		bold.Sprint("Title"), bold.Sprint("Assignee"), bold.Sprint("Created"), bold.Sprint("Due"))
	for _, t := range tickets {
		tbl.AddRow(t.ID, t.Project, t.Status.Glyph().Symbol+" "+t.Status.Glyph().Meaning, t.Priority.Glyph().Key,
			t.Title, OwnerName(t.Assignee), formatStamp(t.CreatedAt), formatStamp(t.DueDate))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Events prints an audit history.
func (pp *PrettyPrint) Events(events []ticket.Event) {
	if len(events) == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), " no history")
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("When"), bold.Sprint("Action"), bold.Sprint("Actor"), bold.Sprint("Detail"))
	for _, e := range events {
		tbl.AddRow(e.At.Local().Format(timeLayout), e.Action, e.Actor, e.Detail)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Report prints a due-date report, one section per project.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.TitleWithCount(fmt.Sprintf("Due %s to %s", r.Since.Format("Jan 2"), r.Until.Format("Jan 2 2006")), r.Total)
	if r.Overdue > 0 {
		_, _ = color.New(color.FgHiRed).Fprintf(pp.out(), "%d overdue\n", r.Overdue)
	}
	pp.NewLine()
	late := color.New(color.FgHiRed)
	for _, s := range r.Sections {
		pp.Title(s.Project)
		tbl := uitable.New()
		tbl.Separator = "  "
		for _, item := range s.Items {
			when := item.Due.Format(timeLayout)
			if item.Overdue {
				when = late.Sprint(when)
			}
			tbl.AddRow(when, Summary(item.Ticket))
		}
		_, _ = fmt.Fprintln(pp.out(), tbl)
		pp.NewLine()
	}
}

// Legend prints the status and priority glyphs.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("  Status"), bold.Sprint("Meaning"))
	for _, s := range glyph.Statuses() {
		g := s.Glyph()
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.AddRow("", "")
	tbl.AddRow(bold.Sprint("Priority"), bold.Sprint("Meaning"))
	for _, p := range glyph.Priorities() {
		g := p.Glyph()
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func formatStamp(ts *ticket.Timestamp) string {
	v, ok := ts.Value()
	if !ok {
		return "-"
	}
	return v.Local().Format(timeLayout)
}
