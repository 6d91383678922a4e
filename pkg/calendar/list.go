package calendar

import (
	"fmt"
	"sort"
	"time"

	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
)

// Unassigned is the owner column for tickets without an assignee.
const Unassigned = ""

// ListRow is one date of the list view. Cells is parallel to the
// projection's Owners.
type ListRow struct {
	Date  time.Time
	Cells [][]*ticket.Ticket
}

// ListProjection cross-tabulates tickets by date and owner.
type ListProjection struct {
	Field  ticket.DateField
	Start  time.Time
	End    time.Time
	Owners []string
	Rows   []ListRow
}

// Total returns the number of tickets placed in the projection.
func (p ListProjection) Total() int {
	n := 0
	for _, r := range p.Rows {
		for _, c := range r.Cells {
			n += len(c)
		}
	}
	return n
}

type civilDate struct {
	year  int
	month time.Month
	day   int
}

func civil(t time.Time) civilDate {
	y, m, d := t.Date()
	return civilDate{year: y, month: m, day: d}
}

// ProjectList builds the list view: one row per day from ListBefore ahead
// of the anchor to ListAfter past it, weekends dropped unless included,
// and one column per owner. Tickets land on the row whose year, month and
// day match their field value; nothing is capped.
func ProjectList(c ViewConfig, tickets []*ticket.Ticket) (ListProjection, error) {
	if !c.DateField.Valid() {
		return ListProjection{}, fmt.Errorf("%w: date field %d", ErrInvalidConfiguration, int(c.DateField))
	}
	anchor := c.Anchor.Local()
	p := ListProjection{
		Field:  c.DateField,
		Start:  timeutil.StartOfDay(c.ListBefore.SubtractFrom(anchor)),
		End:    timeutil.StartOfDay(c.ListAfter.AddTo(anchor)),
		Owners: listOwners(c.Owners, tickets),
	}

	ownerIndex := make(map[string]int, len(p.Owners))
	for i, o := range p.Owners {
		ownerIndex[o] = i
	}

	rowIndex := make(map[civilDate]int)
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if !c.IncludeWeekends && timeutil.IsWeekend(d) {
			continue
		}
		rowIndex[civil(d)] = len(p.Rows)
		p.Rows = append(p.Rows, ListRow{Date: d, Cells: make([][]*ticket.Ticket, len(p.Owners))})
	}

	for _, t := range tickets {
		if t == nil {
			continue
		}
		v, ok := c.DateField.Of(t)
		if !ok {
			continue
		}
		col, ok := ownerIndex[t.Assignee]
		if !ok {
			continue
		}
		row, ok := rowIndex[civil(v.Local())]
		if !ok {
			continue
		}
		p.Rows[row].Cells[col] = append(p.Rows[row].Cells[col], t)
	}
	return p, nil
}

// listOwners returns the filter in the given order without duplicates, or
// every assignee seen when the filter is empty, sorted with Unassigned last.
func listOwners(filter []string, tickets []*ticket.Ticket) []string {
	seen := make(map[string]bool)
	var owners []string
	if len(filter) > 0 {
		for _, o := range filter {
			if !seen[o] {
				seen[o] = true
				owners = append(owners, o)
			}
		}
		return owners
	}

	unassigned := false
	for _, t := range tickets {
		if t == nil {
			continue
		}
		if t.Assignee == Unassigned {
			unassigned = true
			continue
		}
		if !seen[t.Assignee] {
			seen[t.Assignee] = true
			owners = append(owners, t.Assignee)
		}
	}
	sort.Strings(owners)
	if unassigned {
		owners = append(owners, Unassigned)
	}
	return owners
}
