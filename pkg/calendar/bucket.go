package calendar

import (
	"fmt"

	"tableflip.dev/tickal/pkg/ticket"
)

// YearCellCap is how many tickets a year-view cell shows before collapsing
// the rest into a "+N more" count. Other views show every match.
const YearCellCap = 2

// Buckets holds the tickets placed into a grid, keyed by cell key.
type Buckets struct {
	Granularity Granularity
	Field       ticket.DateField

	// Unscheduled holds tickets with no value for Field. They are kept
	// out of every cell rather than collapsing onto the epoch.
	Unscheduled []*ticket.Ticket

	byKey map[string][]*ticket.Ticket
}

// Bucket places tickets into the content cells of grid by the bucket key of
// their field value. Tickets outside the grid's window are dropped; the
// input order is kept inside each cell.
func Bucket(grid Grid, tickets []*ticket.Ticket, field ticket.DateField) (Buckets, error) {
	if !field.Valid() {
		return Buckets{}, fmt.Errorf("%w: date field %d", ErrInvalidConfiguration, int(field))
	}
	b := Buckets{
		Granularity: grid.Granularity,
		Field:       field,
		byKey:       make(map[string][]*ticket.Ticket, len(grid.Cells)),
	}
	for _, c := range grid.Cells {
		if c.Droppable() {
			b.byKey[c.Key] = nil
		}
	}

	res := grid.Granularity.Resolution()
	for _, t := range tickets {
		if t == nil {
			continue
		}
		v, ok := field.Of(t)
		if !ok {
			b.Unscheduled = append(b.Unscheduled, t)
			continue
		}
		key := res.Key(v)
		if items, inView := b.byKey[key]; inView {
			b.byKey[key] = append(items, t)
		}
	}
	return b, nil
}

// In returns every ticket in the cell.
func (b Buckets) In(c Cell) []*ticket.Ticket {
	if !c.Droppable() {
		return nil
	}
	return b.byKey[c.Key]
}

// Count returns the number of tickets in the cell.
func (b Buckets) Count(c Cell) int {
	return len(b.In(c))
}

// Total returns the number of tickets placed in any cell.
func (b Buckets) Total() int {
	n := 0
	for _, items := range b.byKey {
		n += len(items)
	}
	return n
}

// Display returns the tickets a cell shows under its view's cap and how many
// more are hidden.
func (b Buckets) Display(c Cell) ([]*ticket.Ticket, int) {
	items := b.In(c)
	limit := DisplayCap(b.Granularity)
	if limit <= 0 || len(items) <= limit {
		return items, 0
	}
	return items[:limit], len(items) - limit
}

// DisplayCap returns the per-cell display limit of a view, 0 meaning none.
func DisplayCap(g Granularity) int {
	if g == Year {
		return YearCellCap
	}
	return 0
}
