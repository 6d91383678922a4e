package calendar

import (
	"fmt"
	"time"

	"tableflip.dev/tickal/pkg/timeutil"
)

// YearRows is the number of day rows in the year grid: the longest month.
const YearRows = 31

// Cell is one slot of a rendered grid. Placeholder cells pad the grid for
// alignment; they have no key and never receive tickets or drops.
type Cell struct {
	Start       time.Time
	Resolution  Resolution
	Key         string
	Row         int
	Col         int
	Label       string
	Placeholder bool
}

// End is the exclusive end of the cell.
func (c Cell) End() time.Time {
	if c.Resolution == ResolutionHour {
		return c.Start.Add(time.Hour)
	}
	return c.Start.AddDate(0, 0, 1)
}

// Droppable reports whether a ticket may be dropped onto the cell.
func (c Cell) Droppable() bool {
	return !c.Placeholder && c.Key != ""
}

// Grid is the ordered cell sequence of one view. Cells are chronological;
// Row and Col place each one on the Columns × Rows layout.
type Grid struct {
	Granularity Granularity
	Anchor      time.Time
	Columns     int
	Rows        int
	Cells       []Cell
}

// At returns the cell at the given layout position.
func (g Grid) At(row, col int) (Cell, bool) {
	for _, c := range g.Cells {
		if c.Row == row && c.Col == col {
			return c, true
		}
	}
	return Cell{}, false
}

// Find returns the content cell with the given bucket key.
func (g Grid) Find(key string) (Cell, bool) {
	if key == "" {
		return Cell{}, false
	}
	for _, c := range g.Cells {
		if c.Key == key {
			return c, true
		}
	}
	return Cell{}, false
}

// Content returns the non-placeholder cells in order.
func (g Grid) Content() []Cell {
	out := make([]Cell, 0, len(g.Cells))
	for _, c := range g.Cells {
		if !c.Placeholder {
			out = append(out, c)
		}
	}
	return out
}

// BuildGrid lays out the cells for the view around anchor. The list view
// has no grid; ask ProjectList instead.
func BuildGrid(anchor time.Time, g Granularity, businessHoursOnly bool) (Grid, error) {
	anchor = anchor.Local()
	switch g {
	case Day:
		return dayGrid(anchor, businessHoursOnly), nil
	case Week:
		return weekGrid(anchor, businessHoursOnly), nil
	case Month:
		return monthGrid(anchor), nil
	case Year:
		return yearGrid(anchor), nil
	}
	return Grid{}, fmt.Errorf("%w: no grid for granularity %s", ErrInvalidConfiguration, g)
}

func hourCell(day time.Time, hour, row, col int) Cell {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
	if start.Hour() != hour {
		// Skipped by a daylight saving jump; the wall-clock hour never occurs.
		return Cell{
			Start:       start,
			Resolution:  ResolutionHour,
			Row:         row,
			Col:         col,
			Label:       fmt.Sprintf("%02d:00", hour),
			Placeholder: true,
		}
	}
	return Cell{
		Start:      start,
		Resolution: ResolutionHour,
		Key:        ResolutionHour.Key(start),
		Row:        row,
		Col:        col,
		Label:      fmt.Sprintf("%02d:00", hour),
	}
}

func dayCell(day time.Time, row, col int) Cell {
	start := timeutil.StartOfDay(day)
	return Cell{
		Start:      start,
		Resolution: ResolutionDay,
		Key:        ResolutionDay.Key(start),
		Row:        row,
		Col:        col,
		Label:      fmt.Sprintf("%d", start.Day()),
	}
}

func dayGrid(anchor time.Time, businessHoursOnly bool) Grid {
	hours := hourRange(businessHoursOnly)
	grid := Grid{Granularity: Day, Anchor: anchor, Columns: 1, Rows: len(hours)}
	day := timeutil.StartOfDay(anchor)
	for row, h := range hours {
		grid.Cells = append(grid.Cells, hourCell(day, h, row, 0))
	}
	return grid
}

func weekGrid(anchor time.Time, businessHoursOnly bool) Grid {
	hours := hourRange(businessHoursOnly)
	grid := Grid{Granularity: Week, Anchor: anchor, Columns: 7, Rows: len(hours)}
	first := timeutil.StartOfWeek(anchor)
	for col := 0; col < 7; col++ {
		day := first.AddDate(0, 0, col)
		for row, h := range hours {
			grid.Cells = append(grid.Cells, hourCell(day, h, row, col))
		}
	}
	return grid
}

func monthGrid(anchor time.Time) Grid {
	first := timeutil.StartOfMonth(anchor)
	pads := int(timeutil.FirstWeekdayOfMonth(anchor))
	days := timeutil.DaysInMonth(anchor)

	grid := Grid{
		Granularity: Month,
		Anchor:      anchor,
		Columns:     7,
		Rows:        (pads + days + 6) / 7,
	}

	// Leading pads show the tail of the previous month.
	for i := 0; i < pads; i++ {
		prev := first.AddDate(0, 0, i-pads)
		grid.Cells = append(grid.Cells, Cell{
			Start:       prev,
			Resolution:  ResolutionDay,
			Row:         i / 7,
			Col:         i % 7,
			Label:       fmt.Sprintf("%d", prev.Day()),
			Placeholder: true,
		})
	}
	for d := 0; d < days; d++ {
		i := pads + d
		grid.Cells = append(grid.Cells, dayCell(first.AddDate(0, 0, d), i/7, i%7))
	}
	return grid
}

func yearGrid(anchor time.Time) Grid {
	grid := Grid{Granularity: Year, Anchor: anchor, Columns: 12, Rows: YearRows}
	for m := time.January; m <= time.December; m++ {
		first := time.Date(anchor.Year(), m, 1, 0, 0, 0, 0, anchor.Location())
		days := timeutil.DaysInMonth(first)
		col := int(m) - 1
		for d := 1; d <= YearRows; d++ {
			if d > days {
				grid.Cells = append(grid.Cells, Cell{
					Resolution:  ResolutionDay,
					Row:         d - 1,
					Col:         col,
					Placeholder: true,
				})
				continue
			}
			grid.Cells = append(grid.Cells, dayCell(first.AddDate(0, 0, d-1), d-1, col))
		}
	}
	return grid
}
