package calendar

import (
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tickal/pkg/ticket"
)

func at(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.Local)
}

func dueTicket(id, owner string, due time.Time) *ticket.Ticket {
	return &ticket.Ticket{ID: id, Title: id, Assignee: owner, DueDate: ticket.At(due)}
}

func TestBuildGridSizes(t *testing.T) {
	anchor := at(2024, 6, 5, 13, 0)
	tests := []struct {
		name          string
		anchor        time.Time
		g             Granularity
		business      bool
		cells         int
		content       int
		columns, rows int
	}{
		{"day business hours", anchor, Day, true, 11, 11, 1, 11},
		{"day full", anchor, Day, false, 24, 24, 1, 24},
		{"week business hours", anchor, Week, true, 77, 77, 7, 11},
		{"week full", anchor, Week, false, 168, 168, 7, 24},
		// June 2024 starts on a Saturday.
		{"month june 2024", anchor, Month, false, 36, 30, 7, 6},
		// February 2026 starts on a Sunday.
		{"month february 2026", at(2026, 2, 14, 0, 0), Month, false, 28, 28, 7, 4},
		{"month february 2024 leap", at(2024, 2, 1, 0, 0), Month, false, 33, 29, 7, 5},
		{"year leap", anchor, Year, false, 372, 366, 12, 31},
		{"year common", at(2023, 7, 1, 0, 0), Year, false, 372, 365, 12, 31},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid, err := BuildGrid(tt.anchor, tt.g, tt.business)
			require.NoError(t, err)
			assert.Len(t, grid.Cells, tt.cells)
			assert.Len(t, grid.Content(), tt.content)
			assert.Equal(t, tt.columns, grid.Columns)
			assert.Equal(t, tt.rows, grid.Rows)
		})
	}
}

func TestDayGridSkipsMissingDSTHour(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local := time.Local
	time.Local = ny
	t.Cleanup(func() { time.Local = local })

	grid, err := BuildGrid(at(2024, 3, 10, 9, 0), Day, false)
	require.NoError(t, err)
	require.Len(t, grid.Cells, 24)
	assert.Len(t, grid.Content(), 23)

	gap, ok := grid.At(2, 0)
	require.True(t, ok)
	assert.True(t, gap.Placeholder)
	assert.Equal(t, "02:00", gap.Label)
	assert.False(t, gap.Droppable())

	seen := map[string]bool{}
	for _, c := range grid.Content() {
		assert.False(t, seen[c.Key], "duplicate key %s", c.Key)
		seen[c.Key] = true
	}

	b, err := Bucket(grid, []*ticket.Ticket{dueTicket("early", "", at(2024, 3, 10, 1, 30))}, ticket.DueDate)
	require.NoError(t, err)
	assert.Equal(t, 1, b.Total())
	one, _ := grid.At(1, 0)
	assert.Equal(t, 1, b.Count(one))
	assert.Equal(t, 0, b.Count(gap))
}

func TestBuildGridRejectsList(t *testing.T) {
	_, err := BuildGrid(at(2024, 6, 5, 0, 0), List, false)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))

	_, err = BuildGrid(at(2024, 6, 5, 0, 0), Granularity(42), false)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestGridIsChronological(t *testing.T) {
	for _, g := range []Granularity{Day, Week, Month, Year} {
		grid, err := BuildGrid(at(2024, 6, 5, 13, 0), g, false)
		require.NoError(t, err)
		var prev time.Time
		for _, c := range grid.Content() {
			assert.True(t, c.Start.After(prev), "%s: %s not after %s", g, c.Start, prev)
			prev = c.Start
		}
	}
}

func TestGridIsStable(t *testing.T) {
	a, err := BuildGrid(at(2024, 6, 5, 13, 0), Week, true)
	require.NoError(t, err)
	b, err := BuildGrid(at(2024, 6, 5, 13, 0), Week, true)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestWeekGridStartsSunday(t *testing.T) {
	grid, err := BuildGrid(at(2024, 6, 5, 13, 0), Week, true)
	require.NoError(t, err)
	first := grid.Cells[0]
	assert.Equal(t, at(2024, 6, 2, 8, 0), first.Start)
	assert.Equal(t, "2024-06-02:08", first.Key)
	last := grid.Cells[len(grid.Cells)-1]
	assert.Equal(t, at(2024, 6, 8, 18, 0), last.Start)
	assert.Equal(t, 6, last.Col)
	assert.Equal(t, 10, last.Row)
}

func TestMonthGridPadding(t *testing.T) {
	grid, err := BuildGrid(at(2024, 6, 17, 0, 0), Month, false)
	require.NoError(t, err)

	for i := 0; i < 6; i++ {
		c := grid.Cells[i]
		assert.True(t, c.Placeholder)
		assert.False(t, c.Droppable())
		assert.Empty(t, c.Key)
		assert.Equal(t, time.May, c.Start.Month())
	}
	assert.Equal(t, "26", grid.Cells[0].Label)
	assert.Equal(t, "31", grid.Cells[5].Label)

	june1 := grid.Cells[6]
	assert.Equal(t, "2024-06-01", june1.Key)
	assert.Equal(t, 0, june1.Row)
	assert.Equal(t, 6, june1.Col)

	c, ok := grid.At(1, 0)
	require.True(t, ok)
	assert.Equal(t, "2024-06-02", c.Key)
}

func TestYearGridPlaceholders(t *testing.T) {
	grid, err := BuildGrid(at(2023, 3, 1, 0, 0), Year, false)
	require.NoError(t, err)

	feb29, ok := grid.At(28, 1)
	require.True(t, ok)
	assert.True(t, feb29.Placeholder)

	apr31, ok := grid.At(30, 3)
	require.True(t, ok)
	assert.True(t, apr31.Placeholder)

	dec31, ok := grid.At(30, 11)
	require.True(t, ok)
	assert.Equal(t, "2023-12-31", dec31.Key)
}

func TestBucketKey(t *testing.T) {
	a := at(2024, 6, 1, 10, 5)
	b := at(2024, 6, 1, 10, 55)
	c := at(2024, 6, 1, 22, 0)

	for _, g := range Granularities() {
		assert.Equal(t, BucketKey(a, g), BucketKey(a, g))
	}
	assert.Equal(t, "2024-06-01:10", BucketKey(a, Day))
	assert.Equal(t, BucketKey(a, Day), BucketKey(b, Day))
	assert.Equal(t, BucketKey(a, Week), BucketKey(b, Week))
	assert.NotEqual(t, BucketKey(a, Week), BucketKey(c, Week))
	assert.Equal(t, "2024-06-01", BucketKey(a, Month))
	assert.Equal(t, BucketKey(a, Month), BucketKey(c, Month))
	assert.Equal(t, BucketKey(a, Year), BucketKey(c, Year))
}

func TestBucketMonthScenario(t *testing.T) {
	tickets := []*ticket.Ticket{
		dueTicket("a", "ann", at(2024, 6, 1, 10, 0)),
		dueTicket("b", "ann", at(2024, 6, 1, 22, 0)),
		dueTicket("c", "bob", at(2024, 6, 2, 9, 0)),
	}
	grid, err := BuildGrid(at(2024, 6, 15, 0, 0), Month, false)
	require.NoError(t, err)
	b, err := Bucket(grid, tickets, ticket.DueDate)
	require.NoError(t, err)

	june1, ok := grid.Find("2024-06-01")
	require.True(t, ok)
	june2, ok := grid.Find("2024-06-02")
	require.True(t, ok)

	assert.Equal(t, []*ticket.Ticket{tickets[0], tickets[1]}, b.In(june1))
	assert.Equal(t, []*ticket.Ticket{tickets[2]}, b.In(june2))
	shown, more := b.Display(june1)
	assert.Len(t, shown, 2)
	assert.Zero(t, more)
	assert.Equal(t, 3, b.Total())
}

func TestBucketExcludesMissingField(t *testing.T) {
	created := at(2024, 6, 3, 9, 0)
	tickets := []*ticket.Ticket{
		{ID: "no-due", CreatedAt: ticket.At(created)},
		dueTicket("epoch", "", time.UnixMilli(0)),
	}
	grid, err := BuildGrid(time.UnixMilli(0), Month, false)
	require.NoError(t, err)
	b, err := Bucket(grid, tickets, ticket.DueDate)
	require.NoError(t, err)

	assert.Equal(t, []*ticket.Ticket{tickets[0]}, b.Unscheduled)
	assert.Equal(t, 1, b.Total(), "only the real epoch due date is bucketed")
}

func TestBucketYearCap(t *testing.T) {
	day := at(2024, 6, 1, 0, 0)
	tickets := []*ticket.Ticket{
		dueTicket("a", "", day.Add(1*time.Hour)),
		dueTicket("b", "", day.Add(2*time.Hour)),
		dueTicket("c", "", day.Add(3*time.Hour)),
	}
	grid, err := BuildGrid(day, Year, false)
	require.NoError(t, err)
	b, err := Bucket(grid, tickets, ticket.DueDate)
	require.NoError(t, err)

	cell, ok := grid.Find("2024-06-01")
	require.True(t, ok)
	shown, more := b.Display(cell)
	assert.Equal(t, []*ticket.Ticket{tickets[0], tickets[1]}, shown)
	assert.Equal(t, 1, more)
	assert.Equal(t, 3, b.Count(cell))
}

func TestBucketDayViewByHour(t *testing.T) {
	tickets := []*ticket.Ticket{
		dueTicket("early", "", at(2024, 6, 1, 7, 30)),
		dueTicket("nine", "", at(2024, 6, 1, 9, 15)),
		dueTicket("nine-late", "", at(2024, 6, 1, 9, 59)),
	}
	grid, err := BuildGrid(at(2024, 6, 1, 12, 0), Day, true)
	require.NoError(t, err)
	b, err := Bucket(grid, tickets, ticket.DueDate)
	require.NoError(t, err)

	cell, ok := grid.Find("2024-06-01:09")
	require.True(t, ok)
	assert.Len(t, b.In(cell), 2)
	assert.Equal(t, 2, b.Total(), "07:30 is outside business hours")
}

func TestBucketRejectsUnknownField(t *testing.T) {
	grid, err := BuildGrid(at(2024, 6, 1, 12, 0), Month, false)
	require.NoError(t, err)
	_, err = Bucket(grid, nil, ticket.DateField(7))
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestNavigation(t *testing.T) {
	cfg := DefaultViewConfig(at(2024, 1, 31, 9, 0))

	next, err := Advance(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 2, 29, 9, 0), next.Anchor)

	prev, err := Retreat(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2023, 12, 31, 9, 0), prev.Anchor)

	cfg.Granularity = Week
	next, err = Advance(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 2, 7, 9, 0), next.Anchor)

	cfg.Granularity = Day
	next, err = Step(cfg, -3)
	require.NoError(t, err)
	assert.Equal(t, at(2024, 1, 28, 9, 0), next.Anchor)

	cfg.Granularity = Year
	next, err = Advance(cfg)
	require.NoError(t, err)
	assert.Equal(t, at(2025, 1, 31, 9, 0), next.Anchor)

	cfg.Granularity = Granularity(99)
	_, err = Advance(cfg)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestProjectListWeekends(t *testing.T) {
	cfg := DefaultViewConfig(at(2024, 6, 5, 15, 0))
	cfg.Granularity = List
	cfg.DateField = ticket.DueDate
	cfg.IncludeWeekends = false

	p, err := ProjectList(cfg, nil)
	require.NoError(t, err)
	require.NotEmpty(t, p.Rows)

	assert.Equal(t, at(2024, 5, 29, 0, 0), p.Rows[0].Date)
	assert.Equal(t, at(2024, 8, 5, 0, 0), p.Rows[len(p.Rows)-1].Date)

	weekdays := 0
	for d := p.Start; !d.After(p.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
			weekdays++
		}
	}
	assert.Len(t, p.Rows, weekdays)
	for i, r := range p.Rows {
		assert.NotEqual(t, time.Saturday, r.Date.Weekday())
		assert.NotEqual(t, time.Sunday, r.Date.Weekday())
		if i > 0 {
			assert.True(t, r.Date.After(p.Rows[i-1].Date))
		}
	}

	cfg.IncludeWeekends = true
	all, err := ProjectList(cfg, nil)
	require.NoError(t, err)
	assert.Len(t, all.Rows, 69)
}

func TestProjectListOwners(t *testing.T) {
	tickets := []*ticket.Ticket{
		dueTicket("a", "zoe", at(2024, 6, 5, 23, 59)),
		dueTicket("b", "ann", at(2024, 6, 5, 0, 0)),
		dueTicket("c", "", at(2024, 6, 6, 12, 0)),
		dueTicket("d", "ann", at(2024, 6, 5, 8, 0)),
		{ID: "undated", Assignee: "ann"},
	}
	cfg := DefaultViewConfig(at(2024, 6, 5, 15, 0))
	cfg.DateField = ticket.DueDate

	p, err := ProjectList(cfg, tickets)
	require.NoError(t, err)
	assert.Equal(t, []string{"ann", "zoe", Unassigned}, p.Owners)
	assert.Equal(t, 4, p.Total())

	row := p.Rows[7]
	assert.Equal(t, at(2024, 6, 5, 0, 0), row.Date)
	assert.Equal(t, []*ticket.Ticket{tickets[1], tickets[3]}, row.Cells[0])
	assert.Equal(t, []*ticket.Ticket{tickets[0]}, row.Cells[1])

	cfg.Owners = []string{"zoe", "zoe"}
	filtered, err := ProjectList(cfg, tickets)
	require.NoError(t, err)
	assert.Equal(t, []string{"zoe"}, filtered.Owners)
	assert.Equal(t, 1, filtered.Total())
}

func TestBuildView(t *testing.T) {
	tickets := []*ticket.Ticket{
		dueTicket("a", "ann", at(2024, 6, 1, 10, 0)),
		dueTicket("b", "bob", at(2024, 6, 1, 11, 0)),
	}
	cfg := DefaultViewConfig(at(2024, 6, 10, 0, 0))
	cfg.DateField = ticket.DueDate
	cfg.Owners = []string{"bob"}

	v, err := Build(cfg, tickets)
	require.NoError(t, err)
	assert.Nil(t, v.List)
	assert.Equal(t, 1, v.Buckets.Total())

	cfg.Granularity = List
	v, err = Build(cfg, tickets)
	require.NoError(t, err)
	require.NotNil(t, v.List)

	cfg.DateField = ticket.DateField(5)
	_, err = Build(cfg, tickets)
	assert.True(t, errors.Is(err, ErrInvalidConfiguration))
}

func TestDraggable(t *testing.T) {
	cfg := DefaultViewConfig(at(2024, 6, 10, 0, 0))
	assert.False(t, cfg.Draggable())
	cfg.DateField = ticket.UpdatedAt
	assert.False(t, cfg.Draggable())
	cfg.DateField = ticket.DueDate
	assert.True(t, cfg.Draggable())
}
