package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
)

const width = len("11 12 13 14 15 16 17") // an example week

// View renders a computed calendar view. now marks today.
func (pp *PrettyPrint) View(v calendar.View, now time.Time) error {
	switch v.Config.Granularity {
	case calendar.Day:
		pp.Day(v, now)
	case calendar.Week:
		pp.Week(v, now)
	case calendar.Month:
		pp.Month(v, now)
	case calendar.Year:
		pp.Year(v, now)
	case calendar.List:
		if v.List == nil {
			return fmt.Errorf("printers: list view without projection")
		}
		pp.List(*v.List)
		return nil
	default:
		return fmt.Errorf("%w: granularity %d", calendar.ErrInvalidConfiguration, int(v.Config.Granularity))
	}
	pp.Unscheduled(v.Config.DateField, v.Buckets.Unscheduled...)
	return nil
}

func (pp *PrettyPrint) Day(v calendar.View, now time.Time) {
	anchor := v.Config.Anchor.Local()
	pp.TitleWithCount(anchor.Format("Monday, January 2 2006"), v.Buckets.Total())
	pp.hours(v.Grid.Content(), v.Buckets, now, false)
	pp.NewLine()
}

func (pp *PrettyPrint) Week(v calendar.View, now time.Time) {
	start := timeutil.StartOfWeek(v.Config.Anchor)
	pp.TitleWithCount("Week of "+start.Format("January 2 2006"), v.Buckets.Total())

	for col := 0; col < v.Grid.Columns; col++ {
		var cells []calendar.Cell
		for row := 0; row < v.Grid.Rows; row++ {
			if c, ok := v.Grid.At(row, col); ok {
				cells = append(cells, c)
			}
		}
		if len(cells) == 0 {
			continue
		}
		day := cells[0].Start
		h := color.New(color.Underline)
		if timeutil.SameDay(day, now) {
			h = color.New(color.Underline, color.Bold)
		}
		_, _ = h.Fprintln(pp.out(), day.Format("Mon Jan 2"))
		pp.hours(cells, v.Buckets, now, true)
	}
	pp.NewLine()
}

// hours prints hour cells; sparse skips the empty ones.
func (pp *PrettyPrint) hours(cells []calendar.Cell, b calendar.Buckets, now time.Time, sparse bool) {
	faint := color.New(color.Faint)
	bold := color.New(color.Bold)
	printed := 0
	for _, c := range cells {
		tickets := b.In(c)
		if len(tickets) == 0 {
			if !sparse {
				_, _ = faint.Fprintf(pp.out(), "  %s\n", c.Label)
			}
			continue
		}
		printed++
		label := bold
		if timeutil.SameDay(c.Start, now) && c.Start.Hour() == now.Hour() {
			label = color.New(color.Bold, color.Underline)
		}
		_, _ = label.Fprintf(pp.out(), "  %s", c.Label)
		for i, t := range tickets {
			if i > 0 {
				_, _ = fmt.Fprint(pp.out(), strings.Repeat(" ", len(c.Label)+2))
			}
			_, _ = fmt.Fprintf(pp.out(), "  %s\n", Summary(t))
		}
	}
	if sparse && printed == 0 {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(pp.out(), "  none")
	}
}

func (pp *PrettyPrint) Month(v calendar.View, now time.Time) {
	then := timeutil.StartOfMonth(v.Config.Anchor)
	pp.PrintMonthCount(then, dayCounts(then, v.Grid.Content(), v.Buckets))
	pp.PrintMonthLong(v, now)
}

// dayCounts returns the number of tickets per day of then's month.
func dayCounts(then time.Time, cells []calendar.Cell, b calendar.Buckets) []int {
	count := make([]int, timeutil.DaysInMonth(then))
	for _, c := range cells {
		if c.Start.Year() != then.Year() || c.Start.Month() != then.Month() {
			continue
		}
		count[c.Start.Day()-1] = b.Count(c)
	}
	return count
}

func (pp *PrettyPrint) PrintMonthCount(then time.Time, count []int) {
	d := timeutil.FirstWeekdayOfMonth(then)

	tf := color.New(color.FgWhite, color.Italic)

	m := then.Month().String()
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(pp.out(), "%s%s%s\n", strings.Repeat(" ", mid), m, strings.Repeat(" ", width-mid-len(m)))

	days := timeutil.DaysInMonth(then)

	// Pad out the start of the month.
	for i := time.Sunday; i < d; i++ {
		_, _ = fmt.Fprint(pp.out(), "   ")
	}

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}

		d++
		if d > time.Saturday {
			d = time.Sunday
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// PrintMonthLong lists every day of the month with its tickets beside it.
// Month cells are not capped.
func (pp *PrettyPrint) PrintMonthLong(v calendar.View, now time.Time) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	for _, c := range v.Grid.Content() {
		printer := p
		today := timeutil.SameDay(c.Start, now)
		if today {
			printer = b
		}
		if c.Start.Weekday() == time.Sunday {
			printer = s
			if today {
				printer = bs
			}
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", c.Start.Day(), c.Start.Weekday().String()[0:1])

		shown, more := v.Buckets.Display(c)
		for i, t := range shown {
			if i > 0 {
				_, _ = p.Fprint(pp.out(), "    ")
			}
			_, _ = p.Fprintf(pp.out(), "  %s\n", Summary(t))
		}
		if more > 0 {
			_, _ = color.New(color.Faint).Fprintf(pp.out(), "      +%d more\n", more)
		}
		if len(shown) == 0 {
			_, _ = p.Fprint(pp.out(), "\n")
		}
	}
}

func (pp *PrettyPrint) Year(v calendar.View, now time.Time) {
	year := v.Config.Anchor.Local().Year()
	pp.TitleWithCount(fmt.Sprintf("%d", year), v.Buckets.Total())
	pp.NewLine()

	then := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	content := v.Grid.Content()
	for i := 0; i < 12; i++ {
		pp.PrintMonthCount(then, dayCounts(then, content, v.Buckets))
		then = timeutil.AddUnits(then, 1, timeutil.Month)
	}

	faint := color.New(color.Faint)
	for col := 0; col < v.Grid.Columns; col++ {
		header := false
		for row := 0; row < v.Grid.Rows; row++ {
			c, ok := v.Grid.At(row, col)
			if !ok || c.Placeholder || v.Buckets.Count(c) == 0 {
				continue
			}
			if !header {
				_, _ = color.New(color.Underline).Fprintln(pp.out(), c.Start.Month().String())
				header = true
			}
			shown, more := v.Buckets.Display(c)
			label := color.New()
			if timeutil.SameDay(c.Start, now) {
				label = color.New(color.Bold)
			}
			_, _ = label.Fprintf(pp.out(), "%2d", c.Start.Day())
			for i, t := range shown {
				if i > 0 {
					_, _ = fmt.Fprint(pp.out(), "  ")
				}
				_, _ = fmt.Fprintf(pp.out(), "  %s\n", Summary(t))
			}
			if more > 0 {
				_, _ = faint.Fprintf(pp.out(), "    +%d more\n", more)
			}
		}
	}
	pp.NewLine()
}

// Unscheduled lists tickets with no value for the view's date field.
func (pp *PrettyPrint) Unscheduled(field ticket.DateField, tickets ...*ticket.Ticket) {
	if len(tickets) == 0 {
		return
	}
	i := color.New(color.Italic)
	_, _ = i.Fprintf(pp.out(), "\nNo %s date\n", field.Label())
	for _, t := range tickets {
		pp.ticketLine("", t)
	}
}
