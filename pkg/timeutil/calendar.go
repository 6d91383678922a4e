// Package timeutil holds the wall-clock calendar arithmetic used by the
// calendar views: unit stepping with end-of-month clamping, week starts,
// month lengths, and calendar span parsing.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// Unit is a calendar unit that views step by.
type Unit int

const (
	Day Unit = iota
	Week
	Month
	Year
)

var unitNames = map[Unit]string{
	Day:   "day",
	Week:  "week",
	Month: "month",
	Year:  "year",
}

func (u Unit) String() string {
	if name, ok := unitNames[u]; ok {
		return name
	}
	return fmt.Sprintf("Unit(%d)", int(u))
}

// ParseUnit converts "day", "week", "month" or "year" into a Unit.
func ParseUnit(raw string) (Unit, error) {
	want := strings.ToLower(strings.TrimSpace(raw))
	for u, name := range unitNames {
		if name == want {
			return u, nil
		}
	}
	return Day, fmt.Errorf("timeutil: unknown unit %q", raw)
}

// AddUnits moves t by n units. Month and year steps keep the day of month
// when the target month has it and clamp to the month's last day when it
// does not, so Jan 31 + 1 month is the last day of February. The time of
// day and location are left untouched.
func AddUnits(t time.Time, n int, u Unit) time.Time {
	switch u {
	case Day:
		return t.AddDate(0, 0, n)
	case Week:
		return t.AddDate(0, 0, 7*n)
	case Month:
		return addMonths(t, n)
	case Year:
		return addMonths(t, 12*n)
	default:
		panic(fmt.Sprintf("timeutil: AddUnits with unknown unit %d", int(u)))
	}
}

// SubtractUnits is AddUnits with -n.
func SubtractUnits(t time.Time, n int, u Unit) time.Time {
	return AddUnits(t, -n, u)
}

func addMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := DaysInMonth(first); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// StartOfDay returns midnight of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns midnight of the Sunday on or before t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// DaysInMonth returns the number of days in t's month.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// FirstWeekdayOfMonth returns the weekday of the first day of t's month,
// Sunday being 0.
func FirstWeekdayOfMonth(t time.Time) time.Weekday {
	return StartOfMonth(t).Weekday()
}

// SameDay reports whether a and b fall on the same calendar date.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// IsWeekend reports whether t is a Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
