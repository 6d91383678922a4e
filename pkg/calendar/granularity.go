// Package calendar builds the calendar views: the cell grids for day, week,
// month and year, the bucketing of tickets into those cells, anchor
// navigation, and the date × owner projection behind the list view.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tableflip.dev/tickal/pkg/timeutil"
)

// ErrInvalidConfiguration is returned for a granularity or date field the
// calendar does not know. It signals a programming error, not bad data.
var ErrInvalidConfiguration = errors.New("calendar: invalid configuration")

// Granularity is the time resolution of a view.
type Granularity int

const (
	Day Granularity = iota
	Week
	Month
	Year
	List
)

var granularityNames = []string{"day", "week", "month", "year", "list"}

// Granularities lists every view in menu order.
func Granularities() []Granularity {
	return []Granularity{Day, Week, Month, Year, List}
}

func (g Granularity) String() string {
	if g.Valid() {
		return granularityNames[g]
	}
	return fmt.Sprintf("Granularity(%d)", int(g))
}

// Valid reports whether g is a known view.
func (g Granularity) Valid() bool {
	return g >= Day && g <= List
}

// ParseGranularity accepts a view name such as "month".
func ParseGranularity(raw string) (Granularity, error) {
	want := strings.ToLower(strings.TrimSpace(raw))
	for i, name := range granularityNames {
		if name == want {
			return Granularity(i), nil
		}
	}
	return Month, fmt.Errorf("%w: unknown granularity %q", ErrInvalidConfiguration, raw)
}

// Unit is the calendar unit navigation steps by. The list view steps a
// week at a time.
func (g Granularity) Unit() (timeutil.Unit, error) {
	switch g {
	case Day:
		return timeutil.Day, nil
	case Week, List:
		return timeutil.Week, nil
	case Month:
		return timeutil.Month, nil
	case Year:
		return timeutil.Year, nil
	}
	return timeutil.Day, fmt.Errorf("%w: granularity %d", ErrInvalidConfiguration, int(g))
}

// Resolution is the width of a single cell.
type Resolution int

const (
	ResolutionHour Resolution = iota
	ResolutionDay
)

const (
	hourKeyLayout = "2006-01-02:15"
	dayKeyLayout  = "2006-01-02"
)

// Resolution reports the cell width of g: an hour for day and week views,
// a day for everything else.
func (g Granularity) Resolution() Resolution {
	if g == Day || g == Week {
		return ResolutionHour
	}
	return ResolutionDay
}

// Width is the duration a cell of this resolution nominally covers.
func (r Resolution) Width() time.Duration {
	if r == ResolutionHour {
		return time.Hour
	}
	return 24 * time.Hour
}

// Key formats t into the bucket key for this resolution.
func (r Resolution) Key(t time.Time) string {
	if r == ResolutionHour {
		return t.Local().Format(hourKeyLayout)
	}
	return t.Local().Format(dayKeyLayout)
}

// BucketKey formats t in local wall-clock time as "2006-01-02:15" for day
// and week views and "2006-01-02" for month and year views. Two instants
// share a bucket exactly when their keys are equal.
func BucketKey(t time.Time, g Granularity) string {
	return g.Resolution().Key(t)
}
