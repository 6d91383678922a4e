package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d, h, min int) time.Time {
	return time.Date(y, m, d, h, min, 0, 0, time.Local)
}

func TestAddUnits(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		unit Unit
		want time.Time
	}{
		{"day across month", date(2024, 1, 31, 9, 15), 1, Day, date(2024, 2, 1, 9, 15)},
		{"week across year", date(2024, 12, 28, 0, 0), 1, Week, date(2025, 1, 4, 0, 0)},
		{"month clamps to leap february", date(2024, 1, 31, 14, 30), 1, Month, date(2024, 2, 29, 14, 30)},
		{"month clamps to february", date(2023, 1, 31, 14, 30), 1, Month, date(2023, 2, 28, 14, 30)},
		{"month backwards across year", date(2024, 1, 15, 8, 0), -1, Month, date(2023, 12, 15, 8, 0)},
		{"thirteen months", date(2024, 3, 31, 0, 0), 13, Month, date(2025, 4, 30, 0, 0)},
		{"year from leap day", date(2024, 2, 29, 12, 0), 1, Year, date(2025, 2, 28, 12, 0)},
		{"year to leap day", date(2020, 2, 29, 12, 0), 4, Year, date(2024, 2, 29, 12, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddUnits(tt.in, tt.n, tt.unit))
		})
	}
}

func TestMonthRoundTrip(t *testing.T) {
	for _, d := range []time.Time{
		date(2024, 3, 15, 10, 0),
		date(2023, 12, 1, 0, 0),
		date(2024, 1, 31, 23, 59),
	} {
		back := AddUnits(SubtractUnits(d, 1, Month), 1, Month)
		assert.Equal(t, d, back, "round trip from %s", d)
	}

	// Mar 31 clamps to Feb 29 on the way back and does not recover.
	start := date(2024, 3, 31, 10, 0)
	assert.Equal(t, date(2024, 3, 29, 10, 0), AddUnits(SubtractUnits(start, 1, Month), 1, Month))
}

func TestStartOfWeek(t *testing.T) {
	// 2024-06-05 is a Wednesday.
	assert.Equal(t, date(2024, 6, 2, 0, 0), StartOfWeek(date(2024, 6, 5, 17, 45)))
	// Sunday maps onto itself.
	assert.Equal(t, date(2024, 6, 2, 0, 0), StartOfWeek(date(2024, 6, 2, 23, 0)))
	// Crosses a month boundary.
	assert.Equal(t, date(2024, 2, 25, 0, 0), StartOfWeek(date(2024, 3, 1, 12, 0)))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(date(2024, 2, 10, 0, 0)))
	assert.Equal(t, 28, DaysInMonth(date(2023, 2, 10, 0, 0)))
	assert.Equal(t, 28, DaysInMonth(date(1900, 2, 1, 0, 0)))
	assert.Equal(t, 29, DaysInMonth(date(2000, 2, 1, 0, 0)))
	assert.Equal(t, 31, DaysInMonth(date(2024, 12, 31, 0, 0)))
	assert.Equal(t, 30, DaysInMonth(date(2024, 6, 30, 0, 0)))
}

func TestFirstWeekdayOfMonth(t *testing.T) {
	assert.Equal(t, time.Saturday, FirstWeekdayOfMonth(date(2024, 6, 20, 0, 0)))
	assert.Equal(t, time.Friday, FirstWeekdayOfMonth(date(2024, 3, 20, 0, 0)))
	assert.Equal(t, time.Sunday, FirstWeekdayOfMonth(date(2024, 9, 3, 0, 0)))
}

func TestSameDay(t *testing.T) {
	assert.True(t, SameDay(date(2024, 6, 1, 0, 0), date(2024, 6, 1, 23, 59)))
	assert.False(t, SameDay(date(2024, 6, 1, 0, 0), date(2024, 7, 1, 0, 0)))
	assert.False(t, SameDay(date(2024, 6, 1, 0, 0), date(2023, 6, 1, 0, 0)))
}

func TestParseUnit(t *testing.T) {
	u, err := ParseUnit(" Month ")
	assert.NoError(t, err)
	assert.Equal(t, Month, u)

	_, err = ParseUnit("fortnight")
	assert.Error(t, err)
}
