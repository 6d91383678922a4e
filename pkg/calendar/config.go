package calendar

import (
	"fmt"
	"time"

	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
)

const (
	businessHourStart = 8
	businessHourEnd   = 18
)

// ViewConfig is the transient state of a calendar session: what is shown
// and how tickets are placed.
type ViewConfig struct {
	Anchor            time.Time
	Granularity       Granularity
	DateField         ticket.DateField
	BusinessHoursOnly bool
	IncludeWeekends   bool
	Owners            []string

	// ListBefore and ListAfter bound the list view around the anchor.
	ListBefore timeutil.Span
	ListAfter  timeutil.Span
}

// Default list window: one week back, two months ahead.
var (
	DefaultListBefore = timeutil.Span{Days: 7}
	DefaultListAfter  = timeutil.Span{Months: 2}
)

// DefaultViewConfig is the configuration a fresh session starts with: the
// month containing now, keyed on creation time.
func DefaultViewConfig(now time.Time) ViewConfig {
	return ViewConfig{
		Anchor:          now,
		Granularity:     Month,
		DateField:       ticket.CreatedAt,
		IncludeWeekends: true,
		ListBefore:      DefaultListBefore,
		ListAfter:       DefaultListAfter,
	}
}

// Validate rejects unknown granularities and date fields.
func (c ViewConfig) Validate() error {
	if !c.Granularity.Valid() {
		return fmt.Errorf("%w: granularity %d", ErrInvalidConfiguration, int(c.Granularity))
	}
	if !c.DateField.Valid() {
		return fmt.Errorf("%w: date field %d", ErrInvalidConfiguration, int(c.DateField))
	}
	return nil
}

// Draggable reports whether tickets may be rescheduled from this view.
// Only the due date expresses intent; created and updated are history.
func (c ViewConfig) Draggable() bool {
	return c.DateField == ticket.DueDate
}

// Hours returns the hours shown by day and week views.
func (c ViewConfig) Hours() []int {
	return hourRange(c.BusinessHoursOnly)
}

func hourRange(businessHoursOnly bool) []int {
	start, end := 0, 23
	if businessHoursOnly {
		start, end = businessHourStart, businessHourEnd
	}
	hours := make([]int, 0, end-start+1)
	for h := start; h <= end; h++ {
		hours = append(hours, h)
	}
	return hours
}
