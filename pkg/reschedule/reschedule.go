// Package reschedule implements drag-and-drop rescheduling of a ticket's due
// date: the drag session state machine, the new-timestamp computation for a
// drop target, and the commit to the record store with revert on failure.
package reschedule

import (
	"errors"
	"time"

	"tableflip.dev/tickal/pkg/calendar"
)

var (
	// ErrNotDraggable is returned when a drag starts in a view not keyed on
	// the due date. No session is created.
	ErrNotDraggable = errors.New("reschedule: tickets can only be dragged in a due date view")

	// ErrNoSession is returned by Hover and Drop outside a drag.
	ErrNoSession = errors.New("reschedule: no drag in progress")

	// ErrInvalidTarget is returned for a placeholder or unkeyed cell.
	ErrInvalidTarget = errors.New("reschedule: cell is not a drop target")

	// ErrMutationRejected is returned when the store refuses the patch,
	// for example because the ticket no longer exists.
	ErrMutationRejected = errors.New("reschedule: store rejected the change")

	// ErrMutationTransport is returned when the store could not be reached
	// or failed while applying the patch.
	ErrMutationTransport = errors.New("reschedule: store unavailable")
)

// DropTime computes the due date a ticket gets when dropped onto cell.
//
// Day cells (month and year views) replace only the date and keep the
// original time of day, or midnight when there was no due date. Hour cells
// (day and week views) take the cell's date and hour and zero everything
// below the hour.
func DropTime(original *time.Time, cell calendar.Cell) time.Time {
	target := cell.Start.Local()
	y, m, d := target.Date()
	if cell.Resolution == calendar.ResolutionHour {
		return time.Date(y, m, d, target.Hour(), 0, 0, 0, target.Location())
	}
	if original == nil {
		return time.Date(y, m, d, 0, 0, 0, 0, target.Location())
	}
	o := original.Local()
	return time.Date(y, m, d, o.Hour(), o.Minute(), o.Second(), o.Nanosecond(), target.Location())
}
