package reschedule

import (
	"time"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/ticket"
)

// State is the phase of a drag gesture.
type State int

const (
	Idle State = iota
	Dragging
	Hovering
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Hovering:
		return "hovering"
	default:
		return "idle"
	}
}

// Session is the ephemeral state of one drag gesture.
type Session struct {
	Ticket *ticket.Ticket
	Target *calendar.Cell
}

// State reports the phase the session is in.
func (s *Session) State() State {
	switch {
	case s == nil || s.Ticket == nil:
		return Idle
	case s.Target == nil:
		return Dragging
	default:
		return Hovering
	}
}

// Move is a computed reschedule of one ticket.
type Move struct {
	TicketID string
	Title    string
	From     *time.Time
	To       time.Time
}
