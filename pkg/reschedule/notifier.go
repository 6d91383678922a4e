package reschedule

import "tableflip.dev/tickal/pkg/ticket"

// Notifier is the side-effect capability the controller reports through:
// Notify raises a non-blocking message for the user and Record appends a
// best-effort audit event. Neither may block the caller for long, and
// neither reports failure.
type Notifier interface {
	Notify(message string)
	Record(event ticket.Event)
}

// Notifiers fans every call out to each notifier in order.
type Notifiers []Notifier

func (ns Notifiers) Notify(message string) {
	for _, n := range ns {
		if n != nil {
			n.Notify(message)
		}
	}
}

func (ns Notifiers) Record(event ticket.Event) {
	for _, n := range ns {
		if n != nil {
			n.Record(event)
		}
	}
}

// Silent records through its Notifier and drops user messages. Use it when
// the caller reports commit outcomes itself.
type Silent struct {
	Notifier Notifier
}

func (Silent) Notify(string) {}

func (s Silent) Record(event ticket.Event) {
	if s.Notifier != nil {
		s.Notifier.Record(event)
	}
}

type discard struct{}

func (discard) Notify(string)       {}
func (discard) Record(ticket.Event) {}
