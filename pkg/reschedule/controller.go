package reschedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/ticket"
)

// Patcher applies a single-field change to a ticket in the record store.
type Patcher interface {
	PatchField(ctx context.Context, id string, field ticket.DateField, value *time.Time) (*ticket.Ticket, error)
}

// Controller runs drag gestures for one interactive user. A drop records an
// optimistic move that views render through Overlay until Commit resolves
// it; a failed commit drops the move again so the ticket reappears where it
// was before the drag.
type Controller struct {
	Patcher  Patcher
	Notifier Notifier
	Logger   *slog.Logger
	Clock    clock.Clock
	Actor    string

	mu      sync.Mutex
	session *Session
	pending map[string]Move
}

// Begin starts dragging t. It refuses unless the view is keyed on the due
// date, in which case no session exists afterwards.
func (c *Controller) Begin(cfg calendar.ViewConfig, t *ticket.Ticket) error {
	if !cfg.Draggable() {
		return ErrNotDraggable
	}
	if t == nil {
		return errors.New("reschedule: nothing to drag")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &Session{Ticket: t}
	return nil
}

// Hover records cell as the candidate drop target. Hovering a placeholder
// clears the candidate.
func (c *Controller) Hover(cell calendar.Cell) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.State() == Idle {
		return ErrNoSession
	}
	if !cell.Droppable() {
		c.session.Target = nil
		return ErrInvalidTarget
	}
	c.session.Target = &cell
	return nil
}

// Drop ends the drag on cell and returns the computed move, which stays
// pending until Commit. Dropping on a placeholder cancels the drag.
func (c *Controller) Drop(cell calendar.Cell) (Move, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session.State() == Idle {
		return Move{}, ErrNoSession
	}
	t := c.session.Ticket
	c.session = nil
	if !cell.Droppable() {
		return Move{}, ErrInvalidTarget
	}

	var from *time.Time
	if due, ok := ticket.DueDate.Of(t); ok {
		from = &due
	}
	m := Move{
		TicketID: t.ID,
		Title:    t.Title,
		From:     from,
		To:       DropTime(from, cell),
	}
	if c.pending == nil {
		c.pending = make(map[string]Move)
	}
	c.pending[m.TicketID] = m
	return m, nil
}

// Cancel abandons the current drag without a mutation.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// Session returns a copy of the current drag state.
func (c *Controller) Session() Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.session == nil {
		return Session{}
	}
	return *c.session
}

// State reports the phase of the current drag.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.State()
}

// Commit sends the move to the store as one due date patch. It does not
// retry. On failure the pending move is dropped, the error is logged, the
// user is notified, and ErrMutationRejected or ErrMutationTransport is
// returned wrapping the cause.
func (c *Controller) Commit(ctx context.Context, m Move) error {
	if c.Patcher == nil {
		return c.fail(m, fmt.Errorf("%w: no store configured", ErrMutationTransport))
	}
	if _, err := c.Patcher.PatchField(ctx, m.TicketID, ticket.DueDate, &m.To); err != nil {
		return c.fail(m, classify(err))
	}
	c.resolve(m)

	c.logger().Info("ticket rescheduled", "ticket", m.TicketID, "from", formatFrom(m.From), "to", m.To.Format(time.RFC3339))
	c.notifier().Record(ticket.Event{
		Action:   ticket.ActionDueDateChanged,
		Actor:    c.Actor,
		TicketID: m.TicketID,
		At:       *ticket.At(clock.Or(c.Clock).Now()),
		Detail:   fmt.Sprintf("%s -> %s", formatFrom(m.From), m.To.Format("2006-01-02 15:04")),
	})
	return nil
}

func (c *Controller) fail(m Move, err error) error {
	c.resolve(m)
	c.logger().Error("reschedule failed", "ticket", m.TicketID, "to", m.To.Format(time.RFC3339), "err", err)
	c.notifier().Notify(fmt.Sprintf("Could not move %q to %s: %v", m.Title, m.To.Format("Jan 2 15:04"), err))
	return err
}

// resolve clears the pending move unless a later drop replaced it.
func (c *Controller) resolve(m Move) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cur, ok := c.pending[m.TicketID]; ok && cur.To.Equal(m.To) {
		delete(c.pending, m.TicketID)
	}
}

// Pending returns the number of moves awaiting a commit result.
func (c *Controller) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending)
}

// Overlay returns tickets with pending moves applied. Tickets without a
// pending move are returned as is; moved ones are copies.
func (c *Controller) Overlay(tickets []*ticket.Ticket) []*ticket.Ticket {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return tickets
	}
	out := make([]*ticket.Ticket, len(tickets))
	for i, t := range tickets {
		if t == nil {
			continue
		}
		m, ok := c.pending[t.ID]
		if !ok {
			out[i] = t
			continue
		}
		cp := t.Clone()
		cp.DueDate = ticket.At(m.To)
		out[i] = cp
	}
	return out
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrMutationRejected), errors.Is(err, ErrMutationTransport):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrMutationTransport, err)
	}
}

func (c *Controller) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}

func (c *Controller) notifier() Notifier {
	if c.Notifier == nil {
		return discard{}
	}
	return c.Notifier
}

func formatFrom(from *time.Time) string {
	if from == nil {
		return "unscheduled"
	}
	return from.Format("2006-01-02 15:04")
}
