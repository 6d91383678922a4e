package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/store"
	"tableflip.dev/tickal/pkg/ticket"
)

// Service provides high-level operations over the ticket store.
// It is what the calendar reads from and what the reschedule controller
// patches through, so UIs and CLIs share one path to persistence.
type Service struct {
	Persistence store.Persistence
	Logger      *slog.Logger
	Clock       clock.Clock
	Actor       string
}

var errNoPersistence = errors.New("app: no persistence configured")

var _ reschedule.Patcher = (*Service)(nil)

// Filter narrows a query. Empty fields match everything.
type Filter struct {
	Project string
	Owners  []string
}

// Query returns the tickets matching f. Read failures are logged and
// yield an empty result so a view can still render.
func (s *Service) Query(ctx context.Context, f Filter) []*ticket.Ticket {
	if s.Persistence == nil {
		s.logger().Error("query failed", "err", errNoPersistence)
		return []*ticket.Ticket{}
	}
	if err := ctx.Err(); err != nil {
		s.logger().Warn("query cancelled", "err", err)
		return []*ticket.Ticket{}
	}
	var tickets []*ticket.Ticket
	if project := strings.TrimSpace(f.Project); project != "" {
		tickets = s.Persistence.List(ctx, project)
	} else {
		tickets = s.Persistence.ListAll(ctx)
	}
	if tickets == nil {
		tickets = []*ticket.Ticket{}
	}
	return calendar.FilterOwners(tickets, f.Owners)
}

// Get returns the ticket with the given id.
func (s *Service) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Get(ctx, id)
}

// Projects returns sorted project names.
func (s *Service) Projects(ctx context.Context) ([]string, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	projects := s.Persistence.Projects(ctx)
	sort.Strings(projects)
	return projects, nil
}

// Owners returns the distinct assignees of the matching tickets, sorted,
// with unassigned last when present.
func (s *Service) Owners(ctx context.Context, f Filter) []string {
	seen := make(map[string]bool)
	unassigned := false
	var owners []string
	for _, t := range s.Query(ctx, f) {
		if t.Assignee == calendar.Unassigned {
			unassigned = true
			continue
		}
		if !seen[t.Assignee] {
			seen[t.Assignee] = true
			owners = append(owners, t.Assignee)
		}
	}
	sort.Strings(owners)
	if unassigned {
		owners = append(owners, calendar.Unassigned)
	}
	return owners
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// NewTicket describes a ticket to create.
type NewTicket struct {
	Project  string
	Title    string
	Assignee string
	Status   glyph.Status
	Priority glyph.Priority
	Due      *time.Time
}

// Add creates and stores a new ticket and records its creation.
func (s *Service) Add(ctx context.Context, n NewTicket) (*ticket.Ticket, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if strings.TrimSpace(n.Title) == "" {
		return nil, errors.New("app: ticket title required")
	}
	t := ticket.New(n.Project, n.Title, s.now())
	t.Assignee = n.Assignee
	t.Status = n.Status
	t.Priority = n.Priority
	if n.Due != nil {
		t.DueDate = ticket.At(*n.Due)
	}
	if err := s.Persistence.Store(t); err != nil {
		return nil, fmt.Errorf("app: store ticket: %w", err)
	}
	s.Record(ctx, ticket.Event{Action: ticket.ActionCreated, TicketID: t.ID, Detail: t.Title})
	return t, nil
}

// Delete removes a ticket permanently.
func (s *Service) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Persistence.Delete(t); err != nil {
		return fmt.Errorf("app: delete %s: %w", id, err)
	}
	s.Record(ctx, ticket.Event{Action: ticket.ActionDeleted, TicketID: id, Detail: t.Title})
	return nil
}

// PatchField updates a single date field. An unknown ticket or field is a
// rejection; anything else the store reports is passed through for the
// caller to classify.
func (s *Service) PatchField(ctx context.Context, id string, field ticket.DateField, value *time.Time) (*ticket.Ticket, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if !field.Valid() {
		return nil, fmt.Errorf("%w: unknown date field %d", reschedule.ErrMutationRejected, int(field))
	}
	t, err := s.Persistence.Patch(ctx, id, field, value, s.now())
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, fmt.Errorf("%w: %w", reschedule.ErrMutationRejected, err)
	case err != nil:
		return nil, fmt.Errorf("app: patch %s: %w", id, err)
	}
	s.logger().Debug("ticket patched", "ticket", id, "field", field.String())
	return t, nil
}

// Record appends an audit event. It is best effort: failures are logged
// and otherwise ignored.
func (s *Service) Record(_ context.Context, e ticket.Event) {
	if s.Persistence == nil {
		return
	}
	if e.Actor == "" {
		e.Actor = s.Actor
	}
	if e.At.IsZero() {
		e.At = *ticket.At(s.now())
	}
	if err := s.Persistence.AppendEvent(e); err != nil {
		s.logger().Warn("audit append failed", "ticket", e.TicketID, "action", e.Action, "err", err)
	}
}

// Events returns the audit history of a ticket, oldest first.
func (s *Service) Events(ctx context.Context, id string) ([]ticket.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Events(ctx, id), nil
}

func (s *Service) now() time.Time {
	return clock.Or(s.Clock).Now()
}

// SetLogger points the service and its store at l.
func (s *Service) SetLogger(l *slog.Logger) {
	s.Logger = l
	if s.Persistence != nil {
		s.Persistence.SetLogger(l)
	}
}

func (s *Service) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
