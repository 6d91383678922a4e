package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/store"
	"tableflip.dev/tickal/pkg/ticket"
)

type memoryPersistence struct {
	mu       sync.Mutex
	counter  int
	tickets  map[string]*ticket.Ticket
	events   []ticket.Event
	patchErr error
	eventErr error
	logger   *slog.Logger
}

func newMemoryPersistence(tickets ...*ticket.Ticket) *memoryPersistence {
	mp := &memoryPersistence{tickets: make(map[string]*ticket.Ticket)}
	for _, t := range tickets {
		if t == nil {
			continue
		}
		if t.ID == "" {
			t.ID = mp.newID()
		}
		mp.tickets[t.ID] = t.Clone()
	}
	return mp
}

func (m *memoryPersistence) newID() string {
	m.counter++
	return fmt.Sprintf("id%d", m.counter)
}

func (m *memoryPersistence) sorted(keep func(*ticket.Ticket) bool) []*ticket.Ticket {
	out := make([]*ticket.Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		if keep(t) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryPersistence) ListAll(_ context.Context) []*ticket.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(*ticket.Ticket) bool { return true })
}

func (m *memoryPersistence) List(_ context.Context, project string) []*ticket.Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sorted(func(t *ticket.Ticket) bool { return t.Project == project })
}

func (m *memoryPersistence) Get(_ context.Context, id string) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	return t.Clone(), nil
}

func (m *memoryPersistence) Projects(_ context.Context) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := make(map[string]bool)
	var out []string
	for _, t := range m.tickets {
		if !set[t.Project] {
			set[t.Project] = true
			out = append(out, t.Project)
		}
	}
	return out
}

func (m *memoryPersistence) Store(t *ticket.Ticket) error {
	if t == nil {
		return errors.New("nil ticket")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID == "" {
		t.ID = m.newID()
	}
	m.tickets[t.ID] = t.Clone()
	return nil
}

func (m *memoryPersistence) Delete(t *ticket.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tickets, t.ID)
	return nil
}

func (m *memoryPersistence) Patch(_ context.Context, id string, field ticket.DateField, value *time.Time, now time.Time) (*ticket.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.patchErr != nil {
		return nil, m.patchErr
	}
	t, ok := m.tickets[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", store.ErrNotFound, id)
	}
	if err := field.Set(t, value); err != nil {
		return nil, err
	}
	t.Touch(now)
	return t.Clone(), nil
}

func (m *memoryPersistence) AppendEvent(e ticket.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.eventErr != nil {
		return m.eventErr
	}
	m.events = append(m.events, e)
	return nil
}

func (m *memoryPersistence) Events(_ context.Context, id string) []ticket.Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []ticket.Event
	for _, e := range m.events {
		if e.TicketID == id {
			out = append(out, e)
		}
	}
	return out
}

func (m *memoryPersistence) Watch(context.Context) (<-chan store.Event, error) {
	return nil, nil
}

func (m *memoryPersistence) SetLogger(l *slog.Logger) { m.logger = l }

var fixedNow = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func newService(mp *memoryPersistence) *Service {
	return &Service{Persistence: mp, Clock: clock.Fixed(fixedNow), Actor: "ana"}
}

func due(t time.Time) *ticket.Timestamp { return ticket.At(t) }

func TestQueryFiltersProjectAndOwner(t *testing.T) {
	mp := newMemoryPersistence(
		&ticket.Ticket{ID: "a", Project: "ops", Title: "A", Assignee: "ana"},
		&ticket.Ticket{ID: "b", Project: "ops", Title: "B", Assignee: "bo"},
		&ticket.Ticket{ID: "c", Project: "web", Title: "C", Assignee: "ana"},
	)
	svc := newService(mp)
	ctx := context.Background()

	if got := svc.Query(ctx, Filter{}); len(got) != 3 {
		t.Fatalf("expected 3 tickets, got %d", len(got))
	}
	if got := svc.Query(ctx, Filter{Project: "ops"}); len(got) != 2 {
		t.Fatalf("expected 2 ops tickets, got %d", len(got))
	}
	got := svc.Query(ctx, Filter{Owners: []string{"ana"}})
	if len(got) != 2 || got[0].ID != "a" || got[1].ID != "c" {
		t.Fatalf("unexpected owner filter result: %v", got)
	}
}

func TestQueryDegradesToEmpty(t *testing.T) {
	svc := &Service{}
	got := svc.Query(context.Background(), Filter{})
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc = newService(newMemoryPersistence(&ticket.Ticket{ID: "a"}))
	if got := svc.Query(ctx, Filter{}); len(got) != 0 {
		t.Fatalf("expected empty result on cancelled context, got %d", len(got))
	}
}

func TestOwnersSortedUnassignedLast(t *testing.T) {
	mp := newMemoryPersistence(
		&ticket.Ticket{ID: "a", Assignee: "zed"},
		&ticket.Ticket{ID: "b"},
		&ticket.Ticket{ID: "c", Assignee: "ana"},
		&ticket.Ticket{ID: "d", Assignee: "ana"},
	)
	got := newService(mp).Owners(context.Background(), Filter{})
	want := []string{"ana", "zed", ""}
	if fmt.Sprint(got) != fmt.Sprint(want) || len(got) != len(want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestAddStampsClockAndRecords(t *testing.T) {
	mp := newMemoryPersistence()
	svc := newService(mp)
	ctx := context.Background()
	dueAt := fixedNow.Add(72 * time.Hour)

	tk, err := svc.Add(ctx, NewTicket{Project: "ops", Title: "ship", Priority: glyph.High, Due: &dueAt})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	created, ok := tk.CreatedAt.Value()
	if !ok || !created.Equal(fixedNow) {
		t.Fatalf("expected created %v, got %v", fixedNow, created)
	}
	if got, ok := tk.DueDate.Value(); !ok || !got.Equal(dueAt) {
		t.Fatalf("expected due %v, got %v", dueAt, got)
	}
	events, _ := svc.Events(ctx, tk.ID)
	if len(events) != 1 || events[0].Action != ticket.ActionCreated || events[0].Actor != "ana" {
		t.Fatalf("unexpected events %+v", events)
	}

	if _, err := svc.Add(ctx, NewTicket{Title: "  "}); err == nil {
		t.Fatal("expected error for blank title")
	}
}

func TestPatchFieldClassifiesErrors(t *testing.T) {
	mp := newMemoryPersistence(&ticket.Ticket{ID: "a", Project: "ops", Title: "A"})
	svc := newService(mp)
	ctx := context.Background()
	to := time.Date(2024, 6, 20, 14, 0, 0, 0, time.Local)

	patched, err := svc.PatchField(ctx, "a", ticket.DueDate, &to)
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if got, _ := patched.DueDate.Value(); !got.Equal(to) {
		t.Fatalf("expected due %v, got %v", to, got)
	}
	if got, _ := patched.UpdatedAt.Value(); !got.Equal(fixedNow) {
		t.Fatalf("expected updated %v, got %v", fixedNow, got)
	}

	if _, err := svc.PatchField(ctx, "missing", ticket.DueDate, &to); !errors.Is(err, reschedule.ErrMutationRejected) {
		t.Fatalf("expected rejection for unknown id, got %v", err)
	}
	if _, err := svc.PatchField(ctx, "a", ticket.DateField(42), &to); !errors.Is(err, reschedule.ErrMutationRejected) {
		t.Fatalf("expected rejection for unknown field, got %v", err)
	}

	mp.patchErr = errors.New("disk full")
	_, err = svc.PatchField(ctx, "a", ticket.DueDate, &to)
	if err == nil || errors.Is(err, reschedule.ErrMutationRejected) {
		t.Fatalf("expected a plain store error, got %v", err)
	}
}

func TestControllerCommitsThroughService(t *testing.T) {
	orig := time.Date(2024, 6, 3, 14, 30, 0, 0, time.Local)
	mp := newMemoryPersistence(&ticket.Ticket{ID: "a", Project: "ops", Title: "A", DueDate: due(orig)})
	svc := newService(mp)
	ctx := context.Background()

	ctrl := &reschedule.Controller{Patcher: svc, Notifier: Auditor{Service: svc}, Clock: svc.Clock, Actor: svc.Actor}
	cfg := calendarConfigOnDue()
	tk, _ := svc.Get(ctx, "a")
	if err := ctrl.Begin(cfg, tk); err != nil {
		t.Fatalf("begin: %v", err)
	}
	cell := monthCell(t, cfg, time.Date(2024, 6, 20, 0, 0, 0, 0, time.Local))
	m, err := ctrl.Drop(cell)
	if err != nil {
		t.Fatalf("drop: %v", err)
	}
	if err := ctrl.Commit(ctx, m); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, _ := svc.Get(ctx, "a")
	want := time.Date(2024, 6, 20, 14, 30, 0, 0, time.Local)
	if d, _ := got.DueDate.Value(); !d.Equal(want) {
		t.Fatalf("expected due %v, got %v", want, d)
	}
	events, _ := svc.Events(ctx, "a")
	if len(events) != 1 || events[0].Action != ticket.ActionDueDateChanged {
		t.Fatalf("expected one due change event, got %+v", events)
	}
}

func TestRecordIsBestEffort(t *testing.T) {
	mp := newMemoryPersistence(&ticket.Ticket{ID: "a"})
	mp.eventErr = errors.New("read only")
	svc := newService(mp)
	svc.Record(context.Background(), ticket.Event{Action: ticket.ActionCreated, TicketID: "a"})
	if len(mp.events) != 0 {
		t.Fatalf("expected no events stored, got %d", len(mp.events))
	}
}

func TestDeleteRecordsEvent(t *testing.T) {
	mp := newMemoryPersistence(&ticket.Ticket{ID: "a", Title: "gone"})
	svc := newService(mp)
	ctx := context.Background()
	if err := svc.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, "a"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if len(mp.events) != 1 || mp.events[0].Action != ticket.ActionDeleted {
		t.Fatalf("expected delete event, got %+v", mp.events)
	}
	if err := svc.Delete(ctx, "a"); err == nil {
		t.Fatal("expected error deleting twice")
	}
}

func TestSetLoggerReachesStore(t *testing.T) {
	mp := newMemoryPersistence()
	svc := newService(mp)
	l := slog.New(slog.DiscardHandler)
	svc.SetLogger(l)
	if svc.Logger != l || mp.logger != l {
		t.Fatal("expected service and store to share the logger")
	}
}
