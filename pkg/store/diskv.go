package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/tickal/pkg/ticket"
)

// DefaultProject holds tickets filed without a project.
const DefaultProject = "inbox"

// ErrNotFound is returned when no ticket has the requested id.
var ErrNotFound = errors.New("store: ticket not found")

// Persistence defines the record store contract for tickets and their
// audit trail.
type Persistence interface {
	ListAll(ctx context.Context) []*ticket.Ticket
	List(ctx context.Context, project string) []*ticket.Ticket
	Get(ctx context.Context, id string) (*ticket.Ticket, error)
	Projects(ctx context.Context) []string
	Store(t *ticket.Ticket) error
	Delete(t *ticket.Ticket) error
	Patch(ctx context.Context, id string, field ticket.DateField, value *time.Time, now time.Time) (*ticket.Ticket, error)
	AppendEvent(e ticket.Event) error
	Events(ctx context.Context, ticketID string) []ticket.Event
	Watch(ctx context.Context) (<-chan Event, error)
	// SetLogger redirects read, audit and watcher errors.
	SetLogger(l *slog.Logger)
}

// Option configures a Persistence returned by Load.
type Option func(*persistence)

// WithLogger sends unreadable records and watcher errors to l.
func WithLogger(l *slog.Logger) Option {
	return func(p *persistence) { p.SetLogger(l) }
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// Other tickal processes write the same tree, so reads go to disk.
		CacheSizeMax: 0,
	}), basePath: basePath}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	logger   atomic.Pointer[slog.Logger]
}

func (p *persistence) SetLogger(l *slog.Logger) {
	p.logger.Store(l)
}

func (p *persistence) log() *slog.Logger {
	if l := p.logger.Load(); l != nil {
		return l
	}
	return slog.Default()
}

const auditDir = "audit"

func (p *persistence) read(key string) (*ticket.Ticket, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &ticket.Ticket{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	t.ID = pk.FileName
	if t.Project == "" {
		t.Project = fromProject(pk.Path[0])
	}
	return t, nil
}

func (p *persistence) ticketKeys(ctx context.Context) []string {
	var keys []string
	for key := range p.d.Keys(ctx.Done()) {
		if isAuditKey(key) {
			continue
		}
		keys = append(keys, key)
	}
	return keys
}

func (p *persistence) ListAll(ctx context.Context) []*ticket.Ticket {
	all := make([]*ticket.Ticket, 0)
	for _, key := range p.ticketKeys(ctx) {
		t, err := p.read(key)
		if err != nil {
			p.log().Warn("skipping unreadable ticket", "key", key, "err", err)
			continue
		}
		all = append(all, t)
	}
	sortTickets(all)
	return all
}

func (p *persistence) List(ctx context.Context, project string) []*ticket.Ticket {
	pk := toProject(project)
	all := make([]*ticket.Ticket, 0)
	for _, key := range p.ticketKeys(ctx) {
		if keyToPathTransform(key).Path[0] != pk {
			continue
		}
		t, err := p.read(key)
		if err != nil {
			p.log().Warn("skipping unreadable ticket", "key", key, "err", err)
			continue
		}
		all = append(all, t)
	}
	sortTickets(all)
	return all
}

func (p *persistence) keyFor(ctx context.Context, id string) (string, bool) {
	if id == "" {
		return "", false
	}
	for _, key := range p.ticketKeys(ctx) {
		if keyToPathTransform(key).FileName == id {
			return key, true
		}
	}
	return "", false
}

func (p *persistence) Get(ctx context.Context, id string) (*ticket.Ticket, error) {
	key, ok := p.keyFor(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return p.read(key)
}

func (p *persistence) Projects(ctx context.Context) []string {
	set := make(map[string]struct{})
	for _, key := range p.ticketKeys(ctx) {
		set[fromProject(keyToPathTransform(key).Path[0])] = struct{}{}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (p *persistence) Store(t *ticket.Ticket) error {
	if t == nil {
		return errors.New("store: nil ticket")
	}
	if strings.TrimSpace(t.Project) == "" {
		t.Project = DefaultProject
	}
	if t.ID == "" {
		id, err := newID()
		if err != nil {
			return err
		}
		t.ID = id
	}
	key := toKey(t)

	// A project change moves the record; drop the old copy.
	if old, ok := p.keyFor(context.Background(), t.ID); ok && old != key {
		if err := p.d.Erase(old); err != nil {
			return fmt.Errorf("store: move %s: %w", t.ID, err)
		}
	}

	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Delete(t *ticket.Ticket) error {
	if t == nil {
		return nil
	}
	key, ok := p.keyFor(context.Background(), t.ID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, t.ID)
	}
	return p.d.Erase(key)
}

// Patch sets a single date field on the ticket with the given id and
// stamps UpdatedAt with now.
func (p *persistence) Patch(ctx context.Context, id string, field ticket.DateField, value *time.Time, now time.Time) (*ticket.Ticket, error) {
	key, ok := p.keyFor(ctx, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	t, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", id, err)
	}
	if err := field.Set(t, value); err != nil {
		return nil, err
	}
	if field != ticket.UpdatedAt {
		t.Touch(now)
	}
	data, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	if err := p.d.Write(key, data); err != nil {
		return nil, fmt.Errorf("store: write %s: %w", id, err)
	}
	return t, nil
}

func (p *persistence) AppendEvent(e ticket.Event) error {
	if e.TicketID == "" {
		return errors.New("store: audit event without ticket id")
	}
	if e.At.IsZero() {
		e.At = *ticket.At(time.Now())
	}
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	// Events of one ticket can share a clock reading.
	suffix, err := newID()
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s-%s-%d.%s", auditDir, e.TicketID, e.At.UnixNano(), suffix)
	return p.d.Write(key, data)
}

func (p *persistence) Events(ctx context.Context, ticketID string) []ticket.Event {
	var events []ticket.Event
	for key := range p.d.KeysPrefix(fmt.Sprintf("%s-%s-", auditDir, ticketID), ctx.Done()) {
		val, err := p.d.Read(key)
		if err != nil {
			p.log().Warn("skipping unreadable event", "key", key, "err", err)
			continue
		}
		var e ticket.Event
		if err := json.Unmarshal(val, &e); err != nil {
			p.log().Warn("skipping corrupt event", "key", key, "err", err)
			continue
		}
		events = append(events, e)
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].At.Before(events[j].At.Time)
	})
	return events
}

// sortTickets orders by creation time, then id. Tickets without a creation
// time sort last.
func sortTickets(tickets []*ticket.Ticket) {
	sort.SliceStable(tickets, func(i, j int) bool {
		left := tickets[i]
		right := tickets[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt, lok := left.CreatedAt.Value()
		rt, rok := right.CreatedAt.Value()
		switch {
		case !lok && !rok:
			return left.ID < right.ID
		case !lok:
			return false
		case !rok:
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

func isAuditKey(key string) bool {
	return strings.HasPrefix(key, auditDir+"-")
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `project-id`.
func toKey(t *ticket.Ticket) string {
	return fmt.Sprintf("%s-%s", toProject(t.Project), t.ID)
}

func newID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("store: generate id: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Project names are hex encoded so they are safe as a single path element
// and never contain the key separator.
func toProject(s string) string {
	return hex.EncodeToString([]byte(s))
}

func fromProject(s string) string {
	project, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromProject: %s", err)
	}
	return string(project)
}
