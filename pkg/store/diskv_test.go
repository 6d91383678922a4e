package store

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/tickal/pkg/ticket"
)

func newTestStore(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	require.NoError(t, err)
	return p
}

func TestStoreAndGet(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	now := time.Date(2024, 6, 3, 9, 30, 0, 0, time.Local)

	tk := ticket.New("ops/infra", "rotate certs", now)
	require.NoError(t, p.Store(tk))
	require.NotEmpty(t, tk.ID)

	got, err := p.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "rotate certs", got.Title)
	assert.Equal(t, "ops/infra", got.Project)
	created, ok := got.CreatedAt.Value()
	require.True(t, ok)
	assert.True(t, created.Equal(now))

	_, err = p.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStoreDefaultsProject(t *testing.T) {
	p := newTestStore(t)
	tk := ticket.New("", "loose", time.Now())
	require.NoError(t, p.Store(tk))
	assert.Equal(t, DefaultProject, tk.Project)
	assert.Equal(t, []string{DefaultProject}, p.Projects(context.Background()))
}

func TestStoreMovesProject(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	tk := ticket.New("a", "move me", time.Now())
	require.NoError(t, p.Store(tk))

	tk.Project = "b"
	require.NoError(t, p.Store(tk))

	assert.Empty(t, p.List(ctx, "a"))
	require.Len(t, p.List(ctx, "b"), 1)
	assert.Len(t, p.ListAll(ctx), 1)
}

func TestListAllOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	second := ticket.New("x", "second", base.Add(time.Hour))
	first := ticket.New("y", "first", base)
	require.NoError(t, p.Store(second))
	require.NoError(t, p.Store(first))

	all := p.ListAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "first", all[0].Title)
	assert.Equal(t, "second", all[1].Title)
}

func TestPatchDueDate(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	created := time.Date(2024, 6, 1, 8, 0, 0, 0, time.Local)
	tk := ticket.New("ops", "patch me", created)
	require.NoError(t, p.Store(tk))

	due := time.Date(2024, 6, 12, 14, 0, 0, 0, time.Local)
	now := created.Add(48 * time.Hour)
	patched, err := p.Patch(ctx, tk.ID, ticket.DueDate, &due, now)
	require.NoError(t, err)
	got, ok := patched.DueDate.Value()
	require.True(t, ok)
	assert.True(t, got.Equal(due))
	updated, _ := patched.UpdatedAt.Value()
	assert.True(t, updated.Equal(now))

	reread, err := p.Get(ctx, tk.ID)
	require.NoError(t, err)
	got, ok = reread.DueDate.Value()
	require.True(t, ok)
	assert.True(t, got.Equal(due))

	_, err = p.Patch(ctx, tk.ID, ticket.DueDate, nil, now)
	require.NoError(t, err)
	reread, err = p.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Nil(t, reread.DueDate)

	_, err = p.Patch(ctx, "nope", ticket.DueDate, &due, now)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventsAreKeptApartFromTickets(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	tk := ticket.New("ops", "audited", time.Now())
	require.NoError(t, p.Store(tk))

	at := time.Date(2024, 6, 1, 10, 0, 0, 0, time.Local)
	require.NoError(t, p.AppendEvent(ticket.Event{Action: ticket.ActionDueDateChanged, TicketID: tk.ID, At: *ticket.At(at.Add(time.Minute)), Detail: "later"}))
	require.NoError(t, p.AppendEvent(ticket.Event{Action: ticket.ActionCreated, TicketID: tk.ID, At: *ticket.At(at)}))

	events := p.Events(ctx, tk.ID)
	require.Len(t, events, 2)
	assert.Equal(t, ticket.ActionCreated, events[0].Action)
	assert.Equal(t, "later", events[1].Detail)

	assert.Len(t, p.ListAll(ctx), 1)
	assert.Equal(t, []string{"ops"}, p.Projects(ctx))
	assert.Error(t, p.AppendEvent(ticket.Event{Action: ticket.ActionCreated}))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	p := newTestStore(t)
	tk := ticket.New("ops", "gone", time.Now())
	require.NoError(t, p.Store(tk))
	require.NoError(t, p.Delete(tk))
	assert.Empty(t, p.ListAll(ctx))
	assert.ErrorIs(t, p.Delete(tk), ErrNotFound)
}

func TestCorruptRecordLogged(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	var buf bytes.Buffer
	p, err := Load(testConfig{path: base}, WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	require.NoError(t, err)

	good := ticket.New("ops", "fine", time.Now())
	require.NoError(t, p.Store(good))
	bad := ticket.New("ops", "broken", time.Now())
	require.NoError(t, p.Store(bad))
	require.NoError(t, os.WriteFile(filepath.Join(base, toProject("ops"), bad.ID), []byte("{not json"), 0o600))

	got := p.List(ctx, "ops")
	require.Len(t, got, 1)
	assert.Equal(t, good.ID, got[0].ID)
	assert.Contains(t, buf.String(), "skipping unreadable ticket")
	assert.Contains(t, buf.String(), bad.ID)
}
