package app

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
)

func calendarConfigOnDue() calendar.ViewConfig {
	cfg := calendar.DefaultViewConfig(fixedNow)
	cfg.DateField = ticket.DueDate
	return cfg
}

func monthCell(t *testing.T, cfg calendar.ViewConfig, day time.Time) calendar.Cell {
	t.Helper()
	grid, err := calendar.BuildGrid(cfg.Anchor, calendar.Month, false)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	cell, ok := grid.Find(calendar.BucketKey(day, calendar.Month))
	if !ok {
		t.Fatalf("no cell for %v", day)
	}
	return cell
}

func TestReportGroupsDueTickets(t *testing.T) {
	mp := newMemoryPersistence(
		&ticket.Ticket{ID: "a", Project: "web", Title: "late", Status: glyph.Open, DueDate: due(fixedNow.Add(-24 * time.Hour))},
		&ticket.Ticket{ID: "b", Project: "ops", Title: "soon", Status: glyph.Open, DueDate: due(fixedNow.Add(48 * time.Hour))},
		&ticket.Ticket{ID: "c", Project: "ops", Title: "first", Status: glyph.Done, DueDate: due(fixedNow.Add(-48 * time.Hour))},
		&ticket.Ticket{ID: "d", Project: "ops", Title: "far", DueDate: due(fixedNow.Add(60 * 24 * time.Hour))},
		&ticket.Ticket{ID: "e", Project: "ops", Title: "undated"},
	)
	svc := newService(mp)

	got := svc.Report(context.Background(), Filter{}, fixedNow.Add(7*24*time.Hour), fixedNow.Add(-7*24*time.Hour))
	if got.Total != 3 {
		t.Fatalf("expected 3 due tickets, got %d", got.Total)
	}
	if got.Overdue != 1 {
		t.Fatalf("expected 1 overdue, got %d", got.Overdue)
	}
	if len(got.Sections) != 2 || got.Sections[0].Project != "ops" || got.Sections[1].Project != "web" {
		t.Fatalf("unexpected sections %+v", got.Sections)
	}
	ops := got.Sections[0].Items
	if len(ops) != 2 || ops[0].Ticket.ID != "c" || ops[1].Ticket.ID != "b" {
		t.Fatalf("expected ops ordered by due date, got %+v", ops)
	}
	if ops[0].Overdue {
		t.Fatal("resolved ticket should not be overdue")
	}
	if !got.Since.Before(got.Until) {
		t.Fatal("expected window to be normalised")
	}
}
