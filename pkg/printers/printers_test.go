package printers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
)

func init() {
	color.NoColor = true
}

var june10 = time.Date(2024, 6, 10, 9, 0, 0, 0, time.Local)

func sample() []*ticket.Ticket {
	mk := func(id, title, who string, due time.Time) *ticket.Ticket {
		return &ticket.Ticket{ID: id, Project: "ops", Title: title, Assignee: who, Status: glyph.Open, Priority: glyph.Medium, CreatedAt: ticket.At(june10), DueDate: ticket.At(due)}
	}
	return []*ticket.Ticket{
		mk("a", "alpha", "ana", time.Date(2024, 6, 12, 10, 0, 0, 0, time.Local)),
		mk("b", "bravo", "", time.Date(2024, 6, 12, 15, 0, 0, 0, time.Local)),
		mk("c", "charlie", "bo", time.Date(2024, 6, 12, 16, 0, 0, 0, time.Local)),
		{ID: "d", Project: "ops", Title: "delta", CreatedAt: ticket.At(june10)},
	}
}

func build(t *testing.T, g calendar.Granularity) calendar.View {
	t.Helper()
	cfg := calendar.DefaultViewConfig(june10)
	cfg.Granularity = g
	cfg.DateField = ticket.DueDate
	v, err := calendar.Build(cfg, sample())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	return v
}

func TestMonthViewListsDaysAndUnscheduled(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.View(build(t, calendar.Month), june10); err != nil {
		t.Fatalf("view: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"June", "alpha", "bravo", "charlie", "No due date", "delta"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
	if strings.Contains(out, "more") {
		t.Fatalf("month view should not cap cells:\n%s", out)
	}
}

func TestYearViewCapsCells(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.View(build(t, calendar.Year), june10); err != nil {
		t.Fatalf("view: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "+1 more") {
		t.Fatalf("expected '+1 more' in year view:\n%s", out)
	}
	if strings.Contains(out, "charlie") {
		t.Fatalf("third ticket should be hidden in year view:\n%s", out)
	}
}

func TestWeekViewShowsHours(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.View(build(t, calendar.Week), june10); err != nil {
		t.Fatalf("view: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Week of June 9 2024", "Wed Jun 12", "10:00", "15:00", "16:00"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListTable(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	if err := pp.View(build(t, calendar.List), june10); err != nil {
		t.Fatalf("view: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ana", "bo", "unassigned", "Wed Jun 12", "alpha"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStructuredViewDoc(t *testing.T) {
	doc := NewViewDoc(build(t, calendar.Year))
	if doc.Total != 3 || len(doc.Cells) != 1 || doc.Cells[0].More != 1 || len(doc.Cells[0].Tickets) != 2 {
		t.Fatalf("unexpected doc %+v", doc)
	}
	if len(doc.Unscheduled) != 1 || doc.Unscheduled[0].ID != "d" {
		t.Fatalf("expected delta unscheduled, got %+v", doc.Unscheduled)
	}

	var buf bytes.Buffer
	if err := Structured(&buf, JSON, doc); err != nil {
		t.Fatalf("json: %v", err)
	}
	var back ViewDoc
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode json: %v", err)
	}
	if back.Granularity != "year" || back.Field != "dueDate" {
		t.Fatalf("unexpected header %+v", back)
	}

	buf.Reset()
	if err := Structured(&buf, YAML, doc); err != nil {
		t.Fatalf("yaml: %v", err)
	}
	back = ViewDoc{}
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if back.Total != 3 {
		t.Fatalf("expected total 3 from yaml, got %d", back.Total)
	}

	if err := Structured(&buf, "xml", doc); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestListDocKeysOwners(t *testing.T) {
	doc := NewViewDoc(build(t, calendar.List))
	if len(doc.Owners) != 3 || doc.Owners[2] != "unassigned" {
		t.Fatalf("unexpected owners %v", doc.Owners)
	}
	found := false
	for _, r := range doc.Rows {
		if r.Date == "2024-06-12" {
			found = len(r.Owners["ana"]) == 1 && len(r.Owners["unassigned"]) == 1
		}
	}
	if !found {
		t.Fatalf("expected June 12 row with ana and unassigned tickets: %+v", doc.Rows)
	}
}

func TestSummaryStrikesResolved(t *testing.T) {
	color.NoColor = false
	t.Cleanup(func() { color.NoColor = true })

	open := &ticket.Ticket{Title: "pending", Status: glyph.Open}
	done := &ticket.Ticket{Title: "shipped", Status: glyph.Done}
	if strings.Contains(Summary(open), "\x1b[9m") {
		t.Fatalf("open ticket should not be struck: %q", Summary(open))
	}
	if !strings.Contains(Summary(done), "\x1b[9mshipped") {
		t.Fatalf("done ticket should be struck: %q", Summary(done))
	}
}
