// Command demo fills the configured store with sample tickets spread
// around today, for trying the calendar views.
package main

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/store"
)

type sample struct {
	project  string
	title    string
	assignee string
	status   glyph.Status
	priority glyph.Priority
	// dueIn is days from today; nil leaves the ticket unscheduled.
	dueIn *int
	hour  int
}

func days(n int) *int { return &n }

var samples = []sample{
	{"ops", "rotate tls certs", "ana", glyph.Open, glyph.Urgent, days(0), 14},
	{"ops", "patch the bastion", "bo", glyph.InProgress, glyph.High, days(1), 10},
	{"ops", "capacity review", "", glyph.Open, glyph.Medium, days(3), 9},
	{"ops", "retire old dashboards", "ana", glyph.Blocked, glyph.Low, days(-2), 16},
	{"web", "ship the pricing page", "cy", glyph.InProgress, glyph.High, days(2), 11},
	{"web", "fix flaky checkout test", "bo", glyph.Open, glyph.Medium, days(-1), 15},
	{"web", "write the postmortem", "cy", glyph.Done, glyph.Medium, days(-5), 13},
	{"web", "a11y audit", "", glyph.Open, glyph.Low, days(12), 10},
	{"inbox", "someday: dark mode", "", glyph.Open, glyph.Low, nil, 0},
	{"inbox", "read the rfc", "ana", glyph.Open, glyph.Medium, days(30), 9},
}

func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}
	svc := &app.Service{Persistence: p, Clock: clock.Real(), Actor: "demo"}
	ctx := context.Background()

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for _, s := range samples {
		n := app.NewTicket{
			Project:  s.project,
			Title:    s.title,
			Assignee: s.assignee,
			Status:   s.status,
			Priority: s.priority,
		}
		if s.dueIn != nil {
			due := today.AddDate(0, 0, *s.dueIn).Add(time.Duration(s.hour) * time.Hour)
			n.Due = &due
		}
		t, err := svc.Add(ctx, n)
		if err != nil {
			panic(err)
		}
		fmt.Printf("%s  %s\n", t.ID, t.Title)
	}
}
