// Package ics publishes ticket due dates as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"tableflip.dev/tickal/pkg/glyph"
	"tableflip.dev/tickal/pkg/ticket"
)

// DefaultDuration is the length given to each exported due date.
const DefaultDuration = time.Hour

// Options tune an export.
type Options struct {
	// Name is the calendar display name.
	Name string
	// Duration is the event length; zero means DefaultDuration.
	Duration time.Duration
	// IncludeResolved keeps done and closed tickets.
	IncludeResolved bool
}

// Export writes one VEVENT per ticket with a due date. now stamps DTSTAMP.
// It returns the number of events written.
func Export(w io.Writer, tickets []*ticket.Ticket, now time.Time, o Options) (int, error) {
	cal := ical.NewCalendarFor("tickal")
	cal.SetMethod(ical.MethodPublish)
	if o.Name != "" {
		cal.SetName(o.Name)
		cal.SetXWRCalName(o.Name)
	}
	d := o.Duration
	if d <= 0 {
		d = DefaultDuration
	}

	n := 0
	for _, t := range tickets {
		due, ok := ticket.DueDate.Of(t)
		if !ok {
			continue
		}
		if t.Status.Resolved() && !o.IncludeResolved {
			continue
		}
		ev := cal.AddEvent(UID(t))
		ev.SetDtStampTime(now.UTC())
		if created, ok := t.CreatedAt.Value(); ok {
			ev.SetCreatedTime(created.UTC())
		}
		if updated, ok := t.UpdatedAt.Value(); ok {
			ev.SetLastModifiedAt(updated.UTC())
		}
		ev.SetStartAt(due.UTC())
		ev.SetEndAt(due.Add(d).UTC())
		ev.SetSummary(fmt.Sprintf("[%s] %s", t.Project, t.Title))
		ev.SetDescription(describe(t))
		ev.SetStatus(status(t.Status))
		ev.SetPriority(priority(t.Priority))
		if t.Project != "" {
			ev.AddCategory(t.Project)
		}
		n++
	}
	return n, cal.SerializeTo(w)
}

// UID is the stable event id of a ticket.
func UID(t *ticket.Ticket) string {
	return t.ID + "@tickal"
}

func describe(t *ticket.Ticket) string {
	parts := []string{
		"status: " + t.Status.String(),
		"priority: " + t.Priority.String(),
	}
	if t.Assignee != "" {
		parts = append(parts, "assignee: "+t.Assignee)
	}
	return strings.Join(parts, "\n")
}

func status(s glyph.Status) ical.ObjectStatus {
	switch s {
	case glyph.Closed:
		return ical.ObjectStatusCancelled
	case glyph.Open, glyph.Blocked:
		return ical.ObjectStatusTentative
	default:
		return ical.ObjectStatusConfirmed
	}
}

// priority maps onto RFC 5545's 1 (highest) to 9 (lowest).
func priority(p glyph.Priority) int {
	switch p {
	case glyph.Urgent:
		return 1
	case glyph.High:
		return 3
	case glyph.Low:
		return 9
	default:
		return 5
	}
}
