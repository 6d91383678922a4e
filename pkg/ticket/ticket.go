// Package ticket defines the schedulable work item the calendar places into
// cells, and the date fields a view can be keyed on.
package ticket

import (
	"fmt"
	"time"

	"tableflip.dev/tickal/pkg/glyph"
)

// Ticket is a unit of work tracked by the record store. The calendar never
// creates or deletes tickets; it only asks for its due date to change.
type Ticket struct {
	ID        string         `json:"id"`
	Project   string         `json:"project"`
	Title     string         `json:"title"`
	Assignee  string         `json:"assignee,omitempty"`
	Status    glyph.Status   `json:"status"`
	Priority  glyph.Priority `json:"priority"`
	CreatedAt *Timestamp     `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp     `json:"updatedAt,omitempty"`
	DueDate   *Timestamp     `json:"dueDate,omitempty"`
}

// New returns an open ticket stamped as created and updated at now.
func New(project, title string, now time.Time) *Ticket {
	return &Ticket{
		Project:   project,
		Title:     title,
		Status:    glyph.Open,
		Priority:  glyph.Medium,
		CreatedAt: At(now),
		UpdatedAt: At(now),
	}
}

// Clone returns a deep copy so callers can overlay pending changes without
// touching records handed out by the store.
func (t *Ticket) Clone() *Ticket {
	if t == nil {
		return nil
	}
	cp := *t
	cp.CreatedAt = t.CreatedAt.Clone()
	cp.UpdatedAt = t.UpdatedAt.Clone()
	cp.DueDate = t.DueDate.Clone()
	return &cp
}

// Touch stamps UpdatedAt.
func (t *Ticket) Touch(now time.Time) {
	t.UpdatedAt = At(now)
}

func (t *Ticket) String() string {
	return fmt.Sprintf("%s %s %s", t.Status.String(), t.Priority.String(), t.Title)
}
