package printers

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/ticket"
)

// Output formats.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// ValidOutput reports whether format is one of Text, JSON or YAML.
func ValidOutput(format string) bool {
	switch strings.ToLower(format) {
	case Text, JSON, YAML:
		return true
	}
	return false
}

// TicketDoc is the structured form of a ticket.
type TicketDoc struct {
	ID       string `json:"id" yaml:"id"`
	Project  string `json:"project" yaml:"project"`
	Title    string `json:"title" yaml:"title"`
	Assignee string `json:"assignee,omitempty" yaml:"assignee,omitempty"`
	Status   string `json:"status" yaml:"status"`
	Priority string `json:"priority" yaml:"priority"`
	Created  string `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	Updated  string `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	Due      string `json:"dueDate,omitempty" yaml:"dueDate,omitempty"`
}

// CellDoc is one non-empty grid cell. More counts tickets hidden by the
// view's display cap.
type CellDoc struct {
	Key     string      `json:"key" yaml:"key"`
	Label   string      `json:"label" yaml:"label"`
	Tickets []TicketDoc `json:"tickets" yaml:"tickets"`
	More    int         `json:"more,omitempty" yaml:"more,omitempty"`
}

// RowDoc is one date of the list view, keyed by owner.
type RowDoc struct {
	Date   string                 `json:"date" yaml:"date"`
	Owners map[string][]TicketDoc `json:"owners" yaml:"owners"`
}

// ViewDoc is the structured form of a calendar view.
type ViewDoc struct {
	Granularity string      `json:"granularity" yaml:"granularity"`
	Field       string      `json:"field" yaml:"field"`
	Anchor      string      `json:"anchor" yaml:"anchor"`
	Draggable   bool        `json:"draggable" yaml:"draggable"`
	Total       int         `json:"total" yaml:"total"`
	Cells       []CellDoc   `json:"cells,omitempty" yaml:"cells,omitempty"`
	Unscheduled []TicketDoc `json:"unscheduled,omitempty" yaml:"unscheduled,omitempty"`
	Owners      []string    `json:"owners,omitempty" yaml:"owners,omitempty"`
	Rows        []RowDoc    `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// NewTicketDoc converts t for structured output.
func NewTicketDoc(t *ticket.Ticket) TicketDoc {
	return TicketDoc{
		ID:       t.ID,
		Project:  t.Project,
		Title:    t.Title,
		Assignee: t.Assignee,
		Status:   t.Status.Glyph().Key,
		Priority: t.Priority.Glyph().Key,
		Created:  docStamp(t.CreatedAt),
		Updated:  docStamp(t.UpdatedAt),
		Due:      docStamp(t.DueDate),
	}
}

// EventDoc is the structured form of an audit event.
type EventDoc struct {
	At     string `json:"at" yaml:"at"`
	Action string `json:"action" yaml:"action"`
	Actor  string `json:"actor,omitempty" yaml:"actor,omitempty"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// NewEventDocs converts an audit history for structured output.
func NewEventDocs(events []ticket.Event) []EventDoc {
	docs := make([]EventDoc, 0, len(events))
	for _, e := range events {
		docs = append(docs, EventDoc{
			At:     e.At.Local().Format(time.RFC3339),
			Action: e.Action,
			Actor:  e.Actor,
			Detail: e.Detail,
		})
	}
	return docs
}

func ticketDocs(tickets []*ticket.Ticket) []TicketDoc {
	docs := make([]TicketDoc, 0, len(tickets))
	for _, t := range tickets {
		docs = append(docs, NewTicketDoc(t))
	}
	return docs
}

// NewViewDoc converts v for structured output. Only cells holding tickets
// are included.
func NewViewDoc(v calendar.View) ViewDoc {
	doc := ViewDoc{
		Granularity: v.Config.Granularity.String(),
		Field:       v.Config.DateField.String(),
		Anchor:      v.Config.Anchor.Local().Format(time.RFC3339),
		Draggable:   v.Config.Draggable(),
	}
	if v.List != nil {
		doc.Total = v.List.Total()
		for _, o := range v.List.Owners {
			doc.Owners = append(doc.Owners, OwnerName(o))
		}
		for _, r := range v.List.Rows {
			row := RowDoc{Date: r.Date.Format("2006-01-02"), Owners: map[string][]TicketDoc{}}
			for i, cell := range r.Cells {
				if len(cell) > 0 {
					row.Owners[OwnerName(v.List.Owners[i])] = ticketDocs(cell)
				}
			}
			doc.Rows = append(doc.Rows, row)
		}
		return doc
	}

	doc.Total = v.Buckets.Total()
	for _, c := range v.Grid.Content() {
		shown, more := v.Buckets.Display(c)
		if len(shown) == 0 {
			continue
		}
		doc.Cells = append(doc.Cells, CellDoc{Key: c.Key, Label: c.Label, Tickets: ticketDocs(shown), More: more})
	}
	if len(v.Buckets.Unscheduled) > 0 {
		doc.Unscheduled = ticketDocs(v.Buckets.Unscheduled)
	}
	return doc
}

// Structured writes v to w as JSON or YAML.
func Structured(w io.Writer, format string, v interface{}) error {
	switch strings.ToLower(format) {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("printers: unknown output format %q", format)
}

func docStamp(ts *ticket.Timestamp) string {
	v, ok := ts.Value()
	if !ok {
		return ""
	}
	return v.Local().Format(time.RFC3339)
}
