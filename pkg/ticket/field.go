package ticket

import (
	"fmt"
	"strings"
	"time"
)

// DateField selects which timestamp of a ticket a calendar view is keyed on.
type DateField int

const (
	CreatedAt DateField = iota
	UpdatedAt
	DueDate
)

// DateFields lists the selectable fields in display order.
func DateFields() []DateField {
	return []DateField{CreatedAt, UpdatedAt, DueDate}
}

func (f DateField) String() string {
	switch f {
	case CreatedAt:
		return "createdAt"
	case UpdatedAt:
		return "updatedAt"
	case DueDate:
		return "dueDate"
	default:
		return fmt.Sprintf("DateField(%d)", int(f))
	}
}

// Label is the short human name used in headers and flags.
func (f DateField) Label() string {
	switch f {
	case CreatedAt:
		return "created"
	case UpdatedAt:
		return "updated"
	case DueDate:
		return "due"
	default:
		return f.String()
	}
}

// Valid reports whether f is one of the known fields.
func (f DateField) Valid() bool {
	return f == CreatedAt || f == UpdatedAt || f == DueDate
}

// Next cycles created → updated → due → created.
func (f DateField) Next() DateField {
	return DateField((int(f) + 1) % len(DateFields()))
}

// ParseDateField accepts "created", "createdAt", "created_at" and the same
// forms for updated and due.
func ParseDateField(raw string) (DateField, error) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", "", "-", "").Replace(key)
	switch key {
	case "created", "createdat":
		return CreatedAt, nil
	case "updated", "updatedat":
		return UpdatedAt, nil
	case "due", "duedate":
		return DueDate, nil
	}
	return CreatedAt, fmt.Errorf("ticket: unknown date field %q", raw)
}

// Of returns the field's value on t and whether it is set.
func (f DateField) Of(t *Ticket) (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	switch f {
	case CreatedAt:
		return t.CreatedAt.Value()
	case UpdatedAt:
		return t.UpdatedAt.Value()
	case DueDate:
		return t.DueDate.Value()
	default:
		return time.Time{}, false
	}
}

// Set assigns v to the field on t; a nil v clears it.
func (f DateField) Set(t *Ticket, v *time.Time) error {
	var ts *Timestamp
	if v != nil {
		ts = At(*v)
	}
	switch f {
	case CreatedAt:
		t.CreatedAt = ts
	case UpdatedAt:
		t.UpdatedAt = ts
	case DueDate:
		t.DueDate = ts
	default:
		return fmt.Errorf("ticket: cannot set unknown date field %d", int(f))
	}
	return nil
}
