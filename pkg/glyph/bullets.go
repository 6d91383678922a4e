package glyph

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

func (g Glyph) String() string {
	return g.Symbol
}

// Status is the workflow state of a ticket.
type Status int

const (
	Open Status = iota
	InProgress
	Blocked
	Done
	Closed
)

// Priority orders tickets within a cell.
type Priority int

const (
	Low Priority = iota
	Medium
	High
	Urgent
)

func statusGlyphs() []Glyph {
	return []Glyph{
		{Key: "open", Symbol: "○", Meaning: "open"},
		{Key: "in-progress", Symbol: "◐", Meaning: "in progress"},
		{Key: "blocked", Symbol: "⊘", Meaning: "blocked"},
		{Key: "done", Symbol: "●", Meaning: "done"},
		{Key: "closed", Symbol: "✘", Meaning: "closed"},
	}
}

func priorityGlyphs() []Glyph {
	return []Glyph{
		{Key: "low", Symbol: " ", Meaning: "low"},
		{Key: "medium", Symbol: "·", Meaning: "medium"},
		{Key: "high", Symbol: "!", Meaning: "high"},
		{Key: "urgent", Symbol: "‼", Meaning: "urgent"},
	}
}

// Statuses lists every status in workflow order.
func Statuses() []Status {
	return []Status{Open, InProgress, Blocked, Done, Closed}
}

// Priorities lists every priority from lowest to highest.
func Priorities() []Priority {
	return []Priority{Low, Medium, High, Urgent}
}

func (s Status) Glyph() Glyph {
	all := statusGlyphs()
	if int(s) < 0 || int(s) >= len(all) {
		return Glyph{Key: "unknown", Symbol: "?", Meaning: "unknown"}
	}
	return all[s]
}

func (s Status) String() string {
	return s.Glyph().Symbol
}

// Resolved reports whether the ticket needs no more work.
func (s Status) Resolved() bool {
	return s == Done || s == Closed
}

// ParseStatus accepts a status key such as "open" or "in-progress".
func ParseStatus(raw string) (Status, error) {
	key := normalizeKey(raw)
	if key == "" {
		return Open, nil
	}
	for _, s := range Statuses() {
		if s.Glyph().Key == key {
			return s, nil
		}
	}
	return Open, fmt.Errorf("glyph: unknown status %q", raw)
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Glyph().Key)
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParseStatus(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

func (p Priority) Glyph() Glyph {
	all := priorityGlyphs()
	if int(p) < 0 || int(p) >= len(all) {
		return Glyph{Key: "unknown", Symbol: "?", Meaning: "unknown"}
	}
	return all[p]
}

func (p Priority) String() string {
	return p.Glyph().Symbol
}

// ParsePriority accepts a priority key such as "high".
func ParsePriority(raw string) (Priority, error) {
	key := normalizeKey(raw)
	if key == "" {
		return Medium, nil
	}
	for _, p := range Priorities() {
		if p.Glyph().Key == key {
			return p, nil
		}
	}
	return Medium, fmt.Errorf("glyph: unknown priority %q", raw)
}

func (p Priority) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Glyph().Key)
}

func (p *Priority) UnmarshalJSON(b []byte) error {
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	parsed, err := ParsePriority(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func normalizeKey(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	return strings.ReplaceAll(key, " ", "-")
}
