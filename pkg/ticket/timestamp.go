package ticket

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is an instant stored as integer milliseconds since the epoch. An
// absent value is a nil *Timestamp, never the zero time.
type Timestamp struct {
	time.Time
}

// At wraps t, truncated to millisecond precision.
func At(t time.Time) *Timestamp {
	return &Timestamp{Time: time.UnixMilli(t.UnixMilli()).In(t.Location())}
}

// FromMillis converts epoch milliseconds into a local-time Timestamp.
func FromMillis(ms int64) *Timestamp {
	return &Timestamp{Time: time.UnixMilli(ms)}
}

// Value returns the wrapped time and whether one is present.
func (t *Timestamp) Value() (time.Time, bool) {
	if t == nil {
		return time.Time{}, false
	}
	return t.Time, true
}

// Clone copies the pointer target.
func (t *Timestamp) Clone() *Timestamp {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// Millis returns the epoch milliseconds, or 0 when absent.
func (t *Timestamp) Millis() int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatInt(t.UnixMilli(), 10)), nil
}

// UnmarshalJSON accepts epoch milliseconds or an RFC 3339 string.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var ms int64
	if err := json.Unmarshal(b, &ms); err == nil {
		t.Time = time.UnixMilli(ms)
		return nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("ticket: timestamp %s: %w", b, err)
	}
	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return fmt.Errorf("ticket: timestamp %q: %w", raw, err)
	}
	t.Time = parsed.Local()
	return nil
}

func (t Timestamp) String() string {
	return t.Local().Format("2006-01-02 15:04")
}
