package options

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Anchor date, example: --on="2024-6-10", --on="6/10" or --on=tomorrow.`)
}

// GetOn returns the date asked for, or nil when the flag is unset.
func (o *OnOptions) GetOn(now time.Time) (*time.Time, error) {
	if o.OnString == "" {
		return nil, nil
	}
	t, err := ParseDate(o.OnString, now)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseDate reads a local calendar date. "today", "tomorrow" and
// "yesterday" are relative to now; "6/10" without a year means the next
// June 10 on or after today.
func ParseDate(raw string, now time.Time) (time.Time, error) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return today, nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	}

	t, err := time.ParseInLocation(layoutISO, raw, now.Location())
	if err == nil {
		return t, nil
	}
	t, err = time.ParseInLocation(layoutISOShort, raw, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q, want YYYY-M-D or M/D", raw)
	}
	t = time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, now.Location())
	// 1/3 said on 12/5 means next year, not eleven months ago.
	if t.Before(today) {
		t = t.AddDate(1, 0, 0)
	}
	return t, nil
}
