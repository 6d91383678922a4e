package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/store"
	"tableflip.dev/tickal/pkg/ticket"
	"tableflip.dev/tickal/pkg/timeutil"
)

// ViewOptions choose what a calendar view shows. Flags left unset fall
// back to the view section of the config file.
type ViewOptions struct {
	OnOptions
	Granularity   string
	Field         string
	Offset        int
	BusinessHours bool
	Weekends      bool
	ListBefore    string
	ListAfter     string
}

func AddViewArgs(cmd *cobra.Command, o *ViewOptions) {
	AddOnArgs(cmd, &o.OnOptions)
	cmd.Flags().StringVarP(&o.Granularity, "granularity", "g", "",
		"One of day, week, month, year or list.")
	cmd.Flags().StringVar(&o.Field, "field", "",
		"Date the view is keyed on: created, updated or due.")
	cmd.Flags().IntVar(&o.Offset, "offset", 0,
		"Step this many periods forward (or back, when negative) from the anchor.")
	cmd.Flags().BoolVarP(&o.BusinessHours, "business-hours", "b", false,
		"Show only 08:00 to 18:00 in day and week views.")
	cmd.Flags().BoolVar(&o.Weekends, "weekends", true,
		"Include Saturday and Sunday rows in the list view.")
	cmd.Flags().StringVar(&o.ListBefore, "before", "",
		"List view: how far before the anchor to start (for example 7d).")
	cmd.Flags().StringVar(&o.ListAfter, "after", "",
		"List view: how far after the anchor to end (for example 2mo).")
}

// Config resolves the flags of cmd against d into a view configuration
// anchored at now unless --on is given.
func (o *ViewOptions) Config(cmd *cobra.Command, d store.ViewDefaults, owners []string, now time.Time) (calendar.ViewConfig, error) {
	flags := cmd.Flags()
	pick := func(name, flag, fallback string) string {
		if flags.Changed(name) || fallback == "" {
			return flag
		}
		return fallback
	}

	cfg := calendar.DefaultViewConfig(now)
	cfg.Owners = owners

	var err error
	if raw := pick("granularity", o.Granularity, d.Granularity); raw != "" {
		if cfg.Granularity, err = calendar.ParseGranularity(raw); err != nil {
			return cfg, err
		}
	}
	if raw := pick("field", o.Field, d.Field); raw != "" {
		if cfg.DateField, err = ticket.ParseDateField(raw); err != nil {
			return cfg, err
		}
	}

	cfg.BusinessHoursOnly = d.BusinessHours
	if flags.Changed("business-hours") {
		cfg.BusinessHoursOnly = o.BusinessHours
	}
	cfg.IncludeWeekends = d.Weekends
	if flags.Changed("weekends") {
		cfg.IncludeWeekends = o.Weekends
	}

	if cfg.ListBefore, err = timeutil.ParseSpan(pick("before", o.ListBefore, d.ListBefore), calendar.DefaultListBefore); err != nil {
		return cfg, fmt.Errorf("--before: %w", err)
	}
	if cfg.ListAfter, err = timeutil.ParseSpan(pick("after", o.ListAfter, d.ListAfter), calendar.DefaultListAfter); err != nil {
		return cfg, fmt.Errorf("--after: %w", err)
	}

	on, err := o.GetOn(now)
	if err != nil {
		return cfg, err
	}
	if on != nil {
		cfg.Anchor = *on
	}
	if o.Offset != 0 {
		return calendar.Step(cfg, o.Offset)
	}
	return cfg, nil
}
