package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/ics"
)

// ExportOptions
type ExportOptions struct {
	File            string
	Name            string
	Duration        time.Duration
	IncludeResolved bool
}

func AddExportArgs(cmd *cobra.Command, o *ExportOptions) {
	cmd.Flags().StringVarP(&o.File, "file", "f", "",
		"Write the feed to this file instead of stdout.")
	cmd.Flags().StringVar(&o.Name, "name", "tickal",
		"Calendar display name.")
	cmd.Flags().DurationVar(&o.Duration, "duration", ics.DefaultDuration,
		"Length of each exported event.")
	cmd.Flags().BoolVar(&o.IncludeResolved, "include-resolved", false,
		"Also export done and closed tickets.")
}

func (o *ExportOptions) ICS() ics.Options {
	return ics.Options{Name: o.Name, Duration: o.Duration, IncludeResolved: o.IncludeResolved}
}
