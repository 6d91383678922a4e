package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/glyph"
)

// AddOptions
type AddOptions struct {
	Title    string
	Assignee string
	Status   string
	Priority string
	Due      string
	Hour     int
}

func AddTicketArgs(cmd *cobra.Command, o *AddOptions) {
	cmd.Flags().StringVarP(&o.Assignee, "assignee", "a", "",
		"Owner of the ticket.")
	cmd.Flags().StringVar(&o.Status, "status", "open",
		"One of open, in-progress, blocked, done or closed.")
	cmd.Flags().StringVar(&o.Priority, "priority", "medium",
		"One of urgent, high, medium or low.")
	cmd.Flags().StringVar(&o.Due, "due", "",
		`Due date, example: --due="2024-6-10" or --due=tomorrow.`)
	cmd.Flags().IntVar(&o.Hour, "hour", 9,
		"Hour of day the ticket is due, used with --due.")
}

// NewTicket turns the flags into a ticket request.
func (o *AddOptions) NewTicket(project string, now time.Time) (app.NewTicket, error) {
	n := app.NewTicket{Project: project, Title: o.Title, Assignee: o.Assignee}
	var err error
	if n.Status, err = glyph.ParseStatus(o.Status); err != nil {
		return n, err
	}
	if n.Priority, err = glyph.ParsePriority(o.Priority); err != nil {
		return n, err
	}
	if o.Due != "" {
		day, err := ParseDate(o.Due, now)
		if err != nil {
			return n, err
		}
		due := day.Add(time.Duration(o.Hour) * time.Hour)
		n.Due = &due
	}
	return n, nil
}
