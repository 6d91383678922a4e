package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	eo := &options.ExportOptions{}
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write due dates as an iCalendar feed",
		Example: `
tickal export > tickets.ics
tickal export --project ops --file ops.ics --duration 30m
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := export.Export{
				Service: svc,
				Filter:  po.Filter(),
				File:    eo.File,
				Options: eo.ICS(),
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddExportArgs(cmd, eo)
	options.AddProjectArgs(cmd, po)
	registerProjectCompletion(cmd)
	topLevel.AddCommand(cmd)
}
