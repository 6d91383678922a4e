package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	ro := &options.ReportOptions{}
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display tickets due around now grouped by project",
		Long: `Report lists tickets due within the window around now, grouped by project.
Unresolved tickets past their due date are flagged overdue.

Examples:
  tickal report
  tickal report --last 3d --ahead 1w
  tickal report --project ops --owner ana`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			last, ahead, err := ro.Spans()
			if err != nil {
				return err
			}
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := report.Report{
				Service: svc,
				Filter:  po.Filter(),
				Last:    last,
				Ahead:   ahead,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddReportArgs(cmd, ro)
	options.AddProjectArgs(cmd, po)
	registerProjectCompletion(cmd)
	topLevel.AddCommand(cmd)
}
