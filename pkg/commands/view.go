package commands

import (
	"context"

	"github.com/spf13/cobra"
	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/view"
)

func addView(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	po := &options.ProjectOptions{}
	fo := &options.FormatOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Print a calendar of tickets",
		Long: base.Wrap80(`Print tickets placed on a day, week, month or year calendar, or a list of
dates by owner. The view is keyed on the created, updated or due date.`),
		Example: `
tickal view
tickal view -g week --field due --business-hours
tickal view -g year --on 2024-1-1
tickal view -g list --owner ana --owner "" --before 3d --after 2w
tickal view -g month --offset -1 -o yaml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			if err := fo.Validate(); err != nil {
				return err
			}
			svc, cfg, err := loadService()
			if err != nil {
				return err
			}
			vc, err := vo.Config(cmd, cfg.View(), po.Owners, svc.Clock.Now())
			if err != nil {
				return err
			}
			s := view.View{
				Service: svc,
				Config:  vc,
				Filter:  po.Filter(),
				Output:  fo.Output,
				ShowID:  io.ShowID,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddProjectArgs(cmd, po)
	options.AddFormatArg(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	registerProjectCompletion(cmd)

	topLevel.AddCommand(cmd)
}
