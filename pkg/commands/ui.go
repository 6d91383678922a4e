package commands

import (
	"context"

	"github.com/spf13/cobra"
	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	vo := &options.ViewOptions{}
	po := &options.ProjectOptions{}

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive calendar",
		Long: base.Wrap80(`The interactive calendar. Arrows move the cursor, n and p page, t jumps
to today, d w m y l switch between day, week, month, year and list, f
cycles the date field, b toggles business hours and W weekends. In a due
date view space picks up a ticket, enter drops it and esc cancels.`),
		Example: `
tickal ui
tickal ui --field due -g week
tickal ui --project ops --owner ana
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, cfg, err := loadService()
			if err != nil {
				return err
			}
			vc, err := vo.Config(cmd, cfg.View(), po.Owners, svc.Clock.Now())
			if err != nil {
				return err
			}
			i := ui.UI{
				Service: svc,
				Config:  vc,
				Filter:  po.Filter(),
				Level:   parseLevel(cfg.LogLevel()),
			}
			return i.Do(context.Background())
		},
	}

	options.AddViewArgs(cmd, vo)
	options.AddProjectArgs(cmd, po)
	registerProjectCompletion(cmd)

	topLevel.AddCommand(cmd)
}
