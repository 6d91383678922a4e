package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/move"
)

func addMove(topLevel *cobra.Command) {
	mo := &options.MoveOptions{}

	cmd := &cobra.Command{
		Use:   "move <id>",
		Short: "Reschedule the due date of a ticket",
		Long: base.Wrap80(`Move a ticket to a new due date. Without --hour the ticket keeps its
time of day; with --hour it lands on the start of that hour.`),
		Example: `
tickal move 3f9a1c0d2b7e4a55 --to 2024-6-20
tickal move 3f9a1c0d2b7e4a55 --to tomorrow --hour 15
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("requires the id of one ticket")
			}
			return nil
		},
		ValidArgsFunction: ticketCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			to, err := options.ParseDate(mo.To, svc.Clock.Now())
			if err != nil {
				return err
			}
			s := move.Move{
				Service: svc,
				ID:      args[0],
				To:      to,
				Logger:  svc.Logger,
			}
			if mo.Hour != options.NoHour {
				s.Hour = &mo.Hour
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddMoveArgs(cmd, mo)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
