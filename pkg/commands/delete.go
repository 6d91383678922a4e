package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tickal/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a ticket",
		Example: `
tickal delete 3f9a1c0d2b7e4a55
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
			s := remove.Remove{Service: svc, ID: args[0]}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
