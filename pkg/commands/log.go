package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/log"
)

func addLog(topLevel *cobra.Command) {
	fo := &options.FormatOptions{}

	cmd := &cobra.Command{
		Use:   "log <id>",
		Short: "Show the change history of a ticket",
		Example: `
tickal log 3f9a1c0d2b7e4a55
tickal log 3f9a1c0d2b7e4a55 -o yaml
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
			if err := fo.Validate(); err != nil {
				return err
			}
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			s := log.Log{
				Service: svc,
				ID:      args[0],
				Output:  fo.Output,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddFormatArg(cmd, fo)

	topLevel.AddCommand(cmd)
}
