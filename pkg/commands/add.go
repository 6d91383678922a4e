package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/add"
	"tableflip.dev/tickal/pkg/store"
)

func addAdd(topLevel *cobra.Command) {
	ao := &options.AddOptions{}
	io := &options.IDOptions{}
	var project string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a ticket",
		Example: `
tickal add rotate the tls certs --project ops --due 2024-6-20 --hour 14
tickal add write the postmortem -a ana --priority high
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 {
				return errors.New("requires a title")
			}
			ao.Title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, err := loadService()
			if err != nil {
				return err
			}
			n, err := ao.NewTicket(project, svc.Clock.Now())
			if err != nil {
				return err
			}
			s := add.Add{
				Service: svc,
				Ticket:  n,
				ShowID:  io.ShowID,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	cmd.Flags().StringVarP(&project, "project", "p", store.DefaultProject,
		"Project the ticket belongs to.")
	_ = cmd.RegisterFlagCompletionFunc("project", projectFlagCompletion)
	options.AddTicketArgs(cmd, ao)
	options.AddShowIDArgs(cmd, io)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
