package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/commands/options"
	"tableflip.dev/tickal/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	po := &options.ProjectOptions{}
	fo := &options.FormatOptions{}
	io := &options.IDOptions{}
	var listProjects bool

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "List tickets, or show one",
		Example: `
tickal get
tickal get --project ops
tickal get --owner ana -o json
tickal get 3f9a1c0d2b7e4a55
tickal get --projects
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("too many ids, confused")
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
			s := get.Get{
				Service:  svc,
				Filter:   po.Filter(),
				ShowID:   io.ShowID,
				Output:   fo.Output,
				Projects: listProjects,
			}
			if len(args) == 1 {
				s.ID = args[0]
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddProjectArgs(cmd, po)
	options.AddFormatArg(cmd, fo)
	options.AddShowIDArgs(cmd, io)
	cmd.Flags().BoolVar(&listProjects, "projects", false,
		"List project names only.")
	registerProjectCompletion(cmd)

	topLevel.AddCommand(cmd)
}
