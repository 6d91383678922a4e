package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "tickal",
		Short: base.Wrap80("Tickets on a calendar: see when work was created, touched and due, and drag due dates around."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addView(topLevel)
	addMove(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addDelete(topLevel)
	addLog(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addVersion(topLevel)
	addUpgrade(topLevel)
	addCompletions(topLevel)
}
