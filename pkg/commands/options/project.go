package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/app"
)

// ProjectOptions narrow commands to a project and a set of owners.
type ProjectOptions struct {
	Project string
	Owners  []string
}

func AddProjectArgs(cmd *cobra.Command, o *ProjectOptions) {
	cmd.Flags().StringVarP(&o.Project, "project", "p", "",
		"Only tickets of this project.")
	cmd.Flags().StringSliceVar(&o.Owners, "owner", nil,
		`Only tickets assigned to these owners; "" selects unassigned.`)
}

func (o *ProjectOptions) Filter() app.Filter {
	return app.Filter{Project: o.Project, Owners: o.Owners}
}
