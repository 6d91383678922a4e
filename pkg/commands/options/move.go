package options

import (
	"github.com/spf13/cobra"
)

// MoveOptions
type MoveOptions struct {
	To   string
	Hour int
}

// NoHour leaves the time of day alone on a move.
const NoHour = -1

func AddMoveArgs(cmd *cobra.Command, o *MoveOptions) {
	cmd.Flags().StringVar(&o.To, "to", "",
		`New due date, example: --to="2024-6-20" or --to=tomorrow.`)
	cmd.Flags().IntVar(&o.Hour, "hour", NoHour,
		"Drop on this hour (0-23) instead of keeping the time of day.")
	_ = cmd.MarkFlagRequired("to")
}
