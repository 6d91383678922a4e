package options

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/tickal/pkg/printers"
)

// FormatOptions select how a command prints its result.
type FormatOptions struct {
	Output string
}

func AddFormatArg(cmd *cobra.Command, o *FormatOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", printers.Text,
		"Output format. One of 'text', 'json' or 'yaml'.")
}

func (o *FormatOptions) Validate() error {
	if !printers.ValidOutput(o.Output) {
		return fmt.Errorf("unknown output format %q", o.Output)
	}
	return nil
}
