// Package key prints the glyph legend.
package key

import (
	"context"

	"tableflip.dev/tickal/pkg/printers"
)

// Key prints the status and priority glyphs.
type Key struct{}

func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Legend()
	return nil
}
