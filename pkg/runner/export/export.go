// Package export writes ticket due dates as an iCalendar feed.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/ics"
)

type Export struct {
	Service *app.Service
	Filter  app.Filter
	// File is written instead of stdout when set.
	File    string
	Options ics.Options
}

func (n *Export) Do(ctx context.Context) (err error) {
	if n.Service == nil {
		return errors.New("can not export, no service")
	}
	var w io.Writer = os.Stdout
	if n.File != "" {
		f, cerr := os.Create(n.File)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
	}

	tickets := n.Service.Query(ctx, n.Filter)
	count, err := ics.Export(w, tickets, clock.Or(n.Service.Clock).Now(), n.Options)
	if err != nil {
		return err
	}
	if n.File != "" {
		_, _ = fmt.Fprintf(color.Output, "wrote %d events to %s\n", count, n.File)
	}
	return nil
}
