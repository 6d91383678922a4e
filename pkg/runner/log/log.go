// Package log prints the audit history of a ticket.
package log

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/printers"
)

type Log struct {
	Service *app.Service
	ID      string
	Output  string
}

func (n *Log) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not log, no service")
	}
	t, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	events, err := n.Service.Events(ctx, n.ID)
	if err != nil {
		return err
	}
	if n.Output != printers.Text {
		return printers.Structured(color.Output, n.Output, printers.NewEventDocs(events))
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title(printers.Summary(t))
	pp.Events(events)
	return nil
}
