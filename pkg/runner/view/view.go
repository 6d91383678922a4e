// Package view renders a calendar view of the ticket store.
package view

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/printers"
)

type View struct {
	Service *app.Service
	Config  calendar.ViewConfig
	Filter  app.Filter
	Output  string
	ShowID  bool
}

func (n *View) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not view, no service")
	}
	v, err := calendar.Build(n.Config, n.Service.Query(ctx, n.Filter))
	if err != nil {
		return err
	}
	if n.Output != printers.Text {
		return printers.Structured(color.Output, n.Output, printers.NewViewDoc(v))
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}
	return pp.View(v, clock.Or(n.Service.Clock).Now())
}
