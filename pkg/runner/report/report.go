// Package report prints due tickets around now grouped by project.
package report

import (
	"context"
	"errors"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/printers"
	"tableflip.dev/tickal/pkg/timeutil"
)

type Report struct {
	Service *app.Service
	Filter  app.Filter
	Last    timeutil.Span
	Ahead   timeutil.Span
}

func (n *Report) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not report, no service")
	}
	now := clock.Or(n.Service.Clock).Now()
	result := n.Service.Report(ctx, n.Filter, n.Last.SubtractFrom(now), n.Ahead.AddTo(now))

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Report(result)
	if result.Total == 0 {
		pp.Title("  Nothing due in this window.")
		pp.NewLine()
	}
	return nil
}
