// Package move reschedules a ticket from the command line. It drops the
// ticket onto a calendar cell through the same controller the interactive
// calendar uses.
package move

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/printers"
	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/ticket"
)

type Move struct {
	Service *app.Service
	ID      string
	// To is the target date; only its year, month and day are used.
	To time.Time
	// Hour drops onto an hour cell when set. Otherwise the drop lands on a
	// day cell and keeps the ticket's time of day.
	Hour   *int
	Logger *slog.Logger
}

func (n *Move) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not move, no service")
	}
	t, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}

	cell, cfg, err := n.target()
	if err != nil {
		return err
	}
	ctrl := &reschedule.Controller{
		Patcher:  n.Service,
		Notifier: app.Auditor{Service: n.Service},
		Logger:   n.Logger,
		Clock:    n.Service.Clock,
		Actor:    n.Service.Actor,
	}
	if err := ctrl.Begin(cfg, t); err != nil {
		return err
	}
	mv, err := ctrl.Drop(cell)
	if err != nil {
		return err
	}
	if err := ctrl.Commit(ctx, mv); err != nil {
		return err
	}

	moved, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: true}
	pp.NewLine()
	pp.Title(fmt.Sprintf("Due %s", mv.To.Format("Mon Jan 2 2006 15:04")))
	pp.Tickets(moved)
	return nil
}

// target finds the cell the ticket is dropped onto, and the due date view
// that holds it.
func (n *Move) target() (calendar.Cell, calendar.ViewConfig, error) {
	cfg := calendar.DefaultViewConfig(n.To)
	cfg.DateField = ticket.DueDate
	cfg.Granularity = calendar.Month
	at := n.To
	if n.Hour != nil {
		if *n.Hour < 0 || *n.Hour > 23 {
			return calendar.Cell{}, cfg, fmt.Errorf("hour %d out of range 0-23", *n.Hour)
		}
		y, m, d := n.To.Date()
		at = time.Date(y, m, d, *n.Hour, 0, 0, 0, n.To.Location())
		cfg.Anchor = at
		cfg.Granularity = calendar.Day
	}

	grid, err := calendar.BuildGrid(cfg.Anchor, cfg.Granularity, cfg.BusinessHoursOnly)
	if err != nil {
		return calendar.Cell{}, cfg, err
	}
	cell, ok := grid.Find(calendar.BucketKey(at, cfg.Granularity))
	if !ok {
		return calendar.Cell{}, cfg, fmt.Errorf("no calendar cell for %s", at.Format(time.RFC3339))
	}
	return cell, cfg, nil
}
