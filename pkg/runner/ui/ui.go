// Package ui runs the interactive calendar.
package ui

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/calendar"
	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/tui"
)

type UI struct {
	Service *app.Service
	Config  calendar.ViewConfig
	Filter  app.Filter
	// Level is the lowest log level shown in the status bar.
	Level slog.Level
}

func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not start ui, no service")
	}
	// Stderr belongs to the alt screen while the program runs, so log
	// records go to the status bar instead.
	bridge := &tui.Bridge{}
	logger := slog.New(tui.NewLogHandler(u.Level, bridge))
	u.Service.SetLogger(logger)

	return tui.Run(ctx, tui.Options{
		Source:     u.Service,
		Controller: newController(u.Service),
		Config:     u.Config,
		Filter:     u.Filter,
		Clock:      u.Service.Clock,
		Logger:     logger,
	}, bridge)
}

// newController reschedules through svc. The calendar reports each commit
// in the status bar, so the controller only writes the audit trail.
func newController(svc *app.Service) *reschedule.Controller {
	return &reschedule.Controller{
		Patcher:  svc,
		Notifier: reschedule.Silent{Notifier: app.Auditor{Service: svc}},
		Logger:   slog.New(slog.DiscardHandler),
		Clock:    svc.Clock,
		Actor:    svc.Actor,
	}
}
