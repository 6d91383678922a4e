package commands

import (
	"log/slog"
	"os"
	"strings"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/clock"
	"tableflip.dev/tickal/pkg/store"
)

// loadService opens the ticket store named by the config file.
func loadService() (*app.Service, store.Config, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(cfg.LogLevel())
	p, err := store.Load(cfg, store.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Logger:      logger,
		Clock:       clock.Real(),
		Actor:       cfg.Actor(),
	}
	return svc, cfg, nil
}

func newLogger(level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(level)}))
}

// parseLevel reads debug, info, warn or error. Anything else is warn.
func parseLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelWarn
	}
	return l
}
