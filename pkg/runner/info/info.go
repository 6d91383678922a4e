package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/store"
)

type Info struct {
	Config  store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output

	if override := os.Getenv("TICKAL_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "TICKAL_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "TICKAL_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	d := n.Config.View()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("path:", n.Config.BasePath())
	tbl.AddRow("actor:", n.Config.Actor())
	tbl.AddRow("log.level:", n.Config.LogLevel())
	tbl.AddRow("view:", fmt.Sprintf("%s by %s", d.Granularity, d.Field))
	tbl.AddRow("list window:", fmt.Sprintf("-%s +%s", d.ListBefore, d.ListAfter))
	_, _ = fmt.Fprintln(out, tbl)

	if n.Service == nil {
		return fmt.Errorf("failed to create the ticket service")
	}

	projects, err := n.Service.Projects(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(out, "Projects:")
	if len(projects) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no projects")
	}
	for _, p := range projects {
		count := len(n.Service.Query(ctx, app.Filter{Project: p}))
		_, _ = fmt.Fprintf(out, "  %s (%d)\n", p, count)
	}
	return nil
}
