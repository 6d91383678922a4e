package get

import (
	"context"
	"errors"

	"github.com/fatih/color"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/printers"
	"tableflip.dev/tickal/pkg/ticket"
)

type Get struct {
	Service *app.Service
	Filter  app.Filter
	ShowID  bool
	// ID prints one ticket in full instead of a listing.
	ID     string
	Output string
	// Projects lists project names only.
	Projects bool
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID}

	if n.Projects {
		projects, err := n.Service.Projects(ctx)
		if err != nil {
			return err
		}
		if n.Output != printers.Text {
			return printers.Structured(color.Output, n.Output, projects)
		}
		pp.NewLine()
		pp.TitleWithCount("Projects", len(projects))
		for _, p := range projects {
			pp.Title("  " + p)
		}
		return nil
	}

	if n.ID != "" {
		t, err := n.Service.Get(ctx, n.ID)
		if err != nil {
			return err
		}
		if n.Output != printers.Text {
			return printers.Structured(color.Output, n.Output, printers.NewTicketDoc(t))
		}
		pp.NewLine()
		pp.TicketTable([]*ticket.Ticket{t})
		return nil
	}

	tickets := n.Service.Query(ctx, n.Filter)
	if n.Output != printers.Text {
		docs := make([]printers.TicketDoc, 0, len(tickets))
		for _, t := range tickets {
			docs = append(docs, printers.NewTicketDoc(t))
		}
		return printers.Structured(color.Output, n.Output, docs)
	}

	pp.NewLine()
	if n.Filter.Project != "" {
		pp.TitleWithCount(n.Filter.Project, len(tickets))
		pp.Tickets(tickets...)
		return nil
	}
	pp.TicketTable(tickets)
	return nil
}
