package add

import (
	"context"
	"errors"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/printers"
)

type Add struct {
	Service *app.Service
	Ticket  app.NewTicket
	ShowID  bool
}

// Do stores the ticket and prints its project.
func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	t, err := n.Service.Add(ctx, n.Ticket)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	all := n.Service.Query(ctx, app.Filter{Project: t.Project})
	pp.TitleWithCount(t.Project, len(all))
	pp.Tickets(all...)
	return nil
}
