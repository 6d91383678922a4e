// Package remove deletes a ticket.
package remove

import (
	"context"
	"errors"

	"tableflip.dev/tickal/pkg/app"
	"tableflip.dev/tickal/pkg/printers"
)

type Remove struct {
	Service *app.Service
	ID      string
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not delete, no service")
	}
	t, err := n.Service.Get(ctx, n.ID)
	if err != nil {
		return err
	}
	if err := n.Service.Delete(ctx, n.ID); err != nil {
		return err
	}
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Deleted " + printers.Summary(t))
	return nil
}
