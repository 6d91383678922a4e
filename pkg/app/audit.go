package app

import (
	"context"

	"tableflip.dev/tickal/pkg/reschedule"
	"tableflip.dev/tickal/pkg/ticket"
)

// Auditor is the reschedule.Notifier that writes to the audit log and
// logs user-facing messages as warnings.
type Auditor struct {
	Service *Service
}

var _ reschedule.Notifier = Auditor{}

func (a Auditor) Notify(message string) {
	a.Service.logger().Warn(message)
}

func (a Auditor) Record(e ticket.Event) {
	a.Service.Record(context.Background(), e)
}
