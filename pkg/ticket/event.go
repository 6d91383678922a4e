package ticket

// Audit actions recorded against tickets.
const (
	ActionCreated        = "created"
	ActionDueDateChanged = "due_date_changed"
	ActionDeleted        = "deleted"
)

// Event is one audit log line for a ticket.
type Event struct {
	Action   string    `json:"action"`
	Actor    string    `json:"actor,omitempty"`
	TicketID string    `json:"ticketId"`
	At       Timestamp `json:"at"`
	Detail   string    `json:"detail,omitempty"`
}
