package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TicketEventKind distinguishes reservation lifecycle events on the wire.
type TicketEventKind string

const (
	TicketEventConfirmed TicketEventKind = "reservation_confirmed"
	TicketEventCancelled TicketEventKind = "reservation_cancelled"
)

// TicketEvent is the message published for every reservation change. The
// consumer turns it into a LINE push to the member.
type TicketEvent struct {
	Kind          TicketEventKind `json:"kind"`
	LiveID        uuid.UUID       `json:"live_id"`
	LiveTitle     string          `json:"live_title,omitempty"`
	MemberID      string          `json:"member_id"`
	TicketID      string          `json:"ticket_id,omitempty"`
	ReservationNo string          `json:"reservation_no,omitempty"`
	TotalCount    int             `json:"total_count,omitempty"`
	Released      int             `json:"released,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

func (e *TicketEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keeps all of a member's events on one partition so pushes
// arrive in order.
func (e *TicketEvent) PartitionKey() string {
	return e.MemberID
}
