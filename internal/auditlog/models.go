package auditlog

import (
	"time"

	"github.com/google/uuid"
)

// Entry records a single admin or member action for later review.
type Entry struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MemberID  string    `json:"member_id" gorm:"size:64;index"`
	Action    string    `json:"action" gorm:"not null;size:64;index"`
	Target    string    `json:"target" gorm:"size:128"`
	Detail    string    `json:"detail,omitempty" gorm:"type:text"`
	IPAddress string    `json:"ip_address,omitempty" gorm:"size:45"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (Entry) TableName() string {
	return "audit_logs"
}

// Actions recorded across the portal.
const (
	ActionLogin             = "auth.login"
	ActionConsent           = "member.consent"
	ActionRoleChange        = "member.role_change"
	ActionMemberDelete      = "member.delete"
	ActionLiveCreate        = "live.create"
	ActionLiveUpdate        = "live.update"
	ActionLiveDelete        = "live.delete"
	ActionLiveArchive       = "live.archive"
	ActionReservationUpsert = "ticket.reserve"
	ActionReservationCancel = "ticket.cancel"
	ActionVoteCreate        = "vote.create"
	ActionVoteClose         = "vote.close"
	ActionVoteDelete        = "vote.delete"
)

type EntryResponse struct {
	ID        string    `json:"id"`
	MemberID  string    `json:"member_id"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Detail    string    `json:"detail,omitempty"`
	IPAddress string    `json:"ip_address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Entry) ToResponse() EntryResponse {
	return EntryResponse{
		ID:        e.ID.String(),
		MemberID:  e.MemberID,
		Action:    e.Action,
		Target:    e.Target,
		Detail:    e.Detail,
		IPAddress: e.IPAddress,
		CreatedAt: e.CreatedAt,
	}
}

// ListFilters narrows an audit log listing.
type ListFilters struct {
	MemberID string
	Action   string
	Limit    int
	Offset   int
}
