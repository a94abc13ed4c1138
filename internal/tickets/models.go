package tickets

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ResType string

const (
	// ResTypeInvite is a band member handing out guest seats. The member's
	// own seat is on the guest list already, so it does not count.
	ResTypeInvite ResType = "invite"
	// ResTypeGeneral is a paying reservation where the member's own seat
	// counts against stock.
	ResTypeGeneral ResType = "general"
)

func IsValidResType(t string) bool {
	switch t {
	case string(ResTypeInvite), string(ResTypeGeneral):
		return true
	default:
		return false
	}
}

// Ticket is one member's reservation for one live. A member holds at most
// one ticket per live, enforced by the composite ID.
type Ticket struct {
	ID                 string    `json:"id" gorm:"primaryKey;size:128"` // "<liveID>_<memberID>"
	LiveID             uuid.UUID `json:"live_id" gorm:"type:uuid;not null;index"`
	MemberID           string    `json:"member_id" gorm:"not null;size:64;index"`
	ResType            ResType   `json:"res_type" gorm:"type:varchar(10);not null"`
	RepresentativeName string    `json:"representative_name" gorm:"not null;size:255"`
	ReservationNo      string    `json:"reservation_no" gorm:"not null;size:8"`
	Companions         []string  `json:"companions" gorm:"serializer:json"`
	CompanionCount     int       `json:"companion_count" gorm:"not null;default:0"`
	TotalCount         int       `json:"total_count" gorm:"not null;check:total_count > 0"`
	IsLineNotified     bool      `json:"is_line_notified" gorm:"not null;default:false"`
	CreatedAt          time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt          time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Ticket) TableName() string {
	return "tickets"
}

// BuildTicketID derives the deterministic ticket ID that makes the upsert
// idempotent per member and live.
func BuildTicketID(liveID uuid.UUID, memberID string) string {
	return fmt.Sprintf("%s_%s", liveID.String(), memberID)
}

type TicketResponse struct {
	ID                 string    `json:"id"`
	LiveID             string    `json:"live_id"`
	MemberID           string    `json:"member_id"`
	ResType            ResType   `json:"res_type"`
	RepresentativeName string    `json:"representative_name"`
	ReservationNo      string    `json:"reservation_no"`
	Companions         []string  `json:"companions"`
	CompanionCount     int       `json:"companion_count"`
	TotalCount         int       `json:"total_count"`
	IsLineNotified     bool      `json:"is_line_notified"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (t *Ticket) ToResponse() TicketResponse {
	companions := t.Companions
	if companions == nil {
		companions = []string{}
	}

	return TicketResponse{
		ID:                 t.ID,
		LiveID:             t.LiveID.String(),
		MemberID:           t.MemberID,
		ResType:            t.ResType,
		RepresentativeName: t.RepresentativeName,
		ReservationNo:      t.ReservationNo,
		Companions:         companions,
		CompanionCount:     t.CompanionCount,
		TotalCount:         t.TotalCount,
		IsLineNotified:     t.IsLineNotified,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
}

type UpsertReservationRequest struct {
	ResType            string   `json:"res_type" binding:"required,oneof=invite general"`
	RepresentativeName string   `json:"representative_name" binding:"omitempty,max=255"`
	Companions         []string `json:"companions" binding:"omitempty,max=100,dive,max=255"`
}

type TicketListQuery struct {
	Page  int `form:"page" binding:"omitempty,min=1"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

type PaginatedTickets struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
}

// ReservationSummary is the admin head-count view for one live.
type ReservationSummary struct {
	LiveID        string `json:"live_id"`
	TicketStock   int    `json:"ticket_stock"`
	TotalReserved int    `json:"total_reserved"`
	Remaining     int    `json:"remaining"`
	TicketCount   int    `json:"ticket_count"`
	InviteSeats   int    `json:"invite_seats"`
	GeneralSeats  int    `json:"general_seats"`
}
