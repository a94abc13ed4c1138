package votes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Vote is a poll put to the band, typically for rehearsal dates or set lists.
type Vote struct {
	ID          uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string     `json:"title" gorm:"not null;size:255"`
	Description string     `json:"description" gorm:"type:text"`
	Options     []string   `json:"options" gorm:"serializer:json;not null"`
	Deadline    *time.Time `json:"deadline"`
	Closed      bool       `json:"closed" gorm:"not null;default:false"`
	CreatedBy   string     `json:"created_by" gorm:"size:64"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Vote) TableName() string {
	return "votes"
}

// Response is one member's answer. A member has exactly one response per
// vote, enforced by the composite ID, and re-voting replaces it.
type Response struct {
	ID        string    `json:"id" gorm:"primaryKey;size:128"` // "<voteID>_<memberID>"
	VoteID    uuid.UUID `json:"vote_id" gorm:"type:uuid;not null;index"`
	MemberID  string    `json:"member_id" gorm:"not null;size:64;index"`
	Choice    string    `json:"choice" gorm:"not null;size:255"`
	Comment   string    `json:"comment" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Response) TableName() string {
	return "vote_responses"
}

func BuildResponseID(voteID uuid.UUID, memberID string) string {
	return fmt.Sprintf("%s_%s", voteID.String(), memberID)
}

type VoteResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Options     []string       `json:"options"`
	Deadline    *time.Time     `json:"deadline"`
	Closed      bool           `json:"closed"`
	Tally       map[string]int `json:"tally,omitempty"`
	MyChoice    string         `json:"my_choice,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

type CreateVoteRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=255"`
	Description string     `json:"description" binding:"max=2000"`
	Options     []string   `json:"options" binding:"required,min=2,max=20,dive,min=1,max=255"`
	Deadline    *time.Time `json:"deadline"`
}

type CastVoteRequest struct {
	Choice  string `json:"choice" binding:"required,min=1,max=255"`
	Comment string `json:"comment" binding:"max=500"`
}

func (v *Vote) ToResponse() VoteResponse {
	options := v.Options
	if options == nil {
		options = []string{}
	}

	return VoteResponse{
		ID:          v.ID.String(),
		Title:       v.Title,
		Description: v.Description,
		Options:     options,
		Deadline:    v.Deadline,
		Closed:      v.Closed,
		CreatedAt:   v.CreatedAt,
	}
}

// IsOpen reports whether responses are still accepted at the given instant.
func (v *Vote) IsOpen(now time.Time) bool {
	if v.Closed {
		return false
	}
	if v.Deadline != nil && now.After(*v.Deadline) {
		return false
	}
	return true
}
