package archives

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Archive is a frozen copy of a live and its tickets, written before the
// originals are deleted so past shows stay auditable.
type Archive struct {
	ID         uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Kind       string          `json:"kind" gorm:"not null;size:32;index"` // "live"
	SourceID   string          `json:"source_id" gorm:"not null;size:64;index"`
	Payload    json.RawMessage `json:"payload" gorm:"type:jsonb;not null"`
	ArchivedBy string          `json:"archived_by" gorm:"size:64"`
	CreatedAt  time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Archive) TableName() string {
	return "archives"
}

type ArchiveResponse struct {
	ID         string          `json:"id"`
	Kind       string          `json:"kind"`
	SourceID   string          `json:"source_id"`
	Payload    json.RawMessage `json:"payload"`
	ArchivedBy string          `json:"archived_by"`
	CreatedAt  time.Time       `json:"created_at"`
}

func (a *Archive) ToResponse() ArchiveResponse {
	return ArchiveResponse{
		ID:         a.ID.String(),
		Kind:       a.Kind,
		SourceID:   a.SourceID,
		Payload:    a.Payload,
		ArchivedBy: a.ArchivedBy,
		CreatedAt:  a.CreatedAt,
	}
}
