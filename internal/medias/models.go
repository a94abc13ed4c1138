package medias

import (
	"time"

	"github.com/google/uuid"
)

type MediaType string

const (
	MediaTypeVideo MediaType = "video"
	MediaTypeAudio MediaType = "audio"
	MediaTypePhoto MediaType = "photo"
)

func IsValidMediaType(t string) bool {
	switch t {
	case string(MediaTypeVideo), string(MediaTypeAudio), string(MediaTypePhoto):
		return true
	default:
		return false
	}
}

// Media is a recording or photo from a show or rehearsal.
type Media struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string     `json:"title" gorm:"not null;size:255"`
	Type      MediaType  `json:"type" gorm:"type:varchar(10);not null"`
	URL       string     `json:"url" gorm:"not null;size:500"`
	LiveID    *uuid.UUID `json:"live_id" gorm:"type:uuid;index"`
	Notes     string     `json:"notes" gorm:"type:text"`
	Featured  bool       `json:"featured" gorm:"not null;default:false;index"` // shown on the home page
	CreatedBy string     `json:"created_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Media) TableName() string {
	return "medias"
}

type MediaResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Type      MediaType `json:"type"`
	URL       string    `json:"url"`
	LiveID    *string   `json:"live_id"`
	Notes     string    `json:"notes"`
	Featured  bool      `json:"featured"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateMediaRequest struct {
	Title    string  `json:"title" binding:"required,min=1,max=255"`
	Type     string  `json:"type" binding:"required,oneof=video audio photo"`
	URL      string  `json:"url" binding:"required,url"`
	LiveID   *string `json:"live_id" binding:"omitempty,uuid"`
	Notes    string  `json:"notes" binding:"max=2000"`
	Featured bool    `json:"featured"`
}

type MediaListQuery struct {
	Type     string `form:"type" binding:"omitempty,oneof=video audio photo"`
	LiveID   string `form:"live_id" binding:"omitempty,uuid"`
	Featured *bool  `form:"featured"`
}

func (m *Media) ToResponse() MediaResponse {
	var liveID *string
	if m.LiveID != nil {
		s := m.LiveID.String()
		liveID = &s
	}

	return MediaResponse{
		ID:        m.ID.String(),
		Title:     m.Title,
		Type:      m.Type,
		URL:       m.URL,
		LiveID:    liveID,
		Notes:     m.Notes,
		Featured:  m.Featured,
		CreatedAt: m.CreatedAt,
	}
}
