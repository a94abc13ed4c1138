package scores

import (
	"time"

	"github.com/google/uuid"
)

// Score is one chart in the band's book, optionally linked to a reference
// recording on YouTube.
type Score struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title      string    `json:"title" gorm:"not null;size:255;index"`
	Artist     string    `json:"artist" gorm:"size:255"`
	SongKey    string    `json:"song_key" gorm:"size:16"` // concert key, e.g. "Bb"
	YouTubeURL string    `json:"youtube_url" gorm:"column:youtube_url;size:500"`
	YouTubeID  string    `json:"youtube_id" gorm:"column:youtube_id;size:32"`
	SheetURL   string    `json:"sheet_url" gorm:"size:500"`
	Notes      string    `json:"notes" gorm:"type:text"`
	Featured   bool      `json:"featured" gorm:"not null;default:false;index"` // shown on the home page
	CreatedBy  string    `json:"created_by" gorm:"size:64"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Score) TableName() string {
	return "scores"
}

type ScoreResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist"`
	SongKey    string    `json:"song_key"`
	YouTubeURL string    `json:"youtube_url"`
	YouTubeID  string    `json:"youtube_id"`
	SheetURL   string    `json:"sheet_url"`
	Notes      string    `json:"notes"`
	Featured   bool      `json:"featured"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateScoreRequest struct {
	Title      string `json:"title" binding:"required,min=1,max=255"`
	Artist     string `json:"artist" binding:"max=255"`
	SongKey    string `json:"song_key" binding:"max=16"`
	YouTubeURL string `json:"youtube_url" binding:"omitempty,url"`
	SheetURL   string `json:"sheet_url" binding:"omitempty,url"`
	Notes      string `json:"notes" binding:"max=2000"`
	Featured   bool   `json:"featured"`
}

type UpdateScoreRequest struct {
	Title      *string `json:"title" binding:"omitempty,min=1,max=255"`
	Artist     *string `json:"artist" binding:"omitempty,max=255"`
	SongKey    *string `json:"song_key" binding:"omitempty,max=16"`
	YouTubeURL *string `json:"youtube_url" binding:"omitempty,url"`
	SheetURL   *string `json:"sheet_url" binding:"omitempty,url"`
	Notes      *string `json:"notes" binding:"omitempty,max=2000"`
	Featured   *bool   `json:"featured"`
}

type ScoreListQuery struct {
	Search   string `form:"search"`
	Artist   string `form:"artist"`
	Featured *bool  `form:"featured"`
}

func (s *Score) ToResponse() ScoreResponse {
	return ScoreResponse{
		ID:         s.ID.String(),
		Title:      s.Title,
		Artist:     s.Artist,
		SongKey:    s.SongKey,
		YouTubeURL: s.YouTubeURL,
		YouTubeID:  s.YouTubeID,
		SheetURL:   s.SheetURL,
		Notes:      s.Notes,
		Featured:   s.Featured,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}
