package lives

import (
	"time"

	"github.com/google/uuid"
)

// Live is a single show: venue, dates, ticket stock and the reservation
// acceptance window.
type Live struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title     string    `json:"title" gorm:"not null;size:255"`
	Date      time.Time `json:"date" gorm:"not null"`
	Venue     string    `json:"venue" gorm:"not null;size:255"`
	OpenTime  string    `json:"open_time" gorm:"size:16"`  // doors, e.g. "18:00"
	StartTime string    `json:"start_time" gorm:"size:16"` // downbeat, e.g. "19:00"
	Advance   int       `json:"advance" gorm:"not null;default:0;check:advance >= 0"` // ticket price in yen
	Notes     string    `json:"notes" gorm:"type:text"`
	FlyerURL  string    `json:"flyer_url" gorm:"size:500"`

	TicketStock   int `json:"ticket_stock" gorm:"not null;check:ticket_stock >= 0"`
	TotalReserved int `json:"total_reserved" gorm:"not null;default:0;check:total_reserved >= 0"`
	MaxCompanions int `json:"max_companions" gorm:"not null;default:5;check:max_companions >= 0"`

	AcceptStart *time.Time `json:"accept_start"`
	AcceptEnd   *time.Time `json:"accept_end"`

	CreatedBy string     `json:"created_by" gorm:"size:64"`
	UpdatedBy *string    `json:"updated_by" gorm:"size:64"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Live) TableName() string {
	return "lives"
}

type LiveResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Date          time.Time  `json:"date"`
	Venue         string     `json:"venue"`
	OpenTime      string     `json:"open_time"`
	StartTime     string     `json:"start_time"`
	Advance       int        `json:"advance"`
	Notes         string     `json:"notes"`
	FlyerURL      string     `json:"flyer_url"`
	TicketStock   int        `json:"ticket_stock"`
	TotalReserved int        `json:"total_reserved"`
	RemainingStock int       `json:"remaining_stock"`
	MaxCompanions int        `json:"max_companions"`
	AcceptStart   *time.Time `json:"accept_start"`
	AcceptEnd     *time.Time `json:"accept_end"`
	Accepting     bool       `json:"accepting"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CreateLiveRequest struct {
	Title         string     `json:"title" binding:"required,min=1,max=255"`
	Date          time.Time  `json:"date" binding:"required"`
	Venue         string     `json:"venue" binding:"required,min=1,max=255"`
	OpenTime      string     `json:"open_time" binding:"max=16"`
	StartTime     string     `json:"start_time" binding:"max=16"`
	Advance       int        `json:"advance" binding:"min=0"`
	Notes         string     `json:"notes" binding:"max=2000"`
	FlyerURL      string     `json:"flyer_url" binding:"omitempty,url"`
	TicketStock   int        `json:"ticket_stock" binding:"required,min=1,max=100000"`
	MaxCompanions int        `json:"max_companions" binding:"min=0,max=100"`
	AcceptStart   *time.Time `json:"accept_start"`
	AcceptEnd     *time.Time `json:"accept_end"`
}

type UpdateLiveRequest struct {
	Title         *string    `json:"title" binding:"omitempty,min=1,max=255"`
	Date          *time.Time `json:"date"`
	Venue         *string    `json:"venue" binding:"omitempty,min=1,max=255"`
	OpenTime      *string    `json:"open_time" binding:"omitempty,max=16"`
	StartTime     *string    `json:"start_time" binding:"omitempty,max=16"`
	Advance       *int       `json:"advance" binding:"omitempty,min=0"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
	FlyerURL      *string    `json:"flyer_url" binding:"omitempty,url"`
	TicketStock   *int       `json:"ticket_stock" binding:"omitempty,min=1,max=100000"`
	MaxCompanions *int       `json:"max_companions" binding:"omitempty,min=0,max=100"`
	AcceptStart   *time.Time `json:"accept_start"`
	AcceptEnd    *time.Time `json:"accept_end"`
}

type LiveListQuery struct {
	Page     int    `form:"page" binding:"omitempty,min=1"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search   string `form:"search"`
	Venue    string `form:"venue"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Upcoming bool   `form:"upcoming"`
}

type PaginatedLives struct {
	Lives      []LiveResponse `json:"lives"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func (l *Live) ToResponse() LiveResponse {
	remaining := l.TicketStock - l.TotalReserved
	if remaining < 0 {
		remaining = 0
	}

	return LiveResponse{
		ID:             l.ID.String(),
		Title:          l.Title,
		Date:           l.Date,
		Venue:          l.Venue,
		OpenTime:       l.OpenTime,
		StartTime:      l.StartTime,
		Advance:        l.Advance,
		Notes:          l.Notes,
		FlyerURL:       l.FlyerURL,
		TicketStock:    l.TicketStock,
		TotalReserved:  l.TotalReserved,
		RemainingStock: remaining,
		MaxCompanions:  l.MaxCompanions,
		AcceptStart:    l.AcceptStart,
		AcceptEnd:      l.AcceptEnd,
		Accepting:      l.IsAccepting(time.Now()),
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
