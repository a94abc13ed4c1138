package members

import (
	"time"
)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func IsValidRole(role string) bool {
	switch role {
	case string(RoleMember), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// Member is a band member identified by their LINE user ID.
type Member struct {
	ID          string     `json:"id" gorm:"primaryKey;size:64"` // LINE user ID
	DisplayName string     `json:"display_name" gorm:"not null;size:255"`
	PictureURL  string     `json:"picture_url" gorm:"size:500"`
	Role        Role       `json:"role" gorm:"type:varchar(20);not null;default:'member'"`
	ConsentAt   *time.Time `json:"consent_at"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Member) TableName() string {
	return "members"
}

type MemberResponse struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"display_name"`
	PictureURL  string     `json:"picture_url"`
	Role        Role       `json:"role"`
	ConsentAt   *time.Time `json:"consent_at"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" binding:"omitempty,min=1,max=255"`
	PictureURL  *string `json:"picture_url" binding:"omitempty,url"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=member admin"`
}

func (m *Member) ToResponse() MemberResponse {
	return MemberResponse{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		PictureURL:  m.PictureURL,
		Role:        m.Role,
		ConsentAt:   m.ConsentAt,
		CreatedAt:   m.CreatedAt,
	}
}

// HasConsented reports whether the member has accepted the privacy policy.
func (m *Member) HasConsented() bool {
	return m.ConsentAt != nil
}
