package members

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Service interface {
	GetMember(id string) (*MemberResponse, error)
	GetMemberModel(id string) (*Member, error)
	GetAllMembers() ([]MemberResponse, error)
	UpsertFromLogin(id, displayName, pictureURL string) (*Member, error)
	UpdateProfile(id string, req UpdateProfileRequest) (*MemberResponse, error)
	RecordConsent(id string) (*MemberResponse, error)
	SetRole(id string, role Role) (*MemberResponse, error)
	DeleteMember(id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMember(id string) (*MemberResponse, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	response := member.ToResponse()
	return &response, nil
}

// GetMemberModel returns the raw model for internal callers.
func (s *service) GetMemberModel(id string) (*Member, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return member, nil
}

func (s *service) GetAllMembers() ([]MemberResponse, error) {
	members, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}

	responses := make([]MemberResponse, len(members))
	for i, m := range members {
		responses[i] = m.ToResponse()
	}
	return responses, nil
}

// UpsertFromLogin records or refreshes a member's LINE profile on login.
func (s *service) UpsertFromLogin(id, displayName, pictureURL string) (*Member, error) {
	if id == "" {
		return nil, errors.New("member id is required")
	}

	member := &Member{
		ID:          id,
		DisplayName: displayName,
		PictureURL:  pictureURL,
		Role:        RoleMember,
	}

	if err := s.repo.Upsert(member); err != nil {
		return nil, fmt.Errorf("failed to upsert member: %w", err)
	}

	// Re-read so role and consent reflect the stored row, not the login payload
	return s.repo.GetByID(id)
}

func (s *service) UpdateProfile(id string, req UpdateProfileRequest) (*MemberResponse, error) {
	updates := make(map[string]interface{})

	if req.DisplayName != nil {
		updates["display_name"] = *req.DisplayName
	}
	if req.PictureURL != nil {
		updates["picture_url"] = *req.PictureURL
	}

	if len(updates) == 0 {
		return s.GetMember(id)
	}
	updates["updated_at"] = time.Now()

	member, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, fmt.Errorf("failed to update member: %w", err)
	}

	response := member.ToResponse()
	return &response, nil
}

// RecordConsent stamps the privacy policy consent time. Re-consenting keeps
// the original timestamp.
func (s *service) RecordConsent(id string) (*MemberResponse, error) {
	member, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	if member.ConsentAt == nil {
		now := time.Now()
		member, err = s.repo.Update(id, map[string]interface{}{
			"consent_at": now,
			"updated_at": now,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to record consent: %w", err)
		}
	}

	response := member.ToResponse()
	return &response, nil
}

func (s *service) SetRole(id string, role Role) (*MemberResponse, error) {
	if !IsValidRole(string(role)) {
		return nil, errors.New("invalid role")
	}

	member, err := s.repo.Update(id, map[string]interface{}{
		"role":       role,
		"updated_at": time.Now(),
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("member not found")
		}
		return nil, fmt.Errorf("failed to set role: %w", err)
	}

	response := member.ToResponse()
	return &response, nil
}

func (s *service) DeleteMember(id string) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("member not found")
		}
		return fmt.Errorf("failed to get member: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete member: %w", err)
	}
	return nil
}
