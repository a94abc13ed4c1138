package medias

import (
	"context"
	"errors"
	"fmt"

	"streakconnect/internal/shared/constants"
	"streakconnect/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	CreateMedia(adminID string, req CreateMediaRequest) (*MediaResponse, error)
	GetMediaByID(id uuid.UUID) (*MediaResponse, error)
	DeleteMedia(id uuid.UUID) error
	GetAllMedias(query MediaListQuery) ([]MediaResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) CreateMedia(adminID string, req CreateMediaRequest) (*MediaResponse, error) {
	media := &Media{
		Title:     req.Title,
		Type:      MediaType(req.Type),
		URL:       req.URL,
		Notes:     req.Notes,
		Featured:  req.Featured,
		CreatedBy: adminID,
	}

	if req.LiveID != nil {
		liveID, err := uuid.Parse(*req.LiveID)
		if err != nil {
			return nil, errors.New("invalid live ID")
		}
		media.LiveID = &liveID
	}

	if err := s.repo.Create(media); err != nil {
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(context.Background(), constants.PatternInvalidateMediaAll)
	}

	response := media.ToResponse()
	return &response, nil
}

func (s *service) GetMediaByID(id uuid.UUID) (*MediaResponse, error) {
	media, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("media not found")
		}
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	response := media.ToResponse()
	return &response, nil
}

func (s *service) DeleteMedia(id uuid.UUID) error {
	if _, err := s.repo.GetByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("media not found")
		}
		return fmt.Errorf("failed to get media: %w", err)
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(context.Background(), constants.PatternInvalidateMediaAll)
	}
	return nil
}

func (s *service) GetAllMedias(query MediaListQuery) ([]MediaResponse, error) {
	ctx := context.Background()

	cacheable := query.Type == "" && query.LiveID == "" && query.Featured == nil
	if cacheable && s.cacheService != nil {
		var cached []MediaResponse
		if err := s.cacheService.Get(ctx, constants.CacheKeyMediaList, &cached); err == nil {
			return cached, nil
		}
	}

	medias, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get medias: %w", err)
	}

	responses := make([]MediaResponse, len(medias))
	for i, media := range medias {
		responses[i] = media.ToResponse()
	}

	if cacheable && s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CacheKeyMediaList, responses, constants.TTLMediaList)
	}

	return responses, nil
}
