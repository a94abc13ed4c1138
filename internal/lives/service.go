package lives

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"streakconnect/internal/shared/constants"
	"streakconnect/pkg/cache"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Archiver stores a snapshot of a record before its caller destroys it.
// Implemented by the archives service; defined here to avoid a cycle.
type Archiver interface {
	Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetArchiver(archiver Archiver)

	CreateLive(adminID string, req CreateLiveRequest) (*LiveResponse, error)
	GetLiveByID(id uuid.UUID) (*LiveResponse, error)
	UpdateLive(id uuid.UUID, adminID string, req UpdateLiveRequest) (*LiveResponse, error)
	DeleteLive(id uuid.UUID) error
	GetAllLives(query LiveListQuery) (*PaginatedLives, error)
	GetUpcomingLives(limit int) ([]LiveResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	archiver     Archiver
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetArchiver(archiver Archiver) {
	s.archiver = archiver
}

func (s *service) getCache(ctx context.Context, key string, dest interface{}) error {
	if s.cacheService == nil {
		return fmt.Errorf("cache service not available")
	}
	return s.cacheService.Get(ctx, key, dest)
}

func (s *service) setCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if s.cacheService == nil {
		return
	}
	// a failed cache write never fails the request
	_ = s.cacheService.Set(ctx, key, value, ttl)
}

func (s *service) invalidateLiveCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PatternInvalidateLiveAll)
}

func (s *service) CreateLive(adminID string, req CreateLiveRequest) (*LiveResponse, error) {
	if req.AcceptStart != nil && req.AcceptEnd != nil && req.AcceptEnd.Before(*req.AcceptStart) {
		return nil, errors.New("acceptance window end must not precede its start")
	}

	maxCompanions := req.MaxCompanions
	if maxCompanions == 0 {
		maxCompanions = 5
	}

	live := &Live{
		Title:         req.Title,
		Date:          req.Date,
		Venue:         req.Venue,
		OpenTime:      req.OpenTime,
		StartTime:     req.StartTime,
		Advance:       req.Advance,
		Notes:         req.Notes,
		FlyerURL:      req.FlyerURL,
		TicketStock:   req.TicketStock,
		MaxCompanions: maxCompanions,
		AcceptStart:   req.AcceptStart,
		AcceptEnd:     req.AcceptEnd,
		CreatedBy:     adminID,
	}

	if err := s.repo.Create(live); err != nil {
		return nil, fmt.Errorf("failed to create live: %w", err)
	}

	s.invalidateLiveCache(context.Background())

	response := live.ToResponse()
	return &response, nil
}

func (s *service) GetLiveByID(id uuid.UUID) (*LiveResponse, error) {
	ctx := context.Background()
	cacheKey := constants.BuildLiveDetailKey(id.String())

	var cached LiveResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return &cached, nil
	}

	live, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, fmt.Errorf("failed to get live: %w", err)
	}

	response := live.ToResponse()
	s.setCache(ctx, cacheKey, response, constants.TTLLiveDetail)

	return &response, nil
}

func (s *service) UpdateLive(id uuid.UUID, adminID string, req UpdateLiveRequest) (*LiveResponse, error) {
	current, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, fmt.Errorf("failed to get live: %w", err)
	}

	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Venue != nil {
		updates["venue"] = *req.Venue
	}
	if req.OpenTime != nil {
		updates["open_time"] = *req.OpenTime
	}
	if req.StartTime != nil {
		updates["start_time"] = *req.StartTime
	}
	if req.Advance != nil {
		updates["advance"] = *req.Advance
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.FlyerURL != nil {
		updates["flyer_url"] = *req.FlyerURL
	}
	if req.TicketStock != nil {
		// stock may not be cut below seats already reserved
		if *req.TicketStock < current.TotalReserved {
			return nil, fmt.Errorf("ticket stock cannot be reduced below %d already reserved seats", current.TotalReserved)
		}
		updates["ticket_stock"] = *req.TicketStock
	}
	if req.MaxCompanions != nil {
		updates["max_companions"] = *req.MaxCompanions
	}
	if req.AcceptStart != nil {
		updates["accept_start"] = *req.AcceptStart
	}
	if req.AcceptEnd != nil {
		updates["accept_end"] = *req.AcceptEnd
	}

	updates["updated_at"] = time.Now()
	updates["updated_by"] = adminID

	updated, err := s.repo.Update(id, updates)
	if err != nil {
		return nil, fmt.Errorf("failed to update live: %w", err)
	}

	s.invalidateLiveCache(context.Background())

	response := updated.ToResponse()
	return &response, nil
}

func (s *service) DeleteLive(id uuid.UUID) error {
	live, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLiveNotFound
		}
		return fmt.Errorf("failed to get live: %w", err)
	}

	if live.TotalReserved > 0 {
		return errors.New("cannot delete live with existing reservations. Archive it instead")
	}

	// Snapshot before the delete; a failed snapshot aborts it
	if s.archiver != nil {
		if err := s.archiver.Snapshot(context.Background(), "live", id.String(), live, ""); err != nil {
			return fmt.Errorf("failed to archive live: %w", err)
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete live: %w", err)
	}

	s.invalidateLiveCache(context.Background())
	return nil
}

func (s *service) GetAllLives(query LiveListQuery) (*PaginatedLives, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	lives, totalCount, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get lives: %w", err)
	}

	responses := make([]LiveResponse, len(lives))
	for i, live := range lives {
		responses[i] = live.ToResponse()
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(query.Limit)))

	return &PaginatedLives{
		Lives:      responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetUpcomingLives(limit int) ([]LiveResponse, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	ctx := context.Background()
	cacheKey := fmt.Sprintf("%s:upcoming:%d", constants.CacheKeyLiveList, limit)

	var cached []LiveResponse
	if err := s.getCache(ctx, cacheKey, &cached); err == nil {
		return cached, nil
	}

	lives, err := s.repo.GetUpcoming(limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming lives: %w", err)
	}

	responses := make([]LiveResponse, len(lives))
	for i, live := range lives {
		responses[i] = live.ToResponse()
	}

	s.setCache(ctx, cacheKey, responses, constants.TTLLiveList)

	return responses, nil
}
