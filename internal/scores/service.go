package scores

import (
	"context"
	"errors"
	"fmt"
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

	CreateScore(adminID string, req CreateScoreRequest) (*ScoreResponse, error)
	GetScoreByID(id uuid.UUID) (*ScoreResponse, error)
	UpdateScore(id uuid.UUID, req UpdateScoreRequest) (*ScoreResponse, error)
	DeleteScore(id uuid.UUID) error
	GetAllScores(query ScoreListQuery) ([]ScoreResponse, error)
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

func (s *service) invalidateScoreCache(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	_ = s.cacheService.DeletePattern(ctx, constants.PatternInvalidateScoreAll)
}

func (s *service) CreateScore(adminID string, req CreateScoreRequest) (*ScoreResponse, error) {
	score := &Score{
		Title:      req.Title,
		Artist:     req.Artist,
		SongKey:    req.SongKey,
		YouTubeURL: req.YouTubeURL,
		YouTubeID:  ExtractYouTubeID(req.YouTubeURL),
		SheetURL:   req.SheetURL,
		Notes:      req.Notes,
		Featured:   req.Featured,
		CreatedBy:  adminID,
	}

	if err := s.repo.Create(score); err != nil {
		return nil, fmt.Errorf("failed to create score: %w", err)
	}

	s.invalidateScoreCache(context.Background())

	response := score.ToResponse()
	return &response, nil
}

func (s *service) GetScoreByID(id uuid.UUID) (*ScoreResponse, error) {
	score, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("score not found")
		}
		return nil, fmt.Errorf("failed to get score: %w", err)
	}

	response := score.ToResponse()
	return &response, nil
}

func (s *service) UpdateScore(id uuid.UUID, req UpdateScoreRequest) (*ScoreResponse, error) {
	updates := make(map[string]interface{})

	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Artist != nil {
		updates["artist"] = *req.Artist
	}
	if req.SongKey != nil {
		updates["song_key"] = *req.SongKey
	}
	if req.YouTubeURL != nil {
		updates["youtube_url"] = *req.YouTubeURL
		updates["youtube_id"] = ExtractYouTubeID(*req.YouTubeURL)
	}
	if req.SheetURL != nil {
		updates["sheet_url"] = *req.SheetURL
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Featured != nil {
		updates["featured"] = *req.Featured
	}
	updates["updated_at"] = time.Now()

	score, err := s.repo.Update(id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("score not found")
		}
		return nil, fmt.Errorf("failed to update score: %w", err)
	}

	s.invalidateScoreCache(context.Background())

	response := score.ToResponse()
	return &response, nil
}

func (s *service) DeleteScore(id uuid.UUID) error {
	score, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("score not found")
		}
		return fmt.Errorf("failed to get score: %w", err)
	}

	// Snapshot before the delete; a failed snapshot aborts it
	if s.archiver != nil {
		if err := s.archiver.Snapshot(context.Background(), "score", id.String(), score, ""); err != nil {
			return fmt.Errorf("failed to archive score: %w", err)
		}
	}

	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete score: %w", err)
	}

	s.invalidateScoreCache(context.Background())
	return nil
}

func (s *service) GetAllScores(query ScoreListQuery) ([]ScoreResponse, error) {
	ctx := context.Background()

	// only the unfiltered list is cached; searches go straight through
	cacheable := query.Search == "" && query.Artist == "" && query.Featured == nil
	if cacheable && s.cacheService != nil {
		var cached []ScoreResponse
		if err := s.cacheService.Get(ctx, constants.CacheKeyScoreList, &cached); err == nil {
			return cached, nil
		}
	}

	scores, err := s.repo.GetAll(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get scores: %w", err)
	}

	responses := make([]ScoreResponse, len(scores))
	for i, score := range scores {
		responses[i] = score.ToResponse()
	}

	if cacheable && s.cacheService != nil {
		_ = s.cacheService.Set(ctx, constants.CacheKeyScoreList, responses, constants.TTLScoreList)
	}

	return responses, nil
}
