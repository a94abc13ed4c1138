package archives

import (
	"context"
	"encoding/json"
	"fmt"

	"streakconnect/internal/shared/constants"
	"streakconnect/pkg/cache"
	"streakconnect/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	ArchiveLive(ctx context.Context, liveID uuid.UUID, adminID string) (*ArchiveResponse, error)

	// Snapshot serializes any record into the archive table before its
	// caller deletes the original. Other packages consume this through
	// their own Archiver interfaces.
	Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error

	GetArchive(ctx context.Context, id uuid.UUID) (*ArchiveResponse, error)
	GetAllArchives(ctx context.Context, kind string) ([]ArchiveResponse, error)
}

type service struct {
	repo         Repository
	cacheService cache.Service
	log          *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) ArchiveLive(ctx context.Context, liveID uuid.UUID, adminID string) (*ArchiveResponse, error) {
	archive, err := s.repo.ArchiveLive(ctx, liveID, adminID)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Live Archived",
		"live_id", liveID.String(),
		"archive_id", archive.ID.String(),
		"archived_by", adminID,
	)

	// the live and its stock gauge are gone now
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PatternInvalidateLiveAll)
		_ = s.cacheService.Delete(ctx, constants.BuildLiveStockKey(liveID.String()))
	}

	response := archive.ToResponse()
	return &response, nil
}

func (s *service) Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	record := Archive{
		Kind:       kind,
		SourceID:   sourceID,
		Payload:    data,
		ArchivedBy: archivedBy,
	}
	if err := s.repo.Create(ctx, &record); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	s.log.InfoContext(ctx, "Snapshot Archived",
		"kind", kind,
		"source_id", sourceID,
		"archive_id", record.ID.String(),
	)
	return nil
}

func (s *service) GetArchive(ctx context.Context, id uuid.UUID) (*ArchiveResponse, error) {
	archive, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := archive.ToResponse()
	return &response, nil
}

func (s *service) GetAllArchives(ctx context.Context, kind string) ([]ArchiveResponse, error) {
	archives, err := s.repo.GetAll(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to get archives: %w", err)
	}

	responses := make([]ArchiveResponse, len(archives))
	for i, a := range archives {
		responses[i] = a.ToResponse()
	}
	return responses, nil
}
