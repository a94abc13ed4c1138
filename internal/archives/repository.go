package archives

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"streakconnect/internal/lives"
	"streakconnect/internal/tickets"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrArchiveNotFound = errors.New("archive not found")

type Repository interface {
	// ArchiveLive freezes the live and its tickets into an archive row and
	// deletes the originals, all in one transaction.
	ArchiveLive(ctx context.Context, liveID uuid.UUID, archivedBy string) (*Archive, error)

	// Create inserts a snapshot row for a record deleted outside this
	// package's own transactions (scores, votes, cancelled tickets).
	Create(ctx context.Context, archive *Archive) error

	GetByID(ctx context.Context, id uuid.UUID) (*Archive, error)
	GetAll(ctx context.Context, kind string) ([]Archive, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// archivedLive is the snapshot shape stored in the payload column.
type archivedLive struct {
	Live    lives.Live       `json:"live"`
	Tickets []tickets.Ticket `json:"tickets"`
}

func (r *repository) ArchiveLive(ctx context.Context, liveID uuid.UUID, archivedBy string) (*Archive, error) {
	var archive *Archive

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live lives.Live
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", liveID).
			First(&live).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return lives.ErrLiveNotFound
			}
			return fmt.Errorf("failed to lock live: %w", err)
		}

		var liveTickets []tickets.Ticket
		if err := tx.Where("live_id = ?", liveID).Find(&liveTickets).Error; err != nil {
			return fmt.Errorf("failed to read tickets: %w", err)
		}

		payload, err := json.Marshal(archivedLive{
			Live:    live,
			Tickets: liveTickets,
		})
		if err != nil {
			return fmt.Errorf("failed to marshal snapshot: %w", err)
		}

		record := Archive{
			Kind:       "live",
			SourceID:   liveID.String(),
			Payload:    payload,
			ArchivedBy: archivedBy,
		}
		if err := tx.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to write archive: %w", err)
		}

		if err := tx.Where("live_id = ?", liveID).Delete(&tickets.Ticket{}).Error; err != nil {
			return fmt.Errorf("failed to delete tickets: %w", err)
		}
		if err := tx.Where("id = ?", liveID).Delete(&lives.Live{}).Error; err != nil {
			return fmt.Errorf("failed to delete live: %w", err)
		}

		archive = &record
		return nil
	})

	if err != nil {
		return nil, err
	}
	return archive, nil
}

func (r *repository) Create(ctx context.Context, archive *Archive) error {
	return r.db.WithContext(ctx).Create(archive).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Archive, error) {
	var archive Archive
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&archive).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArchiveNotFound
		}
		return nil, err
	}
	return &archive, nil
}

func (r *repository) GetAll(ctx context.Context, kind string) ([]Archive, error) {
	var archives []Archive

	db := r.db.WithContext(ctx).Model(&Archive{})
	if kind != "" {
		db = db.Where("kind = ?", kind)
	}

	err := db.Order("created_at DESC").Find(&archives).Error
	return archives, err
}
