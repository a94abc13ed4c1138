package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"streakconnect/internal/lives"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// rowLock is the FOR UPDATE clause every reservation transaction takes on
// the live row, so concurrent writes serialize on it.
var rowLock = clause.Locking{Strength: "UPDATE"}

// UpsertParams carries everything the atomic upsert needs. The caller has
// already normalized companions and computed the requested seat count.
type UpsertParams struct {
	LiveID             uuid.UUID
	MemberID           string
	ResType            ResType
	RepresentativeName string
	Companions         []string
	NewCount           int
	// CandidateReservationNo is used only when no ticket exists yet; an
	// existing ticket keeps its number.
	CandidateReservationNo string
	Now                    time.Time
}

type Repository interface {
	// Upsert creates or replaces the member's reservation for a live inside
	// a single transaction: window check, companion cap, capacity check and
	// the stock counter update all see the same locked live row.
	Upsert(ctx context.Context, params UpsertParams) (*Ticket, error)

	// Cancel deletes the member's reservation and releases its seats. When
	// no reservation exists it returns ErrTicketNotFound; callers wanting
	// no-op semantics handle that at the service layer.
	Cancel(ctx context.Context, liveID uuid.UUID, memberID string) (released int, err error)

	GetByID(ctx context.Context, liveID uuid.UUID, memberID string) (*Ticket, error)
	GetByLive(ctx context.Context, liveID uuid.UUID, query TicketListQuery) ([]Ticket, int64, error)
	GetByMember(ctx context.Context, memberID string) ([]Ticket, error)
	MarkLineNotified(ctx context.Context, ticketID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// classifyTxError folds Postgres serialization failures (SQLSTATE 40001) and
// deadlocks (40P01) into ErrConflict so callers can tell retryable races from
// real failures. Domain sentinels pass through untouched.
func classifyTxError(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	if strings.Contains(msg, "40001") || strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "could not serialize") || strings.Contains(msg, "deadlock detected") {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}
	return err
}

func (r *repository) Upsert(ctx context.Context, params UpsertParams) (*Ticket, error) {
	var result *Ticket

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the live row so concurrent upserts serialize on it
		var live lives.Live
		err := tx.
			Clauses(rowLock).
			Where("id = ?", params.LiveID).
			First(&live).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLiveNotFound
			}
			return fmt.Errorf("failed to lock live: %w", err)
		}

		// 2. Acceptance window and event-not-past, checked against the
		// same locked row an admin edit would have to wait on. A nil
		// window bound never reopens a show whose date has passed.
		if !live.IsAccepting(params.Now) || !live.IsUpcoming(params.Now) {
			return ErrOutsideWindow
		}

		// 3. Companion cap
		if len(params.Companions) > live.MaxCompanions {
			return ErrTooManyCompanions
		}

		// 4. Read the member's existing reservation, if any
		ticketID := BuildTicketID(params.LiveID, params.MemberID)
		previousCount := 0
		var existing Ticket
		err = tx.Where("id = ?", ticketID).First(&existing).Error
		switch {
		case err == nil:
			previousCount = existing.TotalCount
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first reservation for this live
		default:
			return fmt.Errorf("failed to read existing ticket: %w", err)
		}

		// 5. Capacity check on the delta, so shrinking an existing
		// reservation always succeeds even on a full house
		delta := params.NewCount - previousCount
		newTotal := live.TotalReserved + delta
		if newTotal > live.TicketStock {
			return ErrCapacityExceeded
		}

		// 6. Write the ticket, preserving number and creation time on update
		ticket := Ticket{
			ID:                 ticketID,
			LiveID:             params.LiveID,
			MemberID:           params.MemberID,
			ResType:            params.ResType,
			RepresentativeName: params.RepresentativeName,
			ReservationNo:      params.CandidateReservationNo,
			Companions:         params.Companions,
			CompanionCount:     len(params.Companions),
			TotalCount:         params.NewCount,
			IsLineNotified:     false,
		}
		if previousCount > 0 {
			ticket.ReservationNo = existing.ReservationNo
			ticket.CreatedAt = existing.CreatedAt
			ticket.IsLineNotified = existing.IsLineNotified
		}

		if err := tx.Save(&ticket).Error; err != nil {
			return fmt.Errorf("failed to save ticket: %w", err)
		}

		// 7. Update the live's reserved total in the same transaction
		err = tx.Model(&lives.Live{}).
			Where("id = ?", params.LiveID).
			Update("total_reserved", newTotal).Error
		if err != nil {
			return fmt.Errorf("failed to update reserved total: %w", err)
		}

		result = &ticket
		return nil
	})

	if err != nil {
		return nil, classifyTxError(err)
	}
	return result, nil
}

func (r *repository) Cancel(ctx context.Context, liveID uuid.UUID, memberID string) (int, error) {
	released := 0

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var live lives.Live
		err := tx.
			Clauses(rowLock).
			Where("id = ?", liveID).
			First(&live).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLiveNotFound
			}
			return fmt.Errorf("failed to lock live: %w", err)
		}

		ticketID := BuildTicketID(liveID, memberID)
		var ticket Ticket
		err = tx.Where("id = ?", ticketID).First(&ticket).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTicketNotFound
			}
			return fmt.Errorf("failed to read ticket: %w", err)
		}

		if err := tx.Where("id = ?", ticketID).Delete(&Ticket{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket: %w", err)
		}

		// Clamp at zero so a drifted counter never goes negative
		newTotal := live.TotalReserved - ticket.TotalCount
		if newTotal < 0 {
			newTotal = 0
		}

		err = tx.Model(&lives.Live{}).
			Where("id = ?", liveID).
			Update("total_reserved", newTotal).Error
		if err != nil {
			return fmt.Errorf("failed to update reserved total: %w", err)
		}

		released = ticket.TotalCount
		return nil
	})

	if err != nil {
		return 0, classifyTxError(err)
	}
	return released, nil
}

func (r *repository) GetByID(ctx context.Context, liveID uuid.UUID, memberID string) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Where("id = ?", BuildTicketID(liveID, memberID)).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) GetByLive(ctx context.Context, liveID uuid.UUID, query TicketListQuery) ([]Ticket, int64, error) {
	var tickets []Ticket
	var totalCount int64

	db := r.db.WithContext(ctx).Model(&Ticket{}).Where("live_id = ?", liveID)

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 50
	}
	offset := (query.Page - 1) * query.Limit

	err := db.Order("created_at ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&tickets).Error

	return tickets, totalCount, err
}

func (r *repository) GetByMember(ctx context.Context, memberID string) ([]Ticket, error) {
	var tickets []Ticket
	err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("created_at DESC").
		Find(&tickets).Error
	return tickets, err
}

func (r *repository) MarkLineNotified(ctx context.Context, ticketID string) error {
	return r.db.WithContext(ctx).
		Model(&Ticket{}).
		Where("id = ?", ticketID).
		Updates(map[string]interface{}{
			"is_line_notified": true,
			"updated_at":       time.Now(),
		}).Error
}
