package tickets

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"streakconnect/internal/lives"
	"streakconnect/internal/shared/constants"
	"streakconnect/pkg/cache"
	"streakconnect/pkg/logger"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

// NotificationPublisher pushes reservation events onto the notification
// pipeline. Wired after construction to avoid a package cycle.
type NotificationPublisher interface {
	PublishReservationConfirmed(ctx context.Context, ticket *Ticket) error
	PublishReservationCancelled(ctx context.Context, liveID uuid.UUID, memberID string, released int) error
}

// Archiver stores a snapshot of a record before its caller destroys it.
// Implemented by the archives service; defined here to avoid a cycle.
type Archiver interface {
	Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error
}

type Service interface {
	SetCacheService(cacheService cache.Service)
	SetStockGauge(gauge *StockGauge)
	SetPublisher(publisher NotificationPublisher)
	SetArchiver(archiver Archiver)

	UpsertReservation(ctx context.Context, liveID uuid.UUID, memberID, displayName string, req UpsertReservationRequest) (*TicketResponse, error)
	CancelReservation(ctx context.Context, liveID uuid.UUID, memberID string) (released int, err error)
	GetMyTicket(ctx context.Context, liveID uuid.UUID, memberID string) (*TicketResponse, error)
	GetMyTickets(ctx context.Context, memberID string) ([]TicketResponse, error)
	GetLiveTickets(ctx context.Context, liveID uuid.UUID, query TicketListQuery) (*PaginatedTickets, error)
	GetSummary(ctx context.Context, liveID uuid.UUID) (*ReservationSummary, error)
	GenerateTicketQR(ctx context.Context, liveID uuid.UUID, memberID string) ([]byte, error)
	RemainingStock(ctx context.Context, liveID uuid.UUID) (int, error)
}

type service struct {
	repo         Repository
	liveRepo     lives.Repository
	cacheService cache.Service
	gauge        *StockGauge
	publisher    NotificationPublisher
	archiver     Archiver
	strictCancel bool
	log          *logger.Logger
}

func NewService(repo Repository, liveRepo lives.Repository, strictCancel bool) Service {
	return &service{
		repo:         repo,
		liveRepo:     liveRepo,
		strictCancel: strictCancel,
		log:          logger.GetDefault(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetStockGauge(gauge *StockGauge) {
	s.gauge = gauge
}

func (s *service) SetPublisher(publisher NotificationPublisher) {
	s.publisher = publisher
}

func (s *service) SetArchiver(archiver Archiver) {
	s.archiver = archiver
}

// normalizeCompanions trims whitespace and drops blank entries so "  " rows
// from the form never hold seats.
func normalizeCompanions(companions []string) []string {
	result := make([]string, 0, len(companions))
	for _, c := range companions {
		trimmed := strings.TrimSpace(c)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// generateReservationNo returns a 4-digit display number. It is not unique
// and never used as a key; door staff match it together with the name.
func generateReservationNo() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

func (s *service) UpsertReservation(ctx context.Context, liveID uuid.UUID, memberID, displayName string, req UpsertReservationRequest) (*TicketResponse, error) {
	if !IsValidResType(req.ResType) {
		return nil, ErrInvalidResType
	}
	resType := ResType(req.ResType)

	companions := normalizeCompanions(req.Companions)

	// An invite does not hold a seat for the member; a general reservation does
	newCount := len(companions)
	if resType == ResTypeGeneral {
		newCount++
	}
	if newCount == 0 {
		return nil, ErrNoSeatsRequested
	}

	representative := strings.TrimSpace(req.RepresentativeName)
	if representative == "" {
		representative = displayName
	}
	if representative == "" {
		return nil, ErrRepresentativeRequired
	}

	reservationNo, err := generateReservationNo()
	if err != nil {
		return nil, fmt.Errorf("failed to generate reservation number: %w", err)
	}

	ticket, err := s.repo.Upsert(ctx, UpsertParams{
		LiveID:                 liveID,
		MemberID:               memberID,
		ResType:                resType,
		RepresentativeName:     representative,
		Companions:             companions,
		NewCount:               newCount,
		CandidateReservationNo: reservationNo,
		Now:                    time.Now(),
	})
	if err != nil {
		if errors.Is(err, ErrCapacityExceeded) {
			s.log.LogCapacityRejected(ctx, liveID.String(), memberID, newCount)
		}
		return nil, err
	}

	s.log.LogReservationConfirmed(ctx, ticket.ID, liveID.String(), memberID, ticket.TotalCount)
	s.afterStockChange(ctx, liveID)

	if s.publisher != nil {
		if err := s.publisher.PublishReservationConfirmed(ctx, ticket); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish reservation event", err, map[string]interface{}{
				"ticket_id": ticket.ID,
			})
		}
	}

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) CancelReservation(ctx context.Context, liveID uuid.UUID, memberID string) (int, error) {
	// Read the ticket before the delete so the cancelled reservation can
	// be snapshotted; archiving is best-effort and never blocks the cancel.
	var snapshot *Ticket
	if s.archiver != nil {
		if t, err := s.repo.GetByID(ctx, liveID, memberID); err == nil {
			snapshot = t
		}
	}

	released, err := s.repo.Cancel(ctx, liveID, memberID)
	if err != nil {
		if errors.Is(err, ErrTicketNotFound) && !s.strictCancel {
			// cancelling nothing is a successful no-op
			return 0, nil
		}
		return 0, err
	}

	s.log.LogReservationCancelled(ctx, BuildTicketID(liveID, memberID), liveID.String(), memberID, released)
	s.afterStockChange(ctx, liveID)

	if s.archiver != nil && snapshot != nil {
		if err := s.archiver.Snapshot(ctx, "ticket", snapshot.ID, snapshot, memberID); err != nil {
			s.log.ErrorWithContext(ctx, "failed to archive cancelled ticket", err, map[string]interface{}{
				"ticket_id": snapshot.ID,
			})
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishReservationCancelled(ctx, liveID, memberID, released); err != nil {
			s.log.ErrorWithContext(ctx, "failed to publish cancellation event", err, map[string]interface{}{
				"live_id": liveID.String(),
			})
		}
	}

	return released, nil
}

// afterStockChange refreshes the advisory gauge and drops stale live caches.
func (s *service) afterStockChange(ctx context.Context, liveID uuid.UUID) {
	if s.cacheService != nil {
		_ = s.cacheService.DeletePattern(ctx, constants.PatternInvalidateLiveAll)
	}

	if s.gauge == nil {
		return
	}

	live, err := s.liveRepo.GetByID(liveID)
	if err != nil {
		_ = s.gauge.Invalidate(ctx, liveID.String())
		return
	}

	remaining := live.TicketStock - live.TotalReserved
	if err := s.gauge.Set(ctx, liveID.String(), remaining); err != nil {
		s.log.ErrorWithContext(ctx, "failed to refresh stock gauge", err, map[string]interface{}{
			"live_id": liveID.String(),
		})
	}
}

func (s *service) GetMyTicket(ctx context.Context, liveID uuid.UUID, memberID string) (*TicketResponse, error) {
	ticket, err := s.repo.GetByID(ctx, liveID, memberID)
	if err != nil {
		return nil, err
	}

	response := ticket.ToResponse()
	return &response, nil
}

func (s *service) GetMyTickets(ctx context.Context, memberID string) ([]TicketResponse, error) {
	tickets, err := s.repo.GetByMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	responses := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = t.ToResponse()
	}
	return responses, nil
}

func (s *service) GetLiveTickets(ctx context.Context, liveID uuid.UUID, query TicketListQuery) (*PaginatedTickets, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 50
	}

	tickets, totalCount, err := s.repo.GetByLive(ctx, liveID, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	responses := make([]TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = t.ToResponse()
	}

	totalPages := int((totalCount + int64(query.Limit) - 1) / int64(query.Limit))

	return &PaginatedTickets{
		Tickets:    responses,
		TotalCount: totalCount,
		Page:       query.Page,
		Limit:      query.Limit,
		TotalPages: totalPages,
	}, nil
}

func (s *service) GetSummary(ctx context.Context, liveID uuid.UUID) (*ReservationSummary, error) {
	live, err := s.liveRepo.GetByID(liveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLiveNotFound
		}
		return nil, fmt.Errorf("failed to get live: %w", err)
	}

	tickets, _, err := s.repo.GetByLive(ctx, liveID, TicketListQuery{Limit: 10000})
	if err != nil {
		return nil, fmt.Errorf("failed to get tickets: %w", err)
	}

	summary := &ReservationSummary{
		LiveID:        liveID.String(),
		TicketStock:   live.TicketStock,
		TotalReserved: live.TotalReserved,
		TicketCount:   len(tickets),
	}
	summary.Remaining = live.TicketStock - live.TotalReserved
	if summary.Remaining < 0 {
		summary.Remaining = 0
	}

	for _, t := range tickets {
		if t.ResType == ResTypeInvite {
			summary.InviteSeats += t.TotalCount
		} else {
			summary.GeneralSeats += t.TotalCount
		}
	}

	return summary, nil
}

// GenerateTicketQR renders the member's ticket as a QR code for door check-in.
func (s *service) GenerateTicketQR(ctx context.Context, liveID uuid.UUID, memberID string) ([]byte, error) {
	ticket, err := s.repo.GetByID(ctx, liveID, memberID)
	if err != nil {
		return nil, err
	}

	payload := fmt.Sprintf("%s:%s", ticket.ID, ticket.ReservationNo)
	png, err := qrcode.Encode(payload, qrcode.Medium, 256)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return png, nil
}

// RemainingStock serves the gauge when warm, falling back to the database.
func (s *service) RemainingStock(ctx context.Context, liveID uuid.UUID) (int, error) {
	if remaining, ok, err := s.gauge.Get(ctx, liveID.String()); err == nil && ok {
		return remaining, nil
	}

	live, err := s.liveRepo.GetByID(liveID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrLiveNotFound
		}
		return 0, fmt.Errorf("failed to get live: %w", err)
	}

	remaining := live.TicketStock - live.TotalReserved
	if remaining < 0 {
		remaining = 0
	}

	if s.gauge != nil {
		_ = s.gauge.Set(ctx, liveID.String(), remaining)
	}
	return remaining, nil
}
