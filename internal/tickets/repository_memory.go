package tickets

import (
	"context"
	"sync"
	"time"

	"streakconnect/internal/lives"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository with the same transactional
// semantics as the Postgres implementation. It backs unit tests and local
// development without a database.
type MemoryRepository struct {
	mu      sync.Mutex
	lives   map[uuid.UUID]*lives.Live
	tickets map[string]*Ticket
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		lives:   make(map[uuid.UUID]*lives.Live),
		tickets: make(map[string]*Ticket),
	}
}

// AddLive seeds a live into the store.
func (r *MemoryRepository) AddLive(live *lives.Live) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *live
	r.lives[live.ID] = &copied
}

// GetLive returns the current state of a seeded live.
func (r *MemoryRepository) GetLive(id uuid.UUID) (*lives.Live, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	live, ok := r.lives[id]
	if !ok {
		return nil, false
	}
	copied := *live
	return &copied, true
}

func (r *MemoryRepository) Upsert(ctx context.Context, params UpsertParams) (*Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, ok := r.lives[params.LiveID]
	if !ok {
		return nil, ErrLiveNotFound
	}

	if !live.IsAccepting(params.Now) || !live.IsUpcoming(params.Now) {
		return nil, ErrOutsideWindow
	}

	if len(params.Companions) > live.MaxCompanions {
		return nil, ErrTooManyCompanions
	}

	ticketID := BuildTicketID(params.LiveID, params.MemberID)
	previousCount := 0
	existing, exists := r.tickets[ticketID]
	if exists {
		previousCount = existing.TotalCount
	}

	delta := params.NewCount - previousCount
	newTotal := live.TotalReserved + delta
	if newTotal > live.TicketStock {
		return nil, ErrCapacityExceeded
	}

	now := params.Now
	ticket := &Ticket{
		ID:                 ticketID,
		LiveID:             params.LiveID,
		MemberID:           params.MemberID,
		ResType:            params.ResType,
		RepresentativeName: params.RepresentativeName,
		ReservationNo:      params.CandidateReservationNo,
		Companions:         params.Companions,
		CompanionCount:     len(params.Companions),
		TotalCount:         params.NewCount,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if exists {
		ticket.ReservationNo = existing.ReservationNo
		ticket.CreatedAt = existing.CreatedAt
		ticket.IsLineNotified = existing.IsLineNotified
	}

	r.tickets[ticketID] = ticket
	live.TotalReserved = newTotal

	copied := *ticket
	return &copied, nil
}

func (r *MemoryRepository) Cancel(ctx context.Context, liveID uuid.UUID, memberID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live, ok := r.lives[liveID]
	if !ok {
		return 0, ErrLiveNotFound
	}

	ticketID := BuildTicketID(liveID, memberID)
	ticket, ok := r.tickets[ticketID]
	if !ok {
		return 0, ErrTicketNotFound
	}

	delete(r.tickets, ticketID)

	newTotal := live.TotalReserved - ticket.TotalCount
	if newTotal < 0 {
		newTotal = 0
	}
	live.TotalReserved = newTotal

	return ticket.TotalCount, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, liveID uuid.UUID, memberID string) (*Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[BuildTicketID(liveID, memberID)]
	if !ok {
		return nil, ErrTicketNotFound
	}
	copied := *ticket
	return &copied, nil
}

func (r *MemoryRepository) GetByLive(ctx context.Context, liveID uuid.UUID, query TicketListQuery) ([]Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []Ticket
	for _, t := range r.tickets {
		if t.LiveID == liveID {
			result = append(result, *t)
		}
	}
	return result, int64(len(result)), nil
}

func (r *MemoryRepository) GetByMember(ctx context.Context, memberID string) ([]Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []Ticket
	for _, t := range r.tickets {
		if t.MemberID == memberID {
			result = append(result, *t)
		}
	}
	return result, nil
}

func (r *MemoryRepository) MarkLineNotified(ctx context.Context, ticketID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ticket, ok := r.tickets[ticketID]
	if !ok {
		return ErrTicketNotFound
	}
	ticket.IsLineNotified = true
	ticket.UpdatedAt = time.Now()
	return nil
}
