package tickets

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"streakconnect/internal/lives"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// stubLiveRepo serves live reads from the shared memory store.
type stubLiveRepo struct {
	store *MemoryRepository
}

func (s *stubLiveRepo) Create(live *lives.Live) error { s.store.AddLive(live); return nil }
func (s *stubLiveRepo) GetByID(id uuid.UUID) (*lives.Live, error) {
	live, ok := s.store.GetLive(id)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return live, nil
}
func (s *stubLiveRepo) Update(id uuid.UUID, updates map[string]interface{}) (*lives.Live, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubLiveRepo) Delete(id uuid.UUID) error { return nil }
func (s *stubLiveRepo) GetAll(query lives.LiveListQuery) ([]lives.Live, int64, error) {
	return nil, 0, nil
}
func (s *stubLiveRepo) GetUpcoming(limit int) ([]lives.Live, error) { return nil, nil }

func newTestService(t *testing.T, strictCancel bool) (Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	svc := NewService(repo, &stubLiveRepo{store: repo}, strictCancel)
	return svc, repo
}

func seedLive(repo *MemoryRepository, stock, maxCompanions int) uuid.UUID {
	live := &lives.Live{
		ID:            uuid.New(),
		Title:         "Autumn Session",
		Date:          time.Now().AddDate(0, 1, 0),
		Venue:         "Blue Note Annex",
		TicketStock:   stock,
		MaxCompanions: maxCompanions,
	}
	repo.AddLive(live)
	return live.ID
}

func TestUpsertReservation_CreatesTicket(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	ticket, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya", "Ken"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, ticket.TotalCount) // member + 2 companions
	assert.Equal(t, 2, ticket.CompanionCount)
	assert.Equal(t, "Miki", ticket.RepresentativeName)
	assert.Len(t, ticket.ReservationNo, 4)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 3, live.TotalReserved)
}

func TestUpsertReservation_InviteDoesNotCountMemberSeat(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	ticket, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "invite",
		Companions: []string{"Aya", "Ken"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, ticket.TotalCount)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestUpsertReservation_BlankCompanionsDropped(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	ticket, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"  Aya  ", "", "   ", "Ken"},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"Aya", "Ken"}, ticket.Companions)
	assert.Equal(t, 3, ticket.TotalCount)
}

func TestUpsertReservation_InviteWithNoCompanionsRejected(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	_, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "invite",
		Companions: []string{"  ", ""},
	})
	assert.ErrorIs(t, err, ErrNoSeatsRequested)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 0, live.TotalReserved)
}

func TestUpsertReservation_IdempotentReplay(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	first, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)

	second, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)

	// replaying the same reservation holds the same seats, number and history
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.ReservationNo, second.ReservationNo)
	assert.Equal(t, first.CreatedAt, second.CreatedAt)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestUpsertReservation_UpdateAdjustsByDelta(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya", "Ken", "Rio"},
	})
	require.NoError(t, err)

	live, _ := repo.GetLive(liveID)
	require.Equal(t, 4, live.TotalReserved)

	// drop to one companion
	updated, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalCount)

	live, _ = repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestUpsertReservation_CapacityExceeded(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 3, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)

	_, err = svc.UpsertReservation(ctx, liveID, "U002", "Taro", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Jun"},
	})
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// rejected write leaves the counter untouched
	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestUpsertReservation_ShrinkSucceedsOnFullHouse(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 4, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya", "Ken", "Rio"},
	})
	require.NoError(t, err)

	live, _ := repo.GetLive(liveID)
	require.Equal(t, 4, live.TotalReserved) // full

	// shrinking must pass even though the house is full
	updated, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.TotalCount)

	live, _ = repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestUpsertReservation_CompanionCap(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 2)

	_, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya", "Ken", "Rio"},
	})
	assert.ErrorIs(t, err, ErrTooManyCompanions)
}

func TestUpsertReservation_OutsideAcceptanceWindow(t *testing.T) {
	svc, repo := newTestService(t, false)

	closed := time.Now().Add(-time.Hour)
	live := &lives.Live{
		ID:            uuid.New(),
		Title:         "Closed Session",
		Date:          time.Now().AddDate(0, 1, 0),
		Venue:         "Blue Note Annex",
		TicketStock:   10,
		MaxCompanions: 5,
		AcceptEnd:     &closed,
	}
	repo.AddLive(live)

	_, err := svc.UpsertReservation(context.Background(), live.ID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestUpsertReservation_PastLiveRejected(t *testing.T) {
	svc, repo := newTestService(t, false)

	// Nil window bounds must not reopen a show whose date has passed
	live := &lives.Live{
		ID:            uuid.New(),
		Title:         "Last Year's Session",
		Date:          time.Now().AddDate(-1, 0, 0),
		Venue:         "Blue Note Annex",
		TicketStock:   10,
		MaxCompanions: 5,
	}
	repo.AddLive(live)

	_, err := svc.UpsertReservation(context.Background(), live.ID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	assert.ErrorIs(t, err, ErrOutsideWindow)
}

func TestUpsertReservation_InvalidTypeRejected(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	_, err := svc.UpsertReservation(context.Background(), liveID, "U001", "Miki", UpsertReservationRequest{
		ResType: "backstage",
	})
	assert.ErrorIs(t, err, ErrInvalidResType)
	assert.Equal(t, http.StatusBadRequest, statusForError(err))
}

func TestUpsertReservation_MissingRepresentativeRejected(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	// general reservation, blank name in the request and no display name
	_, err := svc.UpsertReservation(context.Background(), liveID, "U001", "", UpsertReservationRequest{
		ResType:            "general",
		RepresentativeName: "  ",
	})
	assert.ErrorIs(t, err, ErrRepresentativeRequired)
	assert.Equal(t, http.StatusBadRequest, statusForError(err))
}

func TestUpsertReservation_LiveNotFound(t *testing.T) {
	svc, _ := newTestService(t, false)

	_, err := svc.UpsertReservation(context.Background(), uuid.New(), "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: nil,
	})
	assert.ErrorIs(t, err, ErrLiveNotFound)
}

func TestCancelReservation_ReleasesSeats(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya", "Ken"},
	})
	require.NoError(t, err)

	released, err := svc.CancelReservation(ctx, liveID, "U001")
	require.NoError(t, err)
	assert.Equal(t, 3, released)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 0, live.TotalReserved)

	_, err = svc.GetMyTicket(ctx, liveID, "U001")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestCancelReservation_MissingTicketIsNoop(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)

	released, err := svc.CancelReservation(context.Background(), liveID, "U001")
	require.NoError(t, err)
	assert.Equal(t, 0, released)
}

func TestCancelReservation_StrictRejectsMissingTicket(t *testing.T) {
	svc, repo := newTestService(t, true)
	liveID := seedLive(repo, 10, 5)

	_, err := svc.CancelReservation(context.Background(), liveID, "U001")
	assert.ErrorIs(t, err, ErrTicketNotFound)
}

func TestUpsertReservation_ConcurrentRaceForLastSeats(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 3, 5)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	// two members race for 2 seats each with only 3 left
	for i, memberID := range []string{"U001", "U002"} {
		wg.Add(1)
		go func(i int, memberID string) {
			defer wg.Done()
			_, errs[i] = svc.UpsertReservation(ctx, liveID, memberID, "Member", UpsertReservationRequest{
				ResType:    "general",
				Companions: []string{"Guest"},
			})
		}(i, memberID)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrCapacityExceeded)
		}
	}
	assert.Equal(t, 1, succeeded)

	live, _ := repo.GetLive(liveID)
	assert.Equal(t, 2, live.TotalReserved)
}

func TestGetSummary(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 20, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)

	_, err = svc.UpsertReservation(ctx, liveID, "U002", "Taro", UpsertReservationRequest{
		ResType:    "invite",
		Companions: []string{"Jun", "Rio"},
	})
	require.NoError(t, err)

	summary, err := svc.GetSummary(ctx, liveID)
	require.NoError(t, err)

	assert.Equal(t, 20, summary.TicketStock)
	assert.Equal(t, 4, summary.TotalReserved)
	assert.Equal(t, 16, summary.Remaining)
	assert.Equal(t, 2, summary.TicketCount)
	assert.Equal(t, 2, summary.InviteSeats)
	assert.Equal(t, 2, summary.GeneralSeats)
}

func TestGenerateTicketQR(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: nil,
	})
	require.NoError(t, err)

	png, err := svc.GenerateTicketQR(ctx, liveID, "U001")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestRemainingStock_FallsBackToDatabase(t *testing.T) {
	svc, repo := newTestService(t, false)
	liveID := seedLive(repo, 10, 5)
	ctx := context.Background()

	_, err := svc.UpsertReservation(ctx, liveID, "U001", "Miki", UpsertReservationRequest{
		ResType:    "general",
		Companions: []string{"Aya"},
	})
	require.NoError(t, err)

	remaining, err := svc.RemainingStock(ctx, liveID)
	require.NoError(t, err)
	assert.Equal(t, 8, remaining)
}
