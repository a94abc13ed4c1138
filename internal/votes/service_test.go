package votes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memoryRepository backs the service tests without a database.
type memoryRepository struct {
	mu        sync.Mutex
	votes     map[uuid.UUID]*Vote
	responses map[string]*Response
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{
		votes:     make(map[uuid.UUID]*Vote),
		responses: make(map[string]*Response),
	}
}

func (r *memoryRepository) CreateVote(ctx context.Context, vote *Vote) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if vote.ID == uuid.Nil {
		vote.ID = uuid.New()
	}
	copied := *vote
	r.votes[vote.ID] = &copied
	return nil
}

func (r *memoryRepository) GetVoteByID(ctx context.Context, id uuid.UUID) (*Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	vote, ok := r.votes[id]
	if !ok {
		return nil, ErrVoteNotFound
	}
	copied := *vote
	return &copied, nil
}

func (r *memoryRepository) GetAllVotes(ctx context.Context) ([]Vote, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Vote
	for _, v := range r.votes {
		out = append(out, *v)
	}
	return out, nil
}

func (r *memoryRepository) CloseVote(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	vote, ok := r.votes[id]
	if !ok {
		return ErrVoteNotFound
	}
	vote.Closed = true
	return nil
}

func (r *memoryRepository) DeleteVote(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.votes, id)
	for key, resp := range r.responses {
		if resp.VoteID == id {
			delete(r.responses, key)
		}
	}
	return nil
}

func (r *memoryRepository) UpsertResponse(ctx context.Context, response *Response) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *response
	r.responses[response.ID] = &copied
	return nil
}

func (r *memoryRepository) GetResponse(ctx context.Context, voteID uuid.UUID, memberID string) (*Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resp, ok := r.responses[BuildResponseID(voteID, memberID)]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *resp
	return &copied, nil
}

func (r *memoryRepository) GetResponses(ctx context.Context, voteID uuid.UUID) ([]Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Response
	for _, resp := range r.responses {
		if resp.VoteID == voteID {
			out = append(out, *resp)
		}
	}
	return out, nil
}

func (r *memoryRepository) DeleteResponse(ctx context.Context, voteID uuid.UUID, memberID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.responses, BuildResponseID(voteID, memberID))
	return nil
}

func seedVote(t *testing.T, repo *memoryRepository, closed bool, deadline *time.Time) uuid.UUID {
	t.Helper()
	vote := &Vote{
		Title:    "Next rehearsal date",
		Options:  []string{"Saturday", "Sunday"},
		Deadline: deadline,
		Closed:   closed,
	}
	require.NoError(t, repo.CreateVote(context.Background(), vote))
	return vote.ID
}

func TestCastVote_RecordsChoice(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	result, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)

	assert.Equal(t, "Saturday", result.MyChoice)
	assert.Equal(t, 1, result.Tally["Saturday"])
	assert.Equal(t, 0, result.Tally["Sunday"])
}

func TestCastVote_ReplacesPreviousChoice(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)

	result, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Sunday"})
	require.NoError(t, err)

	assert.Equal(t, "Sunday", result.MyChoice)
	assert.Equal(t, 0, result.Tally["Saturday"])
	assert.Equal(t, 1, result.Tally["Sunday"])
}

func TestCastVote_TalliesAcrossMembers(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)
	_, err = svc.CastVote(context.Background(), voteID, "member-2", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)
	result, err := svc.CastVote(context.Background(), voteID, "member-3", CastVoteRequest{Choice: "Sunday"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Tally["Saturday"])
	assert.Equal(t, 1, result.Tally["Sunday"])
}

func TestCastVote_RejectsClosedVote(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, true, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	assert.ErrorIs(t, err, ErrVoteClosed)
}

func TestCastVote_RejectsPastDeadline(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	deadline := time.Now().Add(-time.Hour)
	voteID := seedVote(t, repo, false, &deadline)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	assert.ErrorIs(t, err, ErrVoteClosed)
}

func TestCastVote_RejectsUnknownChoice(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Monday"})
	assert.ErrorIs(t, err, ErrInvalidChoice)
}

func TestCastVote_UnknownVote(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)

	_, err := svc.CastVote(context.Background(), uuid.New(), "member-1", CastVoteRequest{Choice: "Saturday"})
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestWithdrawVote_RemovesResponse(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)

	require.NoError(t, svc.WithdrawVote(context.Background(), voteID, "member-1"))

	result, err := svc.GetVote(context.Background(), voteID, "member-1")
	require.NoError(t, err)
	assert.Empty(t, result.MyChoice)
	assert.Equal(t, 0, result.Tally["Saturday"])
}

func TestWithdrawVote_MissingResponseIsNoop(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	assert.NoError(t, svc.WithdrawVote(context.Background(), voteID, "member-1"))
}

func TestCloseVote_FreezesResults(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)

	require.NoError(t, svc.CloseVote(context.Background(), voteID))

	_, err = svc.CastVote(context.Background(), voteID, "member-2", CastVoteRequest{Choice: "Sunday"})
	assert.ErrorIs(t, err, ErrVoteClosed)

	// existing answers stay visible after close
	result, err := svc.GetVote(context.Background(), voteID, "member-1")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Tally["Saturday"])
}

// recordingArchiver captures snapshots so tests can assert on them.
type recordingArchiver struct {
	kinds   []string
	sources []string
	fail    error
}

func (a *recordingArchiver) Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error {
	if a.fail != nil {
		return a.fail
	}
	a.kinds = append(a.kinds, kind)
	a.sources = append(a.sources, sourceID)
	return nil
}

func TestDeleteVote_SnapshotsBeforeDelete(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	archiver := &recordingArchiver{}
	svc.SetArchiver(archiver)
	voteID := seedVote(t, repo, false, nil)

	_, err := svc.CastVote(context.Background(), voteID, "member-1", CastVoteRequest{Choice: "Saturday"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteVote(context.Background(), voteID))

	require.Len(t, archiver.kinds, 1)
	assert.Equal(t, "vote", archiver.kinds[0])
	assert.Equal(t, voteID.String(), archiver.sources[0])

	_, err = svc.GetVote(context.Background(), voteID, "member-1")
	assert.ErrorIs(t, err, ErrVoteNotFound)
}

func TestDeleteVote_AbortsWhenSnapshotFails(t *testing.T) {
	repo := newMemoryRepository()
	svc := NewService(repo)
	svc.SetArchiver(&recordingArchiver{fail: errors.New("archive store down")})
	voteID := seedVote(t, repo, false, nil)

	err := svc.DeleteVote(context.Background(), voteID)
	require.Error(t, err)

	// the vote survives a failed snapshot
	_, err = svc.GetVote(context.Background(), voteID, "member-1")
	assert.NoError(t, err)
}
