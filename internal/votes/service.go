package votes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Archiver stores a snapshot of a record before its caller destroys it.
// Implemented by the archives service; defined here to avoid a cycle.
type Archiver interface {
	Snapshot(ctx context.Context, kind, sourceID string, payload interface{}, archivedBy string) error
}

type Service interface {
	SetArchiver(archiver Archiver)

	CreateVote(ctx context.Context, adminID string, req CreateVoteRequest) (*VoteResponse, error)
	GetVote(ctx context.Context, voteID uuid.UUID, memberID string) (*VoteResponse, error)
	GetAllVotes(ctx context.Context, memberID string) ([]VoteResponse, error)
	CloseVote(ctx context.Context, voteID uuid.UUID) error
	DeleteVote(ctx context.Context, voteID uuid.UUID) error

	CastVote(ctx context.Context, voteID uuid.UUID, memberID string, req CastVoteRequest) (*VoteResponse, error)
	WithdrawVote(ctx context.Context, voteID uuid.UUID, memberID string) error
}

type service struct {
	repo     Repository
	archiver Archiver
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) SetArchiver(archiver Archiver) {
	s.archiver = archiver
}

func (s *service) CreateVote(ctx context.Context, adminID string, req CreateVoteRequest) (*VoteResponse, error) {
	vote := &Vote{
		Title:       req.Title,
		Description: req.Description,
		Options:     req.Options,
		Deadline:    req.Deadline,
		CreatedBy:   adminID,
	}

	if err := s.repo.CreateVote(ctx, vote); err != nil {
		return nil, fmt.Errorf("failed to create vote: %w", err)
	}

	response := vote.ToResponse()
	return &response, nil
}

// GetVote returns the vote with its tally and the caller's own choice.
func (s *service) GetVote(ctx context.Context, voteID uuid.UUID, memberID string) (*VoteResponse, error) {
	vote, err := s.repo.GetVoteByID(ctx, voteID)
	if err != nil {
		return nil, err
	}

	result := vote.ToResponse()

	responses, err := s.repo.GetResponses(ctx, voteID)
	if err != nil {
		return nil, fmt.Errorf("failed to get responses: %w", err)
	}

	tally := make(map[string]int, len(vote.Options))
	for _, option := range vote.Options {
		tally[option] = 0
	}
	for _, r := range responses {
		tally[r.Choice]++
		if r.MemberID == memberID {
			result.MyChoice = r.Choice
		}
	}
	result.Tally = tally

	return &result, nil
}

func (s *service) GetAllVotes(ctx context.Context, memberID string) ([]VoteResponse, error) {
	votes, err := s.repo.GetAllVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	results := make([]VoteResponse, len(votes))
	for i, v := range votes {
		results[i] = v.ToResponse()
		if resp, err := s.repo.GetResponse(ctx, v.ID, memberID); err == nil {
			results[i].MyChoice = resp.Choice
		}
	}
	return results, nil
}

func (s *service) CloseVote(ctx context.Context, voteID uuid.UUID) error {
	return s.repo.CloseVote(ctx, voteID)
}

// archivedVote is the snapshot shape for deleted votes.
type archivedVote struct {
	Vote      Vote       `json:"vote"`
	Responses []Response `json:"responses"`
}

func (s *service) DeleteVote(ctx context.Context, voteID uuid.UUID) error {
	vote, err := s.repo.GetVoteByID(ctx, voteID)
	if err != nil {
		return err
	}

	// Snapshot the vote with its responses before the delete; a failed
	// snapshot aborts it
	if s.archiver != nil {
		responses, err := s.repo.GetResponses(ctx, voteID)
		if err != nil {
			return fmt.Errorf("failed to get responses: %w", err)
		}
		snap := archivedVote{Vote: *vote, Responses: responses}
		if err := s.archiver.Snapshot(ctx, "vote", voteID.String(), snap, ""); err != nil {
			return fmt.Errorf("failed to archive vote: %w", err)
		}
	}

	return s.repo.DeleteVote(ctx, voteID)
}

// CastVote records or replaces the member's answer.
func (s *service) CastVote(ctx context.Context, voteID uuid.UUID, memberID string, req CastVoteRequest) (*VoteResponse, error) {
	vote, err := s.repo.GetVoteByID(ctx, voteID)
	if err != nil {
		return nil, err
	}

	if !vote.IsOpen(time.Now()) {
		return nil, ErrVoteClosed
	}

	valid := false
	for _, option := range vote.Options {
		if option == req.Choice {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidChoice
	}

	response := &Response{
		ID:       BuildResponseID(voteID, memberID),
		VoteID:   voteID,
		MemberID: memberID,
		Choice:   req.Choice,
		Comment:  req.Comment,
	}

	if err := s.repo.UpsertResponse(ctx, response); err != nil {
		return nil, fmt.Errorf("failed to save response: %w", err)
	}

	return s.GetVote(ctx, voteID, memberID)
}

func (s *service) WithdrawVote(ctx context.Context, voteID uuid.UUID, memberID string) error {
	vote, err := s.repo.GetVoteByID(ctx, voteID)
	if err != nil {
		return err
	}

	if !vote.IsOpen(time.Now()) {
		return ErrVoteClosed
	}

	if _, err := s.repo.GetResponse(ctx, voteID, memberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// withdrawing nothing is a no-op
			return nil
		}
		return err
	}

	return s.repo.DeleteResponse(ctx, voteID, memberID)
}
