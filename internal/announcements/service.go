package announcements

import (
	"context"
	"errors"
	"fmt"
	"time"

	"streakconnect/internal/lives"
	"streakconnect/internal/shared/constants"
	"streakconnect/internal/tickets"
	"streakconnect/internal/votes"
	"streakconnect/pkg/cache"
)

type Service interface {
	SetCacheService(cacheService cache.Service)

	GetDigest(ctx context.Context, memberID string) (*Digest, error)
}

type service struct {
	liveRepo     lives.Repository
	ticketRepo   tickets.Repository
	voteRepo     votes.Repository
	cacheService cache.Service
}

func NewService(liveRepo lives.Repository, ticketRepo tickets.Repository, voteRepo votes.Repository) Service {
	return &service{
		liveRepo:   liveRepo,
		ticketRepo: ticketRepo,
		voteRepo:   voteRepo,
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) GetDigest(ctx context.Context, memberID string) (*Digest, error) {
	cacheKey := constants.BuildAnnouncementKey(memberID)
	if s.cacheService != nil {
		var cached Digest
		if err := s.cacheService.Get(ctx, cacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	digest, err := s.buildDigest(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if s.cacheService != nil {
		_ = s.cacheService.Set(ctx, cacheKey, digest, constants.TTLAnnouncement)
	}

	return digest, nil
}

func (s *service) buildDigest(ctx context.Context, memberID string) (*Digest, error) {
	now := time.Now()
	digest := &Digest{
		AcceptingLives: []lives.LiveResponse{},
		OpenVotes:      []votes.VoteResponse{},
	}

	upcoming, err := s.liveRepo.GetUpcoming(20)
	if err != nil {
		return nil, fmt.Errorf("failed to get upcoming lives: %w", err)
	}

	for i := range upcoming {
		live := &upcoming[i]

		if digest.NextLive == nil && live.IsUpcoming(now) {
			response := live.ToResponse()
			digest.NextLive = &response

			days := live.DaysUntil(now)
			digest.DaysUntilNextLive = &days

			if ticket, err := s.ticketRepo.GetByID(ctx, live.ID, memberID); err == nil {
				t := ticket.ToResponse()
				digest.MyNextTicket = &t
			} else if !errors.Is(err, tickets.ErrTicketNotFound) {
				return nil, fmt.Errorf("failed to get ticket: %w", err)
			}
		}

		if live.IsAccepting(now) {
			digest.AcceptingLives = append(digest.AcceptingLives, live.ToResponse())
		}
	}

	allVotes, err := s.voteRepo.GetAllVotes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get votes: %w", err)
	}

	for i := range allVotes {
		vote := &allVotes[i]
		if !vote.IsOpen(now) {
			continue
		}
		// only surface polls the member has not answered yet
		if _, err := s.voteRepo.GetResponse(ctx, vote.ID, memberID); err == nil {
			continue
		}
		digest.OpenVotes = append(digest.OpenVotes, vote.ToResponse())
	}

	return digest, nil
}
