package auditlog

import (
	"context"
	"fmt"

	"streakconnect/pkg/logger"
)

type Service interface {
	// Record writes an entry and never fails the caller. Audit logging is
	// best-effort and must not break the action being recorded.
	Record(ctx context.Context, memberID, action, target, detail, ip string)

	GetAll(ctx context.Context, filters ListFilters) ([]EntryResponse, int64, error)
}

type service struct {
	repo Repository
	log  *logger.Logger
}

func NewService(repo Repository) Service {
	return &service{
		repo: repo,
		log:  logger.GetDefault(),
	}
}

func (s *service) Record(ctx context.Context, memberID, action, target, detail, ip string) {
	entry := &Entry{
		MemberID:  memberID,
		Action:    action,
		Target:    target,
		Detail:    detail,
		IPAddress: ip,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.log.ErrorContext(ctx, "Failed to write audit log entry",
			"action", action,
			"member_id", memberID,
			"error", err.Error(),
		)
	}
}

func (s *service) GetAll(ctx context.Context, filters ListFilters) ([]EntryResponse, int64, error) {
	entries, total, err := s.repo.GetAll(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get audit log entries: %w", err)
	}

	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = e.ToResponse()
	}
	return responses, total, nil
}
