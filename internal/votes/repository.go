package votes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	CreateVote(ctx context.Context, vote *Vote) error
	GetVoteByID(ctx context.Context, id uuid.UUID) (*Vote, error)
	GetAllVotes(ctx context.Context) ([]Vote, error)
	CloseVote(ctx context.Context, id uuid.UUID) error
	DeleteVote(ctx context.Context, id uuid.UUID) error

	UpsertResponse(ctx context.Context, response *Response) error
	GetResponse(ctx context.Context, voteID uuid.UUID, memberID string) (*Response, error)
	GetResponses(ctx context.Context, voteID uuid.UUID) ([]Response, error)
	DeleteResponse(ctx context.Context, voteID uuid.UUID, memberID string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateVote(ctx context.Context, vote *Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *repository) GetVoteByID(ctx context.Context, id uuid.UUID) (*Vote, error) {
	var vote Vote
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&vote).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoteNotFound
		}
		return nil, err
	}
	return &vote, nil
}

func (r *repository) GetAllVotes(ctx context.Context) ([]Vote, error) {
	var votes []Vote
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&votes).Error
	return votes, err
}

func (r *repository) CloseVote(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Model(&Vote{}).
		Where("id = ?", id).
		Update("closed", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

func (r *repository) DeleteVote(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vote_id = ?", id).Delete(&Response{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&Vote{}).Error
	})
}

func (r *repository) UpsertResponse(ctx context.Context, response *Response) error {
	// Save on the deterministic ID makes re-voting replace the previous answer
	return r.db.WithContext(ctx).Save(response).Error
}

func (r *repository) GetResponse(ctx context.Context, voteID uuid.UUID, memberID string) (*Response, error) {
	var response Response
	err := r.db.WithContext(ctx).
		Where("id = ?", BuildResponseID(voteID, memberID)).
		First(&response).Error
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *repository) GetResponses(ctx context.Context, voteID uuid.UUID) ([]Response, error) {
	var responses []Response
	err := r.db.WithContext(ctx).
		Where("vote_id = ?", voteID).
		Order("created_at ASC").
		Find(&responses).Error
	return responses, err
}

func (r *repository) DeleteResponse(ctx context.Context, voteID uuid.UUID, memberID string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", BuildResponseID(voteID, memberID)).
		Delete(&Response{}).Error
}
