package medias

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(media *Media) error
	GetByID(id uuid.UUID) (*Media, error)
	Delete(id uuid.UUID) error
	GetAll(query MediaListQuery) ([]Media, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(media *Media) error {
	return r.db.Create(media).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Media, error) {
	var media Media
	err := r.db.Where("id = ?", id).First(&media).Error
	if err != nil {
		return nil, err
	}
	return &media, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Media{}).Error
}

func (r *repository) GetAll(query MediaListQuery) ([]Media, error) {
	var medias []Media

	db := r.db.Model(&Media{})

	if query.Type != "" {
		db = db.Where("type = ?", query.Type)
	}
	if query.LiveID != "" {
		db = db.Where("live_id = ?", query.LiveID)
	}
	if query.Featured != nil {
		db = db.Where("featured = ?", *query.Featured)
	}

	err := db.Order("created_at DESC").Find(&medias).Error
	return medias, err
}
