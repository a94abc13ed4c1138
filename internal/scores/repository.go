package scores

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(score *Score) error
	GetByID(id uuid.UUID) (*Score, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Score, error)
	Delete(id uuid.UUID) error
	GetAll(query ScoreListQuery) ([]Score, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(score *Score) error {
	return r.db.Create(score).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Score, error) {
	var score Score
	err := r.db.Where("id = ?", id).First(&score).Error
	if err != nil {
		return nil, err
	}
	return &score, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Score, error) {
	var score Score
	if err := r.db.Where("id = ?", id).First(&score).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&score).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&score).Error; err != nil {
		return nil, err
	}

	return &score, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Score{}).Error
}

func (r *repository) GetAll(query ScoreListQuery) ([]Score, error) {
	var scores []Score

	db := r.db.Model(&Score{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(artist) LIKE ?", searchTerm, searchTerm)
	}
	if query.Artist != "" {
		db = db.Where("LOWER(artist) LIKE ?", "%"+strings.ToLower(query.Artist)+"%")
	}
	if query.Featured != nil {
		db = db.Where("featured = ?", *query.Featured)
	}

	err := db.Order("title ASC").Find(&scores).Error
	return scores, err
}
