package lives

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(live *Live) error
	GetByID(id uuid.UUID) (*Live, error)
	Update(id uuid.UUID, updates map[string]interface{}) (*Live, error)
	Delete(id uuid.UUID) error
	GetAll(query LiveListQuery) ([]Live, int64, error)
	GetUpcoming(limit int) ([]Live, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(live *Live) error {
	return r.db.Create(live).Error
}

func (r *repository) GetByID(id uuid.UUID) (*Live, error) {
	var live Live
	err := r.db.Where("id = ?", id).First(&live).Error
	if err != nil {
		return nil, err
	}
	return &live, nil
}

func (r *repository) Update(id uuid.UUID, updates map[string]interface{}) (*Live, error) {
	var live Live

	if err := r.db.Where("id = ?", id).First(&live).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&live).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&live).Error; err != nil {
		return nil, err
	}

	return &live, nil
}

func (r *repository) Delete(id uuid.UUID) error {
	return r.db.Where("id = ?", id).Delete(&Live{}).Error
}

func (r *repository) GetAll(query LiveListQuery) ([]Live, int64, error) {
	var lives []Live
	var totalCount int64

	db := r.db.Model(&Live{})

	if query.Search != "" {
		searchTerm := "%" + strings.ToLower(query.Search) + "%"
		db = db.Where("LOWER(title) LIKE ? OR LOWER(venue) LIKE ? OR LOWER(notes) LIKE ?",
			searchTerm, searchTerm, searchTerm)
	}

	if query.Venue != "" {
		db = db.Where("LOWER(venue) LIKE ?", "%"+strings.ToLower(query.Venue)+"%")
	}

	if query.Upcoming {
		today := time.Now().Truncate(24 * time.Hour)
		db = db.Where("date >= ?", today)
	}

	if query.DateFrom != "" {
		if dateFrom, err := time.Parse("2006-01-02", query.DateFrom); err == nil {
			db = db.Where("date >= ?", dateFrom)
		}
	}

	if query.DateTo != "" {
		if dateTo, err := time.Parse("2006-01-02", query.DateTo); err == nil {
			// include the entire day
			dateTo = dateTo.Add(24 * time.Hour)
			db = db.Where("date < ?", dateTo)
		}
	}

	if err := db.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	if query.Page == 0 {
		query.Page = 1
	}
	if query.Limit == 0 {
		query.Limit = 10
	}

	offset := (query.Page - 1) * query.Limit

	err := db.Order("date ASC").
		Offset(offset).
		Limit(query.Limit).
		Find(&lives).Error

	return lives, totalCount, err
}

func (r *repository) GetUpcoming(limit int) ([]Live, error) {
	var lives []Live
	today := time.Now().Truncate(24 * time.Hour)

	err := r.db.Where("date >= ?", today).
		Order("date ASC").
		Limit(limit).
		Find(&lives).Error

	return lives, err
}
