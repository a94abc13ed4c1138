package auditlog

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, entry *Entry) error
	GetAll(ctx context.Context, filters ListFilters) ([]Entry, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *repository) GetAll(ctx context.Context, filters ListFilters) ([]Entry, int64, error) {
	var entries []Entry
	var total int64

	db := r.db.WithContext(ctx).Model(&Entry{})
	if filters.MemberID != "" {
		db = db.Where("member_id = ?", filters.MemberID)
	}
	if filters.Action != "" {
		db = db.Where("action = ?", filters.Action)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := filters.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(filters.Offset).
		Find(&entries).Error
	return entries, total, err
}
