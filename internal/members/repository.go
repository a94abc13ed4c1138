package members

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	GetByID(id string) (*Member, error)
	GetAll() ([]Member, error)
	Upsert(member *Member) error
	Update(id string, updates map[string]interface{}) (*Member, error)
	Delete(id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(id string) (*Member, error) {
	var member Member
	err := r.db.Where("id = ?", id).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *repository) GetAll() ([]Member, error) {
	var members []Member
	err := r.db.Order("created_at ASC").Find(&members).Error
	return members, err
}

// Upsert inserts the member or refreshes profile fields on conflict.
// Role and consent are never overwritten by a login.
func (r *repository) Upsert(member *Member) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "picture_url", "updated_at"}),
	}).Create(member).Error
}

func (r *repository) Update(id string, updates map[string]interface{}) (*Member, error) {
	var member Member
	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}

	if err := r.db.Model(&member).Updates(updates).Error; err != nil {
		return nil, err
	}

	if err := r.db.Where("id = ?", id).First(&member).Error; err != nil {
		return nil, err
	}

	return &member, nil
}

func (r *repository) Delete(id string) error {
	return r.db.Where("id = ?", id).Delete(&Member{}).Error
}
