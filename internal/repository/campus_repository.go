package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type CampusRepository struct {
	DB *gorm.DB
}

func NewCampusRepository(db *gorm.DB) *CampusRepository {
	return &CampusRepository{DB: db}
}

func (r *CampusRepository) Create(campus *model.Campus) error {
	return r.DB.Create(campus).Error
}

func (r *CampusRepository) GetByID(id uint) (*model.Campus, error) {
	var campus model.Campus
	err := r.DB.First(&campus, id).Error
	if err != nil {
		return nil, err
	}
	return &campus, nil
}

// ListOrdered returns all campuses ordered by name, the order the selector
// shows them in.
func (r *CampusRepository) ListOrdered() ([]model.Campus, error) {
	var campuses []model.Campus
	err := r.DB.Order("name asc").Find(&campuses).Error
	return campuses, err
}

func (r *CampusRepository) Update(campus *model.Campus) error {
	return r.DB.Save(campus).Error
}

func (r *CampusRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Campus{}, id).Error
}
