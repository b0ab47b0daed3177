package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type LadderRepository struct {
	DB *gorm.DB
}

func NewLadderRepository(db *gorm.DB) *LadderRepository {
	return &LadderRepository{DB: db}
}

func (r *LadderRepository) Create(ladder *model.Ladder) error {
	return r.DB.Create(ladder).Error
}

func (r *LadderRepository) GetByID(id uint) (*model.Ladder, error) {
	var ladder model.Ladder
	err := r.DB.First(&ladder, id).Error
	if err != nil {
		return nil, err
	}
	return &ladder, nil
}

// ListOrdered returns ladders in their progression order.
func (r *LadderRepository) ListOrdered() ([]model.Ladder, error) {
	var ladders []model.Ladder
	err := r.DB.Order("display_order asc").Find(&ladders).Error
	return ladders, err
}

func (r *LadderRepository) Update(ladder *model.Ladder) error {
	return r.DB.Save(ladder).Error
}

func (r *LadderRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Ladder{}, id).Error
}
