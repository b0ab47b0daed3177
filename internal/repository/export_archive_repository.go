package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type ExportArchiveRepository struct {
	DB *gorm.DB
}

func NewExportArchiveRepository(db *gorm.DB) *ExportArchiveRepository {
	return &ExportArchiveRepository{DB: db}
}

func (r *ExportArchiveRepository) Create(archive *model.ExportArchive) error {
	return r.DB.Create(archive).Error
}

func (r *ExportArchiveRepository) GetByID(id uint) (*model.ExportArchive, error) {
	var archive model.ExportArchive
	err := r.DB.First(&archive, id).Error
	if err != nil {
		return nil, err
	}
	return &archive, nil
}

func (r *ExportArchiveRepository) List(limit int) ([]model.ExportArchive, error) {
	var archives []model.ExportArchive
	err := r.DB.Order("created_at desc").Limit(limit).Find(&archives).Error
	return archives, err
}
