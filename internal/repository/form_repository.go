package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type FormRepository struct {
	DB *gorm.DB
}

func NewFormRepository(db *gorm.DB) *FormRepository {
	return &FormRepository{DB: db}
}

func (r *FormRepository) Create(form *model.Form) error {
	return r.DB.Create(form).Error
}

func (r *FormRepository) GetByID(id uint) (*model.Form, error) {
	var form model.Form
	err := r.DB.
		Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		First(&form, id).Error
	if err != nil {
		return nil, err
	}
	return &form, nil
}

func (r *FormRepository) List(publishedOnly bool) ([]model.Form, error) {
	db := r.DB.Preload("Fields", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") })
	if publishedOnly {
		db = db.Where("published = ?", true)
	}
	var forms []model.Form
	err := db.Order("created_at desc").Find(&forms).Error
	return forms, err
}

func (r *FormRepository) Update(form *model.Form) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(form).Error
}

// ReplaceFields swaps the full field list of a form in one transaction.
func (r *FormRepository) ReplaceFields(formID uint, fields []model.FormField) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("form_id = ?", formID).Delete(&model.FormField{}).Error; err != nil {
			return err
		}
		for i := range fields {
			fields[i].FormID = formID
		}
		if len(fields) == 0 {
			return nil
		}
		return tx.Create(&fields).Error
	})
}

func (r *FormRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Form{}, id).Error
}

func (r *FormRepository) CreateSubmission(sub *model.FormSubmission) error {
	return r.DB.Create(sub).Error
}

func (r *FormRepository) ListSubmissions(formID uint) ([]model.FormSubmission, error) {
	var subs []model.FormSubmission
	err := r.DB.Where("form_id = ?", formID).Order("created_at desc").Find(&subs).Error
	return subs, err
}
