package repository

import (
	"errors"
	"time"

	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) GetByUserCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Exists(userID, courseID uint) (bool, error) {
	_, err := r.GetByUserCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ListByUser returns a user's enrollments newest first.
func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).
		Order("enrolled_at desc").
		Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListAll() ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Order("enrolled_at desc").Find(&enrollments).Error
	return enrollments, err
}

// StampCompleted sets CompletedAt once; a stamp already present stays as is.
func (r *EnrollmentRepository) StampCompleted(id uint, at time.Time) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ? AND completed_at IS NULL", id).
		Update("completed_at", at).Error
}
