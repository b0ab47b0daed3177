package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type QuizResultRepository struct {
	DB *gorm.DB
}

func NewQuizResultRepository(db *gorm.DB) *QuizResultRepository {
	return &QuizResultRepository{DB: db}
}

func (r *QuizResultRepository) Create(result *model.QuizResult) error {
	return r.DB.Create(result).Error
}

func (r *QuizResultRepository) ListByUserCourse(userID, courseID uint) ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Order("completed_at desc").
		Find(&results).Error
	return results, err
}

// ListPassed returns every passing attempt, the report fetcher's quiz query.
// Only passing rows matter to the classifier.
func (r *QuizResultRepository) ListPassed() ([]model.QuizResult, error) {
	var results []model.QuizResult
	err := r.DB.Where("passed = ?", true).Find(&results).Error
	return results, err
}
