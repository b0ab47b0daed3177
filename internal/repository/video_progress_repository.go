package repository

import (
	"errors"
	"time"

	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type VideoProgressRepository struct {
	DB *gorm.DB
}

func NewVideoProgressRepository(db *gorm.DB) *VideoProgressRepository {
	return &VideoProgressRepository{DB: db}
}

// Upsert creates or updates the per-video row. Marking complete stamps
// CompletedAt; time spent only ever accumulates.
func (r *VideoProgressRepository) Upsert(userID, courseID, videoID uint, completed bool, addedSeconds int) (*model.VideoProgress, error) {
	tx := r.DB.Begin()
	defer func() {
		if rec := recover(); rec != nil {
			tx.Rollback()
		}
	}()

	var existing model.VideoProgress
	err := tx.Where("user_id = ? AND course_id = ? AND video_id = ?", userID, courseID, videoID).
		First(&existing).Error

	now := time.Now()

	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return nil, err
		}
		existing = model.VideoProgress{
			UserID:           userID,
			CourseID:         courseID,
			VideoID:          videoID,
			Completed:        completed,
			TimeSpentSeconds: addedSeconds,
		}
		if completed {
			existing.CompletedAt = &now
		}
		err = tx.Create(&existing).Error
	} else {
		if completed && !existing.Completed {
			existing.Completed = true
			existing.CompletedAt = &now
		}
		existing.TimeSpentSeconds += addedSeconds
		err = tx.Save(&existing).Error
	}

	if err != nil {
		tx.Rollback()
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *VideoProgressRepository) ListByUserCourse(userID, courseID uint) ([]model.VideoProgress, error) {
	var progress []model.VideoProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&progress).Error
	return progress, err
}

// ListCompleted returns every completed-video row, the report fetcher's
// progress query.
func (r *VideoProgressRepository) ListCompleted() ([]model.VideoProgress, error) {
	var progress []model.VideoProgress
	err := r.DB.Where("completed = ?", true).Find(&progress).Error
	return progress, err
}
