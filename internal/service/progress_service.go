package service

import (
	"errors"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo   *repository.VideoProgressRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentsSvc *EnrollmentService
}

func NewProgressService(
	progressRepo *repository.VideoProgressRepository,
	courseRepo *repository.CourseRepository,
	enrollmentsSvc *EnrollmentService,
) *ProgressService {
	return &ProgressService{
		ProgressRepo:   progressRepo,
		CourseRepo:     courseRepo,
		EnrollmentsSvc: enrollmentsSvc,
	}
}

type VideoProgressInput struct {
	Completed        bool `json:"completed"`
	TimeSpentSeconds int  `json:"timeSpentSeconds" binding:"omitempty,min=0"`
}

// RecordVideo upserts the per-video row for the calling user and then
// re-checks the enrollment so the completion stamp lands as soon as the last
// required video finishes.
func (s *ProgressService) RecordVideo(userID, courseID, videoID uint, input VideoProgressInput) (*model.VideoProgress, error) {
	course, err := s.CourseRepo.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	found := false
	for _, v := range course.Videos {
		if v.ID == videoID {
			found = true
			break
		}
	}
	if !found {
		return nil, util.ErrVideoNotInCourse
	}

	progress, err := s.ProgressRepo.Upsert(userID, courseID, videoID, input.Completed, input.TimeSpentSeconds)
	if err != nil {
		return nil, err
	}

	if input.Completed {
		if err := s.EnrollmentsSvc.RefreshCompletion(userID, courseID); err != nil {
			return nil, err
		}
	}

	return progress, nil
}

func (s *ProgressService) ListForCourse(userID, courseID uint) ([]model.VideoProgress, error) {
	return s.ProgressRepo.ListByUserCourse(userID, courseID)
}
