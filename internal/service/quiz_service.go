package service

import (
	"errors"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type QuizService struct {
	QuizRepo       *repository.QuizResultRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentsSvc *EnrollmentService
}

func NewQuizService(
	quizRepo *repository.QuizResultRepository,
	courseRepo *repository.CourseRepository,
	enrollmentsSvc *EnrollmentService,
) *QuizService {
	return &QuizService{
		QuizRepo:       quizRepo,
		CourseRepo:     courseRepo,
		EnrollmentsSvc: enrollmentsSvc,
	}
}

type QuizSubmissionInput struct {
	QuizKey string `json:"quizKey" binding:"required"`
	Score   int    `json:"score" binding:"min=0,max=100"`
}

// SubmitResult appends one attempt row. Passed is derived from the course's
// pass mark; a passing attempt re-checks the enrollment completion.
func (s *QuizService) SubmitResult(userID, courseID uint, input QuizSubmissionInput) (*model.QuizResult, error) {
	course, err := s.CourseRepo.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	required := false
	for _, q := range course.Quizzes {
		if q.QuizKey == input.QuizKey {
			required = true
			break
		}
	}
	if !required {
		return nil, util.ErrQuizNotInCourse
	}

	result := &model.QuizResult{
		UserID:      userID,
		CourseID:    courseID,
		QuizKey:     input.QuizKey,
		Score:       input.Score,
		Passed:      input.Score >= course.PassMark,
		CompletedAt: time.Now(),
	}

	if err := s.QuizRepo.Create(result); err != nil {
		return nil, err
	}

	if result.Passed {
		if err := s.EnrollmentsSvc.RefreshCompletion(userID, courseID); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (s *QuizService) ListForCourse(userID, courseID uint) ([]model.QuizResult, error) {
	return s.QuizRepo.ListByUserCourse(userID, courseID)
}
