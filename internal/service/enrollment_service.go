package service

import (
	"errors"
	"time"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	CourseRepo     *repository.CourseRepository
	ProgressRepo   *repository.VideoProgressRepository
	QuizRepo       *repository.QuizResultRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	courseRepo *repository.CourseRepository,
	progressRepo *repository.VideoProgressRepository,
	quizRepo *repository.QuizResultRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		CourseRepo:     courseRepo,
		ProgressRepo:   progressRepo,
		QuizRepo:       quizRepo,
	}
}

// Enroll creates the enrollment row for a published course. Enrolling in a
// course with no required content completes it immediately.
func (s *EnrollmentService) Enroll(userID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.GetByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.Status != model.CoursePublished {
		return nil, util.ErrCourseNotPublished
	}

	exists, err := s.EnrollmentRepo.Exists(userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadyEnrolled
	}

	enrollment := &model.Enrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	if err := s.RefreshCompletion(userID, courseID); err != nil {
		return nil, err
	}

	return s.EnrollmentRepo.GetByUserCourse(userID, courseID)
}

// EnrollmentView pairs an enrollment with its classified progress.
type EnrollmentView struct {
	model.Enrollment
	CourseTitle   string `json:"courseTitle"`
	TotalProgress int    `json:"totalProgress"`
	IsCompleted   bool   `json:"isCompleted"`
}

// ListForUser returns the user's enrollments newest first, each carrying its
// current progress percentage.
func (s *EnrollmentService) ListForUser(userID uint) ([]EnrollmentView, error) {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	views := make([]EnrollmentView, 0, len(enrollments))
	for _, e := range enrollments {
		course, err := s.CourseRepo.GetByID(e.CourseID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		completedVideos, passed, err := s.userCourseState(userID, e.CourseID)
		if err != nil {
			return nil, err
		}

		row := classifyEnrollment(e, model.User{}, *course, completedVideos, passed, time.Now())
		views = append(views, EnrollmentView{
			Enrollment:    e,
			CourseTitle:   course.Title,
			TotalProgress: row.TotalProgress,
			IsCompleted:   row.IsCompleted,
		})
	}
	return views, nil
}

func (s *EnrollmentService) userCourseState(userID, courseID uint) (int, map[string]struct{}, error) {
	progress, err := s.ProgressRepo.ListByUserCourse(userID, courseID)
	if err != nil {
		return 0, nil, err
	}
	completedVideos := 0
	for _, p := range progress {
		if p.Completed {
			completedVideos++
		}
	}

	results, err := s.QuizRepo.ListByUserCourse(userID, courseID)
	if err != nil {
		return 0, nil, err
	}
	passed := make(map[string]struct{})
	for _, r := range results {
		if r.Passed {
			passed[r.QuizKey] = struct{}{}
		}
	}

	return completedVideos, passed, nil
}

// RefreshCompletion re-runs the classifier for one enrollment and stamps
// CompletedAt the first time it flips complete. An existing stamp is left
// alone.
func (s *EnrollmentService) RefreshCompletion(userID, courseID uint) error {
	enrollment, err := s.EnrollmentRepo.GetByUserCourse(userID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Progress without an enrollment row is possible when an admin
			// logged the course on-site only; nothing to stamp.
			return nil
		}
		return err
	}
	if enrollment.CompletedAt != nil {
		return nil
	}

	course, err := s.CourseRepo.GetByID(courseID)
	if err != nil {
		return err
	}

	completedVideos, passed, err := s.userCourseState(userID, courseID)
	if err != nil {
		return err
	}

	now := time.Now()
	row := classifyEnrollment(*enrollment, model.User{}, *course, completedVideos, passed, now)
	if !row.IsCompleted {
		return nil
	}

	return s.EnrollmentRepo.StampCompleted(enrollment.ID, now)
}
