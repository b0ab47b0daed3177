package service

import (
	"errors"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	LadderRepo *repository.LadderRepository
}

func NewCourseService(courseRepo *repository.CourseRepository, ladderRepo *repository.LadderRepository) *CourseService {
	return &CourseService{CourseRepo: courseRepo, LadderRepo: ladderRepo}
}

type CourseVideoInput struct {
	Title           string `json:"title" binding:"required"`
	DurationSeconds int    `json:"durationSeconds"`
}

type CourseQuizInput struct {
	QuizKey string `json:"quizKey" binding:"required"`
	Title   string `json:"title"`
}

type CourseInput struct {
	Title     string             `json:"title" binding:"required"`
	Language  string             `json:"language"`
	Status    model.CourseStatus `json:"status"`
	PassMark  int                `json:"passMark"`
	Videos    []CourseVideoInput `json:"videos"`
	Quizzes   []CourseQuizInput  `json:"quizzes"`
	LadderIDs []uint             `json:"ladderIds"`
}

func (s *CourseService) Create(input CourseInput) (*model.Course, error) {
	course := &model.Course{
		Title:    input.Title,
		Language: input.Language,
		Status:   input.Status,
		PassMark: input.PassMark,
	}
	if course.Language == "" {
		course.Language = "en"
	}
	if course.Status == "" {
		course.Status = model.CourseDraft
	}
	if course.PassMark <= 0 {
		course.PassMark = 70
	}

	// Video order is the list order.
	for i, v := range input.Videos {
		course.Videos = append(course.Videos, model.CourseVideo{
			Title:           v.Title,
			Position:        i,
			DurationSeconds: v.DurationSeconds,
		})
	}
	for _, q := range input.Quizzes {
		course.Quizzes = append(course.Quizzes, model.CourseQuiz{QuizKey: q.QuizKey, Title: q.Title})
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	if len(input.LadderIDs) > 0 {
		if err := s.setLadders(course, input.LadderIDs); err != nil {
			return nil, err
		}
	}

	return s.CourseRepo.GetByID(course.ID)
}

func (s *CourseService) setLadders(course *model.Course, ladderIDs []uint) error {
	ladders := make([]model.Ladder, 0, len(ladderIDs))
	for _, id := range ladderIDs {
		ladder, err := s.LadderRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrLadderNotFound
			}
			return err
		}
		ladders = append(ladders, *ladder)
	}
	return s.CourseRepo.ReplaceLadders(course, ladders)
}

func (s *CourseService) Update(id uint, input CourseInput) (*model.Course, error) {
	course, err := s.CourseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	course.Title = input.Title
	if input.Language != "" {
		course.Language = input.Language
	}
	if input.Status != "" {
		course.Status = input.Status
	}
	if input.PassMark > 0 {
		course.PassMark = input.PassMark
	}

	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	if input.LadderIDs != nil {
		if err := s.setLadders(course, input.LadderIDs); err != nil {
			return nil, err
		}
	}

	return s.CourseRepo.GetByID(course.ID)
}

func (s *CourseService) GetByID(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// ListPublished is the student-facing catalog; drafts stay invisible.
func (s *CourseService) ListPublished() ([]model.Course, error) {
	return s.CourseRepo.ListPublished()
}

func (s *CourseService) ListAll() ([]model.Course, error) {
	return s.CourseRepo.ListAll()
}

func (s *CourseService) Delete(id uint) error {
	return s.CourseRepo.Delete(id)
}
