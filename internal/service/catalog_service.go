package service

import (
	"errors"

	"campus_lms_backend/internal/model"
	"campus_lms_backend/internal/repository"
	"campus_lms_backend/internal/util"

	"gorm.io/gorm"
)

// LadderService manages the progression tiers.
type LadderService struct {
	LadderRepo *repository.LadderRepository
}

func NewLadderService(ladderRepo *repository.LadderRepository) *LadderService {
	return &LadderService{LadderRepo: ladderRepo}
}

type LadderInput struct {
	Name  string `json:"name" binding:"required"`
	Order int    `json:"order"`
	Side  string `json:"side"`
}

func (s *LadderService) Create(input LadderInput) (*model.Ladder, error) {
	ladder := &model.Ladder{Name: input.Name, Order: input.Order, Side: input.Side}
	if err := s.LadderRepo.Create(ladder); err != nil {
		return nil, err
	}
	return ladder, nil
}

func (s *LadderService) Update(id uint, input LadderInput) (*model.Ladder, error) {
	ladder, err := s.LadderRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrLadderNotFound
		}
		return nil, err
	}
	ladder.Name = input.Name
	ladder.Order = input.Order
	ladder.Side = input.Side
	if err := s.LadderRepo.Update(ladder); err != nil {
		return nil, err
	}
	return ladder, nil
}

func (s *LadderService) List() ([]model.Ladder, error) {
	return s.LadderRepo.ListOrdered()
}

func (s *LadderService) Delete(id uint) error {
	return s.LadderRepo.Delete(id)
}

// CourseGroupService manages learning paths.
type CourseGroupService struct {
	GroupRepo  *repository.CourseGroupRepository
	CourseRepo *repository.CourseRepository
}

func NewCourseGroupService(groupRepo *repository.CourseGroupRepository, courseRepo *repository.CourseRepository) *CourseGroupService {
	return &CourseGroupService{GroupRepo: groupRepo, CourseRepo: courseRepo}
}

type CourseGroupInput struct {
	Name      string `json:"name" binding:"required"`
	CourseIDs []uint `json:"courseIds"`
}

func (s *CourseGroupService) Create(input CourseGroupInput) (*model.CourseGroup, error) {
	group := &model.CourseGroup{Name: input.Name}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}
	if len(input.CourseIDs) > 0 {
		if err := s.replaceCourses(group, input.CourseIDs); err != nil {
			return nil, err
		}
	}
	return s.GroupRepo.GetByID(group.ID)
}

func (s *CourseGroupService) replaceCourses(group *model.CourseGroup, courseIDs []uint) error {
	courses := make([]model.Course, 0, len(courseIDs))
	for _, id := range courseIDs {
		course, err := s.CourseRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCourseNotFound
			}
			return err
		}
		courses = append(courses, *course)
	}
	return s.GroupRepo.ReplaceCourses(group, courses)
}

func (s *CourseGroupService) Update(id uint, input CourseGroupInput) (*model.CourseGroup, error) {
	group, err := s.GroupRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseGroupNotFound
		}
		return nil, err
	}
	group.Name = input.Name
	if err := s.GroupRepo.Update(group); err != nil {
		return nil, err
	}
	if input.CourseIDs != nil {
		if err := s.replaceCourses(group, input.CourseIDs); err != nil {
			return nil, err
		}
	}
	return s.GroupRepo.GetByID(group.ID)
}

func (s *CourseGroupService) List() ([]model.CourseGroup, error) {
	return s.GroupRepo.ListAll()
}

func (s *CourseGroupService) Delete(id uint) error {
	return s.GroupRepo.Delete(id)
}

// CampusService manages the campus list backing the report selector.
type CampusService struct {
	CampusRepo *repository.CampusRepository
}

func NewCampusService(campusRepo *repository.CampusRepository) *CampusService {
	return &CampusService{CampusRepo: campusRepo}
}

func (s *CampusService) Create(name string) (*model.Campus, error) {
	campus := &model.Campus{Name: name}
	if err := s.CampusRepo.Create(campus); err != nil {
		return nil, err
	}
	return campus, nil
}

func (s *CampusService) Update(id uint, name string) (*model.Campus, error) {
	campus, err := s.CampusRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCampusNotFound
		}
		return nil, err
	}

	campus.Name = name
	if err := s.CampusRepo.Update(campus); err != nil {
		return nil, err
	}
	return campus, nil
}

func (s *CampusService) List() ([]model.Campus, error) {
	return s.CampusRepo.ListOrdered()
}

func (s *CampusService) Delete(id uint) error {
	return s.CampusRepo.Delete(id)
}
