package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) GetByID(id uint) (*model.Course, error) {
	var course model.Course
	err := r.DB.
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Quizzes").
		Preload("Ladders").
		First(&course, id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

// ListPublished returns published courses with their required content, the
// student-facing catalog and the report fetcher's course query.
func (r *CourseRepository) ListPublished() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Quizzes").
		Preload("Ladders").
		Where("status = ?", model.CoursePublished).
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) ListAll() ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Preload("Videos", func(db *gorm.DB) *gorm.DB { return db.Order("position asc") }).
		Preload("Quizzes").
		Preload("Ladders").
		Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) Update(course *model.Course) error {
	return r.DB.Session(&gorm.Session{FullSaveAssociations: true}).Save(course).Error
}

// ReplaceLadders sets the full ladder membership of a course.
func (r *CourseRepository) ReplaceLadders(course *model.Course, ladders []model.Ladder) error {
	return r.DB.Model(course).Association("Ladders").Replace(ladders)
}

func (r *CourseRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Course{}, id).Error
}
