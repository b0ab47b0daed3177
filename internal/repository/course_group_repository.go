package repository

import (
	"campus_lms_backend/internal/model"

	"gorm.io/gorm"
)

type CourseGroupRepository struct {
	DB *gorm.DB
}

func NewCourseGroupRepository(db *gorm.DB) *CourseGroupRepository {
	return &CourseGroupRepository{DB: db}
}

func (r *CourseGroupRepository) Create(group *model.CourseGroup) error {
	return r.DB.Create(group).Error
}

func (r *CourseGroupRepository) GetByID(id uint) (*model.CourseGroup, error) {
	var group model.CourseGroup
	err := r.DB.Preload("Courses").First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *CourseGroupRepository) ListAll() ([]model.CourseGroup, error) {
	var groups []model.CourseGroup
	err := r.DB.Preload("Courses").Order("name asc").Find(&groups).Error
	return groups, err
}

func (r *CourseGroupRepository) Update(group *model.CourseGroup) error {
	return r.DB.Save(group).Error
}

// ReplaceCourses sets the full membership of a group.
func (r *CourseGroupRepository) ReplaceCourses(group *model.CourseGroup, courses []model.Course) error {
	return r.DB.Model(group).Association("Courses").Replace(courses)
}

func (r *CourseGroupRepository) Delete(id uint) error {
	return r.DB.Delete(&model.CourseGroup{}, id).Error
}
