package model

// CourseGroup is an admin-curated bag of courses ("learning path") treated as
// one unit for reporting.
// swagger:model CourseGroup
type CourseGroup struct {
	BaseModel
	Name    string   `gorm:"size:100;not null" json:"name"`
	Courses []Course `gorm:"many2many:course_group_courses" json:"courses,omitempty"`
}

func (CourseGroup) TableName() string {
	return "course_groups"
}
