package model

import (
	"time"
)

// Enrollment is one row per online enrollment of a user into a course.
// CompletedAt is stamped the first time the classifier flips the enrollment
// to complete; it never moves backwards.
// swagger:model Enrollment
type Enrollment struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"userId"`
	CourseID    uint       `gorm:"uniqueIndex:idx_user_course_enrollment;not null" json:"courseId"`
	EnrolledAt  time.Time  `gorm:"index;not null" json:"enrolledAt"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
