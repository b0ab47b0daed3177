package model

import (
	"time"
)

// OnsiteCompletion is an admin-entered log row asserting a user finished a
// course outside the video/quiz pipeline. User and course display fields are
// denormalized at write time so the log stays readable even if the source
// records later change or disappear. Rows are append-only except for the
// admin bulk delete.
// swagger:model OnsiteCompletion
type OnsiteCompletion struct {
	UUIDBase
	UserID         uint      `gorm:"index:idx_onsite_user_course;not null" json:"userId"`
	CourseID       uint      `gorm:"index:idx_onsite_user_course;not null" json:"courseId"`
	UserName       string    `gorm:"size:100" json:"userName"`
	UserCampus     string    `gorm:"size:100;index" json:"userCampus"`
	UserEmail      string    `gorm:"size:100" json:"userEmail"`
	UserPhone      string    `gorm:"size:30" json:"userPhone"`
	UserLadderName string    `gorm:"size:100" json:"userLadderName"`
	CourseTitle    string    `gorm:"size:255" json:"courseTitle"`
	CompletedAt    time.Time `gorm:"index:idx_onsite_completed_at,sort:desc;not null" json:"completedAt"`
	CreatedByID    uint      `gorm:"index" json:"createdById"`
}

func (OnsiteCompletion) TableName() string {
	return "onsite_completions"
}
