package model

import (
	"time"
)

// VideoProgress records one user's state against one course video.
// swagger:model VideoProgress
type VideoProgress struct {
	BaseModel
	UserID           uint       `gorm:"uniqueIndex:idx_user_course_video;not null" json:"userId"`
	CourseID         uint       `gorm:"uniqueIndex:idx_user_course_video;index;not null" json:"courseId"`
	VideoID          uint       `gorm:"uniqueIndex:idx_user_course_video;not null" json:"videoId"`
	Completed        bool       `gorm:"default:false" json:"completed"`
	TimeSpentSeconds int        `gorm:"default:0" json:"timeSpentSeconds"`
	CompletedAt      *time.Time `json:"completedAt"`
}

func (VideoProgress) TableName() string {
	return "video_progress"
}
