package model

import (
	"time"
)

// QuizResult is one attempt row; users may attempt the same quiz many times
// and any passing attempt satisfies the requirement.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID      uint      `gorm:"index:idx_quiz_user_course;not null" json:"userId"`
	CourseID    uint      `gorm:"index:idx_quiz_user_course;not null" json:"courseId"`
	QuizKey     string    `gorm:"size:64;index;not null" json:"quizKey"`
	Score       int       `gorm:"not null" json:"score"`
	Passed      bool      `gorm:"default:false" json:"passed"`
	CompletedAt time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
