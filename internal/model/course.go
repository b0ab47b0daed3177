package model

type CourseStatus string

const (
	CourseDraft     CourseStatus = "draft"
	CoursePublished CourseStatus = "published"
)

// Course carries its required content inline: the ordered video list and the
// required quiz set together define what "completed" means for it.
// swagger:model Course
type Course struct {
	BaseModel
	Title    string       `gorm:"size:255;not null" json:"title"`
	Language string       `gorm:"size:10;default:'en';index" json:"language"`
	Status   CourseStatus `gorm:"type:enum('draft','published');default:'draft';index" json:"status"`
	// PassMark is the minimum quiz score (percent) that counts as passed.
	PassMark int           `gorm:"default:70" json:"passMark"`
	Videos   []CourseVideo `gorm:"constraint:OnDelete:CASCADE" json:"videos"`
	Quizzes  []CourseQuiz  `gorm:"constraint:OnDelete:CASCADE" json:"quizzes"`
	Ladders  []Ladder      `gorm:"many2many:course_ladders" json:"ladders,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// swagger:model CourseVideo
type CourseVideo struct {
	BaseModel
	CourseID        uint   `gorm:"index;not null" json:"courseId"`
	Title           string `gorm:"size:255;not null" json:"title"`
	Position        int    `gorm:"default:0" json:"position"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds"`
}

func (CourseVideo) TableName() string {
	return "course_videos"
}

// swagger:model CourseQuiz
type CourseQuiz struct {
	BaseModel
	CourseID uint   `gorm:"index;not null" json:"courseId"`
	QuizKey  string `gorm:"size:64;not null" json:"quizKey"`
	Title    string `gorm:"size:255" json:"title"`
}

func (CourseQuiz) TableName() string {
	return "course_quizzes"
}
