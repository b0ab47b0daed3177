package model

// Ladder is a membership progression tier. Completion is defined over the
// courses tagged to it that match a user's language.
// swagger:model Ladder
type Ladder struct {
	BaseModel
	Name  string `gorm:"size:100;not null" json:"name"`
	Order int    `gorm:"column:display_order;default:0" json:"order"`
	Side  string `gorm:"size:50" json:"side"`
}

func (Ladder) TableName() string {
	return "ladders"
}
