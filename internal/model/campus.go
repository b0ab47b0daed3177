package model

// swagger:model Campus
type Campus struct {
	BaseModel
	Name string `gorm:"size:100;unique;not null" json:"name"`
}

func (Campus) TableName() string {
	return "campuses"
}
