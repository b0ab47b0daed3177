package model

import (
	"time"
)

type UserRole string

const (
	Student    UserRole = "student"
	Admin      UserRole = "admin"
	SuperAdmin UserRole = "superadmin"
)

// swagger:model User
type User struct {
	BaseModel
	Name     string   `gorm:"size:100;not null" json:"name"`
	Email    string   `gorm:"size:100;unique;not null" json:"email"`
	Password string   `gorm:"size:100;not null" json:"-"`
	Role     UserRole `gorm:"type:enum('student','admin','superadmin');default:'student'" json:"role"`
	Campus   string   `gorm:"size:100;index" json:"campus"`
	Language string   `gorm:"size:10;default:'en'" json:"language"`
	Phone    string   `gorm:"size:30" json:"phone"`
	LadderID *uint    `gorm:"index" json:"ladderId"`
	Ladder   *Ladder  `json:"ladder,omitempty"`
	// CanViewAllCampuses widens report scope beyond the user's own campus.
	// Superadmins have it implicitly; see Scope().
	CanViewAllCampuses bool      `gorm:"default:false" json:"canViewAllCampuses"`
	Disabled           bool      `gorm:"default:false" json:"disabled"`
	LastLogin          time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastLogin"`
	LastSeen           time.Time `gorm:"default:CURRENT_TIMESTAMP(3)" json:"lastSeen"`
}

func (User) TableName() string {
	return "users"
}

// Scope resolves the report visibility for this user as an explicit value
// instead of an ambient flag.
func (u *User) Scope() Scope {
	return Scope{
		CanViewAllCampuses: u.CanViewAllCampuses || u.Role == SuperAdmin,
		OwnCampus:          u.Campus,
	}
}
