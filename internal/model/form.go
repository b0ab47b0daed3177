package model

type FormFieldKind string

const (
	FieldText     FormFieldKind = "text"
	FieldTextarea FormFieldKind = "textarea"
	FieldSelect   FormFieldKind = "select"
	FieldCheckbox FormFieldKind = "checkbox"
	FieldDate     FormFieldKind = "date"
)

// swagger:model Form
type Form struct {
	BaseModel
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	Published   bool        `gorm:"default:false;index" json:"published"`
	CreatedByID uint        `gorm:"index" json:"createdById"`
	Fields      []FormField `gorm:"constraint:OnDelete:CASCADE" json:"fields"`
}

func (Form) TableName() string {
	return "forms"
}

// swagger:model FormField
type FormField struct {
	BaseModel
	FormID   uint          `gorm:"index;not null" json:"formId"`
	Label    string        `gorm:"size:255;not null" json:"label"`
	Kind     FormFieldKind `gorm:"type:enum('text','textarea','select','checkbox','date');default:'text'" json:"kind"`
	Required bool          `gorm:"default:false" json:"required"`
	Position int           `gorm:"default:0" json:"position"`
	// Options holds the choice list for select/checkbox fields.
	Options []string `gorm:"serializer:json" json:"options"`
}

func (FormField) TableName() string {
	return "form_fields"
}

// swagger:model FormSubmission
type FormSubmission struct {
	BaseModel
	FormID uint `gorm:"index;not null" json:"formId"`
	UserID uint `gorm:"index;not null" json:"userId"`
	// Answers maps field id to the submitted value(s).
	Answers map[uint]string `gorm:"serializer:json" json:"answers"`
}

func (FormSubmission) TableName() string {
	return "form_submissions"
}
