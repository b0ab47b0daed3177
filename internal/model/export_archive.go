package model

// ExportArchive records one generated CSV export that was archived to object
// storage so admins can re-download earlier exports.
// swagger:model ExportArchive
type ExportArchive struct {
	BaseModel
	Report        string `gorm:"size:50;index;not null" json:"report"`
	ObjectKey     string `gorm:"size:255;not null" json:"objectKey"`
	RowCount      int    `gorm:"default:0" json:"rowCount"`
	RequestedByID uint   `gorm:"index" json:"requestedById"`
}

func (ExportArchive) TableName() string {
	return "export_archives"
}
