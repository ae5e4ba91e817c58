package course

import "gorm.io/gorm"

// MaterialType enum values
type MaterialType string

const (
	MaterialPDF      MaterialType = "PDF"
	MaterialVideo    MaterialType = "VIDEO"
	MaterialAudio    MaterialType = "AUDIO"
	MaterialImage    MaterialType = "IMAGE"
	MaterialDocument MaterialType = "DOCUMENT"
	MaterialLink     MaterialType = "LINK"
)

// Valid reports whether t is one of the known material types.
func (t MaterialType) Valid() bool {
	switch t {
	case MaterialPDF, MaterialVideo, MaterialAudio, MaterialImage, MaterialDocument, MaterialLink:
		return true
	}
	return false
}

// Material is a piece of content within a module. LINK materials carry the
// target URL in FileURL; every other type needs an uploaded file or inline
// Content. OrderIndex values within a module are contiguous from 0.
type Material struct {
	gorm.Model
	ModuleID   uint         `gorm:"not null;index" json:"module_id"`
	Title      string       `json:"title"`
	Type       MaterialType `gorm:"type:varchar(10);not null" json:"type"`
	FileURL    string       `json:"file_url"`
	Content    string       `gorm:"type:text" json:"content"`
	OrderIndex int          `gorm:"not null;default:0" json:"order_index"`
	IsDeleted  bool         `gorm:"default:false" json:"isDeleted"`
}

func (Material) TableName() string {
	return "materials"
}
