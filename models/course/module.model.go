package course

import "gorm.io/gorm"

// Module represents a section within a course. OrderIndex values within a
// course are always a contiguous 0..n-1 sequence.
type Module struct {
	gorm.Model
	CourseID    uint   `gorm:"not null;index" json:"course_id"`
	Title       string `json:"title"`
	Description string `gorm:"type:text" json:"description"`
	OrderIndex  int    `gorm:"not null;default:0" json:"order_index"`
	IsDeleted   bool   `gorm:"default:false" json:"isDeleted"`

	// Relations
	Materials []Material `gorm:"foreignKey:ModuleID" json:"materials,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}
