package course

import (
	"time"

	"gorm.io/gorm"
)

// Assignment belongs to a course, independent of the module/material tree.
type Assignment struct {
	gorm.Model
	CourseID    uint       `gorm:"not null;index" json:"course_id"`
	Title       string     `json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"due_date"`
	MaxScore    int        `gorm:"not null" json:"max_score"`
	IsDeleted   bool       `gorm:"default:false" json:"isDeleted"`

	// Relations
	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}
