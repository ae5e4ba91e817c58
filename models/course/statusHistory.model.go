package course

import (
	"lms/models"

	"gorm.io/gorm"
)

// StatusHistory is the audit log for course lifecycle transitions. One row
// is written per applied transition, in the same transaction.
type StatusHistory struct {
	gorm.Model
	CourseID   uint        `gorm:"not null;index" json:"course_id"`
	FromStatus Status      `gorm:"type:varchar(20);not null" json:"from_status"`
	ToStatus   Status      `gorm:"type:varchar(20);not null" json:"to_status"`
	Event      Event       `gorm:"type:varchar(30);not null" json:"event"`
	ActorID    uint        `gorm:"not null" json:"actor_id"`
	ActorRole  models.Role `gorm:"type:varchar(10);not null" json:"actor_role"`
	Comments   string      `gorm:"type:text" json:"comments"`
}

func (StatusHistory) TableName() string {
	return "course_status_history"
}
