package course

import "gorm.io/gorm"

// EnrollmentStatus enum values
const (
	EnrollmentEnrolled  = "ENROLLED"
	EnrollmentCompleted = "COMPLETED"
)

// Enrollment links a student to a course. Progress is a percentage; any
// progress above zero blocks course deletion by anyone but the owner.
type Enrollment struct {
	gorm.Model
	UserID    uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"user_id"`
	CourseID  uint   `gorm:"not null;uniqueIndex:idx_enrollment_user_course" json:"course_id"`
	Status    string `gorm:"type:varchar(20);default:'ENROLLED'" json:"status"`
	Progress  int    `gorm:"default:0" json:"progress"`
	IsDeleted bool   `gorm:"default:false" json:"isDeleted"`

	// Relations
	Course Course `gorm:"foreignKey:CourseID" json:"course,omitempty"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}
