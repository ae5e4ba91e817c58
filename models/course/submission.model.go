package course

import (
	"time"

	"gorm.io/gorm"
)

// Submission is a student's answer to an assignment. One row per
// (assignment, student); resubmitting overwrites it.
//
// A resubmission clears IsGraded and GradedAt but keeps the previous score
// and feedback: a set Score with a nil GradedAt is a stale grade awaiting
// regrade.
type Submission struct {
	gorm.Model
	AssignmentID uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"assignment_id"`
	StudentID    uint       `gorm:"not null;uniqueIndex:idx_submission_assignment_student" json:"student_id"`
	Content      string     `gorm:"type:text" json:"content"`
	FileURL      string     `json:"file_url"`
	Score        *int       `json:"score"`
	Feedback     string     `gorm:"type:text" json:"feedback"`
	IsGraded     bool       `gorm:"default:false" json:"is_graded"`
	SubmittedAt  time.Time  `gorm:"not null" json:"submitted_at"`
	GradedAt     *time.Time `json:"graded_at"`
	IsDeleted    bool       `gorm:"default:false" json:"isDeleted"`
}

func (Submission) TableName() string {
	return "submissions"
}
