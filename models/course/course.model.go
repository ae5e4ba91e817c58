package course

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Status enum values for the course lifecycle
type Status string

const (
	StatusDraft         Status = "DRAFT"
	StatusPendingReview Status = "PENDING_REVIEW"
	StatusPublished     Status = "PUBLISHED"
	StatusRejected      Status = "REJECTED"
	StatusArchived      Status = "ARCHIVED"
)

// Course represents a learning course.
//
// Status and IsPublic are independent axes: students only ever see a course
// when Status is PUBLISHED and IsPublic is true.
type Course struct {
	gorm.Model
	Title       string  `json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"default:0" json:"price"`
	Duration    int64   `gorm:"default:0" json:"duration"` // duration in hours
	Status      Status  `gorm:"type:varchar(20);not null;default:'DRAFT'" json:"status"`
	IsPublic    bool    `gorm:"default:false" json:"is_public"`

	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	RejectedAt      *time.Time `json:"rejected_at"`
	SubmittedAt     *time.Time `json:"submitted_at"`
	PublishedAt     *time.Time `json:"published_at"`

	CreatorID  uint  `gorm:"not null;index" json:"creator_id"`
	TutorID    *uint `json:"tutor_id"` // tutor of record, may differ from creator
	CategoryID uint  `gorm:"index" json:"category_id"`

	Requirements  datatypes.JSON `json:"requirements"`
	Prerequisites datatypes.JSON `json:"prerequisites"`

	// Version is bumped on every lifecycle transition; stale writes lose.
	Version   int  `gorm:"not null;default:0" json:"version"`
	IsDeleted bool `gorm:"default:false" json:"isDeleted"`

	// Relations
	Modules     []Module        `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
	Assignments []Assignment    `gorm:"foreignKey:CourseID" json:"assignments,omitempty"`
	History     []StatusHistory `gorm:"foreignKey:CourseID" json:"history,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// VisibleToStudents reports whether the course shows up in the public catalog.
func (c *Course) VisibleToStudents() bool {
	return c.Status == StatusPublished && c.IsPublic && !c.IsDeleted
}
