package services

import (
	"errors"
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// SubmissionInput carries a student's answer payload.
type SubmissionInput struct {
	Content string
	FileURL string
}

// UpsertSubmission records a student's submission for an assignment. A
// student has at most one submission row per assignment: resubmitting
// overwrites content, file and submission time and clears the graded state,
// since a new submission always needs fresh grading. The previous score and
// feedback stay on the row until the tutor regrades.
func UpsertSubmission(db *gorm.DB, assignmentID, studentID uint, in SubmissionInput) (*courseModels.Submission, error) {
	var assignment courseModels.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return nil, courseModels.ErrNotFound
	}

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", studentID, assignment.CourseID, false).First(&enrollment).Error; err != nil {
		return nil, courseModels.ErrNotEnrolled
	}

	var submission courseModels.Submission
	err := db.Transaction(func(tx *gorm.DB) error {
		err := forUpdate(tx).
			Where("assignment_id = ? AND student_id = ? AND is_deleted = ?", assignmentID, studentID, false).
			First(&submission).Error
		switch {
		case err == nil:
			return tx.Model(&submission).Updates(map[string]interface{}{
				"content":      in.Content,
				"file_url":     in.FileURL,
				"submitted_at": time.Now(),
				"is_graded":    false,
				"graded_at":    nil,
			}).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			submission = courseModels.Submission{
				AssignmentID: assignmentID,
				StudentID:    studentID,
				Content:      in.Content,
				FileURL:      in.FileURL,
				SubmittedAt:  time.Now(),
			}
			return tx.Create(&submission).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}

	// Reload into a fresh struct: scanning the now-NULL graded_at would leave
	// a previously set pointer field untouched on the old one.
	var fresh courseModels.Submission
	if err := db.First(&fresh, submission.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// GradeSubmission scores a submission against its assignment's max score.
// Regrading an already graded submission simply overwrites score, feedback
// and graded time; no history of prior grades is kept.
func GradeSubmission(db *gorm.DB, assignmentID, submissionID uint, score int, feedback string) (*courseModels.Submission, error) {
	var assignment courseModels.Assignment
	if err := db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return nil, courseModels.ErrNotFound
	}

	var submission courseModels.Submission
	if err := db.Where("id = ? AND assignment_id = ? AND is_deleted = ?", submissionID, assignmentID, false).First(&submission).Error; err != nil {
		return nil, courseModels.ErrNotFound
	}

	if score < 0 || score > assignment.MaxScore {
		return nil, courseModels.ErrScoreOutOfRange
	}

	now := time.Now()
	if err := db.Model(&submission).Updates(map[string]interface{}{
		"score":     score,
		"feedback":  feedback,
		"is_graded": true,
		"graded_at": now,
	}).Error; err != nil {
		return nil, err
	}

	if err := db.First(&submission, submission.ID).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// AssignmentCounts returns the derived submission totals for an assignment.
// Both values are recomputed from the submission rows on every call so they
// cannot drift from the stored data.
func AssignmentCounts(db *gorm.DB, assignmentID uint) (total int64, ungraded int64, err error) {
	if err = db.Model(&courseModels.Submission{}).
		Where("assignment_id = ? AND is_deleted = ?", assignmentID, false).
		Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = db.Model(&courseModels.Submission{}).
		Where("assignment_id = ? AND is_deleted = ? AND is_graded = ?", assignmentID, false, false).
		Count(&ungraded).Error; err != nil {
		return 0, 0, err
	}
	return total, ungraded, nil
}
