package services

import (
	"time"

	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// ApplyTransition fires one lifecycle event against a course as a single
// transaction. The status update is guarded by the course version read at
// the start: a concurrent transition bumps the version, the stale write
// matches zero rows and the caller gets ErrConflict instead of a silent
// overwrite. The audit history row is written in the same transaction.
func ApplyTransition(db *gorm.DB, actor courseModels.Actor, courseID uint, event courseModels.Event, comments string) (*courseModels.Course, error) {
	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		return nil, courseModels.ErrNotFound
	}

	next, err := courseModels.NextStatus(crs.Status, event)
	if err != nil {
		return nil, err
	}
	if !courseModels.CanTransition(actor, &crs, event) {
		return nil, courseModels.ErrNotAllowed
	}

	prev := crs.Status
	now := time.Now()
	updates := map[string]interface{}{
		"status":  next,
		"version": crs.Version + 1,
	}
	switch event {
	case courseModels.EventSubmitForReview:
		updates["submitted_at"] = now
	case courseModels.EventPublish:
		updates["published_at"] = now
	case courseModels.EventReject:
		// Only status and rejection metadata change; the content tree is untouched.
		updates["rejection_reason"] = comments
		updates["rejected_at"] = now
	case courseModels.EventResubmit:
		updates["rejection_reason"] = ""
		updates["rejected_at"] = nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&courseModels.Course{}).
			Where("id = ? AND version = ?", crs.ID, crs.Version).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return courseModels.ErrConflict
		}

		history := courseModels.StatusHistory{
			CourseID:   crs.ID,
			FromStatus: prev,
			ToStatus:   next,
			Event:      event,
			ActorID:    actor.ID,
			ActorRole:  actor.Role,
			Comments:   comments,
		}
		return tx.Create(&history).Error
	})
	if err != nil {
		return nil, err
	}

	// Reload into a fresh struct: scanning a NULL column (rejected_at after a
	// resubmit) leaves an existing pointer field untouched on the old one.
	var fresh courseModels.Course
	if err := db.First(&fresh, crs.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// StatusHistoryList returns the transition audit log for a course, newest first.
func StatusHistoryList(db *gorm.DB, courseID uint) ([]courseModels.StatusHistory, error) {
	var history []courseModels.StatusHistory
	err := db.Where("course_id = ?", courseID).Order("created_at desc").Find(&history).Error
	return history, err
}

// PendingReviewCount is the pull-based replacement for the old "pending
// courses updated" client event: admins poll this count.
func PendingReviewCount(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&courseModels.Course{}).
		Where("status = ? AND is_deleted = ?", courseModels.StatusPendingReview, false).
		Count(&count).Error
	return count, err
}
