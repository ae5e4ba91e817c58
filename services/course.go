package services

import (
	courseModels "lms/models/course"

	"gorm.io/gorm"
)

// UpdateCourseColumns writes only the given user-editable columns, guarded by
// the version read with the course. Status and version never belong in the
// map: a lifecycle transition committed since the read bumps the version, so
// the stale write matches zero rows and fails with ErrConflict instead of
// silently reverting the transition.
func UpdateCourseColumns(db *gorm.DB, crs *courseModels.Course, updates map[string]interface{}) (*courseModels.Course, error) {
	if len(updates) == 0 {
		return crs, nil
	}

	res := db.Model(&courseModels.Course{}).
		Where("id = ? AND version = ?", crs.ID, crs.Version).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, courseModels.ErrConflict
	}

	var fresh courseModels.Course
	if err := db.First(&fresh, crs.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

// UpdateModuleInfo edits a module's title and description only. The order
// index stays with the ordering engine; a concurrent move cannot be clobbered
// by an info edit.
func UpdateModuleInfo(db *gorm.DB, courseID, moduleID uint, title, description string) (*courseModels.Module, error) {
	var module courseModels.Module
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
		return nil, courseModels.ErrNotFound
	}

	updates := map[string]interface{}{}
	if title != "" {
		updates["title"] = title
	}
	if description != "" {
		updates["description"] = description
	}
	if len(updates) == 0 {
		return &module, nil
	}

	if err := db.Model(&courseModels.Module{}).Where("id = ?", module.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	var fresh courseModels.Module
	if err := db.First(&fresh, module.ID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}
