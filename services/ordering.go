package services

import (
	"errors"

	courseModels "lms/models/course"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// MoveDirection for adjacent reordering. Clients only ever say up or down;
// order indices themselves are never accepted from a request.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// forUpdate adds a row lock on databases that support it. SQLite serializes
// writers on its own and rejects FOR UPDATE.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// CreateModule appends a module at the end of the course's sequence. The
// parent course row is locked so concurrent appends cannot compute the same
// index.
func CreateModule(db *gorm.DB, courseID uint, title, description string) (*courseModels.Module, error) {
	var module courseModels.Module
	err := db.Transaction(func(tx *gorm.DB) error {
		var crs courseModels.Course
		if err := forUpdate(tx).Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
			return courseModels.ErrNotFound
		}

		var count int64
		if err := tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Count(&count).Error; err != nil {
			return err
		}

		module = courseModels.Module{
			CourseID:    courseID,
			Title:       title,
			Description: description,
			OrderIndex:  int(count),
		}
		return tx.Create(&module).Error
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// DeleteModule soft deletes a module with all its materials and closes the
// gap in the sibling order indices. It returns the file URLs of removed
// materials so the caller can fire the remote storage cleanup.
func DeleteModule(db *gorm.DB, courseID, moduleID uint) ([]string, error) {
	var fileURLs []string
	err := db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := forUpdate(tx).Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
			return courseModels.ErrNotFound
		}

		var materials []courseModels.Material
		if err := tx.Where("module_id = ? AND is_deleted = ?", module.ID, false).Find(&materials).Error; err != nil {
			return err
		}
		for _, m := range materials {
			if m.Type != courseModels.MaterialLink && m.FileURL != "" {
				fileURLs = append(fileURLs, m.FileURL)
			}
		}

		if err := tx.Model(&courseModels.Module{}).Where("id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Material{}).Where("module_id = ?", module.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}

		// Siblings above the removed index shift down by one so the indices
		// stay a contiguous 0..n-1 run.
		return tx.Model(&courseModels.Module{}).
			Where("course_id = ? AND is_deleted = ? AND order_index > ?", courseID, false, module.OrderIndex).
			UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
	})
	if err != nil {
		return nil, err
	}
	return fileURLs, nil
}

// MoveModule swaps a module with its neighbor above or below. Moving the
// first module up or the last one down changes nothing and is not an error.
func MoveModule(db *gorm.DB, courseID, moduleID uint, dir MoveDirection) (*courseModels.Module, error) {
	var module courseModels.Module
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, courseID, false).First(&module).Error; err != nil {
			return courseModels.ErrNotFound
		}

		neighborIndex := module.OrderIndex - 1
		if dir == MoveDown {
			neighborIndex = module.OrderIndex + 1
		}
		if neighborIndex < 0 {
			return nil // already first
		}

		var neighbor courseModels.Module
		if err := forUpdate(tx).Where("course_id = ? AND order_index = ? AND is_deleted = ?", courseID, neighborIndex, false).First(&neighbor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil // already last
			}
			return err
		}

		if err := tx.Model(&courseModels.Module{}).Where("id = ?", neighbor.ID).UpdateColumn("order_index", module.OrderIndex).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Module{}).Where("id = ?", module.ID).UpdateColumn("order_index", neighborIndex).Error; err != nil {
			return err
		}
		module.OrderIndex = neighborIndex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// MaterialInput carries the payload for a new material. FileURL holds either
// the uploaded file location or, for LINK materials, the link target.
type MaterialInput struct {
	Title   string
	Type    courseModels.MaterialType
	FileURL string
	Content string
}

// CreateMaterial appends a material at the end of its module's sequence.
// Non-LINK materials must carry a file or inline content.
func CreateMaterial(db *gorm.DB, moduleID uint, in MaterialInput) (*courseModels.Material, error) {
	if !in.Type.Valid() {
		return nil, courseModels.ErrInvalidType
	}
	if in.Type == courseModels.MaterialLink {
		if in.FileURL == "" {
			return nil, courseModels.ErrLinkURLRequired
		}
	} else if in.FileURL == "" && in.Content == "" {
		return nil, courseModels.ErrPayloadRequired
	}

	var material courseModels.Material
	err := db.Transaction(func(tx *gorm.DB) error {
		var module courseModels.Module
		if err := forUpdate(tx).Where("id = ? AND is_deleted = ?", moduleID, false).First(&module).Error; err != nil {
			return courseModels.ErrNotFound
		}

		var count int64
		if err := tx.Model(&courseModels.Material{}).
			Where("module_id = ? AND is_deleted = ?", moduleID, false).
			Count(&count).Error; err != nil {
			return err
		}

		material = courseModels.Material{
			ModuleID:   moduleID,
			Title:      in.Title,
			Type:       in.Type,
			FileURL:    in.FileURL,
			Content:    in.Content,
			OrderIndex: int(count),
		}
		return tx.Create(&material).Error
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// DeleteMaterial soft deletes a material and compacts its siblings. The
// returned file URL is empty when there is no remote file to clean up.
func DeleteMaterial(db *gorm.DB, materialID uint) (string, error) {
	var fileURL string
	err := db.Transaction(func(tx *gorm.DB) error {
		var material courseModels.Material
		if err := forUpdate(tx).Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
			return courseModels.ErrNotFound
		}
		if material.Type != courseModels.MaterialLink {
			fileURL = material.FileURL
		}

		if err := tx.Model(&courseModels.Material{}).Where("id = ?", material.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}

		return tx.Model(&courseModels.Material{}).
			Where("module_id = ? AND is_deleted = ? AND order_index > ?", material.ModuleID, false, material.OrderIndex).
			UpdateColumn("order_index", gorm.Expr("order_index - 1")).Error
	})
	if err != nil {
		return "", err
	}
	return fileURL, nil
}

// MoveMaterial swaps a material with its neighbor within the module, with the
// same boundary no-op behavior as MoveModule.
func MoveMaterial(db *gorm.DB, moduleID, materialID uint, dir MoveDirection) (*courseModels.Material, error) {
	var material courseModels.Material
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ? AND module_id = ? AND is_deleted = ?", materialID, moduleID, false).First(&material).Error; err != nil {
			return courseModels.ErrNotFound
		}

		neighborIndex := material.OrderIndex - 1
		if dir == MoveDown {
			neighborIndex = material.OrderIndex + 1
		}
		if neighborIndex < 0 {
			return nil
		}

		var neighbor courseModels.Material
		if err := forUpdate(tx).Where("module_id = ? AND order_index = ? AND is_deleted = ?", moduleID, neighborIndex, false).First(&neighbor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Model(&courseModels.Material{}).Where("id = ?", neighbor.ID).UpdateColumn("order_index", material.OrderIndex).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Material{}).Where("id = ?", material.ID).UpdateColumn("order_index", neighborIndex).Error; err != nil {
			return err
		}
		material.OrderIndex = neighborIndex
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &material, nil
}
