package controllers

import (
	"encoding/json"
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateCourse creates a new course in DRAFT owned by the calling tutor.
func CreateCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	if actor.Role != models.RoleTutor && actor.Role != models.RoleAdmin {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only tutors can create courses!")
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Price         float64  `json:"price"`
		Duration      int64    `json:"duration"`
		CategoryID    uint     `json:"category_id"`
		TutorID       *uint    `json:"tutor_id"`
		Requirements  []string `json:"requirements"`
		Prerequisites []string `json:"prerequisites"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := courseModels.Course{
		Title:         reqData.Title,
		Description:   reqData.Description,
		Price:         reqData.Price,
		Duration:      reqData.Duration,
		CategoryID:    reqData.CategoryID,
		TutorID:       reqData.TutorID,
		CreatorID:     actor.ID,
		Status:        courseModels.StatusDraft,
		Requirements:  toJSONList(reqData.Requirements),
		Prerequisites: toJSONList(reqData.Prerequisites),
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse updates course fields. Status is never writable here; it only
// moves through lifecycle transitions.
func UpdateCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can edit it!")
	}

	reqData, ok := c.Locals("validatedCourseUpdate").(*struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		Price         *float64 `json:"price"`
		Duration      int64    `json:"duration"`
		CategoryID    uint     `json:"category_id"`
		TutorID       *uint    `json:"tutor_id"`
		Requirements  []string `json:"requirements"`
		Prerequisites []string `json:"prerequisites"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Only provided, user-editable columns are written; status and version
	// move through lifecycle transitions alone.
	updates := map[string]interface{}{}
	if reqData.Title != "" {
		updates["title"] = reqData.Title
	}
	if reqData.Description != "" {
		updates["description"] = reqData.Description
	}
	if reqData.Price != nil {
		updates["price"] = *reqData.Price
	}
	if reqData.Duration > 0 {
		updates["duration"] = reqData.Duration
	}
	if reqData.CategoryID > 0 {
		updates["category_id"] = reqData.CategoryID
	}
	if reqData.TutorID != nil {
		updates["tutor_id"] = *reqData.TutorID
	}
	if reqData.Requirements != nil {
		updates["requirements"] = toJSONList(reqData.Requirements)
	}
	if reqData.Prerequisites != nil {
		updates["prerequisites"] = toJSONList(reqData.Prerequisites)
	}

	course, err := services.UpdateCourseColumns(database.Database.Db, course, updates)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// SetCourseVisibility toggles the isPublic axis, independent of status.
func SetCourseVisibility(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can change visibility!")
	}

	reqData, ok := c.Locals("validatedVisibility").(*struct {
		IsPublic *bool `json:"is_public"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := services.UpdateCourseColumns(database.Database.Db, course, map[string]interface{}{
		"is_public": *reqData.IsPublic,
	})
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course visibility updated!", course)
}

// DeleteCourse soft deletes a course and cascades over its whole tree.
// Owner-initiated deletes always go through; anyone else is refused while
// enrollments with progress exist.
func DeleteCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can delete it!")
	}

	if !actor.Owns(course) {
		var withProgress int64
		database.Database.Db.Model(&courseModels.Enrollment{}).
			Where("course_id = ? AND is_deleted = ? AND progress > 0", course.ID, false).
			Count(&withProgress)
		if withProgress > 0 {
			return middleware.ServiceErrorResponse(c, courseModels.ErrHasProgress)
		}
	}

	// Collect file URLs before the tree goes away.
	var materials []courseModels.Material
	database.Database.Db.
		Joins("JOIN modules ON modules.id = materials.module_id").
		Where("modules.course_id = ? AND materials.is_deleted = ? AND materials.type <> ?", course.ID, false, courseModels.MaterialLink).
		Find(&materials)

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Course{}).Where("id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Material{}).
			Where("module_id IN (?)", tx.Model(&courseModels.Module{}).Select("id").Where("course_id = ?", course.ID)).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Module{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Submission{}).
			Where("assignment_id IN (?)", tx.Model(&courseModels.Assignment{}).Select("id").Where("course_id = ?", course.ID)).
			Update("is_deleted", true).Error; err != nil {
			return err
		}
		if err := tx.Model(&courseModels.Assignment{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Enrollment{}).Where("course_id = ?", course.ID).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	// Remote file cleanup is fire-and-forget; orphans are logged, not fatal.
	for _, m := range materials {
		if m.FileURL != "" {
			go utils.DeleteRemoteFile(m.FileURL)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// GetAllCourses lists courses. Students only ever see published public
// courses; tutors see their own; admins see everything.
func GetAllCourses(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).Where("is_deleted = ?", false)
	switch actor.Role {
	case models.RoleAdmin:
		// no extra filter
	case models.RoleTutor:
		db = db.Where("creator_id = ?", actor.ID)
	default:
		db = db.Where("status = ? AND is_public = ?", courseModels.StatusPublished, true)
	}

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with its ordered module tree.
func GetCourseDetails(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !course.VisibleToStudents() && !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	var modules []courseModels.Module
	if err := database.Database.Db.
		Preload("Materials", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_deleted = ?", false).Order("order_index asc")
		}).
		Where("course_id = ? AND is_deleted = ?", course.ID, false).
		Order("order_index asc").
		Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}
	course.Modules = modules

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

func toJSONList(values []string) datatypes.JSON {
	if values == nil {
		values = []string{}
	}
	data, err := json.Marshal(values)
	if err != nil {
		log.Printf("Error marshalling list: %v", err)
		return datatypes.JSON([]byte("[]"))
	}
	return datatypes.JSON(data)
}
