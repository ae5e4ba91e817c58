package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the calling student. Only courses that are both
// PUBLISHED and public accept enrollments.
func EnrollInCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	if actor.Role != models.RoleStudent {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only students can enroll!")
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !course.VisibleToStudents() {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	var existing courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.ID, course.ID, false).First(&existing).Error; err == nil {
		return middleware.JsonError(c, fiber.StatusConflict, middleware.CodeConflict, "Already enrolled in this course!")
	}

	enrollment := courseModels.Enrollment{
		UserID:   actor.ID,
		CourseID: course.ID,
		Status:   courseModels.EnrollmentEnrolled,
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Enrolled in course successfully!", enrollment)
}

// UpdateProgress records the student's own progress percentage; 100 marks
// the course completed.
func UpdateProgress(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", actor.ID, course.ID, false).First(&enrollment).Error; err != nil {
		return middleware.ServiceErrorResponse(c, courseModels.ErrNotEnrolled)
	}

	reqData, ok := c.Locals("validatedProgress").(*struct {
		Progress *int `json:"progress"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	enrollment.Progress = *reqData.Progress
	if enrollment.Progress >= 100 {
		enrollment.Status = courseModels.EnrollmentCompleted
	} else {
		enrollment.Status = courseModels.EnrollmentEnrolled
	}

	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress updated!", enrollment)
}

// GetUserEnrollmentsList lists the calling user's enrollments with course details.
func GetUserEnrollmentsList(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	var enrollments []courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", actor.ID, false).
		Preload("Course").
		Order("created_at desc").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
		"total":       len(enrollments),
	})
}
