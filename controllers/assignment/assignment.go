package assignmentController

import (
	"time"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// currentActor loads the authenticated user set by the JWT middleware. On
// failure the response has already been written and ok is false.
func currentActor(c *fiber.Ctx) (courseModels.Actor, *models.User, bool) {
	userId, idOk := c.Locals("userId").(uint)
	if !idOk {
		middleware.JsonError(c, fiber.StatusUnauthorized, middleware.CodeAuthorization, "Unauthorized!")
		return courseModels.Actor{}, nil, false
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		middleware.JsonError(c, fiber.StatusUnauthorized, middleware.CodeAuthorization, "User not found!")
		return courseModels.Actor{}, nil, false
	}

	return courseModels.Actor{ID: user.ID, Role: user.Role}, &user, true
}

// findAssignmentCourse resolves an assignment and its owning course or writes
// the NOT_FOUND response.
func findAssignmentCourse(c *fiber.Ctx, assignmentID uint) (*courseModels.Assignment, *courseModels.Course, bool) {
	var assignment courseModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Assignment not found!")
		return nil, nil, false
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignment.CourseID, false).First(&course).Error; err != nil {
		middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		return nil, nil, false
	}

	return &assignment, &course, true
}

func idLocal(c *fiber.Ctx, key string) uint {
	return uint(c.Locals(key).(int))
}

// CreateAssignment adds an assignment to a course. Owner or admin.
func CreateAssignment(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", idLocal(c, "courseID"), false).First(&course).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	if !actor.CanManage(&course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can add assignments!")
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		MaxScore    int        `json:"max_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	assignment := courseModels.Assignment{
		CourseID:    course.ID,
		Title:       reqData.Title,
		Description: reqData.Description,
		DueDate:     reqData.DueDate,
		MaxScore:    reqData.MaxScore,
	}

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment created successfully!", assignment)
}

// UpdateAssignment edits an assignment's fields. Owner or admin.
func UpdateAssignment(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	assignment, course, ok := findAssignmentCourse(c, idLocal(c, "assignmentID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can edit assignments!")
	}

	reqData, ok := c.Locals("validatedAssignmentUpdate").(*struct {
		Title       string     `json:"title"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		MaxScore    *int       `json:"max_score"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != "" {
		assignment.Title = reqData.Title
	}
	if reqData.Description != "" {
		assignment.Description = reqData.Description
	}
	if reqData.DueDate != nil {
		assignment.DueDate = reqData.DueDate
	}
	if reqData.MaxScore != nil {
		assignment.MaxScore = *reqData.MaxScore
	}

	if err := database.Database.Db.Save(assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment soft deletes an assignment together with its submissions.
func DeleteAssignment(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	assignment, course, ok := findAssignmentCourse(c, idLocal(c, "assignmentID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can delete assignments!")
	}

	err := database.Database.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&courseModels.Submission{}).Where("assignment_id = ?", assignment.ID).Update("is_deleted", true).Error; err != nil {
			return err
		}
		return tx.Model(&courseModels.Assignment{}).Where("id = ?", assignment.ID).Update("is_deleted", true).Error
	})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// ListAssignments lists a course's assignments; owners and admins also get
// the derived submission counts per assignment.
func ListAssignments(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	var course courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", idLocal(c, "courseID"), false).First(&course).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	if !course.VisibleToStudents() && !actor.CanManage(&course) {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	var assignments []courseModels.Assignment
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("created_at asc").Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	if !actor.CanManage(&course) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
	}

	type AssignmentWithCounts struct {
		courseModels.Assignment
		SubmissionCount int64 `json:"submission_count"`
		UngradedCount   int64 `json:"ungraded_count"`
	}

	withCounts := make([]AssignmentWithCounts, len(assignments))
	for i, a := range assignments {
		total, ungraded, err := services.AssignmentCounts(database.Database.Db, a.ID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
		}
		withCounts[i] = AssignmentWithCounts{
			Assignment:      a,
			SubmissionCount: total,
			UngradedCount:   ungraded,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", withCounts)
}
