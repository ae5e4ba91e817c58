package assignmentController

import (
	"log"

	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// SubmitAssignment records the calling student's submission. Resubmitting
// replaces the previous answer and clears its graded state.
func SubmitAssignment(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	if actor.Role != models.RoleStudent {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only students can submit assignments!")
	}

	reqData, ok := c.Locals("validatedSubmission").(*struct {
		Content string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	input := services.SubmissionInput{Content: reqData.Content}

	if file, err := c.FormFile("file"); err == nil {
		url, err := utils.UploadFile(file)
		if err != nil {
			log.Printf("Error storing submission file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
		}
		input.FileURL = url
	}

	if input.Content == "" && input.FileURL == "" {
		return middleware.ServiceErrorResponse(c, courseModels.ErrPayloadRequired)
	}

	submission, err := services.UpsertSubmission(database.Database.Db, idLocal(c, "assignmentID"), actor.ID, input)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Assignment submitted successfully!", submission)
}

// ListSubmissions lists an assignment's submissions with the derived counts.
// Course owner or admin only.
func ListSubmissions(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	assignment, course, ok := findAssignmentCourse(c, idLocal(c, "assignmentID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can view submissions!")
	}

	var submissions []courseModels.Submission
	if err := database.Database.Db.
		Where("assignment_id = ? AND is_deleted = ?", assignment.ID, false).
		Order("submitted_at asc").
		Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	total, ungraded, err := services.AssignmentCounts(database.Database.Db, assignment.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"submissions": submissions,
		"total":       total,
		"ungraded":    ungraded,
	})
}

// GetMySubmission returns the calling student's own submission, if any.
func GetMySubmission(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	var submission courseModels.Submission
	if err := database.Database.Db.
		Where("assignment_id = ? AND student_id = ? AND is_deleted = ?", idLocal(c, "assignmentID"), actor.ID, false).
		First(&submission).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Submission not found!")
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", submission)
}

// GradeSubmission scores a submission. Course owner or admin only; the score
// must fall inside the assignment's 0..maxScore range.
func GradeSubmission(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	assignment, course, ok := findAssignmentCourse(c, idLocal(c, "assignmentID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can grade submissions!")
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		Score    *int   `json:"score"`
		Feedback string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	submission, err := services.GradeSubmission(database.Database.Db, assignment.ID, idLocal(c, "submissionID"), *reqData.Score, reqData.Feedback)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
