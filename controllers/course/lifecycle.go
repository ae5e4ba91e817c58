package controllers

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

// SubmitForReview moves a DRAFT course into PENDING_REVIEW. Owner only; the
// creator can request review but never publish.
func SubmitForReview(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, err := services.ApplyTransition(database.Database.Db, actor, courseIDLocal(c, "courseID"), courseModels.EventSubmitForReview, "")
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	notifyCreator(course, func(creator *models.User) {
		utils.SendCourseSubmittedEmail(creator.Email, creator.Name, course.Title)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course submitted for review!", course)
}

// PublishCourse publishes a course. Admin only, from DRAFT or PENDING_REVIEW.
func PublishCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, err := services.ApplyTransition(database.Database.Db, actor, courseIDLocal(c, "courseID"), courseModels.EventPublish, "")
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	notifyCreator(course, func(creator *models.User) {
		utils.SendCoursePublishedEmail(creator.Email, creator.Name, course.Title)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course published successfully!", course)
}

// RejectCourse rejects a pending course with an optional reason. Admin only.
// The module/material tree is left exactly as submitted so the creator can
// fix and resubmit without losing content.
func RejectCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	reqData, ok := c.Locals("validatedReject").(*struct {
		Reason string `json:"reason"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, err := services.ApplyTransition(database.Database.Db, actor, courseIDLocal(c, "courseID"), courseModels.EventReject, reqData.Reason)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	notifyCreator(course, func(creator *models.User) {
		utils.SendCourseRejectedEmail(creator.Email, creator.Name, course.Title, course.RejectionReason)
	})

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course rejected.", course)
}

// ResubmitCourse returns a REJECTED course to DRAFT for editing. Owner only.
func ResubmitCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, err := services.ApplyTransition(database.Database.Db, actor, courseIDLocal(c, "courseID"), courseModels.EventResubmit, "")
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course moved back to draft.", course)
}

// ArchiveCourse retires a published course. Owner or admin.
func ArchiveCourse(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, err := services.ApplyTransition(database.Database.Db, actor, courseIDLocal(c, "courseID"), courseModels.EventArchive, "")
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course archived.", course)
}

// GetStatusHistory returns the course's transition audit log.
func GetStatusHistory(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Access denied!")
	}

	history, err := services.StatusHistoryList(database.Database.Db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "History fetched successfully!", history)
}

// AdminListPendingCourses lists courses waiting for review, oldest first.
func AdminListPendingCourses(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}
	if !actor.IsAdmin() {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Access denied! Admin only.")
	}

	var courses []courseModels.Course
	if err := database.Database.Db.
		Where("status = ? AND is_deleted = ?", courseModels.StatusPendingReview, false).
		Order("submitted_at asc").
		Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending courses fetched successfully!", courses)
}

// AdminPendingCount returns the number of courses waiting for review. The
// admin UI polls this instead of listening for client-side events.
func AdminPendingCount(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}
	if !actor.IsAdmin() {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Access denied! Admin only.")
	}

	count, err := services.PendingReviewCount(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending count!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending count fetched successfully!", fiber.Map{
		"pending": count,
	})
}

// notifyCreator loads the course creator and hands them to the email
// trigger. Lost notifications are logged, never surfaced.
func notifyCreator(course *courseModels.Course, send func(creator *models.User)) {
	var creator models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", course.CreatorID, false).First(&creator).Error; err != nil {
		log.Printf("Could not load creator %d for notification: %v", course.CreatorID, err)
		return
	}
	send(&creator)
}
