package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
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

// findCourse loads a live course or writes the NOT_FOUND response.
func findCourse(c *fiber.Ctx, courseID uint) (*courseModels.Course, bool) {
	var crs courseModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&crs).Error; err != nil {
		middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
		return nil, false
	}
	return &crs, true
}

// courseIDLocal reads the course id a validator stashed in Locals.
func courseIDLocal(c *fiber.Ctx, key string) uint {
	return uint(c.Locals(key).(int))
}
