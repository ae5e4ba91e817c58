package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up the admin review queue routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course")

	adminGroup.Get("/pending", middleware.JWTMiddleware, controllers.AdminListPendingCourses)
	adminGroup.Get("/pending/count", middleware.JWTMiddleware, controllers.AdminPendingCount)
	adminGroup.Put("/:courseId/publish", middleware.JWTMiddleware, validators.CourseID(), controllers.PublishCourse)
	adminGroup.Put("/:courseId/reject", middleware.JWTMiddleware, validators.CourseID(), validators.Reject(), controllers.RejectCourse)
}
