package courseRoutes

import (
	controllers "lms/controllers/course"
	"lms/middleware"
	validators "lms/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all tutor and student facing course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Course CRUD
	courseGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCourse(), controllers.CreateCourse)
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Put("/:courseId", middleware.JWTMiddleware, validators.CourseID(), validators.UpdateCourse(), controllers.UpdateCourse)
	courseGroup.Delete("/:courseId", middleware.JWTMiddleware, validators.CourseID(), controllers.DeleteCourse)
	courseGroup.Patch("/:courseId/visibility", middleware.JWTMiddleware, validators.CourseID(), validators.Visibility(), controllers.SetCourseVisibility)

	// Lifecycle transitions
	courseGroup.Post("/:courseId/submit", middleware.JWTMiddleware, validators.CourseID(), controllers.SubmitForReview)
	courseGroup.Post("/:courseId/resubmit", middleware.JWTMiddleware, validators.CourseID(), controllers.ResubmitCourse)
	courseGroup.Post("/:courseId/archive", middleware.JWTMiddleware, validators.CourseID(), controllers.ArchiveCourse)
	courseGroup.Get("/:courseId/history", middleware.JWTMiddleware, validators.CourseID(), controllers.GetStatusHistory)

	// Module management
	courseGroup.Post("/:courseId/module", middleware.JWTMiddleware, validators.CourseID(), validators.CreateModule(), controllers.CreateModule)
	courseGroup.Get("/:courseId/modules", middleware.JWTMiddleware, validators.CourseID(), controllers.ListModules)
	courseGroup.Put("/:courseId/module/:moduleId", middleware.JWTMiddleware, validators.CourseID(), validators.ModuleID(), validators.UpdateModule(), controllers.UpdateModule)
	courseGroup.Delete("/:courseId/module/:moduleId", middleware.JWTMiddleware, validators.CourseID(), validators.ModuleID(), controllers.DeleteModule)
	courseGroup.Patch("/:courseId/module/:moduleId/move", middleware.JWTMiddleware, validators.CourseID(), validators.ModuleID(), validators.MoveDirection(), controllers.MoveModule)

	// Material management
	courseGroup.Post("/:courseId/module/:moduleId/material", middleware.JWTMiddleware, validators.CourseID(), validators.ModuleID(), validators.CreateMaterial(), controllers.CreateMaterial)
	courseGroup.Get("/:courseId/module/:moduleId/materials", middleware.JWTMiddleware, validators.CourseID(), validators.ModuleID(), controllers.ListMaterials)

	materialGroup := app.Group("/material")
	materialGroup.Delete("/:materialId", middleware.JWTMiddleware, validators.MaterialID(), controllers.DeleteMaterial)
	materialGroup.Patch("/:materialId/move", middleware.JWTMiddleware, validators.MaterialID(), validators.MoveDirection(), controllers.MoveMaterial)

	// Enrollment and progress
	courseGroup.Post("/:courseId/enroll", middleware.JWTMiddleware, validators.CourseID(), controllers.EnrollInCourse)
	courseGroup.Patch("/:courseId/progress", middleware.JWTMiddleware, validators.CourseID(), validators.Progress(), controllers.UpdateProgress)

	userGroup := app.Group("/user")
	userGroup.Get("/enrollments", middleware.JWTMiddleware, controllers.GetUserEnrollmentsList)

	// Catalog categories
	categoryGroup := app.Group("/category")
	categoryGroup.Get("/list", middleware.JWTMiddleware, controllers.ListCategories)
	categoryGroup.Post("/create", middleware.JWTMiddleware, validators.CreateCategory(), controllers.CreateCategory)
}
