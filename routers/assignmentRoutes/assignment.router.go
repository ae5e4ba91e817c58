package assignmentRoutes

import (
	controllers "lms/controllers/assignment"
	"lms/middleware"
	validators "lms/validators/assignment"

	"github.com/gofiber/fiber/v2"
)

// SetupAssignmentRoutes sets up assignment and grading routes
func SetupAssignmentRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	courseGroup.Post("/:courseId/assignment", middleware.JWTMiddleware, validators.CourseID(), validators.CreateAssignment(), controllers.CreateAssignment)
	courseGroup.Get("/:courseId/assignments", middleware.JWTMiddleware, validators.CourseID(), controllers.ListAssignments)

	assignmentGroup := app.Group("/assignment")

	assignmentGroup.Put("/:assignmentId", middleware.JWTMiddleware, validators.AssignmentID(), validators.UpdateAssignment(), controllers.UpdateAssignment)
	assignmentGroup.Delete("/:assignmentId", middleware.JWTMiddleware, validators.AssignmentID(), controllers.DeleteAssignment)

	// Submissions and grading
	assignmentGroup.Post("/:assignmentId/submit", middleware.JWTMiddleware, validators.AssignmentID(), validators.Submit(), controllers.SubmitAssignment)
	assignmentGroup.Get("/:assignmentId/submissions", middleware.JWTMiddleware, validators.AssignmentID(), controllers.ListSubmissions)
	assignmentGroup.Get("/:assignmentId/submission/me", middleware.JWTMiddleware, validators.AssignmentID(), controllers.GetMySubmission)
	assignmentGroup.Post("/:assignmentId/submission/:submissionId/grade", middleware.JWTMiddleware, validators.AssignmentID(), validators.SubmissionID(), validators.Grade(), controllers.GradeSubmission)
}
