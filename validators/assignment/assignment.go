package assignmentValidator

import (
	"strconv"
	"strings"
	"time"

	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// CourseID parses the :courseId route param.
func CourseID() fiber.Handler {
	return paramID("courseId", "courseID", "Invalid course id!")
}

// AssignmentID parses the :assignmentId route param.
func AssignmentID() fiber.Handler {
	return paramID("assignmentId", "assignmentID", "Invalid assignment id!")
}

// SubmissionID parses the :submissionId route param.
func SubmissionID() fiber.Handler {
	return paramID("submissionId", "submissionID", "Invalid submission id!")
}

func paramID(param, local, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{param: message})
		}
		c.Locals(local, id)
		return c.Next()
	}
}

// CreateAssignment validates assignment creation request
func CreateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			DueDate     *time.Time `json:"due_date"`
			MaxScore    int        `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			errors["title"] = "Assignment title is required!"
		}
		if reqData.MaxScore < 1 {
			errors["max_score"] = "Max score must be greater than 0!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// UpdateAssignment validates assignment update request
func UpdateAssignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string     `json:"title"`
			Description string     `json:"description"`
			DueDate     *time.Time `json:"due_date"`
			MaxScore    *int       `json:"max_score"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.MaxScore != nil && *reqData.MaxScore < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{"max_score": "Max score must be greater than 0!"})
		}

		c.Locals("validatedAssignmentUpdate", reqData)
		return c.Next()
	}
}

// Submit validates the multipart submission form. The answer itself is the
// content field, an uploaded file, or both; emptiness of both is refused
// downstream once the file has been looked at.
func Submit() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string
		})

		reqData.Content = c.FormValue("content")

		c.Locals("validatedSubmission", reqData)
		return c.Next()
	}
}

// Grade validates the grading request
func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Score    *int   `json:"score"`
			Feedback string `json:"feedback"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Score == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"score": "Score is required!"})
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}
