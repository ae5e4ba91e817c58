package courseValidator

import (
	"strconv"
	"strings"

	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"

	"github.com/gofiber/fiber/v2"
)

// CourseID parses the :courseId route param.
func CourseID() fiber.Handler {
	return paramID("courseId", "courseID", "Invalid course id!")
}

// ModuleID parses the :moduleId route param.
func ModuleID() fiber.Handler {
	return paramID("moduleId", "moduleID", "Invalid module id!")
}

// MaterialID parses the :materialId route param.
func MaterialID() fiber.Handler {
	return paramID("materialId", "materialID", "Invalid material id!")
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

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string   `json:"title"`
			Description   string   `json:"description"`
			Price         float64  `json:"price"`
			Duration      int64    `json:"duration"`
			CategoryID    uint     `json:"category_id"`
			TutorID       *uint    `json:"tutor_id"`
			Requirements  []string `json:"requirements"`
			Prerequisites []string `json:"prerequisites"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if reqData.Duration < 0 {
			errors["duration"] = "Duration cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates course update request
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title         string   `json:"title"`
			Description   string   `json:"description"`
			Price         *float64 `json:"price"`
			Duration      int64    `json:"duration"`
			CategoryID    uint     `json:"category_id"`
			TutorID       *uint    `json:"tutor_id"`
			Requirements  []string `json:"requirements"`
			Prerequisites []string `json:"prerequisites"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != "" && len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price != nil && *reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// CourseList validates pagination query params, defaulting page 1 / limit 10.
func CourseList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})

		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query params!", nil)
		}

		errors := make(map[string]string)

		if reqData.Page == nil {
			page := 1
			reqData.Page = &page
		} else if *reqData.Page < 1 {
			errors["page"] = "Page must be greater than 0!"
		}

		if reqData.Limit == nil {
			limit := 10
			reqData.Limit = &limit
		} else if *reqData.Limit < 1 || *reqData.Limit > 100 {
			errors["limit"] = "Limit must be between 1 and 100!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// Visibility validates the is_public toggle request
func Visibility() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsPublic *bool `json:"is_public"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.IsPublic == nil {
			return middleware.ValidationErrorResponse(c, map[string]string{"is_public": "is_public is required!"})
		}

		c.Locals("validatedVisibility", reqData)
		return c.Next()
	}
}

// Reject validates the rejection request. The reason is optional: an admin
// may reject without one.
func Reject() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Reason string `json:"reason"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedReject", reqData)
		return c.Next()
	}
}

// Progress validates a progress update request
func Progress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Progress *int `json:"progress"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Progress == nil || *reqData.Progress < 0 || *reqData.Progress > 100 {
			return middleware.ValidationErrorResponse(c, map[string]string{"progress": "Progress must be between 0 and 100!"})
		}

		c.Locals("validatedProgress", reqData)
		return c.Next()
	}
}

// CreateCategory validates category creation request
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Name)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"name": "Category name is required!"})
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// CreateModule validates module creation request
func CreateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{"title": "Module title is required!"})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// UpdateModule validates module update request
func UpdateModule() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedModuleUpdate", reqData)
		return c.Next()
	}
}

// MoveDirection validates the reorder request. Only the two adjacent moves
// exist; absolute positions are never accepted from clients.
func MoveDirection() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Direction string `json:"direction"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		direction := services.MoveDirection(reqData.Direction)
		if direction != services.MoveUp && direction != services.MoveDown {
			return middleware.ValidationErrorResponse(c, map[string]string{"direction": "Direction must be up or down!"})
		}

		c.Locals("validatedDirection", direction)
		return c.Next()
	}
}

// CreateMaterial validates the multipart material form. LINK materials must
// carry a url; for the rest the file or inline content arrives alongside.
func CreateMaterial() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title   string
			Type    courseModels.MaterialType
			Content string
			URL     string
		})

		reqData.Title = c.FormValue("title")
		reqData.Type = courseModels.MaterialType(c.FormValue("type"))
		reqData.Content = c.FormValue("content")
		reqData.URL = c.FormValue("url")

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			errors["title"] = "Material title is required!"
		}
		if !reqData.Type.Valid() {
			errors["type"] = "Material type must be PDF, VIDEO, AUDIO, IMAGE, DOCUMENT or LINK!"
		}
		if reqData.Type == courseModels.MaterialLink && len(strings.TrimSpace(reqData.URL)) == 0 {
			errors["url"] = "LINK materials require a url!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedMaterial", reqData)
		return c.Next()
	}
}
