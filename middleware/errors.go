package middleware

import (
	"errors"
	"log"

	courseModels "lms/models/course"

	"github.com/gofiber/fiber/v2"
)

// Stable error codes surfaced at the request boundary.
const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeAuthorization     = "AUTHORIZATION_ERROR"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeNotFound          = "NOT_FOUND"
	CodeConflict          = "CONFLICT"
	CodeInternal          = "INTERNAL_ERROR"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

// JsonError writes the error envelope with a stable code.
func JsonError(c *fiber.Ctx, statusCode int, code string, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  false,
		"code":    code,
		"message": message,
		"data":    nil,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errs map[string]string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status":  false,
		"code":    CodeValidation,
		"message": "Validation failed!",
		"data":    errs,
	})
}

// ServiceErrorResponse maps service sentinel errors onto HTTP statuses and
// stable codes. Anything unrecognized is a 500.
func ServiceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, courseModels.ErrNotFound):
		return JsonError(c, fiber.StatusNotFound, CodeNotFound, err.Error())
	case errors.Is(err, courseModels.ErrNotAllowed):
		return JsonError(c, fiber.StatusForbidden, CodeAuthorization, err.Error())
	case errors.Is(err, courseModels.ErrInvalidTransition):
		return JsonError(c, fiber.StatusBadRequest, CodeInvalidTransition, err.Error())
	case errors.Is(err, courseModels.ErrConflict),
		errors.Is(err, courseModels.ErrHasProgress):
		return JsonError(c, fiber.StatusConflict, CodeConflict, err.Error())
	case errors.Is(err, courseModels.ErrPayloadRequired),
		errors.Is(err, courseModels.ErrLinkURLRequired),
		errors.Is(err, courseModels.ErrInvalidType),
		errors.Is(err, courseModels.ErrScoreOutOfRange),
		errors.Is(err, courseModels.ErrNotEnrolled):
		return JsonError(c, fiber.StatusUnprocessableEntity, CodeValidation, err.Error())
	}
	log.Printf("Unhandled service error: %v", err)
	return JsonError(c, fiber.StatusInternalServerError, CodeInternal, "Something went wrong!")
}
