package controllers

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// CreateCategory adds a catalog category. Admin only.
func CreateCategory(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	if !actor.IsAdmin() {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Access denied! Admin only.")
	}

	reqData, ok := c.Locals("validatedCategory").(*struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := database.Database.Db.Where("name = ? AND is_deleted = ?", reqData.Name, false).First(&models.Category{}).Error; err == nil {
		return middleware.JsonError(c, fiber.StatusConflict, middleware.CodeConflict, "Category already exists!")
	}

	category := models.Category{
		Name:        reqData.Name,
		Description: reqData.Description,
	}

	if err := database.Database.Db.Create(&category).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create category!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Category created successfully!", category)
}

// ListCategories returns the catalog categories.
func ListCategories(c *fiber.Ctx) error {
	if _, _, ok := currentActor(c); !ok {
		return nil
	}

	var categories []models.Category
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("name asc").Find(&categories).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch categories!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Categories fetched successfully!", categories)
}
