package controllers

import (
	"log"

	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateMaterial appends a material to a module. The payload arrives as a
// multipart form: LINK materials carry a target url field, everything else
// needs an uploaded file or inline content.
func CreateMaterial(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can add materials!")
	}

	moduleID := courseIDLocal(c, "moduleID")
	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, course.ID, false).First(&module).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Module not found!")
	}

	reqData, ok := c.Locals("validatedMaterial").(*struct {
		Title   string
		Type    courseModels.MaterialType
		Content string
		URL     string
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	input := services.MaterialInput{
		Title:   reqData.Title,
		Type:    reqData.Type,
		Content: reqData.Content,
	}

	if reqData.Type == courseModels.MaterialLink {
		input.FileURL = reqData.URL
	} else if file, err := c.FormFile("file"); err == nil {
		url, err := utils.UploadFile(file)
		if err != nil {
			log.Printf("Error storing uploaded file: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to store uploaded file!", nil)
		}
		input.FileURL = url
	}

	material, err := services.CreateMaterial(database.Database.Db, module.ID, input)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Material created successfully!", material)
}

// DeleteMaterial removes a material and compacts its siblings. The remote
// file, if any, is deleted best effort in the background.
func DeleteMaterial(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	materialID := courseIDLocal(c, "materialID")

	course, ok := findMaterialCourse(c, materialID)
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can delete materials!")
	}

	fileURL, err := services.DeleteMaterial(database.Database.Db, materialID)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	if fileURL != "" {
		go utils.DeleteRemoteFile(fileURL)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material deleted successfully!", nil)
}

// MoveMaterial swaps a material with its neighbor within its module.
func MoveMaterial(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	materialID := courseIDLocal(c, "materialID")

	course, ok := findMaterialCourse(c, materialID)
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can reorder materials!")
	}

	var material courseModels.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Material not found!")
	}

	direction := c.Locals("validatedDirection").(services.MoveDirection)

	moved, err := services.MoveMaterial(database.Database.Db, material.ModuleID, materialID, direction)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Material moved successfully!", moved)
}

// ListMaterials lists a module's materials in order.
func ListMaterials(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !course.VisibleToStudents() && !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Course not found!")
	}

	moduleID := courseIDLocal(c, "moduleID")
	var module courseModels.Module
	if err := database.Database.Db.Where("id = ? AND course_id = ? AND is_deleted = ?", moduleID, course.ID, false).First(&module).Error; err != nil {
		return middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Module not found!")
	}

	var materials []courseModels.Material
	if err := database.Database.Db.Where("module_id = ? AND is_deleted = ?", module.ID, false).Order("order_index asc").Find(&materials).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch materials!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Materials fetched successfully!", materials)
}

// findMaterialCourse resolves a material's owning course or writes the
// NOT_FOUND response.
func findMaterialCourse(c *fiber.Ctx, materialID uint) (*courseModels.Course, bool) {
	var material courseModels.Material
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", materialID, false).First(&material).Error; err != nil {
		middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Material not found!")
		return nil, false
	}

	var module courseModels.Module
	if err := database.Database.Db.Where("id = ?", material.ModuleID).First(&module).Error; err != nil {
		middleware.JsonError(c, fiber.StatusNotFound, middleware.CodeNotFound, "Module not found!")
		return nil, false
	}

	return findCourse(c, module.CourseID)
}
