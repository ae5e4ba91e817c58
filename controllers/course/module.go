package controllers

import (
	"lms/database"
	"lms/middleware"
	courseModels "lms/models/course"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateModule appends a new module to a course. The order index is computed
// by the ordering engine, never taken from the request.
func CreateModule(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can add modules!")
	}

	reqData, ok := c.Locals("validatedModule").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := services.CreateModule(database.Database.Db, course.ID, reqData.Title, reqData.Description)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

// UpdateModule updates a module's title and description only; ordering moves
// through the move endpoint.
func UpdateModule(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can edit modules!")
	}

	reqData, ok := c.Locals("validatedModuleUpdate").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, err := services.UpdateModuleInfo(database.Database.Db, course.ID, courseIDLocal(c, "moduleID"), reqData.Title, reqData.Description)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

// DeleteModule removes a module and its materials, compacting the sibling
// order indices. Remote files are cleaned up best effort afterwards.
func DeleteModule(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can delete modules!")
	}

	fileURLs, err := services.DeleteModule(database.Database.Db, course.ID, courseIDLocal(c, "moduleID"))
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	for _, url := range fileURLs {
		go utils.DeleteRemoteFile(url)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// MoveModule swaps a module with its neighbor; moving past either end of the
// list leaves everything unchanged.
func MoveModule(c *fiber.Ctx) error {
	actor, _, ok := currentActor(c)
	if !ok {
		return nil
	}

	course, ok := findCourse(c, courseIDLocal(c, "courseID"))
	if !ok {
		return nil
	}

	if !actor.CanManage(course) {
		return middleware.JsonError(c, fiber.StatusForbidden, middleware.CodeAuthorization, "Only the course owner can reorder modules!")
	}

	direction := c.Locals("validatedDirection").(services.MoveDirection)

	module, err := services.MoveModule(database.Database.Db, course.ID, courseIDLocal(c, "moduleID"), direction)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module moved successfully!", module)
}

// ListModules lists a course's modules in order with their material counts.
func ListModules(c *fiber.Ctx) error {
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

	var modules []courseModels.Module
	if err := database.Database.Db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("order_index asc").Find(&modules).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	type ModuleWithCount struct {
		courseModels.Module
		MaterialCount int64 `json:"material_count"`
	}

	modulesWithCount := make([]ModuleWithCount, len(modules))
	for i, mod := range modules {
		var count int64
		database.Database.Db.Model(&courseModels.Material{}).Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&count)
		modulesWithCount[i] = ModuleWithCount{
			Module:        mod,
			MaterialCount: count,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", modulesWithCount)
}
