package adminController

import (
	"log"

	"academy/database"
	"academy/middleware"
	academyModels "academy/models/academy"

	"github.com/gofiber/fiber/v2"
)

// SectionList returns a course's sections in order, drafts included
func SectionList(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var sections []academyModels.CourseSection
	if err := database.Database.Db.
		Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("section_order ASC").
		Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", sections)
}

// CreateSection appends a section; when no order is given it goes last
func CreateSection(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		SectionOrder *int   `json:"section_order"`
		IsPublished  bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section := academyModels.CourseSection{
		CourseID:    courseID,
		Title:       reqData.Title,
		Description: reqData.Description,
		IsPublished: reqData.IsPublished,
	}

	if reqData.SectionOrder != nil {
		section.SectionOrder = *reqData.SectionOrder
	} else {
		var maxOrder int
		database.Database.Db.Model(&academyModels.CourseSection{}).
			Where("course_id = ? AND is_deleted = ?", courseID, false).
			Select("COALESCE(MAX(section_order), 0)").Scan(&maxOrder)
		section.SectionOrder = maxOrder + 1
	}

	if err := database.Database.Db.Create(&section).Error; err != nil {
		log.Printf("Error creating section: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section created successfully!", section)
}

// UpdateSection edits a section's fields
func UpdateSection(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var section academyModels.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedSection").(*struct {
		Title        string `json:"title"`
		Description  string `json:"description"`
		SectionOrder *int   `json:"section_order"`
		IsPublished  bool   `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	section.Title = reqData.Title
	section.Description = reqData.Description
	section.IsPublished = reqData.IsPublished
	if reqData.SectionOrder != nil {
		section.SectionOrder = *reqData.SectionOrder
	}

	if err := database.Database.Db.Save(&section).Error; err != nil {
		log.Printf("Error updating section %d: %v", sectionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section updated successfully!", section)
}

// ReorderSections applies a full ordering in one transaction
func ReorderSections(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedReorder").(*struct {
		OrderedIDs []uint `json:"ordered_ids"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if len(reqData.OrderedIDs) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Ordered ids are required!", nil)
	}

	tx := database.Database.Db.Begin()
	for position, id := range reqData.OrderedIDs {
		result := tx.Model(&academyModels.CourseSection{}).
			Where("id = ? AND course_id = ? AND is_deleted = ?", id, courseID, false).
			Update("section_order", position+1)
		if result.Error != nil || result.RowsAffected == 0 {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid section list for this course!", nil)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder sections!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections reordered successfully!", nil)
}

// DeleteSection soft deletes a section
func DeleteSection(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var section academyModels.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	section.IsDeleted = true
	section.IsPublished = false
	if err := database.Database.Db.Save(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete section!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section deleted successfully!", nil)
}
