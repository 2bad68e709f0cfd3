package adminController

import (
	"log"

	"academy/database"
	"academy/middleware"
	academyModels "academy/models/academy"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// CourseList returns all courses including unpublished drafts
func CourseList(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 20
	if reqData.Page != nil && *reqData.Page > 0 {
		page = *reqData.Page
	}
	if reqData.Limit != nil && *reqData.Limit > 0 && *reqData.Limit <= 100 {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	var total int64
	var courses []academyModels.Course
	query := database.Database.Db.Model(&academyModels.Course{}).Where("is_deleted = ?", false)
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	if err := query.Order("created_at DESC").Offset(offset).Limit(limit).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"total":   total,
		"page":    page,
		"limit":   limit,
	})
}

// CreateCourse adds a draft course; the thumbnail is an optional multipart
// upload
func CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course := academyModels.Course{
		Title:       reqData.Title,
		Description: reqData.Description,
		Price:       reqData.Price,
		IsFree:      reqData.IsFree,
		CreatedBy:   userID,
	}

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUploadedFile(thumb, "thumbnails")
		if err != nil {
			log.Printf("Error storing thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed! Please try again.", nil)
		}
		course.ThumbnailURL = path
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		if course.ThumbnailURL != "" {
			utils.RemoveFile(course.ThumbnailURL)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course created successfully!", course)
}

// UpdateCourse edits title, description and pricing; a new thumbnail
// replaces the old blob
func UpdateCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	reqData, ok := c.Locals("validatedCourse").(*struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		IsFree      bool   `json:"is_free"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course.Title = reqData.Title
	course.Description = reqData.Description
	course.Price = reqData.Price
	course.IsFree = reqData.IsFree

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		path, err := utils.SaveUploadedFile(thumb, "thumbnails")
		if err != nil {
			log.Printf("Error storing thumbnail: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed! Please try again.", nil)
		}
		if course.ThumbnailURL != "" {
			utils.RemoveFile(course.ThumbnailURL)
		}
		course.ThumbnailURL = path
	}

	if err := database.Database.Db.Save(&course).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// SetCoursePublished flips the publish flag
func SetCoursePublished(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	reqData, ok := c.Locals("validatedPublish").(*struct {
		IsPublished bool `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsPublished = reqData.IsPublished
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	message := "Course unpublished successfully!"
	if course.IsPublished {
		message = "Course published successfully!"
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, course)
}

// DeleteCourse soft deletes a course; its sections and lessons stay in
// place but become unreachable through the catalog
func DeleteCourse(c *fiber.Ctx) error {
	courseID := uint(c.Locals("courseID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	course.IsDeleted = true
	course.IsPublished = false
	if err := database.Database.Db.Save(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}
