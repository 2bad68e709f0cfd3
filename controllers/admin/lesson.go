package adminController

import (
	"log"

	"academy/config"
	"academy/database"
	"academy/middleware"
	academyModels "academy/models/academy"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// LessonList returns a section's lessons in order, drafts included
func LessonList(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var section academyModels.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	var lessons []academyModels.Lesson
	if err := database.Database.Db.
		Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Order("lesson_order ASC").
		Find(&lessons).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons fetched successfully!", lessons)
}

// applyVideoURL normalizes the reference and backfills a missing title from
// the oEmbed lookup. The lookup is best effort; a failure never blocks the
// save.
func applyVideoURL(lesson *academyModels.Lesson, rawURL string) {
	lesson.VideoURL = rawURL
	if rawURL == "" {
		return
	}
	info, err := utils.FetchVideoInfo(rawURL)
	if err != nil {
		log.Printf("oEmbed lookup failed for %s: %v", rawURL, err)
		return
	}
	if lesson.Title == "" {
		lesson.Title = info.Title
	}
}

// CreateLesson adds a lesson to a section
func CreateLesson(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var section academyModels.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		VideoURL       string `json:"video_url"`
		VideoDuration  int    `json:"video_duration"`
		LessonOrder    *int   `json:"lesson_order"`
		IsPublished    bool   `json:"is_published"`
		IsLastOfWeek   bool   `json:"is_last_video_of_week"`
		AssignmentText string `json:"assignment_text"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson := academyModels.Lesson{
		SectionID:      sectionID,
		Title:          reqData.Title,
		Description:    reqData.Description,
		VideoDuration:  reqData.VideoDuration,
		IsPublished:    reqData.IsPublished,
		IsLastOfWeek:   reqData.IsLastOfWeek,
		AssignmentText: reqData.AssignmentText,
	}
	applyVideoURL(&lesson, reqData.VideoURL)

	if reqData.LessonOrder != nil {
		lesson.LessonOrder = *reqData.LessonOrder
	} else {
		var maxOrder int
		database.Database.Db.Model(&academyModels.Lesson{}).
			Where("section_id = ? AND is_deleted = ?", sectionID, false).
			Select("COALESCE(MAX(lesson_order), 0)").Scan(&maxOrder)
		lesson.LessonOrder = maxOrder + 1
	}

	if err := database.Database.Db.Create(&lesson).Error; err != nil {
		log.Printf("Error creating lesson: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson created successfully!", fiber.Map{
		"lesson":    lesson,
		"embed_url": utils.YouTubeEmbedURL(lesson.VideoURL, config.AppConfig.PublicOrigin),
	})
}

// UpdateLesson edits a lesson
func UpdateLesson(c *fiber.Ctx) error {
	lessonID := uint(c.Locals("lessonID").(int))

	var lesson academyModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	reqData, ok := c.Locals("validatedLesson").(*struct {
		Title          string `json:"title"`
		Description    string `json:"description"`
		VideoURL       string `json:"video_url"`
		VideoDuration  int    `json:"video_duration"`
		LessonOrder    *int   `json:"lesson_order"`
		IsPublished    bool   `json:"is_published"`
		IsLastOfWeek   bool   `json:"is_last_video_of_week"`
		AssignmentText string `json:"assignment_text"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lesson.Title = reqData.Title
	lesson.Description = reqData.Description
	lesson.VideoDuration = reqData.VideoDuration
	lesson.IsPublished = reqData.IsPublished
	lesson.IsLastOfWeek = reqData.IsLastOfWeek
	lesson.AssignmentText = reqData.AssignmentText
	if reqData.LessonOrder != nil {
		lesson.LessonOrder = *reqData.LessonOrder
	}
	if reqData.VideoURL != lesson.VideoURL {
		applyVideoURL(&lesson, reqData.VideoURL)
	}

	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		log.Printf("Error updating lesson %d: %v", lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully!", fiber.Map{
		"lesson":    lesson,
		"embed_url": utils.YouTubeEmbedURL(lesson.VideoURL, config.AppConfig.PublicOrigin),
	})
}

// ReorderLessons applies a full ordering within a section in one
// transaction
func ReorderLessons(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

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
		result := tx.Model(&academyModels.Lesson{}).
			Where("id = ? AND section_id = ? AND is_deleted = ?", id, sectionID, false).
			Update("lesson_order", position+1)
		if result.Error != nil || result.RowsAffected == 0 {
			tx.Rollback()
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson list for this section!", nil)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reorder lessons!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons reordered successfully!", nil)
}

// DeleteLesson soft deletes a lesson
func DeleteLesson(c *fiber.Ctx) error {
	lessonID := uint(c.Locals("lessonID").(int))

	var lesson academyModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson.IsDeleted = true
	lesson.IsPublished = false
	if err := database.Database.Db.Save(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete lesson!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully!", nil)
}
