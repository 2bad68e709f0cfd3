package controllers

import (
	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"
	"academy/sequencer"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses for the catalog
func GetAllCourses(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request!", nil)
	}

	page := *reqData.Page
	limit := *reqData.Limit
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&academyModels.Course{}).
		Where("is_deleted = ? AND is_published = ?", false, true)

	var total int64
	db.Count(&total)

	var courses []academyModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	response := map[string]interface{}{
		"courses": courses,
		"pagination": map[string]interface{}{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", response)
}

// GetCourseDetails returns a published course with its published sections,
// lessons and assignments, plus the caller's gate state per lesson
func GetCourseDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	gate, sections, lessons, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	sectionIDs := make([]uint, len(sections))
	for i, section := range sections {
		sectionIDs[i] = section.ID
	}
	assignments, err := loadPublishedAssignments(sectionIDs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	_, enrolled := activeEnrollment(userID, courseID)

	type lessonView struct {
		academyModels.Lesson
		State    sequencer.LessonState `json:"state"`
		EmbedURL string                `json:"embed_url,omitempty"`
	}

	lessonViews := make([]lessonView, len(lessons))
	for i, lesson := range lessons {
		state, _ := gate.State(lesson.ID)
		view := lessonView{Lesson: lesson, State: state}
		// Video references only leave the server for lessons the caller may open
		if enrolled && state != sequencer.StateLocked {
			view.EmbedURL = utils.YouTubeEmbedURL(lesson.VideoURL, config.AppConfig.PublicOrigin)
		} else {
			view.VideoURL = ""
		}
		lessonViews[i] = view
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":      course,
		"sections":    sections,
		"lessons":     lessonViews,
		"assignments": assignments,
		"is_enrolled": enrolled,
		"progress":    gate.Progress(),
	})
}
