package controllers

import (
	"errors"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"
	"academy/sequencer"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// GetCoursePlayer returns the flattened lesson order with the caller's
// Locked/Unlocked/Completed state per lesson and the overall progress
func GetCoursePlayer(c *fiber.Ctx) error {
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

	if _, enrolled := activeEnrollment(userID, courseID); !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	gate, sections, lessons, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	type playerLesson struct {
		ID        uint                  `json:"id"`
		SectionID uint                  `json:"section_id"`
		Title     string                `json:"title"`
		Duration  int                   `json:"video_duration"`
		Terminal  bool                  `json:"is_last_video_of_week"`
		State     sequencer.LessonState `json:"state"`
	}

	byID := make(map[uint]academyModels.Lesson, len(lessons))
	for _, lesson := range lessons {
		byID[lesson.ID] = lesson
	}

	ordered := make([]playerLesson, 0, len(gate.Order()))
	for _, id := range gate.Order() {
		lesson := byID[id]
		state, _ := gate.State(id)
		ordered = append(ordered, playerLesson{
			ID:        lesson.ID,
			SectionID: lesson.SectionID,
			Title:     lesson.Title,
			Duration:  lesson.VideoDuration,
			Terminal:  lesson.IsLastOfWeek,
			State:     state,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Player fetched successfully!", fiber.Map{
		"course":   course,
		"sections": sections,
		"lessons":  ordered,
		"progress": gate.Progress(),
	})
}

// OpenLesson returns a single lesson's content when the gate allows it
func OpenLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	var course academyModels.Course
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found or not published!", nil)
	}

	if _, enrolled := activeEnrollment(userID, courseID); !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	gate, _, lessons, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	accessible, err := gate.IsAccessible(lessonID)
	if err != nil {
		if errors.Is(err, sequencer.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to open lesson!", nil)
	}
	if !accessible {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Lesson is locked! Complete the previous lessons first.", nil)
	}

	var lesson academyModels.Lesson
	for _, l := range lessons {
		if l.ID == lessonID {
			lesson = l
			break
		}
	}

	prev, hasPrev, _ := gate.Previous(lessonID)
	next, hasNext, _ := gate.Next(lessonID)
	canAdvance, _ := gate.CanAdvance(lessonID)
	state, _ := gate.State(lessonID)

	response := fiber.Map{
		"lesson":      lesson,
		"embed_url":   utils.YouTubeEmbedURL(lesson.VideoURL, config.AppConfig.PublicOrigin),
		"state":       state,
		"can_advance": canAdvance,
		"progress":    gate.Progress(),
	}
	if hasPrev {
		response["previous_lesson_id"] = prev
	}
	if hasNext {
		response["next_lesson_id"] = next
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", response)
}

// Navigate moves from a lesson to its neighbor. Backward navigation is
// unconditional; forward navigation requires the current lesson complete and
// the next accessible, otherwise the caller gets a corrective message.
func Navigate(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))
	direction := c.Locals("direction").(string)

	if _, enrolled := activeEnrollment(userID, courseID); !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	gate, _, _, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	if direction == "prev" {
		prev, hasPrev, err := gate.Previous(lessonID)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
		}
		if !hasPrev {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Already at the first lesson.", fiber.Map{"lesson_id": lessonID})
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigated to previous lesson.", fiber.Map{"lesson_id": prev})
	}

	_, hasNext, err := gate.Next(lessonID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
	}
	if !hasNext {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already at the last lesson.", fiber.Map{"lesson_id": lessonID})
	}

	next, err := gate.Advance(lessonID)
	if err != nil {
		if errors.Is(err, sequencer.ErrAdvanceBlocked) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Complete the current lesson before moving to the next one!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to navigate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Navigated to next lesson.", fiber.Map{"lesson_id": next})
}
