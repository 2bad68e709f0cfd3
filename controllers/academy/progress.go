package controllers

import (
	"time"

	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// MarkLessonComplete records a completion for the caller. Terminal lessons
// additionally require a stored submission for the section's assignment
// (authored or virtual). The write is an upsert against the (user, lesson)
// unique index, so repeating the call never duplicates rows.
func MarkLessonComplete(c *fiber.Ctx) error {
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

	var lesson academyModels.Lesson
	if err := database.Database.Db.Where("id = ? AND is_deleted = ? AND is_published = ?", lessonID, false, true).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
	}

	gate, _, _, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	// A lesson outside this course's order is stale client state
	if _, err := gate.IsAccessible(lessonID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
	}

	// Terminal lessons are gated on the section assignment
	if lesson.IsLastOfWeek {
		assignment, exists := sectionAssignment(lesson.SectionID)

		submitted := false
		if exists {
			var count int64
			database.Database.Db.Model(&academyModels.AssignmentSubmission{}).
				Where("assignment_id = ? AND user_id = ?", assignment.ID, userID).Count(&count)
			submitted = count > 0
		}

		if !submitted {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You must submit the assignment before marking this lesson as complete!", nil)
		}
	}

	completion := academyModels.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now(),
	}

	// Atomic per (user, lesson): the unique index plus ON CONFLICT makes a
	// repeated mark a no-op rather than an error
	if err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoNothing: true,
	}).Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}

	// Derived state is recomputed from confirmed rows only
	gate, _, _, err = buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", fiber.Map{
		"lesson_id": lessonID,
		"progress":  gate.Progress(),
		"completed": gate.CompletedCount(),
		"total":     len(gate.Order()),
	})
}

// UnmarkLessonComplete removes the completion record. Idempotent: unmarking
// an already-incomplete lesson succeeds as a no-op.
func UnmarkLessonComplete(c *fiber.Ctx) error {
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

	if _, enrolled := activeEnrollment(userID, courseID); !enrolled {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please enroll in this course first!", nil)
	}

	gate, _, _, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	// A lesson outside this course's order is stale client state
	if _, err := gate.IsAccessible(lessonID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
	}

	if err := database.Database.Db.Unscoped().
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Delete(&academyModels.LessonProgress{}).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to unmark lesson!", nil)
	}

	gate, _, _, err = buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson unmarked!", fiber.Map{
		"lesson_id": lessonID,
		"progress":  gate.Progress(),
		"completed": gate.CompletedCount(),
		"total":     len(gate.Order()),
	})
}

// GetCourseProgress returns the caller's completed lessons and percentage
func GetCourseProgress(c *fiber.Ctx) error {
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

	gate, _, _, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedIDs := make([]uint, 0, gate.CompletedCount())
	for _, id := range gate.Order() {
		if gate.IsCompleted(id) {
			completedIDs = append(completedIDs, id)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"completed_lesson_ids": completedIDs,
		"completed":            gate.CompletedCount(),
		"total":                len(gate.Order()),
		"progress":             gate.Progress(),
	})
}
