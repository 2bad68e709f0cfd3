package controllers

import (
	"log"
	"strings"

	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"

	"github.com/gofiber/fiber/v2"
)

// GetLessonComments lists approved comments on a lesson, newest first.
// The caller's own unapproved comments are included so they can see
// their pending posts.
func GetLessonComments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	lessonID := uint(c.Locals("lessonID").(int))

	gate, _, _, err := buildGate(userID, courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	// A lesson outside this course's order is stale client state
	if _, err := gate.IsAccessible(lessonID); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found! Refresh the course and try again.", nil)
	}

	var comments []academyModels.LessonComment
	err = database.Database.Db.
		Where("lesson_id = ? AND is_deleted = ? AND (is_approved = ? OR user_id = ?)", lessonID, false, true, userID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch comments!", nil)
	}

	userIDs := make([]uint, 0, len(comments))
	for _, comment := range comments {
		userIDs = append(userIDs, comment.UserID)
	}

	nameByID := make(map[uint]string)
	if len(userIDs) > 0 {
		var users []models.User
		if err := database.Database.Db.Select("id", "name").Where("id IN ?", userIDs).Find(&users).Error; err == nil {
			for _, user := range users {
				nameByID[user.ID] = user.Name
			}
		}
	}

	type commentView struct {
		academyModels.LessonComment
		AuthorName string `json:"author_name"`
	}

	views := make([]commentView, 0, len(comments))
	for _, comment := range comments {
		views = append(views, commentView{LessonComment: comment, AuthorName: nameByID[comment.UserID]})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comments fetched successfully!", views)
}

// PostLessonComment adds a comment; it stays hidden until a moderator
// approves it
func PostLessonComment(c *fiber.Ctx) error {
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

	body, ok := c.Locals("validatedComment").(*struct {
		Content string `json:"content"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	content := strings.TrimSpace(body.Content)
	if content == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Comment cannot be empty!", nil)
	}

	comment := academyModels.LessonComment{
		UserID:   userID,
		LessonID: lessonID,
		Content:  content,
	}

	if err := database.Database.Db.Create(&comment).Error; err != nil {
		log.Printf("Error creating comment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to post comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment posted! It will be visible after moderation.", comment)
}
