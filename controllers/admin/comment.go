package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"

	"github.com/gofiber/fiber/v2"
)

// PendingComments lists comments awaiting moderation, oldest first
func PendingComments(c *fiber.Ctx) error {
	var comments []academyModels.LessonComment
	if err := database.Database.Db.
		Where("is_approved = ? AND is_deleted = ?", false, false).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
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

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending comments fetched successfully!", views)
}

// ApproveComment makes a comment visible to other students
func ApproveComment(c *fiber.Ctx) error {
	commentID := uint(c.Locals("commentID").(int))

	var comment academyModels.LessonComment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", commentID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	comment.IsApproved = true
	if err := database.Database.Db.Save(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment approved successfully!", comment)
}

// RemoveComment soft deletes a comment
func RemoveComment(c *fiber.Ctx) error {
	commentID := uint(c.Locals("commentID").(int))

	var comment academyModels.LessonComment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", commentID, false).First(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Comment not found!", nil)
	}

	comment.IsDeleted = true
	if err := database.Database.Db.Save(&comment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to remove comment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Comment removed successfully!", nil)
}
