package controllers

import (
	"log"
	"time"

	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// resolveAssignment finds the assignment a submission belongs to. When the
// section has no authored assignment, a virtual one is synthesized from the
// lesson's embedded instructions. The (section_id, title) unique index plus
// ON CONFLICT DO NOTHING lets two concurrent first submissions collapse
// onto one row; the loser re-reads the winner's row.
func resolveAssignment(lesson *academyModels.Lesson) (*academyModels.Assignment, error) {
	if assignment, exists := sectionAssignment(lesson.SectionID); exists {
		return assignment, nil
	}

	instructions := lesson.AssignmentText
	if instructions == "" {
		instructions = lesson.Description
	}

	virtual := academyModels.Assignment{
		SectionID:    lesson.SectionID,
		Title:        academyModels.VirtualAssignmentTitle,
		Description:  instructions,
		Instructions: instructions,
		IsPublished:  true,
		IsVirtual:    true,
	}

	if err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "section_id"}, {Name: "title"}},
		DoNothing: true,
	}).Create(&virtual).Error; err != nil {
		return nil, err
	}

	var assignment academyModels.Assignment
	err := database.Database.Db.
		Where("section_id = ? AND title = ?", lesson.SectionID, academyModels.VirtualAssignmentTitle).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

// SubmitAssignment stores an uploaded file and its submission record. A
// resubmission first removes the previous blob and record. The upload and
// the record insert are separate steps; when the insert fails the stored
// blob is removed again (compensating action).
func SubmitAssignment(c *fiber.Ctx) error {
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

	file, err := c.FormFile("file")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Submission file is required!", nil)
	}

	assignment, err := resolveAssignment(&lesson)
	if err != nil {
		log.Printf("Error resolving assignment for lesson %d: %v", lessonID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit assignment!", nil)
	}

	storagePath, err := utils.SaveUploadedFile(file, "submissions")
	if err != nil {
		log.Printf("Error storing submission file: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed! Please try again.", nil)
	}

	// Replace any previous submission: blob first, then record
	var previous academyModels.AssignmentSubmission
	if err := database.Database.Db.Where("assignment_id = ? AND user_id = ?", assignment.ID, userID).First(&previous).Error; err == nil {
		if err := utils.RemoveFile(previous.FileURL); err != nil {
			log.Printf("Error removing previous submission blob %s: %v", previous.FileURL, err)
		}
		if err := database.Database.Db.Unscoped().Delete(&previous).Error; err != nil {
			if removeErr := utils.RemoveFile(storagePath); removeErr != nil {
				log.Printf("Error removing orphaned submission blob %s: %v", storagePath, removeErr)
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to replace previous submission!", nil)
		}
	}

	submission := academyModels.AssignmentSubmission{
		AssignmentID: assignment.ID,
		UserID:       userID,
		FileURL:      storagePath,
		FileName:     file.Filename,
		FileSize:     file.Size,
		SubmittedAt:  time.Now(),
	}

	if err := database.Database.Db.Create(&submission).Error; err != nil {
		log.Printf("Error saving submission record: %v", err)
		// The blob is already stored; remove it so no orphan is left behind
		if removeErr := utils.RemoveFile(storagePath); removeErr != nil {
			log.Printf("Error removing orphaned submission blob %s: %v", storagePath, removeErr)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save submission! Please try again.", nil)
	}

	go func(user models.User, assignmentTitle, fileName string) {
		if err := utils.SendSubmissionReceiptEmail(user.Email, user.Name, assignmentTitle, fileName); err != nil {
			log.Printf("Error sending submission receipt to %s: %v", user.Email, err)
		}
	}(user, assignment.Title, file.Filename)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment submitted successfully!", submission)
}

// GetSubmission returns the caller's live submission for an assignment
func GetSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	assignmentID := uint(c.Locals("assignmentID").(int))

	if _, ok := courseAssignment(assignmentID, courseID); !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submission academyModels.AssignmentSubmission
	if err := database.Database.Db.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submission found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission fetched successfully!", fiber.Map{
		"submission": submission,
		"file_url":   utils.FileURL(submission.FileURL),
	})
}

// DeleteSubmission removes the caller's submission: blob first, then record
func DeleteSubmission(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := uint(c.Locals("courseID").(int))
	assignmentID := uint(c.Locals("assignmentID").(int))

	if _, ok := courseAssignment(assignmentID, courseID); !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submission academyModels.AssignmentSubmission
	if err := database.Database.Db.Where("assignment_id = ? AND user_id = ?", assignmentID, userID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No submission found!", nil)
	}

	if err := utils.RemoveFile(submission.FileURL); err != nil {
		log.Printf("Error removing submission blob %s: %v", submission.FileURL, err)
	}

	if err := database.Database.Db.Unscoped().Delete(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission deleted successfully!", nil)
}
