package adminController

import (
	"log"
	"time"

	"academy/database"
	"academy/middleware"
	academyModels "academy/models/academy"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// AssignmentList returns a section's assignments, virtual rows included
func AssignmentList(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var assignments []academyModels.Assignment
	if err := database.Database.Db.
		Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Order("assignment_order ASC").
		Find(&assignments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch assignments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignments fetched successfully!", assignments)
}

// CreateAssignment adds an authored assignment. Titles must be distinct
// within a section; the unique index backs that up.
func CreateAssignment(c *fiber.Ctx) error {
	sectionID := uint(c.Locals("sectionID").(int))

	var section academyModels.CourseSection
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", sectionID, false).First(&section).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Section not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		Instructions string     `json:"instructions"`
		DueDate      *time.Time `json:"due_date"`
		MaxPoints    int        `json:"max_points"`
		IsPublished  bool       `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	var duplicate int64
	database.Database.Db.Model(&academyModels.Assignment{}).
		Where("section_id = ? AND title = ?", sectionID, reqData.Title).
		Count(&duplicate)
	if duplicate > 0 {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "An assignment with this title already exists in the section!", nil)
	}

	assignment := academyModels.Assignment{
		SectionID:    sectionID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Instructions: reqData.Instructions,
		DueDate:      reqData.DueDate,
		MaxPoints:    reqData.MaxPoints,
		IsPublished:  reqData.IsPublished,
	}
	if assignment.MaxPoints <= 0 {
		assignment.MaxPoints = 100
	}

	var maxOrder int
	database.Database.Db.Model(&academyModels.Assignment{}).
		Where("section_id = ? AND is_deleted = ?", sectionID, false).
		Select("COALESCE(MAX(assignment_order), 0)").Scan(&maxOrder)
	assignment.AssignmentOrder = maxOrder + 1

	if err := database.Database.Db.Create(&assignment).Error; err != nil {
		log.Printf("Error creating assignment: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment created successfully!", assignment)
}

// UpdateAssignment edits an assignment; editing a virtual row promotes it
// to authored
func UpdateAssignment(c *fiber.Ctx) error {
	assignmentID := uint(c.Locals("assignmentID").(int))

	var assignment academyModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData, ok := c.Locals("validatedAssignment").(*struct {
		Title        string     `json:"title"`
		Description  string     `json:"description"`
		Instructions string     `json:"instructions"`
		DueDate      *time.Time `json:"due_date"`
		MaxPoints    int        `json:"max_points"`
		IsPublished  bool       `json:"is_published"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.Title != assignment.Title {
		var duplicate int64
		database.Database.Db.Model(&academyModels.Assignment{}).
			Where("section_id = ? AND title = ? AND id <> ?", assignment.SectionID, reqData.Title, assignment.ID).
			Count(&duplicate)
		if duplicate > 0 {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "An assignment with this title already exists in the section!", nil)
		}
	}

	assignment.Title = reqData.Title
	assignment.Description = reqData.Description
	assignment.Instructions = reqData.Instructions
	assignment.DueDate = reqData.DueDate
	if reqData.MaxPoints > 0 {
		assignment.MaxPoints = reqData.MaxPoints
	}
	assignment.IsPublished = reqData.IsPublished
	assignment.IsVirtual = false

	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		log.Printf("Error updating assignment %d: %v", assignmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment updated successfully!", assignment)
}

// DeleteAssignment soft deletes an assignment; submissions remain for the
// record
func DeleteAssignment(c *fiber.Ctx) error {
	assignmentID := uint(c.Locals("assignmentID").(int))

	var assignment academyModels.Assignment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", assignmentID, false).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	assignment.IsDeleted = true
	assignment.IsPublished = false
	if err := database.Database.Db.Save(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete assignment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Assignment deleted successfully!", nil)
}

// SubmissionList returns all submissions for an assignment with submitter
// names and download links
func SubmissionList(c *fiber.Ctx) error {
	assignmentID := uint(c.Locals("assignmentID").(int))

	var assignment academyModels.Assignment
	if err := database.Database.Db.Where("id = ?", assignmentID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	var submissions []academyModels.AssignmentSubmission
	if err := database.Database.Db.
		Where("assignment_id = ?", assignmentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch submissions!", nil)
	}

	type submissionView struct {
		academyModels.AssignmentSubmission
		FileLink string `json:"file_link"`
	}

	views := make([]submissionView, 0, len(submissions))
	for _, submission := range submissions {
		views = append(views, submissionView{
			AssignmentSubmission: submission,
			FileLink:             utils.FileURL(submission.FileURL),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submissions fetched successfully!", fiber.Map{
		"assignment":  assignment,
		"submissions": views,
	})
}

// GradeSubmission records points and feedback for a submission
func GradeSubmission(c *fiber.Ctx) error {
	adminID := c.Locals("userId").(uint)
	submissionID := uint(c.Locals("submissionID").(int))

	var submission academyModels.AssignmentSubmission
	if err := database.Database.Db.Where("id = ?", submissionID).First(&submission).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Submission not found!", nil)
	}

	var assignment academyModels.Assignment
	if err := database.Database.Db.Where("id = ?", submission.AssignmentID).First(&assignment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assignment not found!", nil)
	}

	reqData, ok := c.Locals("validatedGrade").(*struct {
		PointsEarned int    `json:"points_earned"`
		Feedback     string `json:"feedback"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if reqData.PointsEarned < 0 || reqData.PointsEarned > assignment.MaxPoints {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Points must be between 0 and the assignment maximum!", nil)
	}

	now := time.Now()
	submission.PointsEarned = reqData.PointsEarned
	submission.Feedback = reqData.Feedback
	submission.GradedAt = &now
	submission.GradedBy = adminID

	if err := database.Database.Db.Save(&submission).Error; err != nil {
		log.Printf("Error grading submission %d: %v", submissionID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grade submission!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Submission graded successfully!", submission)
}
