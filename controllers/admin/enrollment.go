package adminController

import (
	"log"

	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"
	"academy/utils"

	"github.com/gofiber/fiber/v2"
)

// EnrollmentList returns enrollments, optionally filtered by payment
// status, with user and course summaries
func EnrollmentList(c *fiber.Ctx) error {
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

	query := database.Database.Db.Model(&academyModels.CourseEnrollment{}).Where("is_deleted = ?", false)
	if status := c.Query("status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var enrollments []academyModels.CourseEnrollment
	if err := query.Order("enrolled_at DESC").Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	userIDs := make([]uint, 0, len(enrollments))
	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		userIDs = append(userIDs, enrollment.UserID)
		courseIDs = append(courseIDs, enrollment.CourseID)
	}

	nameByID := make(map[uint]string)
	emailByID := make(map[uint]string)
	if len(userIDs) > 0 {
		var users []models.User
		if err := database.Database.Db.Select("id", "name", "email").Where("id IN ?", userIDs).Find(&users).Error; err == nil {
			for _, user := range users {
				nameByID[user.ID] = user.Name
				emailByID[user.ID] = user.Email
			}
		}
	}

	titleByID := make(map[uint]string)
	if len(courseIDs) > 0 {
		var courses []academyModels.Course
		if err := database.Database.Db.Select("id", "title").Where("id IN ?", courseIDs).Find(&courses).Error; err == nil {
			for _, course := range courses {
				titleByID[course.ID] = course.Title
			}
		}
	}

	type enrollmentView struct {
		academyModels.CourseEnrollment
		UserName     string `json:"user_name"`
		UserEmail    string `json:"user_email"`
		CourseTitle  string `json:"course_title"`
		ProofFileURL string `json:"proof_file_url,omitempty"`
	}

	views := make([]enrollmentView, 0, len(enrollments))
	for _, enrollment := range enrollments {
		view := enrollmentView{
			CourseEnrollment: enrollment,
			UserName:         nameByID[enrollment.UserID],
			UserEmail:        emailByID[enrollment.UserID],
			CourseTitle:      titleByID[enrollment.CourseID],
		}
		if enrollment.PaymentProofURL != "" {
			view.ProofFileURL = utils.FileURL(enrollment.PaymentProofURL)
		}
		views = append(views, view)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": views,
		"total":       total,
		"page":        page,
		"limit":       limit,
	})
}

// ConfirmEnrollment marks a pending enrollment as paid and sends the
// confirmation email
func ConfirmEnrollment(c *fiber.Ctx) error {
	enrollmentID := uint(c.Locals("enrollmentID").(int))

	var enrollment academyModels.CourseEnrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	if enrollment.PaymentStatus != academyModels.PaymentPending {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Enrollment is not pending confirmation!", enrollment)
	}

	enrollment.PaymentStatus = academyModels.PaymentPaid
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		log.Printf("Error confirming enrollment %d: %v", enrollmentID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm enrollment!", nil)
	}

	var user models.User
	var course academyModels.Course
	if database.Database.Db.Where("id = ?", enrollment.UserID).First(&user).Error == nil &&
		database.Database.Db.Where("id = ?", enrollment.CourseID).First(&course).Error == nil {
		go func(email, name, courseTitle string) {
			if err := utils.SendEnrollmentEmail(email, name, courseTitle); err != nil {
				log.Printf("Error sending enrollment email to %s: %v", email, err)
			}
		}(user.Email, user.Name, course.Title)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment confirmed successfully!", enrollment)
}

// RevokeEnrollment soft deletes an enrollment, cutting the user's access
func RevokeEnrollment(c *fiber.Ctx) error {
	enrollmentID := uint(c.Locals("enrollmentID").(int))

	var enrollment academyModels.CourseEnrollment
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", enrollmentID, false).First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	enrollment.IsDeleted = true
	if err := database.Database.Db.Save(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to revoke enrollment!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment revoked successfully!", nil)
}
