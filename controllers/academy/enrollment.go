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
)

// EnrollInCourse enrolls the caller. Free courses activate immediately;
// paid courses require a payment proof upload and stay PENDING until an
// admin confirms.
func EnrollInCourse(c *fiber.Ctx) error {
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

	var existing academyModels.CourseEnrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error
	if err == nil {
		if existing.PaymentStatus == academyModels.PaymentPending {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Your enrollment is pending payment confirmation!", existing)
		}
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You are already enrolled in this course!", existing)
	}

	enrollment := academyModels.CourseEnrollment{
		UserID:     userID,
		CourseID:   courseID,
		EnrolledAt: time.Now(),
	}

	if course.IsFree || course.Price == 0 {
		enrollment.PaymentStatus = academyModels.PaymentFree
	} else {
		proof, err := c.FormFile("payment_proof")
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Payment proof is required for paid courses!", nil)
		}

		proofPath, err := utils.SaveUploadedFile(proof, "payments")
		if err != nil {
			log.Printf("Error storing payment proof: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "File upload failed! Please try again.", nil)
		}

		enrollment.PaymentStatus = academyModels.PaymentPending
		enrollment.PaymentProofURL = proofPath
	}

	if err := database.Database.Db.Create(&enrollment).Error; err != nil {
		log.Printf("Error creating enrollment: %v", err)
		if enrollment.PaymentProofURL != "" {
			if removeErr := utils.RemoveFile(enrollment.PaymentProofURL); removeErr != nil {
				log.Printf("Error removing orphaned payment proof %s: %v", enrollment.PaymentProofURL, removeErr)
			}
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll! Please try again.", nil)
	}

	if enrollment.PaymentStatus == academyModels.PaymentFree {
		go func(user models.User, courseTitle string) {
			if err := utils.SendEnrollmentEmail(user.Email, user.Name, courseTitle); err != nil {
				log.Printf("Error sending enrollment email to %s: %v", user.Email, err)
			}
		}(user, course.Title)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollment)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollment submitted! You will get access once payment is confirmed.", enrollment)
}

// GetMyEnrollments lists the caller's enrollments with course summaries
func GetMyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var enrollments []academyModels.CourseEnrollment
	if err := database.Database.Db.
		Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	courseIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		courseIDs = append(courseIDs, enrollment.CourseID)
	}

	courseByID := make(map[uint]academyModels.Course)
	if len(courseIDs) > 0 {
		var courses []academyModels.Course
		if err := database.Database.Db.Where("id IN ?", courseIDs).Find(&courses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
		}
		for _, course := range courses {
			courseByID[course.ID] = course
		}
	}

	type enrollmentView struct {
		academyModels.CourseEnrollment
		CourseTitle  string `json:"course_title"`
		ThumbnailURL string `json:"thumbnail_url"`
		Progress     int    `json:"progress"`
	}

	views := make([]enrollmentView, 0, len(enrollments))
	for _, enrollment := range enrollments {
		view := enrollmentView{CourseEnrollment: enrollment}
		if course, ok := courseByID[enrollment.CourseID]; ok {
			view.CourseTitle = course.Title
			view.ThumbnailURL = course.ThumbnailURL
		}
		if enrollment.PaymentStatus != academyModels.PaymentPending {
			if gate, _, _, err := buildGate(userID, enrollment.CourseID); err == nil {
				view.Progress = gate.Progress()
			}
		}
		views = append(views, view)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", views)
}
