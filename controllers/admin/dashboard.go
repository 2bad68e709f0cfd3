package adminController

import (
	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"

	"github.com/gofiber/fiber/v2"
)

// DashboardStats returns headline counts for the admin overview
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalCourses, publishedCourses int64
	db.Model(&academyModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&academyModels.Course{}).Where("is_deleted = ? AND is_published = ?", false, true).Count(&publishedCourses)

	var totalStudents int64
	db.Model(&models.User{}).Where("is_deleted = ? AND role = ?", false, models.RoleStudent).Count(&totalStudents)

	var totalEnrollments, pendingEnrollments int64
	db.Model(&academyModels.CourseEnrollment{}).Where("is_deleted = ?", false).Count(&totalEnrollments)
	db.Model(&academyModels.CourseEnrollment{}).
		Where("is_deleted = ? AND payment_status = ?", false, academyModels.PaymentPending).
		Count(&pendingEnrollments)

	var completedLessons int64
	db.Model(&academyModels.LessonProgress{}).Count(&completedLessons)

	var pendingSubmissions int64
	db.Model(&academyModels.AssignmentSubmission{}).Where("graded_at IS NULL").Count(&pendingSubmissions)

	var pendingComments int64
	db.Model(&academyModels.LessonComment{}).Where("is_approved = ? AND is_deleted = ?", false, false).Count(&pendingComments)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_courses":       totalCourses,
		"published_courses":   publishedCourses,
		"total_students":      totalStudents,
		"total_enrollments":   totalEnrollments,
		"pending_enrollments": pendingEnrollments,
		"completed_lessons":   completedLessons,
		"pending_submissions": pendingSubmissions,
		"pending_comments":    pendingComments,
	})
}
