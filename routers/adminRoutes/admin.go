package adminRoutes

import (
	controllers "academy/controllers/admin"
	"academy/middleware"
	validators "academy/validators/admin"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminRoutes sets up the management surface; every route requires a
// valid token and an admin role
func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.AdminOnly)

	// Courses
	courseGroup := adminGroup.Group("/course")
	courseGroup.Get("/list", validators.ListQuery(), controllers.CourseList)
	courseGroup.Post("/create", validators.Course(), controllers.CreateCourse)
	courseGroup.Put("/:course_id", validators.CourseID(), validators.Course(), controllers.UpdateCourse)
	courseGroup.Post("/:course_id/publish", validators.CourseID(), validators.Publish(), controllers.SetCoursePublished)
	courseGroup.Delete("/:course_id", validators.CourseID(), controllers.DeleteCourse)

	// Sections
	courseGroup.Get("/:course_id/sections", validators.CourseID(), controllers.SectionList)
	courseGroup.Post("/:course_id/section", validators.CourseID(), validators.Section(), controllers.CreateSection)
	courseGroup.Post("/:course_id/sections/reorder", validators.CourseID(), validators.Reorder(), controllers.ReorderSections)

	sectionGroup := adminGroup.Group("/section")
	sectionGroup.Put("/:section_id", validators.SectionID(), validators.Section(), controllers.UpdateSection)
	sectionGroup.Delete("/:section_id", validators.SectionID(), controllers.DeleteSection)

	// Lessons
	sectionGroup.Get("/:section_id/lessons", validators.SectionID(), controllers.LessonList)
	sectionGroup.Post("/:section_id/lesson", validators.SectionID(), validators.Lesson(), controllers.CreateLesson)
	sectionGroup.Post("/:section_id/lessons/reorder", validators.SectionID(), validators.Reorder(), controllers.ReorderLessons)

	lessonGroup := adminGroup.Group("/lesson")
	lessonGroup.Put("/:lesson_id", validators.LessonID(), validators.Lesson(), controllers.UpdateLesson)
	lessonGroup.Delete("/:lesson_id", validators.LessonID(), controllers.DeleteLesson)

	// Assignments
	sectionGroup.Get("/:section_id/assignments", validators.SectionID(), controllers.AssignmentList)
	sectionGroup.Post("/:section_id/assignment", validators.SectionID(), validators.Assignment(), controllers.CreateAssignment)

	assignmentGroup := adminGroup.Group("/assignment")
	assignmentGroup.Put("/:assignment_id", validators.AssignmentID(), validators.Assignment(), controllers.UpdateAssignment)
	assignmentGroup.Delete("/:assignment_id", validators.AssignmentID(), controllers.DeleteAssignment)
	assignmentGroup.Get("/:assignment_id/submissions", validators.AssignmentID(), controllers.SubmissionList)

	submissionGroup := adminGroup.Group("/submission")
	submissionGroup.Post("/:submission_id/grade", validators.SubmissionID(), validators.Grade(), controllers.GradeSubmission)

	// Enrollments
	enrollmentGroup := adminGroup.Group("/enrollment")
	enrollmentGroup.Get("/list", validators.ListQuery(), controllers.EnrollmentList)
	enrollmentGroup.Post("/:enrollment_id/confirm", validators.EnrollmentID(), controllers.ConfirmEnrollment)
	enrollmentGroup.Delete("/:enrollment_id", validators.EnrollmentID(), controllers.RevokeEnrollment)

	// Comment moderation
	commentGroup := adminGroup.Group("/comment")
	commentGroup.Get("/pending", controllers.PendingComments)
	commentGroup.Post("/:comment_id/approve", validators.CommentID(), controllers.ApproveComment)
	commentGroup.Delete("/:comment_id", validators.CommentID(), controllers.RemoveComment)

	// Users
	userGroup := adminGroup.Group("/user")
	userGroup.Get("/list", validators.ListQuery(), controllers.UserList)
	userGroup.Post("/:user_id/role", validators.TargetUserID(), validators.Role(), controllers.SetUserRole)
	userGroup.Post("/:user_id/block", validators.TargetUserID(), validators.Block(), controllers.SetUserBlocked)
	userGroup.Delete("/:user_id", validators.TargetUserID(), controllers.DeleteUser)

	// Dashboard
	adminGroup.Get("/dashboard/stats", controllers.DashboardStats)
}
