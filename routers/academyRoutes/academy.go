package academyRoutes

import (
	controllers "academy/controllers/academy"
	"academy/middleware"
	validators "academy/validators/academy"

	"github.com/gofiber/fiber/v2"
)

// SetupAcademyRoutes sets up the user-facing catalog and player routes
func SetupAcademyRoutes(app *fiber.App) {
	courseGroup := app.Group("/course", middleware.JWTMiddleware)

	// Catalog
	courseGroup.Get("/list", validators.ListQuery(), controllers.GetAllCourses)
	courseGroup.Get("/enrollments/mine", controllers.GetMyEnrollments)
	courseGroup.Get("/:course_id", validators.CourseID(), controllers.GetCourseDetails)
	courseGroup.Post("/:course_id/enroll", validators.CourseID(), controllers.EnrollInCourse)

	// Player
	courseGroup.Get("/:course_id/player", validators.CourseID(), controllers.GetCoursePlayer)
	courseGroup.Get("/:course_id/progress", validators.CourseID(), controllers.GetCourseProgress)
	courseGroup.Get("/:course_id/lesson/:lesson_id",
		validators.CourseID(), validators.LessonID(), controllers.OpenLesson)
	courseGroup.Get("/:course_id/lesson/:lesson_id/navigate",
		validators.CourseID(), validators.LessonID(), validators.Direction(), controllers.Navigate)

	// Completion toggle
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete",
		validators.CourseID(), validators.LessonID(), controllers.MarkLessonComplete)
	courseGroup.Delete("/:course_id/lesson/:lesson_id/complete",
		validators.CourseID(), validators.LessonID(), controllers.UnmarkLessonComplete)

	// Assignments
	courseGroup.Post("/:course_id/lesson/:lesson_id/assignment/submit",
		validators.CourseID(), validators.LessonID(), controllers.SubmitAssignment)
	courseGroup.Get("/:course_id/assignment/:assignment_id/submission",
		validators.CourseID(), validators.AssignmentID(), controllers.GetSubmission)
	courseGroup.Delete("/:course_id/assignment/:assignment_id/submission",
		validators.CourseID(), validators.AssignmentID(), controllers.DeleteSubmission)

	// Comments
	courseGroup.Get("/:course_id/lesson/:lesson_id/comments",
		validators.CourseID(), validators.LessonID(), controllers.GetLessonComments)
	courseGroup.Post("/:course_id/lesson/:lesson_id/comments",
		validators.CourseID(), validators.LessonID(), validators.Comment(), controllers.PostLessonComment)
}
