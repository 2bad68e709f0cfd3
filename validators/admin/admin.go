package adminValidator

import (
	"strconv"
	"strings"
	"time"

	"academy/middleware"

	"github.com/gofiber/fiber/v2"
)

// paramID parses a positive integer route parameter and stashes it under
// the given locals key
func paramID(param, localsKey, message string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.Atoi(c.Params(param))
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, message, nil)
		}
		c.Locals(localsKey, id)
		return c.Next()
	}
}

func CourseID() fiber.Handler {
	return paramID("course_id", "courseID", "Invalid course id!")
}

func SectionID() fiber.Handler {
	return paramID("section_id", "sectionID", "Invalid section id!")
}

func LessonID() fiber.Handler {
	return paramID("lesson_id", "lessonID", "Invalid lesson id!")
}

func AssignmentID() fiber.Handler {
	return paramID("assignment_id", "assignmentID", "Invalid assignment id!")
}

func SubmissionID() fiber.Handler {
	return paramID("submission_id", "submissionID", "Invalid submission id!")
}

func EnrollmentID() fiber.Handler {
	return paramID("enrollment_id", "enrollmentID", "Invalid enrollment id!")
}

func CommentID() fiber.Handler {
	return paramID("comment_id", "commentID", "Invalid comment id!")
}

func TargetUserID() fiber.Handler {
	return paramID("user_id", "targetUserID", "Invalid user id!")
}

// ListQuery validates pagination query params and applies defaults
func ListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Page  *int `json:"page"`
			Limit *int `json:"limit"`
		})
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// Course validator middleware; used for both create and update
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			Price       int64  `json:"price"`
			IsFree      bool   `json:"is_free"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}
		if !reqData.IsFree && reqData.Price == 0 {
			errors["price"] = "Paid courses need a price; mark the course free otherwise!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// Publish validator middleware
func Publish() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsPublished bool `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		c.Locals("validatedPublish", reqData)
		return c.Next()
	}
}

// Section validator middleware; used for both create and update
func Section() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string `json:"title"`
			Description  string `json:"description"`
			SectionOrder *int   `json:"section_order"`
			IsPublished  bool   `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.SectionOrder != nil && *reqData.SectionOrder < 1 {
			errors["section_order"] = "Section order must be positive!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedSection", reqData)
		return c.Next()
	}
}

// Reorder validator middleware, shared by section and lesson reordering
func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			OrderedIDs []uint `json:"ordered_ids"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(reqData.OrderedIDs) == 0 {
			errors["ordered_ids"] = "Ordered ids are required!"
		}
		seen := make(map[uint]struct{}, len(reqData.OrderedIDs))
		for _, id := range reqData.OrderedIDs {
			if _, dup := seen[id]; dup {
				errors["ordered_ids"] = "Ordered ids contain duplicates!"
				break
			}
			seen[id] = struct{}{}
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

// Lesson validator middleware; used for both create and update
func Lesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title          string `json:"title"`
			Description    string `json:"description"`
			VideoURL       string `json:"video_url"`
			VideoDuration  int    `json:"video_duration"`
			LessonOrder    *int   `json:"lesson_order"`
			IsPublished    bool   `json:"is_published"`
			IsLastOfWeek   bool   `json:"is_last_video_of_week"`
			AssignmentText string `json:"assignment_text"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Title) == "" && strings.TrimSpace(reqData.VideoURL) == "" {
			errors["title"] = "A title or a video URL is required!"
		}
		if reqData.VideoDuration < 0 {
			errors["video_duration"] = "Video duration cannot be negative!"
		}
		if reqData.LessonOrder != nil && *reqData.LessonOrder < 1 {
			errors["lesson_order"] = "Lesson order must be positive!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

// Assignment validator middleware; used for both create and update
func Assignment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Title        string     `json:"title"`
			Description  string     `json:"description"`
			Instructions string     `json:"instructions"`
			DueDate      *time.Time `json:"due_date"`
			MaxPoints    int        `json:"max_points"`
			IsPublished  bool       `json:"is_published"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.MaxPoints < 0 {
			errors["max_points"] = "Max points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedAssignment", reqData)
		return c.Next()
	}
}

// Grade validator middleware
func Grade() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			PointsEarned int    `json:"points_earned"`
			Feedback     string `json:"feedback"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.PointsEarned < 0 {
			errors["points_earned"] = "Points cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedGrade", reqData)
		return c.Next()
	}
}

// Role validator middleware
func Role() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Role string `json:"role"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Role) == "" {
			errors["role"] = "Role is required!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedRole", reqData)
		return c.Next()
	}
}

// Block validator middleware
func Block() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			IsBlocked bool `json:"is_blocked"`
			Hours     int  `json:"hours"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Hours < 0 {
			errors["hours"] = "Hours cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBlock", reqData)
		return c.Next()
	}
}
