package academyValidator

import (
	"strconv"
	"strings"

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

// CourseID validates the :course_id route parameter
func CourseID() fiber.Handler {
	return paramID("course_id", "courseID", "Invalid course id!")
}

// LessonID validates the :lesson_id route parameter
func LessonID() fiber.Handler {
	return paramID("lesson_id", "lessonID", "Invalid lesson id!")
}

// AssignmentID validates the :assignment_id route parameter
func AssignmentID() fiber.Handler {
	return paramID("assignment_id", "assignmentID", "Invalid assignment id!")
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

		if reqData.Page == nil || *reqData.Page < 1 {
			defaultPage := 1
			reqData.Page = &defaultPage
		}
		if reqData.Limit == nil || *reqData.Limit < 1 || *reqData.Limit > 100 {
			defaultLimit := 10
			reqData.Limit = &defaultLimit
		}

		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

// Direction validates the navigate query parameter
func Direction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		direction := c.Query("direction")
		if direction != "next" && direction != "prev" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Direction must be next or prev!", nil)
		}
		c.Locals("direction", direction)
		return c.Next()
	}
}

// Comment validator middleware
func Comment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Content string `json:"content"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		content := strings.TrimSpace(reqData.Content)
		if content == "" {
			errors["content"] = "Comment cannot be empty!"
		}
		if len(content) > 2000 {
			errors["content"] = "Comment must be at most 2000 characters!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedComment", reqData)
		return c.Next()
	}
}
