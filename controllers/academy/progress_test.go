package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"academy/config"
	"academy/database"
	"academy/middleware"
	"academy/models"
	academyModels "academy/models/academy"
	academyValidator "academy/validators/academy"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type apiEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	app    *fiber.App
	token  string
	course academyModels.Course
	// lessons in flattened order; the last one is terminal
	lessons []academyModels.Lesson
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	t.Setenv("UPLOAD_DIR", t.TempDir())
	config.LoadConfig()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	user := models.User{
		Name:     "Test Student",
		Email:    "student@example.com",
		Password: "not-a-real-hash",
		Role:     models.RoleStudent,
	}
	require.NoError(t, db.Create(&user).Error)

	course := academyModels.Course{Title: "Go from Zero", IsFree: true, IsPublished: true, CreatedBy: user.ID}
	require.NoError(t, db.Create(&course).Error)

	section := academyModels.CourseSection{CourseID: course.ID, Title: "Week 1", SectionOrder: 1, IsPublished: true}
	require.NoError(t, db.Create(&section).Error)

	lessons := []academyModels.Lesson{
		{SectionID: section.ID, Title: "Intro", LessonOrder: 1, IsPublished: true},
		{SectionID: section.ID, Title: "Basics", LessonOrder: 2, IsPublished: true},
		{SectionID: section.ID, Title: "Wrap up", LessonOrder: 3, IsPublished: true,
			IsLastOfWeek: true, AssignmentText: "Build a CLI tool"},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}

	enrollment := academyModels.CourseEnrollment{
		UserID:        user.ID,
		CourseID:      course.ID,
		PaymentStatus: academyModels.PaymentFree,
		EnrolledAt:    time.Now(),
	}
	require.NoError(t, db.Create(&enrollment).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)

	app := fiber.New()
	group := app.Group("/course", middleware.JWTMiddleware)
	group.Get("/:course_id/lesson/:lesson_id",
		academyValidator.CourseID(), academyValidator.LessonID(), OpenLesson)
	group.Get("/:course_id/lesson/:lesson_id/navigate",
		academyValidator.CourseID(), academyValidator.LessonID(), academyValidator.Direction(), Navigate)
	group.Post("/:course_id/lesson/:lesson_id/complete",
		academyValidator.CourseID(), academyValidator.LessonID(), MarkLessonComplete)
	group.Delete("/:course_id/lesson/:lesson_id/complete",
		academyValidator.CourseID(), academyValidator.LessonID(), UnmarkLessonComplete)
	group.Post("/:course_id/lesson/:lesson_id/assignment/submit",
		academyValidator.CourseID(), academyValidator.LessonID(), SubmitAssignment)
	group.Delete("/:course_id/assignment/:assignment_id/submission",
		academyValidator.CourseID(), academyValidator.AssignmentID(), DeleteSubmission)
	group.Get("/:course_id/progress",
		academyValidator.CourseID(), GetCourseProgress)

	return &testEnv{app: app, token: token, course: course, lessons: lessons}
}

func (e *testEnv) request(t *testing.T, method, path string, body io.Reader, contentType string) (int, apiEnvelope) {
	t.Helper()

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Authorization", "Bearer "+e.token)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	return resp.StatusCode, envelope
}

func (e *testEnv) lessonPath(index int, suffix string) string {
	return fmt.Sprintf("/course/%d/lesson/%d%s", e.course.ID, e.lessons[index].ID, suffix)
}

func TestLessonGatingOverHTTP(t *testing.T) {
	env := setupEnv(t)

	// The second lesson is locked until the first is complete
	status, envelope := env.request(t, http.MethodGet, env.lessonPath(1, ""), nil, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.False(t, envelope.Status)
	assert.Contains(t, envelope.Message, "locked")

	// The first lesson opens right away
	status, envelope = env.request(t, http.MethodGet, env.lessonPath(0, ""), nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, envelope.Status)

	// Forward navigation is refused while the first lesson is incomplete
	status, envelope = env.request(t, http.MethodGet, env.lessonPath(0, "/navigate?direction=next"), nil, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, envelope.Message, "Complete the current lesson")

	// Complete the first lesson
	status, envelope = env.request(t, http.MethodPost, env.lessonPath(0, "/complete"), nil, "")
	require.Equal(t, http.StatusOK, status)

	var markData struct {
		Progress  int `json:"progress"`
		Completed int `json:"completed"`
		Total     int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &markData))
	assert.Equal(t, 33, markData.Progress)
	assert.Equal(t, 1, markData.Completed)
	assert.Equal(t, 3, markData.Total)

	// Marking again is a no-op, not an error
	status, envelope = env.request(t, http.MethodPost, env.lessonPath(0, "/complete"), nil, "")
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(envelope.Data, &markData))
	assert.Equal(t, 1, markData.Completed)

	// Now the second lesson opens and navigation moves forward
	status, _ = env.request(t, http.MethodGet, env.lessonPath(1, ""), nil, "")
	assert.Equal(t, http.StatusOK, status)

	status, envelope = env.request(t, http.MethodGet, env.lessonPath(0, "/navigate?direction=next"), nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, envelope.Status)

	// Backward navigation never needs completion
	status, _ = env.request(t, http.MethodGet, env.lessonPath(1, "/navigate?direction=prev"), nil, "")
	assert.Equal(t, http.StatusOK, status)

	// Un-completing the first lesson re-locks the second
	status, _ = env.request(t, http.MethodDelete, env.lessonPath(0, "/complete"), nil, "")
	require.Equal(t, http.StatusOK, status)

	status, envelope = env.request(t, http.MethodGet, env.lessonPath(1, ""), nil, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, envelope.Message, "locked")
}

func TestTerminalLessonRequiresSubmission(t *testing.T) {
	env := setupEnv(t)

	// Work through the first two lessons
	for i := 0; i < 2; i++ {
		status, _ := env.request(t, http.MethodPost, env.lessonPath(i, "/complete"), nil, "")
		require.Equal(t, http.StatusOK, status)
	}

	// The terminal lesson refuses completion without a submission
	status, envelope := env.request(t, http.MethodPost, env.lessonPath(2, "/complete"), nil, "")
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, envelope.Message, "submit the assignment")

	// Submit a file; the virtual assignment row is synthesized on the fly
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "homework.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("my homework"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	status, envelope = env.request(t, http.MethodPost,
		env.lessonPath(2, "/assignment/submit"), &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, status)
	assert.True(t, envelope.Status)

	var assignment academyModels.Assignment
	require.NoError(t, database.Database.Db.
		Where("section_id = ?", env.lessons[2].SectionID).
		First(&assignment).Error)
	assert.Equal(t, academyModels.VirtualAssignmentTitle, assignment.Title)
	assert.True(t, assignment.IsVirtual)

	// Completion now goes through and the course reaches 100%
	status, envelope = env.request(t, http.MethodPost, env.lessonPath(2, "/complete"), nil, "")
	require.Equal(t, http.StatusOK, status)

	var markData struct {
		Progress int `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &markData))
	assert.Equal(t, 100, markData.Progress)

	// Progress endpoint agrees
	status, envelope = env.request(t, http.MethodGet,
		fmt.Sprintf("/course/%d/progress", env.course.ID), nil, "")
	require.Equal(t, http.StatusOK, status)

	var progressData struct {
		CompletedLessonIDs []uint `json:"completed_lesson_ids"`
		Completed          int    `json:"completed"`
		Total              int    `json:"total"`
		Progress           int    `json:"progress"`
	}
	require.NoError(t, json.Unmarshal(envelope.Data, &progressData))
	assert.Equal(t, 3, progressData.Completed)
	assert.Equal(t, 3, progressData.Total)
	assert.Equal(t, 100, progressData.Progress)
	assert.Len(t, progressData.CompletedLessonIDs, 3)
}

func TestLessonOutsideCourseIsNotFound(t *testing.T) {
	env := setupEnv(t)
	db := database.Database.Db

	// A second published course the user is not enrolled in
	other := academyModels.Course{Title: "Advanced Go", IsFree: true, IsPublished: true}
	require.NoError(t, db.Create(&other).Error)
	otherSection := academyModels.CourseSection{CourseID: other.ID, Title: "Week 1", SectionOrder: 1, IsPublished: true}
	require.NoError(t, db.Create(&otherSection).Error)
	foreign := academyModels.Lesson{SectionID: otherSection.ID, Title: "Channels", LessonOrder: 1, IsPublished: true}
	require.NoError(t, db.Create(&foreign).Error)

	// Completing the foreign lesson through the enrolled course's URL is
	// stale state, not a write
	path := fmt.Sprintf("/course/%d/lesson/%d/complete", env.course.ID, foreign.ID)

	status, envelope := env.request(t, http.MethodPost, path, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, envelope.Message, "Lesson not found")

	var completions int64
	db.Model(&academyModels.LessonProgress{}).Where("lesson_id = ?", foreign.ID).Count(&completions)
	assert.EqualValues(t, 0, completions)

	status, envelope = env.request(t, http.MethodDelete, path, nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, envelope.Message, "Lesson not found")

	// Submitting against the foreign lesson is refused before any blob is
	// stored
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "homework.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("wrong course"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	status, envelope = env.request(t, http.MethodPost,
		fmt.Sprintf("/course/%d/lesson/%d/assignment/submit", env.course.ID, foreign.ID),
		&buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, envelope.Message, "Lesson not found")

	var submissions int64
	db.Model(&academyModels.AssignmentSubmission{}).Count(&submissions)
	assert.EqualValues(t, 0, submissions)

	// An assignment from the other course is invisible through this
	// course's URL
	otherAssignment := academyModels.Assignment{
		SectionID:   otherSection.ID,
		Title:       academyModels.VirtualAssignmentTitle,
		IsPublished: true,
	}
	require.NoError(t, db.Create(&otherAssignment).Error)

	status, envelope = env.request(t, http.MethodDelete,
		fmt.Sprintf("/course/%d/assignment/%d/submission", env.course.ID, otherAssignment.ID), nil, "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Contains(t, envelope.Message, "Assignment not found")
}

func TestNavigateAtCourseEnd(t *testing.T) {
	env := setupEnv(t)

	// Complete everything, submitting the assignment for the terminal lesson
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "homework.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("done"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	for i := 0; i < 2; i++ {
		status, _ := env.request(t, http.MethodPost, env.lessonPath(i, "/complete"), nil, "")
		require.Equal(t, http.StatusOK, status)
	}
	status, _ := env.request(t, http.MethodPost,
		env.lessonPath(2, "/assignment/submit"), &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, status)
	status, _ = env.request(t, http.MethodPost, env.lessonPath(2, "/complete"), nil, "")
	require.Equal(t, http.StatusOK, status)

	// Forward from the last lesson reports the end of the course
	status, envelope := env.request(t, http.MethodGet, env.lessonPath(2, "/navigate?direction=next"), nil, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, envelope.Message, "last lesson")
}
