package controller_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/quizzes/questions/controller"
	"duomonggo_backend/internals/features/quizzes/questions/repository"
	"duomonggo_backend/internals/features/quizzes/questions/route"
	"duomonggo_backend/internals/features/quizzes/questions/service"
	helper "duomonggo_backend/internals/helpers"
)

func setup(t *testing.T) (*fiber.App, uuid.UUID) {
	t.Helper()
	courses := courseRepo.NewMemoryCourseRepository()
	c := &courseModel.CourseModel{Title: "Go", Difficulty: courseModel.DifficultyEasy, CourseType: courseModel.CourseSingleplayer}
	require.NoError(t, courses.Create(context.Background(), c))

	svc := service.NewQuestionService(repository.NewMemoryQuestionRepository(), courses, nil)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.QuestionRoutes(app.Group("/api"), controller.NewQuestionController(svc, nil))
	return app, c.ID
}

func decode(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	raw, _ := io.ReadAll(body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return out
}

func TestCreateMultipart_WithChoices(t *testing.T) {
	app, courseID := setup(t)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	fields := map[string]string{
		"content":       "2 + 2 = ?",
		"question_type": "MULTIPLE_CHOICE",
		"explanation":   "basic math",
		"course_id":     courseID.String(),
		"order_number":  "1",
		"choices":       `[{"content":"4","is_correct":true},{"content":"5","is_correct":false}]`,
	}
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/questions", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	env := decode(t, resp.Body)
	require.Equal(t, 201, resp.StatusCode, env)
	assert.Equal(t, "Question created successfully", env["message"])

	data := env["data"].(map[string]any)
	assert.Equal(t, courseID.String(), data["course_id"])
	answers := data["answers"].([]any)
	require.Len(t, answers, 2)
	assert.Equal(t, true, answers[0].(map[string]any)["is_correct"])
}

func TestCreateMultipart_BadOrderNumber(t *testing.T) {
	app, courseID := setup(t)

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	_ = w.WriteField("content", "q")
	_ = w.WriteField("question_type", "TRUE_FALSE")
	_ = w.WriteField("course_id", courseID.String())
	_ = w.WriteField("order_number", "first")
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/questions", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "order_number must be an integer", decode(t, resp.Body)["message"])
}

func TestJSONFlow(t *testing.T) {
	app, courseID := setup(t)

	send := func(method, path, body string) (int, map[string]any) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp.StatusCode, decode(t, resp.Body)
	}

	status, env := send("POST", "/api/questions", `{"content":"q","question_type":"TRUE_FALSE","course_id":"`+uuid.NewString()+`","order_number":1}`)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Course not found", env["message"])

	status, _ = send("POST", "/api/questions", `{"content":"q","question_type":"TRUE_FALSE","course_id":"`+courseID.String()+`"}`)
	assert.Equal(t, 400, status)

	status, env = send("POST", "/api/questions", `{"content":"q","question_type":"TRUE_FALSE","course_id":"`+courseID.String()+`","order_number":2}`)
	require.Equal(t, 201, status)
	id := env["data"].(map[string]any)["id"].(string)

	status, env = send("GET", "/api/questions/course/"+courseID.String(), "")
	assert.Equal(t, 200, status)
	assert.Len(t, env["data"], 1)

	status, env = send("PUT", "/api/questions/"+id, `{"content":"q2","question_type":"TRUE_FALSE","order_number":3}`)
	assert.Equal(t, 200, status)
	assert.Equal(t, "q2", env["data"].(map[string]any)["content"])

	status, _ = send("DELETE", "/api/questions/"+id, "")
	assert.Equal(t, 200, status)
	status, env = send("GET", "/api/questions/"+id, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Question not found", env["message"])
}
