package controller_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"duomonggo_backend/internals/features/courses/courses/controller"
	"duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/courses/courses/route"
	"duomonggo_backend/internals/features/courses/courses/service"
	helper "duomonggo_backend/internals/helpers"
)

func newApp() *fiber.App {
	svc := service.NewCourseService(repository.NewMemoryCourseRepository(), time.FixedZone("ICT", 7*3600))
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.CourseRoutes(app.Group("/api"), controller.NewCourseController(svc, nil))
	return app
}

func call(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	return resp.StatusCode, out
}

func TestCourseEndpoints(t *testing.T) {
	app := newApp()

	status, env := call(t, app, "POST", "/api/courses", `{"title":"Go","difficulty":"easy","exp_reward":100}`)
	require.Equal(t, 201, status)
	data := env["data"].(map[string]any)
	assert.Equal(t, "SINGLEPLAYER", data["course_type"])
	id := data["id"].(string)

	status, env = call(t, app, "POST", "/api/courses/multiplayer", `{"title":"Race","difficulty":"HARD","exp_reward":5,"deadline":"31-12-2030"}`)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Invalid deadline format. Use ISO format (YYYY-MM-DDTHH:MM:SS)", env["message"])

	status, _ = call(t, app, "POST", "/api/courses/multiplayer", `{"title":"Race","difficulty":"HARD","exp_reward":5,"deadline":"2030-12-31T23:00:00"}`)
	assert.Equal(t, 201, status)

	status, env = call(t, app, "GET", "/api/courses/type/multiplayer", "")
	assert.Equal(t, 200, status)
	assert.Len(t, env["data"], 1)

	status, env = call(t, app, "GET", "/api/courses/difficulty/medium", "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "No courses found with this difficulty", env["message"])

	status, _ = call(t, app, "GET", "/api/courses/type/duo", "")
	assert.Equal(t, 400, status)

	status, env = call(t, app, "GET", "/api/courses?difficulty=EASY", "")
	assert.Equal(t, 200, status)
	assert.Len(t, env["data"], 1)

	status, _ = call(t, app, "PUT", "/api/courses/"+id, `{"title":"Go 2","difficulty":"MEDIUM","exp_reward":50}`)
	assert.Equal(t, 200, status)

	status, _ = call(t, app, "POST", "/api/courses", `{"title":"NoReward","difficulty":"EASY"}`)
	assert.Equal(t, 400, status)

	status, _ = call(t, app, "DELETE", "/api/courses/"+id, "")
	assert.Equal(t, 200, status)
	status, env = call(t, app, "GET", "/api/courses/"+id, "")
	assert.Equal(t, 404, status)
	assert.Equal(t, "Course not found", env["message"])

	status, _ = call(t, app, "GET", "/api/courses/not-a-uuid", "")
	assert.Equal(t, 400, status)
}
