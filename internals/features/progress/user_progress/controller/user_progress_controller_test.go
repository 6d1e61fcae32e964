package controller_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModel "duomonggo_backend/internals/features/courses/courses/model"
	courseRepo "duomonggo_backend/internals/features/courses/courses/repository"
	"duomonggo_backend/internals/features/progress/user_progress/controller"
	"duomonggo_backend/internals/features/progress/user_progress/repository"
	"duomonggo_backend/internals/features/progress/user_progress/route"
	"duomonggo_backend/internals/features/progress/user_progress/service"
	accountModel "duomonggo_backend/internals/features/users/accounts/model"
	accountRepo "duomonggo_backend/internals/features/users/accounts/repository"
	helper "duomonggo_backend/internals/helpers"
)

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

func TestProgressFlow(t *testing.T) {
	ctx := context.Background()
	accounts := accountRepo.NewMemoryAccountRepository()
	courses := courseRepo.NewMemoryCourseRepository()

	acc := &accountModel.AccountModel{Username: "sari", Email: "sari@example.com", Password: "x", Role: accountModel.RoleUser}
	require.NoError(t, accounts.Create(ctx, acc))
	course := &courseModel.CourseModel{Title: "Go", Difficulty: courseModel.DifficultyEasy, CourseType: courseModel.CourseSingleplayer, ExpReward: 100}
	require.NoError(t, courses.Create(ctx, course))

	svc := service.NewUserProgressService(repository.NewMemoryUserProgressRepository(accounts), accounts, courses)
	app := fiber.New(fiber.Config{ErrorHandler: helper.ErrorHandler})
	route.UserProgressRoutes(app.Group("/api"), controller.NewUserProgressController(svc, nil))

	a, c := acc.ID.String(), course.ID.String()
	ids := `"account_id":"` + a + `","course_id":"` + c + `"`

	status, env := call(t, app, "PUT", "/api/progress/update", `{`+ids+`,"correct_answers":1,"total_questions":10,"last_question_index":1}`)
	assert.Equal(t, 404, status)
	assert.Equal(t, "Progress not found", env["message"])

	status, _ = call(t, app, "POST", "/api/progress/start", `{`+ids+`}`)
	require.Equal(t, 201, status)

	status, _ = call(t, app, "PUT", "/api/progress/update", `{`+ids+`,"correct_answers":3,"total_questions":10,"last_question_index":4}`)
	require.Equal(t, 200, status)

	status, env = call(t, app, "PUT", "/api/progress/complete", `{`+ids+`,"correct_answers":7}`)
	assert.Equal(t, 400, status)
	assert.Contains(t, env["errors"], "total_questions")

	status, env = call(t, app, "PUT", "/api/progress/complete", `{`+ids+`,"correct_answers":7,"total_questions":10}`)
	require.Equal(t, 200, status)
	data := env["data"].(map[string]any)
	assert.Equal(t, true, data["completed"])
	assert.EqualValues(t, 70, data["exp_gained"])

	status, env = call(t, app, "GET", "/api/progress/stats/"+a, "")
	require.Equal(t, 200, status)
	stats := env["data"].(map[string]any)
	assert.EqualValues(t, 1, stats["completed_courses"])
	assert.EqualValues(t, 70, stats["total_exp"])

	updated, err := accounts.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, 70, updated.Exp)

	status, env = call(t, app, "GET", "/api/progress/user/"+a, "")
	assert.Equal(t, 200, status)
	assert.Len(t, env["data"], 1)

	status, _ = call(t, app, "GET", "/api/progress/user/"+a+"/course/not-a-uuid", "")
	assert.Equal(t, 400, status)
}
