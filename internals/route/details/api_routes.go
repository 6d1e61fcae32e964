package details

import (
	"github.com/gofiber/fiber/v2"

	courseRoute "duomonggo_backend/internals/features/courses/courses/route"
	enrollRoute "duomonggo_backend/internals/features/progress/enrollments/route"
	mpRoute "duomonggo_backend/internals/features/progress/multiplayer/route"
	progressRoute "duomonggo_backend/internals/features/progress/user_progress/route"
	answerRoute "duomonggo_backend/internals/features/quizzes/answers/route"
	questionRoute "duomonggo_backend/internals/features/quizzes/questions/route"
	accountRoute "duomonggo_backend/internals/features/users/accounts/route"
)

// APIRoutes memasang semua fitur di bawah /api.
func APIRoutes(app *fiber.App, ctl *Controllers, jwtSecret string) fiber.Router {
	api := app.Group("/api")

	accountRoute.AccountRoutes(api, ctl.Accounts, jwtSecret)
	courseRoute.CourseRoutes(api, ctl.Courses)
	questionRoute.QuestionRoutes(api, ctl.Questions)
	answerRoute.AnswerRoutes(api, ctl.Answers)
	enrollRoute.EnrollmentRoutes(api, ctl.Enrollments)
	progressRoute.UserProgressRoutes(api, ctl.Progress)
	mpRoute.MultiplayerRoutes(api, ctl.Multiplayer)

	return api
}
