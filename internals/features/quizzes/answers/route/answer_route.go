package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/quizzes/answers/controller"
)

// AnswerRoutes -> /api/answers
func AnswerRoutes(api fiber.Router, ctl *controller.AnswerController) {
	g := api.Group("/answers")

	g.Get("/", ctl.List)
	g.Get("/question/:questionId", ctl.ListByQuestion)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/question/:questionId", ctl.DeleteByQuestion)
	g.Delete("/:id", ctl.Delete)
}
