package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/quizzes/questions/controller"
)

// QuestionRoutes -> /api/questions
func QuestionRoutes(api fiber.Router, ctl *controller.QuestionController) {
	g := api.Group("/questions")

	g.Get("/", ctl.List)
	g.Get("/course/:courseId", ctl.ListByCourse)
	g.Get("/:id", ctl.Get)
	g.Post("/", ctl.Create)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
