package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/courses/courses/controller"
)

// CourseRoutes -> /api/courses
func CourseRoutes(api fiber.Router, ctl *controller.CourseController) {
	g := api.Group("/courses")

	g.Get("/", ctl.List)
	g.Get("/type/:courseType", ctl.ListByType)
	g.Get("/difficulty/:difficulty", ctl.ListByDifficulty)
	g.Get("/:id", ctl.Get)

	g.Post("/", ctl.Create)
	g.Post("/multiplayer", ctl.CreateMultiplayer)
	g.Put("/multiplayer/:id", ctl.UpdateMultiplayer)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
