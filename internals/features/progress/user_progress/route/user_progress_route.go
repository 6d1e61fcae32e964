package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/progress/user_progress/controller"
)

// UserProgressRoutes -> /api/progress
func UserProgressRoutes(api fiber.Router, ctl *controller.UserProgressController) {
	g := api.Group("/progress")

	g.Get("/", ctl.List)
	g.Get("/user/:accountId/course/:courseId", ctl.Get)
	g.Get("/user/:accountId", ctl.ListByAccount)
	g.Get("/course/:courseId", ctl.ListByCourse)
	g.Get("/stats/:accountId", ctl.Stats)

	g.Post("/start", ctl.Start)
	g.Put("/update", ctl.Update)
	g.Put("/complete", ctl.Complete)
}
