package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/progress/enrollments/controller"
)

// EnrollmentRoutes -> /api/enrollments
func EnrollmentRoutes(api fiber.Router, ctl *controller.EnrollmentController) {
	g := api.Group("/enrollments")

	g.Post("/start", ctl.Start)
	g.Put("/complete", ctl.Complete)
	g.Get("/user/:accountId/course/:courseId", ctl.Get)
	g.Get("/is-completed/user/:accountId/course/:courseId", ctl.IsCompleted)
}
