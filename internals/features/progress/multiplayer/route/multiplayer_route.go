package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/progress/multiplayer/controller"
)

// MultiplayerRoutes -> /api/multiplayer
func MultiplayerRoutes(api fiber.Router, ctl *controller.MultiplayerController) {
	g := api.Group("/multiplayer")

	g.Post("/start", ctl.Start)
	g.Put("/complete", ctl.Complete)

	g.Get("/is-completed/user/:accountId/course/:courseId", ctl.IsCompleted)
	g.Get("/time/user/:accountId/course/:courseId", ctl.CompletionTime)
	g.Get("/time/course/:courseId", ctl.Leaderboard)
	g.Get("/ranking/course/:courseId", ctl.Ranking)
}
