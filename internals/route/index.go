package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	routeDetails "duomonggo_backend/internals/route/details"
)

var startTime time.Time

// SetupRoutes memasang base routes + /api; Services dikembalikan untuk cron.
func SetupRoutes(app *fiber.App, deps routeDetails.Deps) *routeDetails.Services {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, deps.DB)

	services := routeDetails.BuildServices(deps)
	controllers := routeDetails.BuildControllers(services)

	log.Println("[INFO] Setting up API routes...")
	routeDetails.APIRoutes(app, controllers, deps.Config.JWTSecret)

	log.Println("[INFO] Semua route berhasil dipasang.")
	return services
}
