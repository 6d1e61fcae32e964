package route

import (
	"github.com/gofiber/fiber/v2"

	"duomonggo_backend/internals/features/users/accounts/controller"
	"duomonggo_backend/internals/features/users/accounts/model"
	rateLimiter "duomonggo_backend/internals/middlewares"
	authMiddleware "duomonggo_backend/internals/middlewares/auth"
)

// AccountRoutes -> /api/accounts
func AccountRoutes(api fiber.Router, ctl *controller.AccountController, jwtSecret string) {
	g := api.Group("/accounts")

	g.Post("/register", rateLimiter.RegisterRateLimiter(), ctl.Register)
	g.Post("/login", rateLimiter.LoginRateLimiter(), ctl.Login)

	g.Get("/admin/dashboard",
		authMiddleware.AuthMiddleware(jwtSecret),
		authMiddleware.OnlyRoles("Only admins can view the dashboard", string(model.RoleAdmin)),
		ctl.AdminDashboard,
	)

	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Put("/:id", ctl.Update)
	g.Delete("/:id", ctl.Delete)
}
