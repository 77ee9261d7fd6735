package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/doctoraps/clinic-backend/controllers"
	"github.com/doctoraps/clinic-backend/middleware"
)

// SetupAuthRoutes configures all authentication related routes. The same
// surface hangs off the tenant prefix so registration inside
// /<slug>/auth/register binds the clinic.
func SetupAuthRoutes(app *fiber.App) {
	registerAuth(app.Group("/auth"))
	registerAuth(app.Group("/:tenant_slug/auth"))
}

func registerAuth(auth fiber.Router) {
	// Public routes
	auth.Post("/register", controllers.Register)
	auth.Post("/login", controllers.Login)
	auth.Post("/refresh", controllers.RefreshToken)

	// Protected routes
	auth.Get("/me", middleware.Protected(), controllers.GetProfile)
	auth.Post("/logout", middleware.Protected(), controllers.Logout)
}
