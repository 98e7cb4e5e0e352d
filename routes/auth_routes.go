package routes

import (
	"github.com/framestack/framestack_backend/handlers"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/signup", handlers.RegisterUser)
	api.Post("/login", handlers.LoginUser)
	api.Post("/forgot-password", handlers.ForgotPassword)
	api.Put("/reset-password", handlers.ResetPassword)

	profile := api.Group("", middleware.Protected())
	profile.Get("/profile", handlers.GetProfile)
	profile.Put("/profile", handlers.UpdateProfile)
	profile.Put("/change-password", handlers.ChangePassword)
}
