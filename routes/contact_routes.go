package routes

import (
	"github.com/framestack/framestack_backend/handlers"
	"github.com/gofiber/fiber/v2"
)

func ContactRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/contact-message", handlers.CreateContactMessage)
}
