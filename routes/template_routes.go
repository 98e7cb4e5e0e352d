package routes

import (
	"github.com/framestack/framestack_backend/handlers"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func TemplateRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/templates", handlers.ListTemplates)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Post("/templates", handlers.CreateTemplate)
	admin.Get("/uploads/signature", handlers.GenerateUploadSignature)
}
