package routes

import (
	"github.com/framestack/framestack_backend/handlers"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func WebsiteRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	requests := api.Group("/requests", middleware.Protected())
	requests.Post("", handlers.CreateWebsiteRequest)
	requests.Get("", handlers.ListWebsiteRequests)
	requests.Get("/:id", handlers.GetWebsiteRequest)
	requests.Put("/:id", handlers.UpdateWebsiteRequest)

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())
	admin.Put("/requests/:id", handlers.AdminUpdateWebsiteRequest)
}
