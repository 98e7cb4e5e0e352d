package routes

import (
	"github.com/framestack/framestack_backend/handlers"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/fiber/v2"
)

func OrderRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected())

	api.Post("/dummy-payment", handlers.DummyPayment)
	api.Post("/create-order", handlers.CreateOrder)
	api.Post("/verify-payment", handlers.VerifyPayment)
	api.Get("/orders", handlers.UserOrders)
}
