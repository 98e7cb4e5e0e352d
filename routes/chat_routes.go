package routes

import (
	"github.com/framestack/framestack_backend/chat"
	"github.com/framestack/framestack_backend/handlers"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func ChatRoutes(app *fiber.App, relay *chat.Relay, store *chat.MessageStore) {
	api := app.Group("/api/v1", middleware.Protected())
	api.Get("/messages/:email", handlers.MessageHistory(store))
	api.Get("/unread-count", handlers.UnreadCount(store))

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/chat/:peerId", websocket.New(handlers.ServeChatWs(relay, store)))
}
