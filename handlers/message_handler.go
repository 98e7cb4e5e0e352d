package handlers

import (
	"github.com/framestack/framestack_backend/chat"
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/gofiber/fiber/v2"
)

// MessageHistory returns every message between the caller and the user owning
// the email in the path, ascending by timestamp.
func MessageHistory(store *chat.MessageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		var other models.User
		if err := database.DB.Where("email = ?", c.Params("email")).First(&other).Error; err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "User not found."})
		}

		messages, err := store.History(user.ID, other.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch messages"})
		}
		return c.JSON(messages)
	}
}

func UnreadCount(store *chat.MessageStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := currentUser(c)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}

		count, err := store.UnreadCount(user.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to count messages"})
		}
		return c.JSON(fiber.Map{"unread_count": count})
	}
}
