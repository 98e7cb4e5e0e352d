package handlers

import (
	"fmt"
	"log"

	config "github.com/framestack/framestack_backend/configs"
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/framestack/framestack_backend/notifications"
	"github.com/framestack/framestack_backend/utils"
	"github.com/gofiber/fiber/v2"
)

// CreateContactMessage stores a contact-form submission and notifies both the
// sender and the support inbox.
func CreateContactMessage(c *fiber.Ctx) error {
	type Request struct {
		Name    string `json:"name" validate:"required"`
		Email   string `json:"email" validate:"required,email"`
		Message string `json:"message" validate:"required"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	contact := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Message: req.Message,
	}
	if err := database.DB.Create(&contact).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save message"})
	}

	ticket := utils.ContactTicketNumber(contact.ID)

	go notifications.SendEmail(
		contact.Name,
		contact.Email,
		"We've Received Your Message - FrameStack",
		fmt.Sprintf("<h1>Message Received!</h1><p>Hello %s, thank you for reaching out to FrameStack. Our support team typically responds within 24-48 hours.</p><p><b>Your Reference Number:</b> %s</p><blockquote>%s</blockquote>", contact.Name, ticket, contact.Message),
	)
	go notifications.SendEmail(
		"FrameStack Support",
		config.Config("SUPPORT_EMAIL"),
		fmt.Sprintf("New Contact Form Submission - %s", ticket),
		fmt.Sprintf("<h2>New contact form submission</h2><p><b>Reference:</b> %s<br><b>From:</b> %s &lt;%s&gt;</p><p>%s</p><p>Please respond within 24-48 hours.</p>", ticket, contact.Name, contact.Email, contact.Message),
	)

	log.Printf("Contact message #%d received from %s", contact.ID, contact.Email)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Thank you for contacting us! We'll get back to you soon.",
		"data":    contact,
	})
}
