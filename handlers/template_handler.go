package handlers

import (
	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/gofiber/fiber/v2"
)

func ListTemplates(c *fiber.Ctx) error {
	var templates []models.Template
	if err := database.DB.Order("created_at desc").Find(&templates).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch templates"})
	}
	return c.JSON(templates)
}

func CreateTemplate(c *fiber.Ctx) error {
	type Request struct {
		Name            string `json:"name" validate:"required"`
		Category        string `json:"category" validate:"required"`
		TemplateFileURL string `json:"template_file" validate:"required,url"`
		URL             string `json:"url" validate:"required,url"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	template := models.Template{
		Name:            req.Name,
		Category:        req.Category,
		TemplateFileURL: req.TemplateFileURL,
		URL:             req.URL,
	}
	if err := database.DB.Create(&template).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create template"})
	}
	return c.Status(fiber.StatusCreated).JSON(template)
}
