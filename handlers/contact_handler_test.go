package handlers

import (
	"testing"

	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/middleware"
	"github.com/framestack/framestack_backend/models"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupPublicApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/contact-message", CreateContactMessage)
	api.Get("/templates", ListTemplates)
	api.Post("/admin/templates", middleware.Protected(), middleware.AdminRequired(), CreateTemplate)
	return app
}

func TestCreateContactMessage(t *testing.T) {
	SetupTestDB(t)
	app := setupPublicApp()

	resp, err := app.Test(jsonRequest("POST", "/api/v1/contact-message", fiber.Map{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "How do I migrate my site?",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var stored models.ContactMessage
	assert.NoError(t, database.DB.First(&stored).Error)
	assert.Equal(t, "visitor@example.com", stored.Email)

	// Missing message body is rejected.
	resp, err = app.Test(jsonRequest("POST", "/api/v1/contact-message", fiber.Map{
		"name":  "Visitor",
		"email": "visitor@example.com",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestTemplateCatalog(t *testing.T) {
	SetupTestDB(t)
	staff := models.User{ID: 1, Name: "Admin", Email: "admin@example.com", BusinessName: "FrameStack", Password: "x", IsStaff: true}
	assert.NoError(t, database.DB.Create(&staff).Error)
	app := setupPublicApp()

	resp, err := app.Test(authedRequest(t, "POST", "/api/v1/admin/templates", fiber.Map{
		"name":          "Agency Landing",
		"category":      "Business",
		"template_file": "https://cdn.example.com/templates/agency.zip",
		"url":           "https://demo.example.com/agency",
	}, staff))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Catalog is public.
	resp, err = app.Test(jsonRequest("GET", "/api/v1/templates", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var templates []models.Template
	decodeBody(t, resp, &templates)
	assert.Len(t, templates, 1)
	assert.Equal(t, "Agency Landing", templates[0].Name)
}
