package handlers

import (
	"testing"

	"github.com/framestack/framestack_backend/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func setupAuthApp() *fiber.App {
	app := fiber.New()
	api := app.Group("/api/v1")
	api.Post("/signup", RegisterUser)
	api.Post("/login", LoginUser)
	api.Get("/profile", middleware.Protected(), GetProfile)
	return app
}

func TestSignupAndLogin(t *testing.T) {
	SetupTestDB(t)
	app := setupAuthApp()

	resp, err := app.Test(jsonRequest("POST", "/api/v1/signup", fiber.Map{
		"name":          "Alice",
		"email":         "alice@example.com",
		"business_name": "Alice Co",
		"password":      "hunter22",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	// Duplicate email is rejected.
	resp, err = app.Test(jsonRequest("POST", "/api/v1/signup", fiber.Map{
		"name":          "Alice Again",
		"email":         "alice@example.com",
		"business_name": "Alice Co",
		"password":      "hunter22",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/v1/login", fiber.Map{
		"email":    "alice@example.com",
		"password": "hunter22",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Access string `json:"access"`
		User   struct {
			Email string `json:"email"`
			Plan  string `json:"plan"`
		} `json:"user"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Access)
	assert.Equal(t, "alice@example.com", body.User.Email)
	assert.Equal(t, "Free", body.User.Plan)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	SetupTestDB(t)
	app := setupAuthApp()

	resp, err := app.Test(jsonRequest("POST", "/api/v1/signup", fiber.Map{
		"name":          "Bob",
		"email":         "bob@example.com",
		"business_name": "Bob Co",
		"password":      "correct-horse",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp, err = app.Test(jsonRequest("POST", "/api/v1/login", fiber.Map{
		"email":    "bob@example.com",
		"password": "wrong-horse",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestProfileRequiresValidToken(t *testing.T) {
	SetupTestDB(t)
	user := createTestUser(t, 1, "carol@example.com", 5)
	app := setupAuthApp()

	resp, err := app.Test(authedRequest(t, "GET", "/api/v1/profile", nil, user))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Email  string `json:"email"`
		Credit int    `json:"credit"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "carol@example.com", body.Email)
	assert.Equal(t, 5, body.Credit)

	resp, err = app.Test(jsonRequest("GET", "/api/v1/profile", nil))
	assert.NoError(t, err)
	assert.NotEqual(t, fiber.StatusOK, resp.StatusCode)
}
