package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/models"
	"github.com/framestack/framestack_backend/notifications"
	"github.com/framestack/framestack_backend/services"
	"github.com/gofiber/fiber/v2"
)

type WebsiteRequestCreate struct {
	WebsiteName     string  `json:"website_name" validate:"required"`
	Description     string  `json:"description" validate:"required"`
	TemplateFileURL *string `json:"template_file"`
	Timeline        *string `json:"timeline"`
	Features        string  `json:"features"`
}

// CreateWebsiteRequest opens a build request. Costs one credit.
func CreateWebsiteRequest(c *fiber.Ctx) error {
	var req WebsiteRequestCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if strings.TrimSpace(req.WebsiteName) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Website name cannot be empty."})
	}
	if strings.TrimSpace(req.Description) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Description cannot be empty."})
	}

	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}
	if user.Credit <= 0 {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "You don't have enough credits. Please upgrade your plan."})
	}

	user.Credit--
	if err := database.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to deduct credit"})
	}

	request := models.WebsiteRequest{
		UserID:          user.ID,
		WebsiteName:     req.WebsiteName,
		Description:     req.Description,
		TemplateFileURL: req.TemplateFileURL,
		Timeline:        req.Timeline,
		Features:        req.Features,
		Status:          models.RequestStatusPending,
	}
	if err := database.DB.Create(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create request"})
	}

	go notifications.SendEmail(
		user.Name,
		user.Email,
		"Website Request Created Successfully",
		fmt.Sprintf("<h1>✅ Website Request Created</h1><p>Hello %s, your website request (ID: %d) has been created successfully. Our team will start processing it soon.</p><p><b>Website Name:</b> %s<br><b>Status:</b> %s</p>", user.Name, request.ID, request.WebsiteName, request.Status),
	)
	log.Printf("Website request %d created by user %s", request.ID, user.Email)

	return c.Status(fiber.StatusCreated).JSON(request)
}

// ListWebsiteRequests shows staff everything, users their own rows.
func ListWebsiteRequests(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	query := database.DB.Model(&models.WebsiteRequest{})
	if !user.IsStaff {
		query = query.Where("user_id = ?", user.ID)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.WebsiteRequest
	if err := query.Order("created_at desc").Find(&requests).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch requests"})
	}
	return c.JSON(requests)
}

func GetWebsiteRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	query := database.DB.Model(&models.WebsiteRequest{})
	if !user.IsStaff {
		query = query.Where("user_id = ?", user.ID)
	}

	var request models.WebsiteRequest
	if err := query.First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
	}
	return c.JSON(request)
}

// UpdateWebsiteRequest lets the owner edit their request; fields that belong
// to the admin workflow are rejected outright.
func UpdateWebsiteRequest(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var raw map[string]interface{}
	if err := c.BodyParser(&raw); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	for _, forbidden := range []string{"status", "sample_url", "original_url", "preview_image_url"} {
		if _, ok := raw[forbidden]; ok {
			log.Printf("User %s attempted to update forbidden field '%s'", user.Email, forbidden)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": fmt.Sprintf("You cannot update the '%s' field.", forbidden)})
		}
	}

	var request models.WebsiteRequest
	if err := database.DB.Where("user_id = ?", user.ID).First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
	}

	var req WebsiteRequestCreate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if req.WebsiteName != "" {
		request.WebsiteName = req.WebsiteName
	}
	if req.Description != "" {
		request.Description = req.Description
	}
	if req.TemplateFileURL != nil {
		request.TemplateFileURL = req.TemplateFileURL
	}
	if req.Timeline != nil {
		request.Timeline = req.Timeline
	}
	if req.Features != "" {
		request.Features = req.Features
	}

	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update request"})
	}
	return c.JSON(request)
}

type AdminWebsiteRequestUpdate struct {
	Status      *string `json:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed Rejected"`
	SampleURL   *string `json:"sample_url" validate:"omitempty,url"`
	OriginalURL *string `json:"original_url" validate:"omitempty,url"`
}

// AdminUpdateWebsiteRequest drives the build workflow: status changes email
// the requester, and a newly set sample URL triggers an async preview
// screenshot capture.
func AdminUpdateWebsiteRequest(c *fiber.Ctx) error {
	var req AdminWebsiteRequestUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var request models.WebsiteRequest
	if err := database.DB.Preload("User").First(&request, c.Params("id")).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"detail": "Not found."})
	}

	oldStatus := request.Status
	sampleURLChanged := false
	if req.Status != nil {
		request.Status = *req.Status
	}
	if req.SampleURL != nil && (request.SampleURL == nil || *request.SampleURL != *req.SampleURL) {
		request.SampleURL = req.SampleURL
		sampleURLChanged = true
	}
	if req.OriginalURL != nil {
		request.OriginalURL = req.OriginalURL
	}

	if err := database.DB.Save(&request).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update request"})
	}

	if request.Status != oldStatus {
		go notifications.SendEmail(
			request.User.Name,
			request.User.Email,
			fmt.Sprintf("Website Request Update - %s", request.Status),
			fmt.Sprintf("<h1>Website Request Update</h1><p>Hello %s, your request status has been updated to: <b>%s</b>.</p><p><b>Request ID:</b> %d<br><b>Website Name:</b> %s</p>", request.User.Name, request.Status, request.ID, request.WebsiteName),
		)
		log.Printf("Website request %d status changed from %s to %s", request.ID, oldStatus, request.Status)
	}

	if sampleURLChanged {
		go services.CapturePreviewImage(request.ID)
	}

	return c.JSON(request)
}
