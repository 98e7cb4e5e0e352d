package handlers

import (
	"fmt"
	"log"
	"strconv"

	"github.com/framestack/framestack_backend/database"
	"github.com/framestack/framestack_backend/jobs"
	"github.com/framestack/framestack_backend/models"
	"github.com/framestack/framestack_backend/notifications"
	"github.com/framestack/framestack_backend/payments"
	"github.com/framestack/framestack_backend/utils"
	"github.com/gofiber/fiber/v2"
)

type PurchaseRequest struct {
	Plan    string `json:"plan" validate:"required"`
	Credits int    `json:"credits" validate:"gte=0"`
}

// DummyPayment simulates a successful purchase: expired plans are reset
// first, then the plan and credits are applied and the order recorded.
func DummyPayment(c *fiber.Ctx) error {
	var req PurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Plan is required."})
	}

	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	jobs.ResetExpiredPlanFor(user)

	user.Credit += req.Credits
	user.Plan = req.Plan
	if err := database.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update plan"})
	}

	order := models.Order{
		UserID:  user.ID,
		Plan:    req.Plan,
		Credits: req.Credits,
		Status:  "completed",
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record order"})
	}

	go sendPurchaseEmail(user, req.Plan, req.Credits)
	log.Printf("Payment successful for %s - Plan: %s, Credits: %d", user.Email, req.Plan, req.Credits)

	return c.JSON(fiber.Map{
		"message": "Payment successful!",
		"plan":    user.Plan,
		"credits": user.Credit,
	})
}

// CreateOrder registers a payment order with the gateway before checkout.
func CreateOrder(c *fiber.Ctx) error {
	type Request struct {
		Amount   int    `json:"amount" validate:"required,gt=0"`
		Currency string `json:"currency"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	order, err := payments.CreateOrder(req.Amount*100, req.Currency, utils.OrderReceipt(), map[string]string{
		"user_id": strconv.FormatUint(uint64(user.ID), 10),
		"email":   user.Email,
	})
	if err != nil {
		log.Printf("Failed to create payment order for %s: %v", user.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create order"})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// VerifyPayment checks the gateway signature and applies the purchased plan.
func VerifyPayment(c *fiber.Ctx) error {
	type Request struct {
		PaymentID string `json:"payment_id" validate:"required"`
		OrderID   string `json:"order_id" validate:"required"`
		Signature string `json:"signature" validate:"required"`
		Plan      string `json:"plan" validate:"required"`
		Credits   int    `json:"credits" validate:"gte=0"`
	}
	var req Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing payment information"})
	}

	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	if !payments.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		log.Printf("Payment verification failed for user %s", user.Email)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Payment verification failed"})
	}

	user.Plan = req.Plan
	user.Credit += req.Credits
	if err := database.DB.Save(user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update plan"})
	}

	order := models.Order{
		UserID:  user.ID,
		Plan:    req.Plan,
		Credits: req.Credits,
		Status:  "completed",
	}
	if err := database.DB.Create(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to record order"})
	}

	go sendPurchaseEmail(user, req.Plan, req.Credits)
	log.Printf("Payment verified for user %s: %s plan, %d credits", user.Email, req.Plan, req.Credits)

	return c.JSON(fiber.Map{
		"message":    "Payment verified successfully",
		"plan":       user.Plan,
		"credits":    user.Credit,
		"payment_id": req.PaymentID,
	})
}

func UserOrders(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var orders []models.Order
	if err := database.DB.Where("user_id = ?", user.ID).Order("created_at desc").Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch orders"})
	}
	return c.JSON(orders)
}

func sendPurchaseEmail(user *models.User, plan string, addedCredits int) {
	notifications.SendEmail(
		user.Name,
		user.Email,
		fmt.Sprintf("🎉 Welcome to the %s Plan - Payment Confirmed!", plan),
		fmt.Sprintf(
			"<h2>Welcome to FrameStack 🎉</h2><p>Hi <strong>%s</strong>, thank you for purchasing the <strong>%s</strong> plan!</p><ul><li>Credits Added: %d</li><li>Total Credits: %d</li></ul><p>Start building websites from your dashboard.</p>",
			user.Name, plan, addedCredits, user.Credit,
		),
	)
}
