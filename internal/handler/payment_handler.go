package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type PaymentIntentRequest struct {
	Amount float64 `json:"amount"`
}

// CreatePaymentIntent returns a client secret for completing payment
// client-side. The order core never tracks payment state.
// POST /api/v1/payment/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var req PaymentIntentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	clientSecret, err := h.service.CreatePaymentIntent(req.Amount)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"clientSecret": clientSecret})
}
