package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// CreateOrderRequest is the cart snapshot submitted at checkout.
type CreateOrderRequest struct {
	Items []service.OrderItemInput `json:"items"`
}

// UpdateStatusRequest carries the new status value.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// CreateOrder places an order for the authenticated account
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.service.CreateOrder(userID, req.Items)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Order placed", "data": order})
}

// GetAllOrders returns every order, newest first (admin view)
// GET /api/v1/orders/all
func (h *OrderHandler) GetAllOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListAllOrders()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetMyOrders returns the authenticated account's own orders
// GET /api/v1/orders/my-orders
func (h *OrderHandler) GetMyOrders(c *fiber.Ctx) error {
	userID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.service.ListOrdersForUser(userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// UpdateStatus sets an order's status (admin only)
// PUT /api/v1/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	order, err := h.service.UpdateStatus(orderID, model.OrderStatus(req.Status), getUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Order status updated", "data": order})
}
