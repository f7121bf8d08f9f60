package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SupplierOrderHandler struct {
	service service.SupplierOrderService
}

func NewSupplierOrderHandler(s service.SupplierOrderService) *SupplierOrderHandler {
	return &SupplierOrderHandler{service: s}
}

// CreateSupplierOrderRequest is the procurement batch an admin submits.
type CreateSupplierOrderRequest struct {
	SupplierID string                           `json:"supplier_id"`
	Items      []service.SupplierOrderItemInput `json:"items"`
	Notes      string                           `json:"notes"`
}

// CreateSupplierOrder opens a procurement batch (admin only)
// POST /api/v1/supplier-orders
func (h *SupplierOrderHandler) CreateSupplierOrder(c *fiber.Ctx) error {
	var req CreateSupplierOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplierID, err := parseUUID(req.SupplierID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid supplier ID"})
	}

	adminID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.service.CreateSupplierOrder(adminID, supplierID, req.Items, req.Notes)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(order)
}

// GetAllSupplierOrders lists every procurement batch (admin only)
// GET /api/v1/supplier-orders/admin/all
func (h *SupplierOrderHandler) GetAllSupplierOrders(c *fiber.Ctx) error {
	orders, err := h.service.ListForAdmin()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetMyOrders lists the calling supplier's assigned orders
// GET /api/v1/supplier-orders/my-orders
func (h *SupplierOrderHandler) GetMyOrders(c *fiber.Ctx) error {
	supplierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	orders, err := h.service.ListForSupplier(supplierID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(orders)
}

// GetSuppliers lists registered supplier accounts (admin only)
// GET /api/v1/supplier-orders/suppliers/list
func (h *SupplierOrderHandler) GetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.ListSuppliers()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(suppliers)
}

// UpdateStatus lets the assigned supplier advance their order
// PUT /api/v1/supplier-orders/:id/status
func (h *SupplierOrderHandler) UpdateStatus(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	supplierID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.service.AdvanceStatus(supplierID, orderID, model.SupplierOrderStatus(req.Status))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(order)
}

// Deliver marks the order delivered and credits stock (admin only)
// PUT /api/v1/supplier-orders/:id/deliver
func (h *SupplierOrderHandler) Deliver(c *fiber.Ctx) error {
	orderID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	adminID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	order, err := h.service.Deliver(adminID, orderID)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Stock updated successfully", "order": order})
}
