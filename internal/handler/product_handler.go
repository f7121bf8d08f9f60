package handler

import (
	"go-storefront-api/internal/model"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	service service.CatalogService
}

func NewProductHandler(s service.CatalogService) *ProductHandler {
	return &ProductHandler{service: s}
}

func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.service.CreateProduct(&product, getUserID(c), getUserName(c)); err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": product})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &product, getUserID(c), getUserName(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
	}

	if err := h.service.DeleteProduct(id, getUserID(c)); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}
