package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type UploadHandler struct {
	service service.UploadService
}

func NewUploadHandler(s service.UploadService) *UploadHandler {
	return &UploadHandler{service: s}
}

// Upload stores a product image and returns its reference URL (admin only)
// POST /api/v1/upload
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No file uploaded"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Failed to read uploaded file"})
	}
	defer file.Close()

	url, err := h.service.UploadImage(c.UserContext(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "File uploaded successfully",
		"url":     url,
	})
}
