package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ChatHandler struct {
	service service.ChatService
}

func NewChatHandler(s service.ChatService) *ChatHandler {
	return &ChatHandler{service: s}
}

type ChatRequest struct {
	Message string `json:"message"`
}

// Chat proxies a customer message to the chat completion service
// POST /api/v1/chatbot
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.Message == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Message is required"})
	}

	reply, err := h.service.Reply(req.Message)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Chatbot service error"})
	}

	return c.JSON(fiber.Map{"message": reply})
}
