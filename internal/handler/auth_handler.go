package handler

import (
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService  service.AuthService
	oauthService service.OAuthService
}

func NewAuthHandler(authService service.AuthService, oauthService service.OAuthService) *AuthHandler {
	return &AuthHandler{authService: authService, oauthService: oauthService}
}

// RegisterRequest represents the register request body
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles account creation
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Name, email and password are required"})
	}
	if len(req.Password) < 6 {
		return c.Status(400).JSON(fiber.Map{"error": "Password must be at least 6 characters"})
	}

	response, err := h.authService.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(201).JSON(response)
}

// Login handles user authentication
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Email and password are required"})
	}

	response, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(response)
}

// GoogleCallback completes the Google handshake: exchanges the authorization
// code for a verified profile, then resolves it to a local account.
// GET /api/v1/auth/google/callback
func (h *AuthHandler) GoogleCallback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(400).JSON(fiber.Map{"error": "Missing authorization code"})
	}

	name, email, err := h.oauthService.ExchangeGoogleCode(code)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "OAuth exchange failed"})
	}

	response, err := h.authService.ResolveOAuthAccount(name, email)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(response)
}
