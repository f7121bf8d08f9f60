package middleware

import (
	"strings"

	"go-storefront-api/internal/repository"
	"go-storefront-api/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the bearer token and resolves it to an account. The
// account's current role is read from the store, not from the token, so role
// changes take effect without waiting for token expiry.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		// Set account info in context for downstream handlers
		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole checks that the authenticated account's role is in the
// required set. Consulted before every mutating operation and before
// administrative reads.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		for _, r := range roles {
			if r == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of " + strings.Join(roles, ", ") + " roles",
		})
	}
}
