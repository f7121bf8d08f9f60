package handler

import (
	"errors"

	"go-storefront-api/internal/repository"
	"go-storefront-api/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Helpers to read account info from the request context (set by RequireAuth)
func getUserID(c *fiber.Ctx) string {
	userID := c.Locals("user_id")
	if userID == nil {
		return "system"
	}
	return userID.(string)
}

func getUserUUID(c *fiber.Ctx) (uuid.UUID, error) {
	return uuid.Parse(getUserID(c))
}

func getUserName(c *fiber.Ctx) string {
	userName := c.Locals("user_name")
	if userName == nil {
		return "Unknown"
	}
	return userName.(string)
}

func parseUUID(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

// errStatus maps domain errors onto HTTP status codes.
func errStatus(err error) int {
	var pf *service.PartialFailureError
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSupplier),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrAlreadyDelivered),
		errors.Is(err, service.ErrEmailTaken):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrSupplierOrderNotFound),
		errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		return fiber.StatusConflict
	case errors.As(err, &pf):
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

// fail renders err as a JSON error response. Partial delivery failures
// additionally carry the ledger of applied line items so an operator can
// reconcile instead of blindly retrying.
func fail(c *fiber.Ctx, err error) error {
	var pf *service.PartialFailureError
	if errors.As(err, &pf) {
		return c.Status(errStatus(err)).JSON(fiber.Map{
			"error":          pf.Error(),
			"applied_items":  pf.Applied,
			"failed_item":    pf.FailedIndex,
			"failed_product": pf.FailedProduct,
			"rolled_back":    true,
		})
	}
	return c.Status(errStatus(err)).JSON(fiber.Map{"error": err.Error()})
}
