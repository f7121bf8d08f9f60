package service

import (
	"errors"
	"fmt"

	"go-storefront-api/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrValidation         = errors.New("validation failed")

	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	// ErrSupplierOrderNotFound covers both a missing order and an order owned
	// by another supplier. The two cases must stay indistinguishable so the
	// existence of unrelated orders never leaks.
	ErrSupplierOrderNotFound = errors.New("order not found or unauthorized")

	ErrInvalidSupplier  = errors.New("supplier not found or account is not a supplier")
	ErrInvalidStatus    = errors.New("invalid status value")
	ErrAlreadyDelivered = errors.New("order already delivered")
	ErrConflict         = errors.New("order modified concurrently")

	// Insufficient stock is detected by the storage layer's conditional
	// update; the same sentinel is surfaced here.
	ErrInsufficientStock = repository.ErrInsufficientStock
)

// PartialFailureError reports which line items had their stock credit applied
// before the failing one during a delivery. The enclosing storage transaction
// rolls back, so none of the applied credits are committed; the ledger exists
// so an operator can reconcile instead of blindly retrying.
type PartialFailureError struct {
	Applied       []uuid.UUID // product IDs credited before the failure
	FailedIndex   int
	FailedProduct uuid.UUID
	Err           error
}

func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("stock credit failed at line item %d (product %s), %d item(s) applied and rolled back: %v",
		e.FailedIndex, e.FailedProduct, len(e.Applied), e.Err)
}

func (e *PartialFailureError) Unwrap() error { return e.Err }
