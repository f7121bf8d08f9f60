package service

import (
	"fmt"

	"go-storefront-api/pkg/validator"
)

// validateStruct runs struct validation and wraps the first failure in
// ErrValidation so handlers can map it to a 400.
func validateStruct(data interface{}) error {
	errs := validator.ValidateStruct(data)
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrValidation, errs[0].Error())
}
