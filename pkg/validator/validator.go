package validator

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FieldError is one failed validation rule on a request or model field.
type FieldError struct {
	Field string
	Rule  string
	Param string
}

func (e FieldError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("field '%s' failed on rule '%s=%s'", e.Field, e.Rule, e.Param)
	}
	return fmt.Sprintf("field '%s' failed on rule '%s'", e.Field, e.Rule)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// uuid.UUID's zero value slips through "required", so reference fields
	// (product and supplier ids) are tagged with this instead.
	v.RegisterValidation("uuid_required", func(fl validator.FieldLevel) bool {
		id, ok := fl.Field().Interface().(uuid.UUID)
		return ok && id != uuid.Nil
	})
	return v
}

// ValidateStruct checks every tagged field of data and returns the failures,
// or nil when the struct is valid.
func ValidateStruct(data interface{}) []FieldError {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "struct", Rule: "invalid"}}
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{
			Field: fe.StructNamespace(),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
