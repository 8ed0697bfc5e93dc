package enum

import (
	"github.com/go-playground/validator/v10"
)

// Validator is implemented by every enum type in this package.
type Validator interface {
	IsValid() bool
}

// ValidateEnum is registered as the "enum" validation tag. Empty values
// are left to "required"/"omitempty".
func ValidateEnum(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() == 0 {
		return false
	}
	if field.String() == "" {
		return true
	}

	value, ok := field.Interface().(Validator)
	if !ok {
		return false
	}
	return value.IsValid()
}
