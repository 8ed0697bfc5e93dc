package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/schedule"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var val *validator.Validate

var validationMessages = map[string]string{
	"required": "is required",
	"oneof":    "must be one of the allowed values: %s",
	"min":      "must be greater than or equal to %s",
	"max":      "must be less than or equal to %s",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lt":       "must be less than %s",
	"lte":      "must be less than or equal to %s",
	"enum":     "must be one of the allowed enum values: %s",
	"timeslot": "must be a half-hour slot between 9:00 AM and 9:00 PM",
	"isodate":  "must be a date formatted as YYYY-MM-DD",
	"uuid":     "must be a valid UUID",
}

func Setup() error {
	val = validator.New(validator.WithRequiredStructEnabled())

	if err := registerValidations(val); err != nil {
		return fmt.Errorf("failed to register custom validations: %w", err)
	}

	val.RegisterTagNameFunc(jsonTagName)

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := registerValidations(v); err != nil {
			return fmt.Errorf("failed to register custom validations in Gin engine: %w", err)
		}
		v.RegisterTagNameFunc(jsonTagName)
	} else {
		return fmt.Errorf("failed to get validation engine")
	}

	return nil
}

func jsonTagName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func registerValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("enum", enum.ValidateEnum); err != nil {
		return fmt.Errorf("failed to register enum validation: %w", err)
	}
	if err := v.RegisterValidation("timeslot", validateTimeSlot); err != nil {
		return fmt.Errorf("failed to register timeslot validation: %w", err)
	}
	if err := v.RegisterValidation("isodate", validateISODate); err != nil {
		return fmt.Errorf("failed to register isodate validation: %w", err)
	}
	return nil
}

// validateTimeSlot accepts an empty value (a cleared select) or one of the
// generated slot labels.
func validateTimeSlot(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || schedule.IsTimeSlot(s)
}

func validateISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := helper.ParseDate(s)
	return err == nil
}

func Validate(payload interface{}) error {
	if val == nil {
		if err := Setup(); err != nil {
			return err
		}
	}

	if err := val.Struct(payload); err != nil {
		return errors.New("Validation failed: " + ParseError(err))
	}

	return nil
}

// ParseError renders validator errors as "field: message" pairs. Other
// errors are returned verbatim.
func ParseError(err error) string {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		var sb strings.Builder
		for _, e := range errs {
			tag := e.Tag()
			param := e.Param()

			msg, ok := validationMessages[tag]
			if !ok {
				msg = "is invalid"
			}
			switch tag {
			case "enum":
				msg = fmt.Sprintf(msg, e.Type())
			default:
				if strings.Contains(msg, "%s") {
					msg = fmt.Sprintf(msg, param)
				}
			}
			sb.WriteString(fmt.Sprintf("%s %s", e.Namespace(), msg))
			sb.WriteString(", ")
		}
		return strings.TrimSuffix(sb.String(), ", ")
	}
	return err.Error()
}
