package checkout

import (
	"errors"
	"net/http"
	"strings"
)

var (
	ErrSessionNotFound           = errors.New("checkout session not found")
	ErrWrongStep                 = errors.New("action not available in the current step")
	ErrDetailsInvalid            = errors.New("order details are incomplete")
	ErrPaymentNotSelected        = errors.New("no payment method selected")
	ErrInvalidServiceType        = errors.New("service type must be delivery or pickup")
	ErrInvalidDate               = errors.New("scheduled date must be formatted as YYYY-MM-DD")
	ErrDateBeforeSession         = errors.New("scheduled date cannot be before today")
	ErrInvalidTimeSlot           = errors.New("scheduled time is not an available slot")
	ErrInvalidBranch             = errors.New("branch is not available for pickup")
	ErrPaymentMethodNotFound     = errors.New("payment method not found")
	ErrPaymentMethodsUnavailable = errors.New("payment methods are not available yet")
)

// MissingFieldsError lists the draft fields that keep details-valid false.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return ErrDetailsInvalid.Error() + ": missing " + strings.Join(e.Fields, ", ")
}

func (e *MissingFieldsError) Unwrap() error { return ErrDetailsInvalid }

// HTTPStatus maps a checkout error onto a response code.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	case errors.Is(err, ErrSessionNotFound),
		errors.Is(err, ErrPaymentMethodNotFound):
		return http.StatusNotFound

	case errors.Is(err, ErrWrongStep),
		errors.Is(err, ErrDetailsInvalid),
		errors.Is(err, ErrPaymentNotSelected):
		return http.StatusConflict

	case errors.Is(err, ErrInvalidServiceType),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrDateBeforeSession),
		errors.Is(err, ErrInvalidTimeSlot),
		errors.Is(err, ErrInvalidBranch):
		return http.StatusBadRequest

	case errors.Is(err, ErrPaymentMethodsUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
