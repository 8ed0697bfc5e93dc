package enum

type CheckoutStepEnum string

const (
	STEP_DETAILS CheckoutStepEnum = "details"
	STEP_PAYMENT CheckoutStepEnum = "payment"
)

func (e CheckoutStepEnum) ToString() string {
	switch e {
	case STEP_DETAILS:
		return "details"
	case STEP_PAYMENT:
		return "payment"
	}
	return ""
}

func (e CheckoutStepEnum) IsValid() bool {
	switch e {
	case STEP_DETAILS, STEP_PAYMENT:
		return true
	}
	return false
}
