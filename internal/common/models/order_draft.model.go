package models

import (
	"time"

	"hava-checkout/internal/common/enum"
)

// OrderDraft is the transient order being assembled in one checkout
// session. Address/landmark and branch are both kept regardless of the
// service type; the service type only decides which of them is checked.
type OrderDraft struct {
	CustomerName          string               `json:"customerName"`
	ContactNumber         string               `json:"contactNumber"`
	ServiceType           enum.ServiceTypeEnum `json:"serviceType"`
	ScheduledDate         string               `json:"scheduledDate"`
	ScheduledTime         string               `json:"scheduledTime"`
	Address               string               `json:"address"`
	Landmark              string               `json:"landmark"`
	Branch                string               `json:"branch"`
	Notes                 string               `json:"notes"`
	SelectedPaymentMethod *PaymentMethod       `json:"selectedPaymentMethod"`
}

// CheckoutSession is everything the service keeps for one browsing session.
type CheckoutSession struct {
	ID          string                `json:"id"`
	Step        enum.CheckoutStepEnum `json:"step"`
	SessionDate string                `json:"sessionDate"`
	Draft       OrderDraft            `json:"draft"`
	Cart        []CartItem            `json:"cart"`
	Total       float64               `json:"total"`
	CreatedAt   time.Time             `json:"createdAt"`
	UpdatedAt   time.Time             `json:"updatedAt"`
}
