package checkout

import (
	"context"
	"fmt"
	"time"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/helper"
	"hava-checkout/internal/pkg/messenger"
	"hava-checkout/internal/pkg/schedule"
)

// NewSession starts a checkout session on the details step. The scheduled
// date defaults to the session date, which is also its lower bound.
func NewSession(id string, now time.Time, loc *time.Location, cart []models.CartItem, total float64) *models.CheckoutSession {
	today := helper.DateIn(now, loc)
	return &models.CheckoutSession{
		ID:          id,
		Step:        enum.STEP_DETAILS,
		SessionDate: today,
		Draft: models.OrderDraft{
			ServiceType:   enum.DELIVERY,
			ScheduledDate: today,
		},
		Cart:      cart,
		Total:     total,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// fulfillment is the part of the draft that depends on the service type.
// Both payloads stay stored on the draft; only the active one is checked.
type fulfillment interface {
	missing() []string
}

type deliveryFulfillment struct {
	address  string
	landmark string
}

func (d deliveryFulfillment) missing() []string {
	if d.address == "" {
		return []string{"address"}
	}
	return nil
}

type pickupFulfillment struct {
	branch string
}

func (p pickupFulfillment) missing() []string {
	if p.branch == "" {
		return []string{"branch"}
	}
	return nil
}

func activeFulfillment(d models.OrderDraft) fulfillment {
	if d.ServiceType == enum.PICKUP {
		return pickupFulfillment{branch: d.Branch}
	}
	return deliveryFulfillment{address: d.Address, landmark: d.Landmark}
}

// MissingDetails lists the fields that keep the draft from advancing, in
// form order.
func MissingDetails(d models.OrderDraft) []string {
	var missing []string
	if d.CustomerName == "" {
		missing = append(missing, "customerName")
	}
	if d.ContactNumber == "" {
		missing = append(missing, "contactNumber")
	}
	if d.ScheduledDate == "" {
		missing = append(missing, "scheduledDate")
	}
	if d.ScheduledTime == "" {
		missing = append(missing, "scheduledTime")
	}
	return append(missing, activeFulfillment(d).missing()...)
}

func DetailsValid(d models.OrderDraft) bool {
	return len(MissingDetails(d)) == 0
}

func PaymentValid(d models.OrderDraft) bool {
	return d.SelectedPaymentMethod != nil
}

// Flow drives one checkout session through details and payment.
type Flow struct {
	s *models.CheckoutSession
}

func NewFlow(s *models.CheckoutSession) *Flow {
	if s.Step == "" {
		s.Step = enum.STEP_DETAILS
	}
	if s.Draft.ServiceType == "" {
		s.Draft.ServiceType = enum.DELIVERY
	}
	return &Flow{s: s}
}

func (f *Flow) Session() *models.CheckoutSession {
	return f.s
}

func (f *Flow) Step() enum.CheckoutStepEnum {
	return f.s.Step
}

func (f *Flow) Draft() models.OrderDraft {
	return f.s.Draft
}

func (f *Flow) CanSubmit() bool {
	return f.s.Step == enum.STEP_DETAILS && DetailsValid(f.s.Draft)
}

func (f *Flow) CanPlaceOrder() bool {
	return f.s.Step == enum.STEP_PAYMENT && PaymentValid(f.s.Draft)
}

func (f *Flow) CanGoBack() bool {
	return f.s.Step == enum.STEP_PAYMENT
}

func (f *Flow) CanExit() bool {
	return f.s.Step == enum.STEP_DETAILS
}

func (f *Flow) inDetails() error {
	if f.s.Step != enum.STEP_DETAILS {
		return fmt.Errorf("edit details in %s step: %w", f.s.Step, ErrWrongStep)
	}
	return nil
}

func (f *Flow) SetCustomerName(name string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	f.s.Draft.CustomerName = name
	return nil
}

func (f *Flow) SetContactNumber(number string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	f.s.Draft.ContactNumber = number
	return nil
}

// SetServiceType switches between delivery and pickup without touching
// the address, landmark or branch already entered.
func (f *Flow) SetServiceType(t enum.ServiceTypeEnum) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	if !t.IsValid() {
		return fmt.Errorf("%q: %w", t, ErrInvalidServiceType)
	}
	f.s.Draft.ServiceType = t
	return nil
}

// SetScheduledDate rejects dates before the session date rather than
// clamping them.
func (f *Flow) SetScheduledDate(date string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	if date != "" {
		picked, err := helper.ParseDate(date)
		if err != nil {
			return fmt.Errorf("%q: %w", date, ErrInvalidDate)
		}
		if earliest, err := helper.ParseDate(f.s.SessionDate); err == nil && picked.Before(earliest) {
			return fmt.Errorf("%s is before %s: %w", date, f.s.SessionDate, ErrDateBeforeSession)
		}
	}
	f.s.Draft.ScheduledDate = date
	return nil
}

func (f *Flow) SetScheduledTime(slot string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	if slot != "" && !schedule.IsTimeSlot(slot) {
		return fmt.Errorf("%q: %w", slot, ErrInvalidTimeSlot)
	}
	f.s.Draft.ScheduledTime = slot
	return nil
}

func (f *Flow) SetAddress(address string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	f.s.Draft.Address = address
	return nil
}

func (f *Flow) SetLandmark(landmark string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	f.s.Draft.Landmark = landmark
	return nil
}

func (f *Flow) SetBranch(branch string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	if branch != "" && !enum.BranchEnum(branch).IsValid() {
		return fmt.Errorf("%q: %w", branch, ErrInvalidBranch)
	}
	f.s.Draft.Branch = branch
	return nil
}

func (f *Flow) SetNotes(notes string) error {
	if err := f.inDetails(); err != nil {
		return err
	}
	f.s.Draft.Notes = notes
	return nil
}

// SelectPaymentMethod stores a copy of method on the draft. Passing nil
// clears the selection.
func (f *Flow) SelectPaymentMethod(method *models.PaymentMethod) error {
	if f.s.Step != enum.STEP_PAYMENT {
		return fmt.Errorf("select payment in %s step: %w", f.s.Step, ErrWrongStep)
	}
	if method == nil {
		f.s.Draft.SelectedPaymentMethod = nil
		return nil
	}
	selected := *method
	f.s.Draft.SelectedPaymentMethod = &selected
	return nil
}

// Submit moves from details to payment when every required detail is set.
func (f *Flow) Submit() error {
	if f.s.Step != enum.STEP_DETAILS {
		return fmt.Errorf("submit in %s step: %w", f.s.Step, ErrWrongStep)
	}
	if missing := MissingDetails(f.s.Draft); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	f.s.Step = enum.STEP_PAYMENT
	return nil
}

// Back returns to the details step keeping every field as entered.
func (f *Flow) Back() error {
	if f.s.Step != enum.STEP_PAYMENT {
		return fmt.Errorf("back in %s step: %w", f.s.Step, ErrWrongStep)
	}
	f.s.Step = enum.STEP_DETAILS
	return nil
}

// Exit leaves the flow through the host-supplied callback.
func (f *Flow) Exit(onExit func()) error {
	if f.s.Step != enum.STEP_DETAILS {
		return fmt.Errorf("exit in %s step: %w", f.s.Step, ErrWrongStep)
	}
	if onExit != nil {
		onExit()
	}
	return nil
}

// PlaceOrder assembles the order message and hands the Messenger link to
// opener. The step does not change.
func (f *Flow) PlaceOrder(ctx context.Context, pageID string, format PriceFormatter, opener messenger.Opener) (*messenger.Handoff, error) {
	if f.s.Step != enum.STEP_PAYMENT {
		return nil, fmt.Errorf("place order in %s step: %w", f.s.Step, ErrWrongStep)
	}
	if !PaymentValid(f.s.Draft) {
		return nil, ErrPaymentNotSelected
	}

	msg := BuildOrderMessage(f.s.Draft, f.s.Cart, f.s.Total, f.s.Draft.SelectedPaymentMethod, format)
	h := messenger.Handoff{
		SessionID: f.s.ID,
		Message:   msg,
		Link:      messenger.DeepLink(pageID, msg),
		CreatedAt: time.Now().UTC(),
	}
	if opener != nil {
		opener.Open(ctx, h)
	}
	return &h, nil
}

// View is the controller state the presentation layer renders.
type View struct {
	ID            string                `json:"id"`
	Step          enum.CheckoutStepEnum `json:"step"`
	SessionDate   string                `json:"sessionDate"`
	Draft         models.OrderDraft     `json:"draft"`
	Cart          []models.CartItem     `json:"cart"`
	Total         float64               `json:"total"`
	MissingFields []string              `json:"missingFields"`
	DetailsValid  bool                  `json:"detailsValid"`
	PaymentValid  bool                  `json:"paymentValid"`
	CanSubmit     bool                  `json:"canSubmit"`
	CanPlaceOrder bool                  `json:"canPlaceOrder"`
	CanGoBack     bool                  `json:"canGoBack"`
	CanExit       bool                  `json:"canExit"`
}

func (f *Flow) View() View {
	missing := MissingDetails(f.s.Draft)
	if missing == nil {
		missing = []string{}
	}
	return View{
		ID:            f.s.ID,
		Step:          f.s.Step,
		SessionDate:   f.s.SessionDate,
		Draft:         f.s.Draft,
		Cart:          f.s.Cart,
		Total:         f.s.Total,
		MissingFields: missing,
		DetailsValid:  len(missing) == 0,
		PaymentValid:  PaymentValid(f.s.Draft),
		CanSubmit:     f.CanSubmit(),
		CanPlaceOrder: f.CanPlaceOrder(),
		CanGoBack:     f.CanGoBack(),
		CanExit:       f.CanExit(),
	}
}
