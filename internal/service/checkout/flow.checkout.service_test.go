package checkout

import (
	"context"
	"net/url"
	"testing"
	"time"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/messenger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*60*60)

// 2025-05-31 23:30 UTC is already June 1st in Manila.
var sessionStart = time.Date(2025, 5, 31, 23, 30, 0, 0, time.UTC)

type captureOpener struct {
	calls []messenger.Handoff
}

func (c *captureOpener) Open(_ context.Context, h messenger.Handoff) {
	c.calls = append(c.calls, h)
}

func newFlow() *Flow {
	return NewFlow(NewSession("s-1", sessionStart, manila, []models.CartItem{latte()}, 240))
}

func fillDetails(t *testing.T, f *Flow) {
	t.Helper()
	require.NoError(t, f.SetCustomerName("Juan Dela Cruz"))
	require.NoError(t, f.SetContactNumber("09171234567"))
	require.NoError(t, f.SetScheduledDate("2025-06-01"))
	require.NoError(t, f.SetScheduledTime("10:00 AM"))
	require.NoError(t, f.SetAddress("123 Rizal St"))
}

func TestNewSession(t *testing.T) {
	s := NewSession("s-1", sessionStart, manila, nil, 0)

	assert.Equal(t, enum.STEP_DETAILS, s.Step)
	assert.Equal(t, "2025-06-01", s.SessionDate)
	assert.Equal(t, "2025-06-01", s.Draft.ScheduledDate)
	assert.Equal(t, enum.DELIVERY, s.Draft.ServiceType)
	assert.Nil(t, s.Draft.SelectedPaymentMethod)
}

func TestDetailsValid_DeliveryNeedsAddress(t *testing.T) {
	d := juanDraft()
	require.True(t, DetailsValid(d))

	d.Address = ""
	d.Branch = "Manila"
	assert.False(t, DetailsValid(d))
	assert.Equal(t, []string{"address"}, MissingDetails(d))
}

func TestDetailsValid_PickupNeedsBranch(t *testing.T) {
	d := juanDraft()
	d.ServiceType = enum.PICKUP
	assert.False(t, DetailsValid(d), "address alone does not satisfy pickup")
	assert.Equal(t, []string{"branch"}, MissingDetails(d))

	d.Branch = "Pasig"
	d.Address = ""
	assert.True(t, DetailsValid(d))
}

func TestDetailsValid_RequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		clear func(*models.OrderDraft)
		field string
	}{
		{name: "name", clear: func(d *models.OrderDraft) { d.CustomerName = "" }, field: "customerName"},
		{name: "contact", clear: func(d *models.OrderDraft) { d.ContactNumber = "" }, field: "contactNumber"},
		{name: "date", clear: func(d *models.OrderDraft) { d.ScheduledDate = "" }, field: "scheduledDate"},
		{name: "time", clear: func(d *models.OrderDraft) { d.ScheduledTime = "" }, field: "scheduledTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := juanDraft()
			tt.clear(&d)
			assert.False(t, DetailsValid(d))
			assert.Equal(t, []string{tt.field}, MissingDetails(d))
		})
	}
}

func TestSubmit_RefusedWhileInvalid(t *testing.T) {
	f := newFlow()
	assert.False(t, f.CanSubmit())

	err := f.Submit()
	require.ErrorIs(t, err, ErrDetailsInvalid)

	var missing *MissingFieldsError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, []string{"customerName", "contactNumber", "scheduledTime", "address"}, missing.Fields)
	assert.Equal(t, enum.STEP_DETAILS, f.Step())
}

func TestSubmitAndBack_PreserveDraft(t *testing.T) {
	f := newFlow()
	fillDetails(t, f)
	require.NoError(t, f.SetLandmark("Blue gate"))
	require.NoError(t, f.SetNotes("No sugar"))
	require.True(t, f.CanSubmit())

	require.NoError(t, f.Submit())
	assert.Equal(t, enum.STEP_PAYMENT, f.Step())
	assert.False(t, f.CanSubmit())
	assert.True(t, f.CanGoBack())
	assert.False(t, f.CanExit())

	before := f.Draft()
	require.NoError(t, f.Back())
	assert.Equal(t, enum.STEP_DETAILS, f.Step())
	assert.Equal(t, before, f.Draft())

	assert.ErrorIs(t, f.Back(), ErrWrongStep)
}

func TestServiceTypeToggle_DoesNotClearFields(t *testing.T) {
	f := newFlow()
	require.NoError(t, f.SetAddress("123 Rizal St"))
	require.NoError(t, f.SetLandmark("Blue gate"))

	require.NoError(t, f.SetServiceType(enum.PICKUP))
	require.NoError(t, f.SetBranch("Caloocan"))
	assert.Equal(t, "123 Rizal St", f.Draft().Address)

	require.NoError(t, f.SetServiceType(enum.DELIVERY))
	assert.Equal(t, "123 Rizal St", f.Draft().Address)
	assert.Equal(t, "Blue gate", f.Draft().Landmark)
	assert.Equal(t, "Caloocan", f.Draft().Branch)

	assert.ErrorIs(t, f.SetServiceType("dine-in"), ErrInvalidServiceType)
	assert.Equal(t, enum.DELIVERY, f.Draft().ServiceType)
}

func TestSetScheduledDate(t *testing.T) {
	f := newFlow()

	assert.ErrorIs(t, f.SetScheduledDate("2025-05-31"), ErrDateBeforeSession)
	assert.Equal(t, "2025-06-01", f.Draft().ScheduledDate, "rejected date must not be clamped or stored")

	assert.ErrorIs(t, f.SetScheduledDate("06/02/2025"), ErrInvalidDate)

	require.NoError(t, f.SetScheduledDate("2025-06-01"))
	require.NoError(t, f.SetScheduledDate("2025-12-24"))
	assert.Equal(t, "2025-12-24", f.Draft().ScheduledDate)

	require.NoError(t, f.SetScheduledDate(""))
	assert.Contains(t, MissingDetails(f.Draft()), "scheduledDate")
}

func TestSetScheduledTimeAndBranch(t *testing.T) {
	f := newFlow()

	assert.ErrorIs(t, f.SetScheduledTime("10:15 AM"), ErrInvalidTimeSlot)
	assert.ErrorIs(t, f.SetScheduledTime("9:30 PM"), ErrInvalidTimeSlot)
	require.NoError(t, f.SetScheduledTime("9:00 PM"))
	require.NoError(t, f.SetScheduledTime(""))

	assert.ErrorIs(t, f.SetBranch("Makati"), ErrInvalidBranch)
	require.NoError(t, f.SetBranch("Parañaque"))
	require.NoError(t, f.SetBranch(""))
}

func TestDetailSettersOnlyInDetailsStep(t *testing.T) {
	f := newFlow()
	fillDetails(t, f)
	require.NoError(t, f.Submit())

	assert.ErrorIs(t, f.SetCustomerName("x"), ErrWrongStep)
	assert.ErrorIs(t, f.SetNotes("x"), ErrWrongStep)
	assert.ErrorIs(t, f.SetServiceType(enum.PICKUP), ErrWrongStep)
	assert.ErrorIs(t, f.Submit(), ErrWrongStep)
	assert.Equal(t, "Juan Dela Cruz", f.Draft().CustomerName)
}

func TestExit(t *testing.T) {
	f := newFlow()
	exited := 0

	require.NoError(t, f.Exit(func() { exited++ }))
	assert.Equal(t, 1, exited)

	fillDetails(t, f)
	require.NoError(t, f.Submit())
	assert.ErrorIs(t, f.Exit(func() { exited++ }), ErrWrongStep)
	assert.Equal(t, 1, exited)
}

func TestPlaceOrder_BlockedWithoutPaymentMethod(t *testing.T) {
	f := newFlow()
	opener := &captureOpener{}

	_, err := f.PlaceOrder(context.Background(), "", nil, opener)
	assert.ErrorIs(t, err, ErrWrongStep)

	fillDetails(t, f)
	require.NoError(t, f.Submit())
	assert.False(t, f.CanPlaceOrder())

	_, err = f.PlaceOrder(context.Background(), "", nil, opener)
	assert.ErrorIs(t, err, ErrPaymentNotSelected)
	assert.Empty(t, opener.calls)
}

func TestPlaceOrder_HandsOffLink(t *testing.T) {
	f := newFlow()
	fillDetails(t, f)
	require.NoError(t, f.Submit())

	assert.ErrorIs(t, NewFlow(NewSession("x", sessionStart, manila, nil, 0)).SelectPaymentMethod(&models.PaymentMethod{}), ErrWrongStep)

	gcash := &models.PaymentMethod{ID: "gcash", Name: "GCash", AccountNumber: ptr("0918")}
	require.NoError(t, f.SelectPaymentMethod(gcash))
	gcash.Name = "mutated"
	assert.Equal(t, "GCash", f.Draft().SelectedPaymentMethod.Name, "selection is a copy")
	require.True(t, f.CanPlaceOrder())

	opener := &captureOpener{}
	h, err := f.PlaceOrder(context.Background(), "CafeHavaJava", nil, opener)
	require.NoError(t, err)
	require.Len(t, opener.calls, 1)
	assert.Equal(t, *h, opener.calls[0])
	assert.Equal(t, enum.STEP_PAYMENT, f.Step(), "placing the order does not move the flow")

	assert.Equal(t, "s-1", h.SessionID)
	assert.Contains(t, h.Message, "💳 Payment Method: GCash\nAccount: 0918")

	u, err := url.Parse(h.Link)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "m.me", u.Host)
	assert.Equal(t, "/CafeHavaJava", u.Path)
	assert.Equal(t, h.Message, u.Query().Get("text"))

	require.NoError(t, f.SelectPaymentMethod(nil))
	assert.False(t, f.CanPlaceOrder())
}

func TestView(t *testing.T) {
	f := newFlow()
	v := f.View()

	assert.Equal(t, "s-1", v.ID)
	assert.Equal(t, enum.STEP_DETAILS, v.Step)
	assert.False(t, v.DetailsValid)
	assert.False(t, v.CanSubmit)
	assert.True(t, v.CanExit)
	assert.False(t, v.CanGoBack)
	assert.False(t, v.CanPlaceOrder)
	assert.NotEmpty(t, v.MissingFields)

	fillDetails(t, f)
	v = f.View()
	assert.True(t, v.DetailsValid)
	assert.True(t, v.CanSubmit)
	assert.Equal(t, []string{}, v.MissingFields)
}
