package checkout

import (
	"strings"
	"testing"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/common/models"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func juanDraft() models.OrderDraft {
	return models.OrderDraft{
		CustomerName:  "Juan Dela Cruz",
		ContactNumber: "09171234567",
		ServiceType:   enum.DELIVERY,
		ScheduledDate: "2025-06-01",
		ScheduledTime: "10:00 AM",
		Address:       "123 Rizal St",
	}
}

func latte() models.CartItem {
	return models.CartItem{ID: "latte", Name: "Iced Latte", TotalPrice: 120.0, Quantity: 2}
}

func TestBuildOrderMessage_EndToEnd(t *testing.T) {
	msg := BuildOrderMessage(juanDraft(), []models.CartItem{latte()}, 240.0, nil, nil)

	want := "🛒 Hava Java ORDER\n" +
		"\n" +
		"👤 Customer: Juan Dela Cruz\n" +
		"📞 Contact: 09171234567\n" +
		"📍 Service: Delivery\n" +
		"📅 Date: 2025-06-01\n" +
		"⏰ Time: 10:00 AM\n" +
		"🏠 Address: 123 Rizal St\n" +
		"\n" +
		"💳 Payment Method: Cash\n" +
		"\n" +
		"\n" +
		"📋 ORDER DETAILS:\n" +
		"• Iced Latte x2 - ₱240.00\n" +
		"\n" +
		"💰 TOTAL: ₱240.00\n" +
		"\n" +
		"\n" +
		"\n" +
		"Kindly SEND this message to confirm your order. Thank you for choosing Hava Java!"

	assert.Equal(t, want, msg)
	assert.Contains(t, msg, "📍 Service: Delivery")
	assert.Contains(t, msg, "🏠 Address: 123 Rizal St")
	assert.NotContains(t, msg, "Landmark")
	assert.Contains(t, msg, "💳 Payment Method: Cash")
	assert.Contains(t, msg, "• Iced Latte x2 - ₱240.00")
	assert.Contains(t, msg, "💰 TOTAL: ₱240.00")
}

// Bundle entries follow the promotion's option order, not the order the
// customer picked them in; unknown ids come last, sorted by id.
func TestBuildOrderMessage_BundleFollowsPromotionOptionOrder(t *testing.T) {
	item := latte()
	item.Promotion = &models.Promotion{ID: "p", Options: []models.PromotionOption{
		{ID: "a", Name: "Croissant"},
		{ID: "b", Name: "Muffin"},
		{ID: "c", Name: "Cookie"},
	}}
	item.SelectedPromoOptions = map[string]int{"c": 1, "zz": 4, "a": 2, "b": 3, "yy": 5}

	first := BuildOrderMessage(juanDraft(), []models.CartItem{item}, 240, nil, nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, BuildOrderMessage(juanDraft(), []models.CartItem{item}, 240, nil, nil))
	}
	assert.Contains(t, first, "[Bundle: 2x Croissant, 3x Muffin, 1x Cookie, 5x Unknown, 4x Unknown]")
}

func TestBuildOrderMessage_LandmarkAndNotes(t *testing.T) {
	d := juanDraft()
	d.Landmark = "Near the church"
	d.Notes = "Less ice please"

	msg := BuildOrderMessage(d, []models.CartItem{latte()}, 240, nil, nil)

	assert.Contains(t, msg, "🏠 Address: 123 Rizal St\n🗺️ Landmark: Near the church\n\n💳")
	assert.Contains(t, msg, "💰 TOTAL: ₱240.00\n\n📝 Notes: Less ice please\n\nKindly SEND")
}

func TestBuildOrderMessage_PickupUsesBranch(t *testing.T) {
	d := juanDraft()
	d.ServiceType = enum.PICKUP
	d.Branch = "Quezon City"
	d.Landmark = "kept but unused"

	msg := BuildOrderMessage(d, []models.CartItem{latte()}, 240, nil, nil)

	assert.Contains(t, msg, "📍 Service: Pickup")
	assert.Contains(t, msg, "⏰ Time: 10:00 AM\n🏢 Branch: Quezon City\n\n💳")
	assert.NotContains(t, msg, "Address")
	assert.NotContains(t, msg, "Landmark")
}

func TestBuildOrderMessage_PaymentMethod(t *testing.T) {
	gcash := &models.PaymentMethod{ID: "gcash", Name: "GCash", AccountNumber: ptr("09181112222"), AccountName: ptr("Hava Java")}

	msg := BuildOrderMessage(juanDraft(), []models.CartItem{latte()}, 240, gcash, nil)
	assert.Contains(t, msg, "💳 Payment Method: GCash\nAccount: 09181112222\n\n📋 ORDER DETAILS:")

	noAccount := &models.PaymentMethod{ID: "cod", Name: "Cash on Delivery", AccountNumber: ptr("")}
	msg = BuildOrderMessage(juanDraft(), []models.CartItem{latte()}, 240, noAccount, nil)
	assert.Contains(t, msg, "💳 Payment Method: Cash on Delivery\n\n\n📋")
	assert.NotContains(t, msg, "Account:")
}

func TestBuildOrderMessage_ItemLines(t *testing.T) {
	tests := []struct {
		name string
		item models.CartItem
		want string
	}{
		{
			name: "variation",
			item: models.CartItem{Name: "Americano", TotalPrice: 95, Quantity: 1, SelectedVariation: &models.Variation{Name: "Large"}},
			want: "• Americano (Large) x1 - ₱95.00",
		},
		{
			name: "add-ons with and without quantity",
			item: models.CartItem{
				Name: "Mocha", TotalPrice: 150.5, Quantity: 3,
				SelectedAddOns: []models.AddOn{
					{Name: "Extra Shot", Quantity: ptr(2)},
					{Name: "Oat Milk", Quantity: ptr(1)},
					{Name: "Syrup"},
				},
			},
			want: "• Mocha + Extra Shot x2, Oat Milk, Syrup x3 - ₱451.50",
		},
		{
			name: "unresolved promo option",
			item: models.CartItem{
				Name: "Barkada Bundle", TotalPrice: 1000, Quantity: 2,
				Promotion:            &models.Promotion{ID: "p1", Options: []models.PromotionOption{{ID: "opt2", Name: "Latte"}}},
				SelectedPromoOptions: map[string]int{"opt1": 2},
			},
			want: "• Barkada Bundle [Bundle: 2x Unknown] x2 - ₱2,000.00",
		},
		{
			name: "empty bundle selection",
			item: models.CartItem{
				Name: "Barkada Bundle", TotalPrice: 500, Quantity: 1,
				Promotion:            &models.Promotion{ID: "p1", Options: []models.PromotionOption{{ID: "opt1", Name: "Latte"}}},
				SelectedPromoOptions: map[string]int{},
			},
			want: "• Barkada Bundle [Bundle: ] x1 - ₱500.00",
		},
		{
			name: "half cent line total rounds up",
			item: models.CartItem{Name: "Cookie", TotalPrice: 0.125, Quantity: 1},
			want: "• Cookie x1 - ₱0.13",
		},
		{
			name: "promo options without promotion are ignored",
			item: models.CartItem{
				Name: "Latte", TotalPrice: 100, Quantity: 1,
				SelectedPromoOptions: map[string]int{"opt1": 2},
			},
			want: "• Latte x1 - ₱100.00",
		},
		{
			name: "everything",
			item: models.CartItem{
				Name: "Combo", TotalPrice: 0.1, Quantity: 3,
				SelectedVariation:    &models.Variation{Name: "Regular"},
				SelectedAddOns:       []models.AddOn{{Name: "Cream"}},
				Promotion:            &models.Promotion{Options: []models.PromotionOption{{ID: "x", Name: "Bread"}}},
				SelectedPromoOptions: map[string]int{"x": 1},
			},
			want: "• Combo (Regular) + Cream [Bundle: 1x Bread] x3 - ₱0.30",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := BuildOrderMessage(juanDraft(), []models.CartItem{tt.item}, 0, nil, nil)
			assert.Contains(t, msg, "📋 ORDER DETAILS:\n"+tt.want+"\n\n💰")
		})
	}
}

func TestBuildOrderMessage_KeepsCartOrder(t *testing.T) {
	items := []models.CartItem{
		{Name: "Zebra Cake", TotalPrice: 10, Quantity: 1},
		{Name: "Apple Pie", TotalPrice: 20, Quantity: 1},
	}

	msg := BuildOrderMessage(juanDraft(), items, 30, nil, nil)

	assert.Less(t, strings.Index(msg, "Zebra Cake"), strings.Index(msg, "Apple Pie"))
}

func TestBuildOrderMessage_UsesFormatter(t *testing.T) {
	calls := 0
	format := func(amount float64) string {
		calls++
		return "X"
	}

	msg := BuildOrderMessage(juanDraft(), []models.CartItem{latte()}, 240, nil, format)

	assert.Equal(t, 2, calls)
	assert.Contains(t, msg, "• Iced Latte x2 - ₱X")
	assert.Contains(t, msg, "💰 TOTAL: ₱X")
}

func TestBuildOrderMessage_Trims(t *testing.T) {
	d := juanDraft()
	d.Notes = "   "

	msg := BuildOrderMessage(d, nil, 0, nil, nil)

	assert.True(t, strings.HasPrefix(msg, "🛒 Hava Java ORDER"))
	assert.True(t, strings.HasSuffix(msg, "Thank you for choosing Hava Java!"))
}
