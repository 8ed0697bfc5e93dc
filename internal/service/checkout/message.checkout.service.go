package checkout

import (
	"fmt"
	"sort"
	"strings"

	"hava-checkout/internal/common/enum"
	"hava-checkout/internal/common/models"
	"hava-checkout/internal/pkg/currency"
	"hava-checkout/internal/pkg/helper"

	"github.com/samber/lo"
)

// PriceFormatter turns an amount into the digits shown after the peso sign.
type PriceFormatter func(amount float64) string

const (
	defaultPaymentName = "Cash"
	unknownOption      = "Unknown"
)

// BuildOrderMessage renders the order text sent through Messenger. It is a
// pure function of its inputs. Optional lines collapse to empty strings
// while the line breaks around them stay.
func BuildOrderMessage(draft models.OrderDraft, items []models.CartItem, total float64, method *models.PaymentMethod, format PriceFormatter) string {
	if format == nil {
		format = currency.FormatPrice
	}

	paymentName := defaultPaymentName
	accountLine := ""
	if method != nil {
		paymentName = method.Name
		if method.HasAccountNumber() {
			accountLine = "Account: " + *method.AccountNumber
		}
	}

	notesLine := ""
	if draft.Notes != "" {
		notesLine = "📝 Notes: " + draft.Notes
	}

	lines := []string{
		"🛒 Hava Java ORDER",
		"",
		"👤 Customer: " + draft.CustomerName,
		"📞 Contact: " + draft.ContactNumber,
		"📍 Service: " + helper.Capitalize(string(draft.ServiceType)),
		"📅 Date: " + draft.ScheduledDate,
		"⏰ Time: " + draft.ScheduledTime,
		fulfillmentBlock(draft),
		"",
		"💳 Payment Method: " + paymentName,
		accountLine,
		"",
		"📋 ORDER DETAILS:",
		strings.Join(lo.Map(items, func(item models.CartItem, _ int) string {
			return itemLine(item, format)
		}), "\n"),
		"",
		"💰 TOTAL: " + currency.Symbol + format(total),
		"",
		notesLine,
		"",
		"Kindly SEND this message to confirm your order. Thank you for choosing Hava Java!",
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func fulfillmentBlock(d models.OrderDraft) string {
	if d.ServiceType == enum.PICKUP {
		return "🏢 Branch: " + d.Branch
	}
	block := "🏠 Address: " + d.Address
	if d.Landmark != "" {
		block += "\n🗺️ Landmark: " + d.Landmark
	}
	return block
}

func itemLine(item models.CartItem, format PriceFormatter) string {
	var sb strings.Builder
	sb.WriteString("• " + item.Name)

	if item.SelectedVariation != nil {
		sb.WriteString(" (" + item.SelectedVariation.Name + ")")
	}

	if len(item.SelectedAddOns) > 0 {
		addOns := lo.Map(item.SelectedAddOns, func(a models.AddOn, _ int) string {
			if a.Quantity != nil && *a.Quantity > 1 {
				return fmt.Sprintf("%s x%d", a.Name, *a.Quantity)
			}
			return a.Name
		})
		sb.WriteString(" + " + strings.Join(addOns, ", "))
	}

	if item.SelectedPromoOptions != nil && item.Promotion != nil {
		sb.WriteString(" [Bundle: " + strings.Join(bundleEntries(item), ", ") + "]")
	}

	sb.WriteString(fmt.Sprintf(" x%d - %s%s", item.Quantity, currency.Symbol, format(currency.LineTotal(item.TotalPrice, item.Quantity))))
	return sb.String()
}

// bundleEntries renders "qtyx name" per selected promo option. Options
// follow the promotion's own order; ids it does not know come last,
// sorted, and are labelled Unknown.
func bundleEntries(item models.CartItem) []string {
	ids := lo.Keys(item.SelectedPromoOptions)
	position := make(map[string]int, len(item.Promotion.Options))
	for i, o := range item.Promotion.Options {
		if _, seen := position[o.ID]; !seen {
			position[o.ID] = i
		}
	}

	sort.Slice(ids, func(i, j int) bool {
		pi, iKnown := position[ids[i]]
		pj, jKnown := position[ids[j]]
		switch {
		case iKnown && jKnown:
			return pi < pj
		case iKnown != jKnown:
			return iKnown
		default:
			return ids[i] < ids[j]
		}
	})

	return lo.Map(ids, func(id string, _ int) string {
		return fmt.Sprintf("%dx %s", item.SelectedPromoOptions[id], optionName(item.Promotion, id))
	})
}

func optionName(p *models.Promotion, id string) string {
	option, found := lo.Find(p.Options, func(o models.PromotionOption) bool {
		return o.ID == id
	})
	if !found || option.Name == "" {
		return unknownOption
	}
	return option.Name
}
