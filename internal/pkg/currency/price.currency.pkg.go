package currency

import (
	"math"
	"math/big"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Symbol is the peso sign prefixed to every formatted amount.
const Symbol = "₱"

const mantissaBits = 53

var printer = message.NewPrinter(language.MustParse("en-PH"))

// FormatPrice renders amount with exactly two decimals and en-PH grouping,
// e.g. 1234.5 -> "1,234.50". Half-cent ties round away from zero on the
// exact binary value, so 0.125 -> "0.13" and 1.005 (stored just below
// 1.005) -> "1.00".
func FormatPrice(amount float64) string {
	return printer.Sprintf("%.2f", RoundCents(amount))
}

// RoundCents rounds amount to two decimals, half away from zero, using
// every digit of its binary value.
func RoundCents(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount == 0 {
		return amount
	}

	d, err := decimal.NewFromString(exactDecimal(amount))
	if err != nil {
		return amount
	}
	return d.Round(2).InexactFloat64()
}

// exactDecimal prints the full decimal expansion of a float64. A double
// with binary exponent e carries at most 53-e fractional bits, and each
// needs exactly one decimal digit.
func exactDecimal(amount float64) string {
	_, exp := math.Frexp(amount)
	digits := mantissaBits - exp
	if digits < 0 {
		digits = 0
	}
	return new(big.Float).SetFloat64(amount).Text('f', digits)
}

// LineTotal multiplies a unit price by a quantity without float drift.
// Rounding to cents is left to FormatPrice.
func LineTotal(unitPrice float64, quantity int) float64 {
	return decimal.NewFromFloat(unitPrice).
		Mul(decimal.NewFromInt(int64(quantity))).
		InexactFloat64()
}
