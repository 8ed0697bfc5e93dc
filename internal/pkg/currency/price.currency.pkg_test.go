package currency

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		want   string
	}{
		{name: "zero", amount: 0, want: "0.00"},
		{name: "whole", amount: 240, want: "240.00"},
		{name: "one decimal", amount: 1234.5, want: "1,234.50"},
		{name: "millions", amount: 1234567.891, want: "1,234,567.89"},
		{name: "half cent rounds up", amount: 0.125, want: "0.13"},
		{name: "half cent rounds up odd", amount: 0.625, want: "0.63"},
		{name: "half cent in total", amount: 100.125, want: "100.13"},
		{name: "just below half cent", amount: 1.005, want: "1.00"},
		{name: "negative half cent", amount: -0.125, want: "-0.13"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatPrice(tt.amount))
		})
	}
}

func TestLineTotal(t *testing.T) {
	assert.Equal(t, 240.0, LineTotal(120, 2))
	assert.Equal(t, 0.3, LineTotal(0.1, 3))
	assert.Equal(t, "0.30", FormatPrice(LineTotal(0.1, 3)))
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 0.13, RoundCents(0.125))
	assert.Equal(t, 1.0, RoundCents(1.005))
	assert.Equal(t, 2.67, RoundCents(2.675))
	assert.Equal(t, 0.0, RoundCents(0))
	assert.True(t, math.IsNaN(RoundCents(math.NaN())))
}

func TestLineTotal_DefersRoundingToFormat(t *testing.T) {
	assert.Equal(t, 1.005, LineTotal(1.005, 1))
	assert.Equal(t, "1.00", FormatPrice(LineTotal(1.005, 1)))
	assert.Equal(t, "0.38", FormatPrice(LineTotal(0.125, 3)))
}
