package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSubClampsAtZero(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want string
	}{
		{name: "positive result", a: "100", b: "30", want: "70"},
		{name: "exact zero", a: "50", b: "50", want: "0"},
		{name: "would go negative", a: "20", b: "50", want: "0"},
		{name: "fractional", a: "10.50", b: "0.25", want: "10.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sub(d(tt.a), d(tt.b))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name             string
		value, low, high string
		want             string
	}{
		{name: "within range", value: "5", low: "0", high: "10", want: "5"},
		{name: "below low", value: "-3", low: "0", high: "10", want: "0"},
		{name: "above high", value: "99", low: "0", high: "10", want: "10"},
		{name: "at boundary", value: "10", low: "0", high: "10", want: "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(d(tt.value), d(tt.low), d(tt.high))
			assert.True(t, d(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestMin(t *testing.T) {
	assert.True(t, d("3").Equal(Min(d("3"), d("7"))))
	assert.True(t, d("3").Equal(Min(d("7"), d("3"))))
	assert.True(t, d("3").Equal(Min(d("3"), d("3"))))
}

func TestRoundCurrency(t *testing.T) {
	assert.True(t, d("10.13").Equal(RoundCurrency(d("10.125"))))
	assert.True(t, d("10.12").Equal(RoundCurrency(d("10.124"))))
	assert.True(t, d("10").Equal(RoundCurrency(d("10"))))
}

func TestFloorUnits(t *testing.T) {
	assert.True(t, d("1800").Equal(FloorUnits(d("1800.9"))))
	assert.True(t, d("0").Equal(FloorUnits(d("0.99"))))
}
