// internal/pkg/money/money.go
package money

import "github.com/shopspring/decimal"

// Zero is the zero amount, exported for convenience
var Zero = decimal.Zero

// Sub subtracts b from a, clamped at zero. Monetary lines never go negative.
func Sub(a, b decimal.Decimal) decimal.Decimal {
	result := a.Sub(b)
	if result.IsNegative() {
		return decimal.Zero
	}
	return result
}

// Min returns the smaller of a and b
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Clamp limits value to the [low, high] range
func Clamp(value, low, high decimal.Decimal) decimal.Decimal {
	if value.LessThan(low) {
		return low
	}
	if value.GreaterThan(high) {
		return high
	}
	return value
}

// RoundCurrency rounds an amount to two decimal places, half away from zero
func RoundCurrency(a decimal.Decimal) decimal.Decimal {
	return a.Round(2)
}

// FloorUnits truncates an amount to whole units. Used for point conversions
// where partial points cannot be redeemed.
func FloorUnits(a decimal.Decimal) decimal.Decimal {
	return a.Floor()
}
