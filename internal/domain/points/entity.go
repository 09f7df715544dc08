// internal/domain/points/entity.go
package points

import "github.com/shopspring/decimal"

// BenefitKind identifies how a threshold benefit reduces the checkout total
type BenefitKind string

const (
	// BenefitPercentOff takes a percentage off the cart's list total
	BenefitPercentOff BenefitKind = "percent_off"

	// BenefitFixedAmountOff takes a fixed amount off, capped at what is left
	BenefitFixedAmountOff BenefitKind = "fixed_amount_off"

	// BenefitFreeShippingValue credits a shipping allowance against the
	// total, capped at what is left
	BenefitFreeShippingValue BenefitKind = "free_shipping_value"
)

// Benefit is a loyalty threshold reward the user qualifies for. Multiple
// qualifying benefits apply simultaneously, in the order the platform
// returns them.
type Benefit struct {
	ThresholdPoints int64           `json:"threshold_points"`
	Kind            BenefitKind     `json:"kind"`
	Value           decimal.Decimal `json:"value"`
}

// RedemptionConfig is the global points-to-currency conversion setting,
// fetched once per checkout session
type RedemptionConfig struct {
	PointsPerCurrencyUnit int64 `json:"points_per_currency_unit"`
	Enabled               bool  `json:"enabled"`
}

// Disabled returns a config under which no points can be redeemed
func Disabled() RedemptionConfig {
	return RedemptionConfig{Enabled: false}
}

// Balance is a user's current point balance
type Balance struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
}
