// internal/domain/pricing/engine_test.go
package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/points"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func item(productID int64, unitPrice string, qty int) cart.LineItem {
	return cart.LineItem{
		ProductID: productID,
		UnitPrice: d(unitPrice),
		Quantity:  qty,
	}
}

func enabledRate(pointsPerUnit int64) points.RedemptionConfig {
	return points.RedemptionConfig{PointsPerCurrencyUnit: pointsPerUnit, Enabled: true}
}

func TestComputeBreakdown_PlainCart(t *testing.T) {
	// Two units at 100 with nothing else in play
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "100", 2)},
		nil, decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.ListTotal.Equal(d("200")), "list total %s", b.ListTotal)
	assert.True(t, b.CatalogDiscount.IsZero())
	assert.True(t, b.BenefitDiscount.IsZero())
	assert.True(t, b.PointsDiscount.IsZero())
	assert.True(t, b.PayableTotal.Equal(d("200")), "payable %s", b.PayableTotal)
}

func TestComputeBreakdown_PercentBenefit(t *testing.T) {
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "100", 2)},
		[]points.Benefit{{Kind: points.BenefitPercentOff, Value: d("10")}},
		decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.BenefitDiscount.Equal(d("20")), "benefit discount %s", b.BenefitDiscount)
	assert.True(t, b.PayableTotal.Equal(d("180")), "payable %s", b.PayableTotal)
}

func TestComputeBreakdown_RedemptionCappedByRemainingAmount(t *testing.T) {
	// 180 remaining after a 10% benefit, 5000 points at 10 pts per unit.
	// Only 1800 points can be absorbed even though balance and request allow more.
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "100", 2)},
		[]points.Benefit{{Kind: points.BenefitPercentOff, Value: d("10")}},
		d("5000"), enabledRate(10), d("2000"))

	assert.True(t, b.AmountAfterBenefits.Equal(d("180")))
	assert.True(t, b.PointsRedeemed.Equal(d("1800")), "redeemed %s", b.PointsRedeemed)
	assert.True(t, b.PointsDiscount.Equal(d("180")), "points discount %s", b.PointsDiscount)
	assert.True(t, b.PayableTotal.IsZero(), "payable %s", b.PayableTotal)
}

func TestComputeBreakdown_FixedBenefitsCapAgainstRemainder(t *testing.T) {
	// On a 180 list total, 50 fits fully and the 200 is cut to the 130 left.
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "180", 1)},
		[]points.Benefit{
			{Kind: points.BenefitFixedAmountOff, Value: d("50")},
			{Kind: points.BenefitFixedAmountOff, Value: d("200")},
		},
		decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.BenefitDiscount.Equal(d("180")), "benefit discount %s", b.BenefitDiscount)
	assert.True(t, b.AmountAfterBenefits.IsZero())
	assert.True(t, b.PayableTotal.IsZero())
}

func TestComputeBreakdown_PercentBenefitsCompoundOffListTotal(t *testing.T) {
	// Two 30% benefits each take 30 of the original 100, not 30 then 21.
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "100", 1)},
		[]points.Benefit{
			{Kind: points.BenefitPercentOff, Value: d("30")},
			{Kind: points.BenefitPercentOff, Value: d("30")},
		},
		decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.BenefitDiscount.Equal(d("60")), "benefit discount %s", b.BenefitDiscount)
	assert.True(t, b.PayableTotal.Equal(d("40")))
}

func TestComputeBreakdown_MixedBenefitOrderMatters(t *testing.T) {
	// A fixed benefit applied after a large percent benefit only sees
	// what the percent left behind.
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "100", 1)},
		[]points.Benefit{
			{Kind: points.BenefitPercentOff, Value: d("90")},
			{Kind: points.BenefitFreeShippingValue, Value: d("40")},
		},
		decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.BenefitDiscount.Equal(d("100")), "benefit discount %s", b.BenefitDiscount)
	assert.True(t, b.PayableTotal.IsZero())
}

func TestComputeBreakdown_CatalogDiscountIsDisplayOnly(t *testing.T) {
	orig := d("150")
	b := ComputeBreakdown(
		[]cart.LineItem{{
			ProductID:     1,
			UnitPrice:     d("100"),
			OriginalPrice: &orig,
			Quantity:      2,
		}},
		nil, decimal.Zero, enabledRate(10), decimal.Zero)

	assert.True(t, b.CatalogDiscount.Equal(d("100")), "catalog discount %s", b.CatalogDiscount)
	// The list total is already net of the markdown, so payable stays 200.
	assert.True(t, b.PayableTotal.Equal(d("200")), "payable %s", b.PayableTotal)
}

func TestComputeBreakdown_RedemptionBoundedByBalance(t *testing.T) {
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "500", 1)},
		nil, d("300"), enabledRate(10), d("10000"))

	assert.True(t, b.PointsRedeemed.Equal(d("300")), "redeemed %s", b.PointsRedeemed)
	assert.True(t, b.PointsDiscount.Equal(d("30")), "points discount %s", b.PointsDiscount)
	assert.True(t, b.PayableTotal.Equal(d("470")))
}

func TestComputeBreakdown_RedemptionDisabled(t *testing.T) {
	cfg := points.RedemptionConfig{PointsPerCurrencyUnit: 10, Enabled: false}
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "500", 1)},
		nil, d("5000"), cfg, d("1000"))

	assert.True(t, b.PointsRedeemed.IsZero())
	assert.True(t, b.PointsDiscount.IsZero())
	assert.True(t, b.PayableTotal.Equal(d("500")))
}

func TestComputeBreakdown_ZeroRateTreatedAsDisabled(t *testing.T) {
	cfg := points.RedemptionConfig{PointsPerCurrencyUnit: 0, Enabled: true}
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "500", 1)},
		nil, d("5000"), cfg, d("1000"))

	assert.True(t, b.PointsRedeemed.IsZero())
	assert.True(t, b.PointsDiscount.IsZero())
}

func TestComputeBreakdown_NegativeRequestedPoints(t *testing.T) {
	b := ComputeBreakdown(
		[]cart.LineItem{item(1, "500", 1)},
		nil, d("5000"), enabledRate(10), d("-250"))

	assert.True(t, b.PointsRedeemed.IsZero())
	assert.True(t, b.PayableTotal.Equal(d("500")))
}

func TestComputeBreakdown_EmptyCart(t *testing.T) {
	b := ComputeBreakdown(nil, []points.Benefit{
		{Kind: points.BenefitPercentOff, Value: d("10")},
	}, d("5000"), enabledRate(10), d("1000"))

	assert.True(t, b.ListTotal.IsZero())
	assert.True(t, b.BenefitDiscount.IsZero())
	assert.True(t, b.PointsRedeemed.IsZero())
	assert.True(t, b.PayableTotal.IsZero())
}

func TestComputeBreakdown_Deterministic(t *testing.T) {
	items := []cart.LineItem{item(1, "99.99", 3), item(2, "45.50", 1)}
	benefits := []points.Benefit{
		{Kind: points.BenefitPercentOff, Value: d("15")},
		{Kind: points.BenefitFixedAmountOff, Value: d("25")},
	}

	first := ComputeBreakdown(items, benefits, d("800"), enabledRate(5), d("300"))
	second := ComputeBreakdown(items, benefits, d("800"), enabledRate(5), d("300"))

	assert.Equal(t, first, second)
}

func TestComputeBreakdown_Invariants(t *testing.T) {
	cases := []struct {
		name      string
		items     []cart.LineItem
		benefits  []points.Benefit
		balance   decimal.Decimal
		cfg       points.RedemptionConfig
		requested decimal.Decimal
	}{
		{
			name:      "no discounts",
			items:     []cart.LineItem{item(1, "100", 2)},
			cfg:       enabledRate(10),
			balance:   decimal.Zero,
			requested: decimal.Zero,
		},
		{
			name:  "benefits exceed total",
			items: []cart.LineItem{item(1, "80", 1)},
			benefits: []points.Benefit{
				{Kind: points.BenefitFixedAmountOff, Value: d("500")},
			},
			cfg:       enabledRate(10),
			balance:   d("1000"),
			requested: d("1000"),
		},
		{
			name:  "deep redemption",
			items: []cart.LineItem{item(1, "250.75", 2), item(2, "19.99", 5)},
			benefits: []points.Benefit{
				{Kind: points.BenefitPercentOff, Value: d("12.5")},
			},
			cfg:       enabledRate(4),
			balance:   d("2200"),
			requested: d("9999"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := ComputeBreakdown(tc.items, tc.benefits, tc.balance, tc.cfg, tc.requested)

			require.False(t, b.ListTotal.IsNegative())
			require.False(t, b.CatalogDiscount.IsNegative())
			require.False(t, b.BenefitDiscount.IsNegative())
			require.False(t, b.AmountAfterBenefits.IsNegative())
			require.False(t, b.PointsRedeemed.IsNegative())
			require.False(t, b.PointsDiscount.IsNegative())
			require.False(t, b.PayableTotal.IsNegative())

			assert.True(t, b.PayableTotal.LessThanOrEqual(b.AmountAfterBenefits))
			assert.True(t, b.AmountAfterBenefits.LessThanOrEqual(b.ListTotal))
			assert.True(t, b.PointsRedeemed.LessThanOrEqual(tc.balance),
				"redeemed %s over balance %s", b.PointsRedeemed, tc.balance)

			rate := decimal.NewFromInt(tc.cfg.PointsPerCurrencyUnit)
			assert.True(t, b.PointsRedeemed.LessThanOrEqual(
				b.AmountAfterBenefits.Mul(rate).Floor()))
		})
	}
}
