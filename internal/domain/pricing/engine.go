// internal/domain/pricing/engine.go
package pricing

import (
	"github.com/shopspring/decimal"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/points"
	"github.com/your-org/storefront-client/internal/pkg/money"
)

// Breakdown is the fully itemized price computation shown at checkout.
// All fields are non-negative and payable_total is list_total minus the
// three discount lines by construction.
type Breakdown struct {
	ListTotal           decimal.Decimal `json:"list_total"`
	CatalogDiscount     decimal.Decimal `json:"catalog_discount"`
	BenefitDiscount     decimal.Decimal `json:"benefit_discount"`
	AmountAfterBenefits decimal.Decimal `json:"amount_after_benefits"`
	PointsRedeemed      decimal.Decimal `json:"points_redeemed"`
	PointsDiscount      decimal.Decimal `json:"points_discount"`
	PayableTotal        decimal.Decimal `json:"payable_total"`
}

// ComputeBreakdown stacks the three discount sources over the cart in a
// fixed sequence: catalog markdown, threshold benefits, then the points
// redemption. The sequence is order-dependent; reordering the steps changes
// the payable total. Pure and deterministic, no I/O, never fails: bad
// inputs are defaulted instead (a negative requested redemption counts as
// zero, a disabled or malformed redemption config redeems nothing).
func ComputeBreakdown(
	items []cart.LineItem,
	benefits []points.Benefit,
	pointsBalance decimal.Decimal,
	cfg points.RedemptionConfig,
	requestedPoints decimal.Decimal,
) Breakdown {
	if len(items) == 0 {
		return Breakdown{}
	}

	// Step 1: list total, already net of the catalog markdown
	listTotal := decimal.Zero
	mrpTotal := decimal.Zero
	for _, item := range items {
		qty := decimal.NewFromInt(int64(item.Quantity))
		listTotal = listTotal.Add(item.UnitPrice.Mul(qty))
		mrpTotal = mrpTotal.Add(item.MarkdownBase().Mul(qty))
	}

	// Step 2: the markdown line is display only, it is not subtracted again
	catalogDiscount := money.Sub(mrpTotal, listTotal)

	// Step 3: fold qualifying benefits in provider order. Percent benefits
	// compound additively off the original list total and are not capped;
	// fixed and free-shipping benefits are capped at what is left so the
	// running discount never exceeds the list total on their account.
	benefitDiscount := decimal.Zero
	for _, b := range benefits {
		switch b.Kind {
		case points.BenefitPercentOff:
			benefitDiscount = benefitDiscount.Add(
				listTotal.Mul(b.Value).Div(decimal.NewFromInt(100)))
		case points.BenefitFixedAmountOff, points.BenefitFreeShippingValue:
			remaining := money.Sub(listTotal, benefitDiscount)
			benefitDiscount = benefitDiscount.Add(money.Min(b.Value, remaining))
		}
	}
	benefitDiscount = money.RoundCurrency(benefitDiscount)

	// Step 4
	amountAfterBenefits := money.Sub(listTotal, benefitDiscount)

	// Steps 5-6: redemption is clamped twice, against the balance and
	// against what the remaining amount can absorb at the current rate
	pointsRedeemed := decimal.Zero
	pointsDiscount := decimal.Zero
	if cfg.Enabled && cfg.PointsPerCurrencyUnit >= 1 {
		rate := decimal.NewFromInt(cfg.PointsPerCurrencyUnit)

		maxRedeemable := money.Min(pointsBalance,
			money.FloorUnits(amountAfterBenefits.Mul(rate)))
		pointsRedeemed = money.Clamp(requestedPoints, decimal.Zero, maxRedeemable)

		pointsDiscount = money.Min(
			money.RoundCurrency(pointsRedeemed.Div(rate)),
			amountAfterBenefits)
	}

	// Step 7
	payableTotal := money.Sub(amountAfterBenefits, pointsDiscount)

	return Breakdown{
		ListTotal:           listTotal,
		CatalogDiscount:     catalogDiscount,
		BenefitDiscount:     benefitDiscount,
		AmountAfterBenefits: amountAfterBenefits,
		PointsRedeemed:      pointsRedeemed,
		PointsDiscount:      pointsDiscount,
		PayableTotal:        payableTotal,
	}
}
