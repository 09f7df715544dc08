// internal/infrastructure/storefront/points.go
package storefront

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// RedemptionConfigPayload is the wire shape of the global redemption config
type RedemptionConfigPayload struct {
	PointsPerCurrencyUnit int64 `json:"points_per_currency_unit"`
	Enabled               bool  `json:"enabled"`
}

// BalancePayload is the wire shape of a user's point balance
type BalancePayload struct {
	CurrentBalance decimal.Decimal `json:"current_balance"`
}

// BenefitPayload is the wire shape of one qualifying threshold benefit
type BenefitPayload struct {
	ThresholdPoints int64           `json:"threshold_points"`
	Kind            string          `json:"kind"`
	Value           decimal.Decimal `json:"value"`
}

// PointsAPI talks to the platform's loyalty points endpoints
type PointsAPI struct {
	client *Client
}

// RedemptionConfig fetches the active points-to-currency redemption config
func (a *PointsAPI) RedemptionConfig(ctx context.Context, token string) (RedemptionConfigPayload, error) {
	var cfg RedemptionConfigPayload
	err := a.client.do(ctx, http.MethodGet, "points/redemption-config", token, nil, &cfg)
	return cfg, err
}

// Balance fetches the caller's current point balance
func (a *PointsAPI) Balance(ctx context.Context, token string) (BalancePayload, error) {
	var balance BalancePayload
	err := a.client.do(ctx, http.MethodGet, "points/my-balance", token, nil, &balance)
	return balance, err
}

// Benefits fetches the threshold benefits the caller currently qualifies for,
// in the order the platform applies them
func (a *PointsAPI) Benefits(ctx context.Context, token string) ([]BenefitPayload, error) {
	var benefits []BenefitPayload
	if err := a.client.do(ctx, http.MethodGet, "points/my-benefits", token, nil, &benefits); err != nil {
		return nil, err
	}
	return benefits, nil
}
