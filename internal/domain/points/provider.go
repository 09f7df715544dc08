// internal/domain/points/provider.go
package points

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
	"github.com/your-org/storefront-client/internal/pkg/session"
)

// Provider fetches the user's point balance, the active redemption rate and
// the qualifying threshold benefits, with a Redis read-through cache in
// front of the platform API. Anonymous sessions never hit the network: they
// have no points, no benefits and redemption disabled.
type Provider struct {
	api         *storefront.PointsAPI
	redisClient *redis.Client
	config      *config.Config
	logger      *logrus.Logger
}

// NewProvider creates a new benefit/points provider
func NewProvider(api *storefront.PointsAPI, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *Provider {
	return &Provider{
		api:         api,
		redisClient: redisClient,
		config:      cfg,
		logger:      logger,
	}
}

// RedemptionConfig returns the active redemption config. A rate below one
// point per currency unit would divide by zero downstream, so such a config
// is degraded to disabled instead of surfaced as an error.
func (p *Provider) RedemptionConfig(ctx context.Context, sess *session.Session) (RedemptionConfig, error) {
	if !sess.IsAuthenticated() {
		return Disabled(), nil
	}

	var cached RedemptionConfig
	if p.readCache(ctx, redemptionConfigKey, &cached) {
		return cached, nil
	}

	payload, err := p.api.RedemptionConfig(ctx, sess.BearerToken)
	if err != nil {
		return Disabled(), err
	}

	cfg := RedemptionConfig{
		PointsPerCurrencyUnit: payload.PointsPerCurrencyUnit,
		Enabled:               payload.Enabled,
	}
	if cfg.PointsPerCurrencyUnit < 1 {
		p.logger.WithField("points_per_currency_unit", cfg.PointsPerCurrencyUnit).
			Warn("Redemption rate below 1, disabling redemption")
		cfg = Disabled()
	}

	p.writeCache(ctx, redemptionConfigKey, cfg, p.config.Points.ConfigCacheTTL)
	return cfg, nil
}

// Balance returns the session user's current point balance
func (p *Provider) Balance(ctx context.Context, sess *session.Session) (decimal.Decimal, error) {
	if !sess.IsAuthenticated() {
		return decimal.Zero, nil
	}

	key := fmt.Sprintf(balanceKeyFormat, sess.UserID)

	var cached Balance
	if p.readCache(ctx, key, &cached) {
		return cached.CurrentBalance, nil
	}

	payload, err := p.api.Balance(ctx, sess.BearerToken)
	if err != nil {
		return decimal.Zero, err
	}

	balance := Balance{CurrentBalance: payload.CurrentBalance}
	if balance.CurrentBalance.IsNegative() {
		balance.CurrentBalance = decimal.Zero
	}

	p.writeCache(ctx, key, balance, p.config.Points.BalanceCacheTTL)
	return balance.CurrentBalance, nil
}

// Benefits returns the threshold benefits the user qualifies for, in the
// order the platform applies them
func (p *Provider) Benefits(ctx context.Context, sess *session.Session) ([]Benefit, error) {
	if !sess.IsAuthenticated() {
		return nil, nil
	}

	key := fmt.Sprintf(benefitsKeyFormat, sess.UserID)

	var cached []Benefit
	if p.readCache(ctx, key, &cached) {
		return cached, nil
	}

	payloads, err := p.api.Benefits(ctx, sess.BearerToken)
	if err != nil {
		return nil, err
	}

	benefits := make([]Benefit, 0, len(payloads))
	for _, b := range payloads {
		if b.Value.IsNegative() {
			continue
		}
		benefits = append(benefits, Benefit{
			ThresholdPoints: b.ThresholdPoints,
			Kind:            BenefitKind(b.Kind),
			Value:           b.Value,
		})
	}

	p.writeCache(ctx, key, benefits, p.config.Points.BalanceCacheTTL)
	return benefits, nil
}

const (
	redemptionConfigKey = "points:redemption-config"
	balanceKeyFormat    = "points:balance:%d"
	benefitsKeyFormat   = "points:benefits:%d"
)

// readCache loads a cached JSON value; a miss or a decode problem is just a
// miss, never an error
func (p *Provider) readCache(ctx context.Context, key string, dest interface{}) bool {
	data, err := p.redisClient.Get(ctx, key).Result()
	if err != nil {
		return false
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		p.logger.WithField("key", key).WithError(err).Warn("Dropping undecodable cache entry")
		p.redisClient.Del(ctx, key)
		return false
	}

	return true
}

// writeCache stores a JSON value with a TTL; cache write failures are logged
// and otherwise ignored
func (p *Provider) writeCache(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}

	if err := p.redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
		p.logger.WithField("key", key).WithError(err).Warn("Failed to write cache entry")
	}
}
