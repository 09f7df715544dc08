// internal/domain/checkout/controller.go
package checkout

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/points"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
	"github.com/your-org/storefront-client/internal/pkg/session"
)

// State is the checkout screen's lifecycle position
type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// OrderGateway is the slice of the upstream API the controller needs.
// Satisfied by *storefront.OrderAPI.
type OrderGateway interface {
	PaymentMethods(ctx context.Context, token string) ([]storefront.PaymentMethodPayload, error)
	CreateOrder(ctx context.Context, token string, req storefront.OrderRequestPayload) (storefront.OrderResponsePayload, error)
}

// PointsSource supplies the point data checkout prices against.
// Satisfied by *points.Provider.
type PointsSource interface {
	RedemptionConfig(ctx context.Context, sess *session.Session) (points.RedemptionConfig, error)
	Balance(ctx context.Context, sess *session.Session) (decimal.Decimal, error)
	Benefits(ctx context.Context, sess *session.Session) ([]points.Benefit, error)
}

// Controller drives a single checkout flow: it loads payment methods and
// point data, re-prices synchronously on every input change, and submits
// the order. One controller per checkout attempt.
type Controller struct {
	sess     *session.Session
	cartSync *cart.Synchronizer
	provider PointsSource
	orders   OrderGateway
	records  *order.Service
	logger   *logrus.Logger

	mu              sync.Mutex
	state           State
	paymentMethods  []storefront.PaymentMethodPayload
	benefits        []points.Benefit
	balance         decimal.Decimal
	redemption      points.RedemptionConfig
	requestedPoints decimal.Decimal
	paymentMethodID string
	orderID         int64
	failureMessage  string
}

// NewController creates a checkout controller in the Idle state
func NewController(
	sess *session.Session,
	cartSync *cart.Synchronizer,
	provider PointsSource,
	orders OrderGateway,
	records *order.Service,
	logger *logrus.Logger,
) *Controller {
	return &Controller{
		sess:     sess,
		cartSync: cartSync,
		provider: provider,
		orders:   orders,
		records:  records,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the current lifecycle state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// PaymentMethods returns the methods fetched during Load
func (c *Controller) PaymentMethods() []storefront.PaymentMethodPayload {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]storefront.PaymentMethodPayload, len(c.paymentMethods))
	copy(out, c.paymentMethods)
	return out
}

// FailureMessage returns the message from the last failed submission
func (c *Controller) FailureMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.failureMessage
}

// OrderID returns the upstream order id after a successful submission
func (c *Controller) OrderID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orderID
}

// Load fetches payment methods, benefits, balance and the redemption config,
// then moves to Ready. If ctx is cancelled while fetches are in flight the
// results are discarded and the controller returns to Idle so a torn-down
// screen never receives stale data.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.state != StateIdle && c.state != StateFailed {
		c.mu.Unlock()
		return fmt.Errorf("%w: cannot load from state %s", ErrNotReady, c.state)
	}
	c.state = StateLoading
	c.mu.Unlock()

	methods, err := c.orders.PaymentMethods(ctx, c.sess.BearerToken)
	if err != nil {
		return c.failLoad(ctx, fmt.Errorf("failed to fetch payment methods: %w", err))
	}
	benefits, err := c.provider.Benefits(ctx, c.sess)
	if err != nil {
		return c.failLoad(ctx, fmt.Errorf("failed to fetch benefits: %w", err))
	}
	balance, err := c.provider.Balance(ctx, c.sess)
	if err != nil {
		return c.failLoad(ctx, fmt.Errorf("failed to fetch points balance: %w", err))
	}
	redemption, err := c.provider.RedemptionConfig(ctx, c.sess)
	if err != nil {
		return c.failLoad(ctx, fmt.Errorf("failed to fetch redemption config: %w", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if ctx.Err() != nil {
		c.state = StateIdle
		return ctx.Err()
	}
	c.paymentMethods = methods
	c.benefits = benefits
	c.balance = balance
	c.redemption = redemption
	c.state = StateReady
	return nil
}

func (c *Controller) failLoad(ctx context.Context, err error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateIdle
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// SetRequestedPoints records the user's redemption input. The value is only
// clamped at pricing time so the slider can show the raw position.
func (c *Controller) SetRequestedPoints(p decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady && c.state != StateFailed {
		return fmt.Errorf("%w: state %s", ErrNotReady, c.state)
	}
	c.requestedPoints = p
	c.state = StateReady
	return nil
}

// SelectPaymentMethod selects one of the loaded payment methods
func (c *Controller) SelectPaymentMethod(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady && c.state != StateFailed {
		return fmt.Errorf("%w: state %s", ErrNotReady, c.state)
	}
	for _, m := range c.paymentMethods {
		if m.ID == id {
			c.paymentMethodID = id
			c.state = StateReady
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownPaymentMethod, id)
}

// Breakdown re-prices the current cart against the loaded point data.
// Pure computation, safe to call on every input change.
func (c *Controller) Breakdown() pricing.Breakdown {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.breakdownLocked()
}

func (c *Controller) breakdownLocked() pricing.Breakdown {
	return pricing.ComputeBreakdown(
		c.cartSync.Items(), c.benefits, c.balance, c.redemption, c.requestedPoints)
}

// Submit validates locally, submits the order upstream, and on success
// clears the cart and journals the submission. On failure the platform's
// message is kept verbatim and the controller stays recoverable: the next
// input change returns it to Ready with all inputs intact.
func (c *Controller) Submit(ctx context.Context) (int64, error) {
	c.mu.Lock()
	if c.state != StateReady && c.state != StateFailed {
		c.mu.Unlock()
		return 0, fmt.Errorf("%w: state %s", ErrNotReady, c.state)
	}

	items := c.cartSync.Items()
	if len(items) == 0 {
		c.mu.Unlock()
		return 0, ErrEmptyCart
	}
	if c.paymentMethodID == "" {
		c.mu.Unlock()
		return 0, ErrNoPaymentMethod
	}

	breakdown := c.breakdownLocked()
	req := storefront.OrderRequestPayload{
		Items:           make([]storefront.OrderItemPayload, 0, len(items)),
		PaymentMethodID: c.paymentMethodID,
		PointsToRedeem:  breakdown.PointsRedeemed,
	}
	for _, it := range items {
		req.Items = append(req.Items, storefront.OrderItemPayload{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
		})
	}
	c.state = StateSubmitting
	c.mu.Unlock()

	resp, err := c.orders.CreateOrder(ctx, c.sess.BearerToken, req)
	if err != nil {
		c.mu.Lock()
		c.state = StateFailed
		c.failureMessage = storefront.UserMessage(err)
		c.mu.Unlock()
		return 0, err
	}

	// The order exists upstream from here on. Cart clearing and the local
	// journal are best effort and must not turn the success into a failure.
	if clearErr := c.cartSync.Clear(ctx); clearErr != nil {
		c.logger.WithError(clearErr).WithField("order_id", resp.OrderID).
			Warn("Failed to clear cart after order submission")
	}
	c.journal(resp.OrderID, len(items), breakdown)

	c.mu.Lock()
	c.state = StateSucceeded
	c.orderID = resp.OrderID
	c.failureMessage = ""
	c.mu.Unlock()
	return resp.OrderID, nil
}

func (c *Controller) journal(orderID int64, itemCount int, b pricing.Breakdown) {
	if c.records == nil || !c.sess.IsAuthenticated() {
		return
	}
	sub := &order.Submission{
		UserID:          c.sess.UserID,
		UpstreamOrderID: orderID,
		PaymentMethodID: c.paymentMethodID,
		ItemCount:       itemCount,
		ListTotal:       b.ListTotal,
		BenefitDiscount: b.BenefitDiscount,
		PointsRedeemed:  b.PointsRedeemed,
		PayableTotal:    b.PayableTotal,
		CreatedAt:       time.Now(),
	}
	if err := c.records.Record(sub); err != nil {
		c.logger.WithError(err).WithField("order_id", orderID).
			Warn("Failed to journal order submission")
	}
}
