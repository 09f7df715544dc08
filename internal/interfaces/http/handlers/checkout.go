// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/domain/points"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
)

// CheckoutHandler handles checkout endpoints. Checkout always runs against
// the platform cart, so every endpoint here requires authentication.
type CheckoutHandler struct {
	client       *storefront.Client
	redisClient  *redis.Client
	provider     *points.Provider
	orderService *order.Service
	queues       *cart.MutationQueues
	config       *config.Config
	logger       *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(client *storefront.Client, redisClient *redis.Client, orderService *order.Service, queues *cart.MutationQueues, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		client:       client,
		redisClient:  redisClient,
		provider:     points.NewProvider(client.Points(), redisClient, cfg, logger),
		orderService: orderService,
		queues:       queues,
		config:       cfg,
		logger:       logger,
	}
}

// SubmitOrderRequest represents order submission input
type SubmitOrderRequest struct {
	PaymentMethodID string           `json:"payment_method_id" binding:"required"`
	RequestedPoints *decimal.Decimal `json:"requested_points,omitempty"`
}

// GetQuote handles GET /checkout/quote. Returns the itemized breakdown for
// the current cart at the requested redemption, plus the available payment
// methods, without creating anything.
func (h *CheckoutHandler) GetQuote(c *gin.Context) {
	ctrl, err := h.newController(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.Load(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	if raw := c.Query("requested_points"); raw != "" {
		requested, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid requested_points value",
			})
			return
		}
		if err := ctrl.SetRequestedPoints(requested); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout quote computed successfully",
		"data": gin.H{
			"breakdown":       ctrl.Breakdown(),
			"payment_methods": ctrl.PaymentMethods(),
		},
	})
}

// GetPaymentMethods handles GET /checkout/payment-methods
func (h *CheckoutHandler) GetPaymentMethods(c *gin.Context) {
	sess := buildSession(c, h.config)

	methods, err := h.client.Orders().PaymentMethods(c.Request.Context(), sess.BearerToken)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    methods,
	})
}

// SubmitOrder handles POST /checkout. Drives one full checkout pass: load,
// apply the caller's inputs, submit. The redemption actually sent upstream
// is the engine's clamped value, never the raw request.
func (h *CheckoutHandler) SubmitOrder(c *gin.Context) {
	var req SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ctrl, err := h.newController(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := ctrl.Load(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	if err := ctrl.SelectPaymentMethod(req.PaymentMethodID); err != nil {
		respondError(c, err)
		return
	}
	if req.RequestedPoints != nil {
		if err := ctrl.SetRequestedPoints(*req.RequestedPoints); err != nil {
			respondError(c, err)
			return
		}
	}

	breakdown := ctrl.Breakdown()
	orderID, err := ctrl.Submit(c.Request.Context())
	if err != nil {
		if ctrl.State() == checkout.StateFailed {
			c.JSON(http.StatusBadGateway, gin.H{
				"error": ctrl.FailureMessage(),
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order submitted successfully",
		"data": gin.H{
			"order_id":  orderID,
			"breakdown": breakdown,
		},
	})
}

// newController assembles a checkout controller over the caller's server
// cart. One controller per request; checkout holds no server-side session.
func (h *CheckoutHandler) newController(c *gin.Context) (*checkout.Controller, error) {
	sess := buildSession(c, h.config)
	if !sess.IsAuthenticated() {
		return nil, &storefront.APIError{
			Kind:    storefront.KindAuth,
			Message: "Authentication required",
		}
	}

	sync := cart.NewSynchronizer(sess, cart.NewStore(),
		cart.NewRemoteBackend(h.client.Cart(), sess.BearerToken), h.queues, h.logger)
	if err := sync.Refresh(c.Request.Context()); err != nil {
		return nil, err
	}

	return checkout.NewController(sess, sync, h.provider, h.client.Orders(),
		h.orderService, h.logger), nil
}
