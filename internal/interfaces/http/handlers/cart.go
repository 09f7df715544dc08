// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/points"
	"github.com/your-org/storefront-client/internal/domain/pricing"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
	"github.com/your-org/storefront-client/internal/pkg/session"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	client      *storefront.Client
	redisClient *redis.Client
	queues      *cart.MutationQueues
	config      *config.Config
	logger      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(client *storefront.Client, redisClient *redis.Client, queues *cart.MutationQueues, cfg *config.Config, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		client:      client,
		redisClient: redisClient,
		queues:      queues,
		config:      cfg,
		logger:      logger,
	}
}

// AddToCartRequest carries the product snapshot the storefront UI took from
// the product page. The platform re-validates everything at order time.
type AddToCartRequest struct {
	ProductID        int64            `json:"product_id" binding:"required"`
	ProductName      string           `json:"product_name" binding:"required"`
	UnitPrice        decimal.Decimal  `json:"unit_price" binding:"required"`
	OriginalPrice    *decimal.Decimal `json:"original_price,omitempty"`
	Quantity         int              `json:"quantity" binding:"required,min=1"`
	ImageURL         string           `json:"image_url,omitempty"`
	SellerName       string           `json:"seller_name,omitempty"`
	SellerOfferingID *int64           `json:"seller_offering_id,omitempty"`
}

// UpdateCartItemRequest carries the absolute quantity for one line. Quantity
// is a pointer so an explicit zero reaches the domain validation instead of
// being rejected as a missing field.
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    h.cartResponse(sync),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	item := cart.LineItem{
		ProductID:        req.ProductID,
		ProductName:      req.ProductName,
		UnitPrice:        req.UnitPrice,
		OriginalPrice:    req.OriginalPrice,
		ImageURL:         req.ImageURL,
		SellerName:       req.SellerName,
		SellerOfferingID: req.SellerOfferingID,
		Quantity:         req.Quantity,
	}
	if err := sync.Add(c.Request.Context(), item, req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    h.cartResponse(sync),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := sync.SetQuantity(c.Request.Context(), productID, *req.Quantity); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    h.cartResponse(sync),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := sync.Remove(c.Request.Context(), productID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    h.cartResponse(sync),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := sync.Clear(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    h.cartResponse(sync),
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sync, err := h.newSynchronizer(c)
	if err != nil {
		respondError(c, err)
		return
	}

	count := 0
	for _, item := range sync.Items() {
		count += item.Quantity
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// SyncAfterLogin handles POST /cart/sync. Called by the storefront right
// after login: the abandoned session cart is discarded and the server cart
// replaces local state wholesale. The server always wins, carts never merge.
func (h *CartHandler) SyncAfterLogin(c *gin.Context) {
	sess := buildSession(c, h.config)
	if !sess.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	sync := cart.NewSynchronizer(sess, cart.NewStore(),
		cart.NewRemoteBackend(h.client.Cart(), sess.BearerToken), h.queues, h.logger)

	// The pre-login cart, if the cookie is still around
	var anonymous cart.Backend
	if sessionID, err := c.Cookie("session_id"); err == nil && sessionID != "" {
		if backend, err := cart.NewSessionBackend(h.redisClient, sessionID, h.config.Cart.SessionTTL); err == nil {
			anonymous = backend
		}
	}

	if err := sync.Login(c.Request.Context(), anonymous); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart synchronized successfully",
		"data":    h.cartResponse(sync),
	})
}

// newSynchronizer builds a synchronizer over the backend the session calls
// for: Redis for anonymous visitors, the platform's cart API otherwise. The
// store is hydrated with a full read so quantity updates validate against
// current contents.
func (h *CartHandler) newSynchronizer(c *gin.Context) (*cart.Synchronizer, error) {
	sess := buildSession(c, h.config)

	backend, err := h.backendFor(sess)
	if err != nil {
		return nil, err
	}

	sync := cart.NewSynchronizer(sess, cart.NewStore(), backend, h.queues, h.logger)
	if err := sync.Refresh(c.Request.Context()); err != nil {
		return nil, err
	}

	return sync, nil
}

func (h *CartHandler) backendFor(sess *session.Session) (cart.Backend, error) {
	if sess.IsAuthenticated() {
		return cart.NewRemoteBackend(h.client.Cart(), sess.BearerToken), nil
	}
	return cart.NewSessionBackend(h.redisClient, sess.SessionID, h.config.Cart.SessionTTL)
}

// cartResponse renders the cart plus its pre-benefit totals. Benefits and
// point redemption only enter the picture at checkout.
func (h *CartHandler) cartResponse(sync *cart.Synchronizer) gin.H {
	items := sync.Items()
	breakdown := pricing.ComputeBreakdown(items, nil, decimal.Zero,
		points.RedemptionConfig{}, decimal.Zero)

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return gin.H{
		"items":            items,
		"item_count":       count,
		"list_total":       breakdown.ListTotal,
		"catalog_discount": breakdown.CatalogDiscount,
	}
}
