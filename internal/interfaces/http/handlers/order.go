// internal/interfaces/http/handlers/order.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// OrderHandler handles order journal endpoints
type OrderHandler struct {
	orderService *order.Service
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// GetRecentOrders handles GET /orders/recent. Served from the local journal;
// the platform stays the source of truth for order status.
func (h *OrderHandler) GetRecentOrders(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			limit = parsed
		}
	}

	submissions, err := h.orderService.Recent(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve recent orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Recent orders retrieved successfully",
		"data":    submissions,
	})
}
