// internal/interfaces/http/handlers/points.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/points"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
)

// PointsHandler handles loyalty point endpoints
type PointsHandler struct {
	provider *points.Provider
	config   *config.Config
}

// NewPointsHandler creates a new points handler
func NewPointsHandler(client *storefront.Client, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *PointsHandler {
	return &PointsHandler{
		provider: points.NewProvider(client.Points(), redisClient, cfg, logger),
		config:   cfg,
	}
}

// GetRedemptionConfig handles GET /points/redemption-config
func (h *PointsHandler) GetRedemptionConfig(c *gin.Context) {
	sess := buildSession(c, h.config)

	cfg, err := h.provider.RedemptionConfig(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Redemption config retrieved successfully",
		"data":    cfg,
	})
}

// GetBalance handles GET /points/my-balance
func (h *PointsHandler) GetBalance(c *gin.Context) {
	sess := buildSession(c, h.config)

	balance, err := h.provider.Balance(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Points balance retrieved successfully",
		"data": gin.H{
			"current_balance": balance,
		},
	})
}

// GetBenefits handles GET /points/my-benefits
func (h *PointsHandler) GetBenefits(c *gin.Context) {
	sess := buildSession(c, h.config)

	benefits, err := h.provider.Benefits(c.Request.Context(), sess)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Benefits retrieved successfully",
		"data":    benefits,
	})
}
