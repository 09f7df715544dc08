// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/order"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
	"github.com/your-org/storefront-client/internal/interfaces/http/handlers"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes. Cart endpoints take optional auth so
// anonymous visitors get a session cart; everything that touches the
// platform's account data requires a validated bearer token.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, client *storefront.Client, cfg *config.Config, logger *logrus.Logger) {
	// One queue registry per process so overlapping mutations for the same
	// product serialize across requests
	queues := cart.NewMutationQueues()
	orderService := order.NewService(db)

	cartHandler := handlers.NewCartHandler(client, redisClient, queues, cfg, logger)
	checkoutHandler := handlers.NewCheckoutHandler(client, redisClient, orderService, queues, cfg, logger)
	pointsHandler := handlers.NewPointsHandler(client, redisClient, cfg, logger)
	orderHandler := handlers.NewOrderHandler(orderService)

	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.GET("/count", cartHandler.GetCartCount)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	cartSync := rg.Group("/cart/sync")
	cartSync.Use(middleware.AuthMiddleware(cfg))
	{
		cartSync.POST("", cartHandler.SyncAfterLogin)
	}

	pointsRoutes := rg.Group("/points")
	pointsRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		pointsRoutes.GET("/redemption-config", pointsHandler.GetRedemptionConfig)
		pointsRoutes.GET("/my-balance", pointsHandler.GetBalance)
		pointsRoutes.GET("/my-benefits", pointsHandler.GetBenefits)
	}

	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutRoutes.GET("/quote", checkoutHandler.GetQuote)
		checkoutRoutes.GET("/payment-methods", checkoutHandler.GetPaymentMethods)
		checkoutRoutes.POST("", checkoutHandler.SubmitOrder)
	}

	orderRoutes := rg.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		orderRoutes.GET("/recent", orderHandler.GetRecentOrders)
	}
}
