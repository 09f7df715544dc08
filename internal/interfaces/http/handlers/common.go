// internal/interfaces/http/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/storefront-client/internal/config"
	"github.com/your-org/storefront-client/internal/domain/cart"
	"github.com/your-org/storefront-client/internal/domain/checkout"
	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
	"github.com/your-org/storefront-client/internal/interfaces/http/middleware"
	"github.com/your-org/storefront-client/internal/pkg/session"
)

// buildSession derives the caller's session from the request: bearer claims
// when the auth middleware validated a token, a session cookie otherwise
func buildSession(c *gin.Context, cfg *config.Config) *session.Session {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		email, _ := middleware.GetUserEmailFromContext(c)
		token, _ := middleware.GetBearerTokenFromContext(c)
		return session.Authenticated(userID, email, token)
	}
	return session.Anonymous(getOrCreateSessionID(c, cfg))
}

// getOrCreateSessionID gets the session ID from the cookie or mints a new one
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, cfg.Cart.SessionCookieTTL, "/", "", false, true)
	}

	return sessionID
}

// respondError translates domain and upstream errors into HTTP responses.
// Validation failures never left the process, so they are 400s; upstream
// failures surface as 502 with the platform's message kept verbatim.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, checkout.ErrEmptyCart),
		errors.Is(err, checkout.ErrNoPaymentMethod),
		errors.Is(err, checkout.ErrUnknownPaymentMethod):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
	case errors.Is(err, cart.ErrItemNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
	case storefront.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": storefront.UserMessage(err),
		})
	case storefront.IsNetworkError(err):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": storefront.UserMessage(err),
		})
	case storefront.KindOf(err) == storefront.KindServerRejection:
		c.JSON(http.StatusBadGateway, gin.H{
			"error": storefront.UserMessage(err),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
