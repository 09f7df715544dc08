// internal/infrastructure/storefront/client_test.go
package storefront

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/storefront-client/internal/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Upstream.BaseURL = srv.URL + "/api"
	cfg.Upstream.RequestTimeout = 5 * time.Second
	cfg.Upstream.UserAgent = "storefront-client-test"

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	client, err := NewClient(cfg, logger)
	require.NoError(t, err)
	return client
}

func TestClientGetCart(t *testing.T) {
	var gotAuth, gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"product_id": 7, "product_name": "Widget", "unit_price": "49.90", "quantity": 2}]`))
	}))

	items, err := client.Cart().Get(context.Background(), "tok-123")
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "/api/cart", gotPath, "base path must be preserved")
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ProductID)
	assert.True(t, items[0].UnitPrice.Equal(decimal.RequireFromString("49.90")))
}

func TestClientUnauthorized(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))

	_, err := client.Points().Balance(context.Background(), "expired")
	require.Error(t, err)
	assert.True(t, IsAuthError(err))
}

func TestClientServerRejectionKeepsMessage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": "Product 7 is out of stock"}`))
	}))

	_, err := client.Orders().CreateOrder(context.Background(), "tok", OrderRequestPayload{})
	require.Error(t, err)
	assert.Equal(t, KindServerRejection, KindOf(err))
	assert.Equal(t, "Product 7 is out of stock", UserMessage(err))
}

func TestClientServerRejectionStructuredBodyFallsBack(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": {"code": 17, "fields": ["quantity"]}}`))
	}))

	_, err := client.Orders().CreateOrder(context.Background(), "tok", OrderRequestPayload{})
	require.Error(t, err)
	// A structured error body is not shown to the user
	assert.Equal(t, genericRejectionMessage, UserMessage(err))
}

func TestClientNetworkError(t *testing.T) {
	// Point at a closed port
	cfg := &config.Config{}
	cfg.Upstream.BaseURL = "http://127.0.0.1:1/api"
	cfg.Upstream.RequestTimeout = time.Second
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	client, err := NewClient(cfg, logger)
	require.NoError(t, err)

	_, err = client.Cart().Get(context.Background(), "tok")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestClientNoContent(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))

	err := client.Cart().RemoveItem(context.Background(), "tok", 7)
	assert.NoError(t, err)
}
