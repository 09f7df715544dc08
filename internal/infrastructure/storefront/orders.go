// internal/infrastructure/storefront/orders.go
package storefront

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"
)

// PaymentMethodPayload is the wire shape of one available payment method
type PaymentMethodPayload struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OrderItemPayload is one line of an order submission
type OrderItemPayload struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequestPayload is the order submission body. PointsToRedeem is the
// clamped value from the pricing engine, never the raw user input.
type OrderRequestPayload struct {
	Items           []OrderItemPayload `json:"items"`
	PaymentMethodID string             `json:"payment_method_id"`
	PointsToRedeem  decimal.Decimal    `json:"points_to_redeem"`
}

// OrderResponsePayload is the platform's answer to an order submission
type OrderResponsePayload struct {
	OrderID int64 `json:"order_id"`
}

// OrderAPI talks to the platform's payment method and order endpoints
type OrderAPI struct {
	client *Client
}

// PaymentMethods fetches the payment methods available to the caller
func (a *OrderAPI) PaymentMethods(ctx context.Context, token string) ([]PaymentMethodPayload, error) {
	var methods []PaymentMethodPayload
	if err := a.client.do(ctx, http.MethodGet, "payment-methods", token, nil, &methods); err != nil {
		return nil, err
	}
	return methods, nil
}

// CreateOrder submits an order. The platform is the source of truth for the
// final settled amount; the storefront only ever estimated it.
func (a *OrderAPI) CreateOrder(ctx context.Context, token string, req OrderRequestPayload) (OrderResponsePayload, error) {
	var resp OrderResponsePayload
	err := a.client.do(ctx, http.MethodPost, "orders", token, req, &resp)
	return resp, err
}
