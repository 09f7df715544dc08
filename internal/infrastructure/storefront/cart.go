// internal/infrastructure/storefront/cart.go
package storefront

import (
	"context"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"
)

// CartItemPayload is the wire shape of one server cart line
type CartItemPayload struct {
	ProductID        int64            `json:"product_id"`
	ProductName      string           `json:"product_name"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	OriginalPrice    *decimal.Decimal `json:"original_price,omitempty"`
	Quantity         int              `json:"quantity"`
	ImageURL         string           `json:"image_url"`
	SellerName       string           `json:"seller_name,omitempty"`
	SellerOfferingID *int64           `json:"seller_offering_id,omitempty"`
}

// CartAPI talks to the platform's server-side cart
type CartAPI struct {
	client *Client
}

// Get retrieves the full server cart in display order
func (a *CartAPI) Get(ctx context.Context, token string) ([]CartItemPayload, error) {
	var items []CartItemPayload
	if err := a.client.do(ctx, http.MethodGet, "cart", token, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// AddItem adds a product to the server cart
func (a *CartAPI) AddItem(ctx context.Context, token string, item CartItemPayload) error {
	return a.client.do(ctx, http.MethodPost, "cart/items", token, item, nil)
}

// SetQuantity sets the absolute quantity of a server cart line
func (a *CartAPI) SetQuantity(ctx context.Context, token string, productID int64, quantity int) error {
	body := struct {
		Quantity int `json:"quantity"`
	}{Quantity: quantity}

	path := fmt.Sprintf("cart/items/%d", productID)
	return a.client.do(ctx, http.MethodPut, path, token, body, nil)
}

// RemoveItem deletes a line from the server cart
func (a *CartAPI) RemoveItem(ctx context.Context, token string, productID int64) error {
	path := fmt.Sprintf("cart/items/%d", productID)
	return a.client.do(ctx, http.MethodDelete, path, token, nil, nil)
}

// Clear empties the server cart
func (a *CartAPI) Clear(ctx context.Context, token string) error {
	return a.client.do(ctx, http.MethodDelete, "cart", token, nil, nil)
}
