// internal/domain/cart/remote_backend.go
package cart

import (
	"context"

	"github.com/your-org/storefront-client/internal/infrastructure/storefront"
)

// RemoteBackend is the authenticated cart: the platform owns it, and the
// local store is only a read-through cache refreshed from its responses.
type RemoteBackend struct {
	api   *storefront.CartAPI
	token string
}

// NewRemoteBackend creates a backend over the platform's cart API, using
// the bearer credential carried by the current session
func NewRemoteBackend(api *storefront.CartAPI, token string) *RemoteBackend {
	return &RemoteBackend{
		api:   api,
		token: token,
	}
}

// Load reads the full server cart in the order the platform returns it
func (b *RemoteBackend) Load(ctx context.Context) ([]LineItem, error) {
	payloads, err := b.api.Get(ctx, b.token)
	if err != nil {
		return nil, err
	}

	items := make([]LineItem, len(payloads))
	for i, p := range payloads {
		items[i] = fromPayload(p)
	}
	return items, nil
}

// Add sends the new line to the platform
func (b *RemoteBackend) Add(ctx context.Context, item LineItem, qty int) error {
	payload := toPayload(item)
	payload.Quantity = qty
	return b.api.AddItem(ctx, b.token, payload)
}

// SetQuantity sends an absolute quantity update to the platform
func (b *RemoteBackend) SetQuantity(ctx context.Context, productID int64, qty int) error {
	return b.api.SetQuantity(ctx, b.token, productID, qty)
}

// Remove deletes the line on the platform
func (b *RemoteBackend) Remove(ctx context.Context, productID int64) error {
	return b.api.RemoveItem(ctx, b.token, productID)
}

// Clear empties the server cart
func (b *RemoteBackend) Clear(ctx context.Context) error {
	return b.api.Clear(ctx, b.token)
}

func fromPayload(p storefront.CartItemPayload) LineItem {
	return LineItem{
		ProductID:        p.ProductID,
		ProductName:      p.ProductName,
		UnitPrice:        p.UnitPrice,
		OriginalPrice:    p.OriginalPrice,
		Quantity:         p.Quantity,
		ImageURL:         p.ImageURL,
		SellerName:       p.SellerName,
		SellerOfferingID: p.SellerOfferingID,
	}
}

func toPayload(item LineItem) storefront.CartItemPayload {
	return storefront.CartItemPayload{
		ProductID:        item.ProductID,
		ProductName:      item.ProductName,
		UnitPrice:        item.UnitPrice,
		OriginalPrice:    item.OriginalPrice,
		Quantity:         item.Quantity,
		ImageURL:         item.ImageURL,
		SellerName:       item.SellerName,
		SellerOfferingID: item.SellerOfferingID,
	}
}
