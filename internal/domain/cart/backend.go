// internal/domain/cart/backend.go
package cart

import "context"

// Backend is a persistent home for a cart. Both variants share one
// capability set so the synchronizer never branches on session mode at a
// call site: the anonymous cart lives in Redis and the authenticated cart
// lives on the platform, reached over its REST API.
type Backend interface {
	// Load reads the full cart in display order
	Load(ctx context.Context) ([]LineItem, error)

	// Add inserts a line or increments an existing one by qty
	Add(ctx context.Context, item LineItem, qty int) error

	// SetQuantity sets the absolute quantity of an existing line
	SetQuantity(ctx context.Context, productID int64, qty int) error

	// Remove deletes a line
	Remove(ctx context.Context, productID int64) error

	// Clear empties the cart
	Clear(ctx context.Context) error
}
