// internal/domain/cart/entity.go
package cart

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidQuantity is returned for quantities below 1. Callers that
	// want a line gone must call Remove, never SetQuantity(id, 0).
	ErrInvalidQuantity = errors.New("quantity must be at least 1")

	// ErrItemNotFound is returned when a quantity update targets a product
	// that is not in the cart
	ErrItemNotFound = errors.New("item not found in cart")

	// ErrSessionRequired is returned when an anonymous cart operation has
	// no session ID to key on
	ErrSessionRequired = errors.New("session ID required for anonymous cart")
)

// LineItem represents one product entry in a cart with its quantity and
// price snapshot
type LineItem struct {
	ProductID        int64            `json:"product_id"`
	ProductName      string           `json:"product_name"`
	UnitPrice        decimal.Decimal  `json:"unit_price"`
	OriginalPrice    *decimal.Decimal `json:"original_price,omitempty"`
	Quantity         int              `json:"quantity"`
	ImageURL         string           `json:"image_url"`
	SellerName       string           `json:"seller_name,omitempty"`
	SellerOfferingID *int64           `json:"seller_offering_id,omitempty"`
}

// LineTotal returns unit price times quantity
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// MarkdownBase returns the price the catalog markdown is measured against.
// An original price is honored only when it is strictly above the unit
// price; anything else is ignored rather than treated as a negative saving.
func (li LineItem) MarkdownBase() decimal.Decimal {
	if li.OriginalPrice != nil && li.OriginalPrice.GreaterThan(li.UnitPrice) {
		return *li.OriginalPrice
	}
	return li.UnitPrice
}
