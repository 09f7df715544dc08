// internal/domain/checkout/errors.go
package checkout

import "errors"

var (
	// ErrEmptyCart means submission was attempted with no items in the cart
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNoPaymentMethod means submission was attempted with no payment method selected
	ErrNoPaymentMethod = errors.New("no payment method selected")

	// ErrUnknownPaymentMethod means the selected payment method is not one the platform offered
	ErrUnknownPaymentMethod = errors.New("unknown payment method")

	// ErrNotReady means the requested transition is not valid from the current state
	ErrNotReady = errors.New("checkout is not ready")
)
