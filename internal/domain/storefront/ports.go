package storefront

import "context"

// PartLookup resolves a merchant SKU to the platform's variant identifier
type PartLookup interface {
	// IDOfSKU performs exactly one lookup round trip. A SKU without an
	// online-store variant yields NotFound and a nil error. Found carries the
	// service's answer verbatim; turning it into a numeric id (and rejecting
	// blank or non-numeric answers) is left to the caller.
	IDOfSKU(ctx context.Context, sku string) (LookupResult, error)
}

// Cart is the storefront cart API as seen from a shopper's session
type Cart interface {
	// Cart fetches a fresh snapshot; it is never cached
	Cart(ctx context.Context) (*CartSnapshot, error)
	// UpdateCartCount fetches the cart and writes its item count to the
	// cart-count view, returning the count
	UpdateCartCount(ctx context.Context) (int, error)
	// AddToCart posts a single item
	AddToCart(ctx context.Context, item CartItemRequest) (CartItemResult, error)
}

// Notifier presents messages to the shopper. Calls are fire-and-forget.
type Notifier interface {
	Success(msg string)
	Error(msg string)
	Alert(title, msg string)
}

// CartCountView is the on-page cart-count indicator. It is only ever written.
type CartCountView interface {
	// SetCartCount returns ErrCartCountNode when the indicator is absent
	SetCartCount(count int) error
}
