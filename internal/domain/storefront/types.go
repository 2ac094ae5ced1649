package storefront

import "encoding/json"

// ---------------------------------------------------------------------------
// ItemStatus represents the outcome of an add-to-cart request
// ---------------------------------------------------------------------------

// ItemStatus represents the outcome of an add-to-cart request
type ItemStatus int

const (
	// ItemStatusUnknown is the zero value and never produced by a cart adapter
	ItemStatusUnknown ItemStatus = iota
	// ItemStatusAdded indicates the variant was added to the cart
	ItemStatusAdded
	// ItemStatusUnprocessable indicates the platform refused the item (e.g. out of stock)
	ItemStatusUnprocessable
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	switch s {
	case ItemStatusAdded:
		return "ADDED"
	case ItemStatusUnprocessable:
		return "UNPROCESSABLE"
	default:
		return "UNKNOWN"
	}
}

// ---------------------------------------------------------------------------
// Value objects
// ---------------------------------------------------------------------------

// CartItemRequest is a single variant line posted to the cart.
// Root products and product options are not supported.
type CartItemRequest struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
}

// CartItemResult is the interpreted response of an add-to-cart call
type CartItemResult struct {
	Status      ItemStatus
	Description string // set for ItemStatusUnprocessable
}

// Added returns the result for a successful add
func Added() CartItemResult {
	return CartItemResult{Status: ItemStatusAdded}
}

// Unprocessable returns the result for a refused add with the platform's reason
func Unprocessable(description string) CartItemResult {
	return CartItemResult{Status: ItemStatusUnprocessable, Description: description}
}

// CartSnapshot is a read-only view of the shopper's cart. Only ItemCount is
// interpreted; everything else the platform returns is kept in Extra.
type CartSnapshot struct {
	ItemCount int
	Extra     map[string]json.RawMessage
}

// LookupResult is the answer of the part id lookup service
type LookupResult struct {
	Value  string
	Exists bool
}

// Found returns a LookupResult holding the resolved identifier
func Found(value string) LookupResult {
	return LookupResult{Value: value, Exists: true}
}

// NotFound returns the empty LookupResult
func NotFound() LookupResult {
	return LookupResult{}
}

// ActionParams is what a host page asks us to add to the cart
type ActionParams struct {
	SKU      string `validate:"required"`
	Quantity int    `validate:"gt=0"`
}
