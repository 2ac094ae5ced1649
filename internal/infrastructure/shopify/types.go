package shopify

import (
	"encoding/json"
	"fmt"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// CartAddRequest is the body of POST /cart/add.js
type CartAddRequest struct {
	Items []storefront.CartItemRequest `json:"items"`
}

// CartErrorResponse is the body the cart API sends with 4xx/5xx responses
type CartErrorResponse struct {
	Status      json.RawMessage `json:"status,omitempty"`
	Message     string          `json:"message"`
	Description string          `json:"description"`
}

// decodeCartSnapshot reads the /cart.js body, keeping unknown fields as raw JSON
func decodeCartSnapshot(body []byte) (*storefront.CartSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrCartInvalidResponse, err)
	}

	rawCount, ok := fields["item_count"]
	if !ok {
		return nil, fmt.Errorf("%w: item_count missing", storefront.ErrCartInvalidResponse)
	}
	var count int
	if err := json.Unmarshal(rawCount, &count); err != nil {
		return nil, fmt.Errorf("%w: item_count: %v", storefront.ErrCartInvalidResponse, err)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative item_count %d", storefront.ErrCartInvalidResponse, count)
	}
	delete(fields, "item_count")

	return &storefront.CartSnapshot{ItemCount: count, Extra: fields}, nil
}

// decodeCartError reads the description out of an error body
func decodeCartError(body []byte) (*CartErrorResponse, error) {
	var resp CartErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", storefront.ErrCartInvalidResponse, err)
	}
	return &resp, nil
}
