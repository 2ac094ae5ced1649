package dto

import (
	"github.com/aokpower/ari-cart/internal/application/ari"
	"github.com/aokpower/ari-cart/internal/domain/storefront"
	"github.com/aokpower/ari-cart/internal/infrastructure/notify"
)

// AddToCartRequest carries the host page's parameter string, e.g.
// "arisku=ABC-123&ariqty=2". When Params is empty the raw query string of the
// request is used instead.
type AddToCartRequest struct {
	Params string `json:"params" form:"params"`
}

// AddToCartResponse reports one invocation
type AddToCartResponse struct {
	InvocationID  string                `json:"invocation_id"`
	State         ari.State             `json:"state"`
	FailedAt      ari.State             `json:"failed_at,omitempty"`
	SKU           string                `json:"sku,omitempty"`
	Quantity      int                   `json:"quantity,omitempty"`
	VariantID     int64                 `json:"variant_id,omitempty"`
	ItemStatus    string                `json:"item_status,omitempty"`
	CartCount     string                `json:"cart_count,omitempty"`
	Notifications []notify.Notification `json:"notifications"`
}

// CartCountResponse is the shopper's current cart item count
type CartCountResponse struct {
	ItemCount int    `json:"item_count"`
	Selector  string `json:"selector"`
	Text      string `json:"text"`
}

// ToAddToCartResponse converts an invocation outcome to a response DTO
func ToAddToCartResponse(out *ari.Outcome, notifications []notify.Notification, badge *notify.CountBadge) AddToCartResponse {
	resp := AddToCartResponse{
		InvocationID:  out.InvocationID,
		State:         out.State,
		FailedAt:      out.FailedAt,
		SKU:           out.Params.SKU,
		Quantity:      out.Params.Quantity,
		VariantID:     out.ProductID,
		Notifications: notifications,
	}
	if out.Result.Status != storefront.ItemStatusUnknown {
		resp.ItemStatus = out.Result.Status.String()
	}
	if badge != nil {
		resp.CartCount = badge.Text()
	}
	if resp.Notifications == nil {
		resp.Notifications = []notify.Notification{}
	}
	return resp
}
