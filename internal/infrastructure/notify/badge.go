package notify

import (
	"strconv"
	"sync"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// DefaultCartCountSelector is where themes render the header cart count
const DefaultCartCountSelector = "#CartCount>span"

// CountBadge is an in-memory cart-count indicator. A detached badge behaves
// like a page without the element: every write fails with ErrCartCountNode.
type CountBadge struct {
	mu       sync.RWMutex
	selector string
	attached bool
	text     string
	writes   int
}

// NewCountBadge creates an attached badge for selector
func NewCountBadge(selector string) *CountBadge {
	if selector == "" {
		selector = DefaultCartCountSelector
	}
	return &CountBadge{selector: selector, attached: true}
}

// NewDetachedCountBadge creates a badge whose element is absent
func NewDetachedCountBadge(selector string) *CountBadge {
	b := NewCountBadge(selector)
	b.attached = false
	return b
}

// SetCartCount replaces the badge text with count
func (b *CountBadge) SetCartCount(count int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return storefront.ErrCartCountNode
	}
	b.text = strconv.Itoa(count)
	b.writes++
	return nil
}

// Text returns the rendered count, empty until the first write
func (b *CountBadge) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.text
}

// Writes returns how many times the badge text was replaced
func (b *CountBadge) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}

// Selector returns the element selector this badge stands in for
func (b *CountBadge) Selector() string {
	return b.selector
}

var _ storefront.CartCountView = (*CountBadge)(nil)
