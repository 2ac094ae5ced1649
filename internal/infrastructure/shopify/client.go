// Package shopify is the HTTP adapter for the storefront's AJAX cart API
// (/cart.js and /cart/add.js).
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/publicsuffix"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// maxResponseSize is the maximum allowed response size from the cart API (2MB)
const maxResponseSize = 2 * 1024 * 1024

// Client implements storefront.Cart for one shopper session. Requests carry
// the session's cookies, the way a same-origin fetch with credentials would.
type Client struct {
	config     *Config
	origin     *url.URL
	transport  http.RoundTripper
	httpClient *http.Client
	view       storefront.CartCountView
	logger     *zap.Logger
}

// NewClient creates a cart client with an empty cookie jar. view receives the
// item count on UpdateCartCount and may be nil if the count is never shown.
func NewClient(config *Config, view storefront.CartCountView, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	origin, err := config.origin()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	c := &Client{
		config:    config,
		origin:    origin,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
		view:      view,
		logger:    logger.Named("shopify"),
	}
	if err := c.resetSession(nil); err != nil {
		return nil, err
	}
	return c, nil
}

// Session returns a client for another shopper, seeded with their cookies and
// writing counts to view. The connection pool is shared with c.
func (c *Client) Session(view storefront.CartCountView, cookies []*http.Cookie) (*Client, error) {
	s := &Client{
		config:    c.config,
		origin:    c.origin,
		transport: c.transport,
		view:      view,
		logger:    c.logger,
	}
	if err := s.resetSession(cookies); err != nil {
		return nil, err
	}
	return s, nil
}

func (c *Client) resetSession(cookies []*http.Cookie) error {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return fmt.Errorf("shopify: failed to create cookie jar: %w", err)
	}
	if len(cookies) > 0 {
		jar.SetCookies(c.origin, cookies)
	}
	c.httpClient = &http.Client{
		Transport: c.transport,
		Jar:       jar,
		Timeout:   time.Duration(c.config.TimeoutSeconds) * time.Second,
	}
	return nil
}

// Cookies returns the session cookies currently held for the storefront
func (c *Client) Cookies() []*http.Cookie {
	return c.httpClient.Jar.Cookies(c.origin)
}

func (c *Client) endpoint(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}

// Cart fetches the shopper's cart
func (c *Client) Cart(ctx context.Context) (*storefront.CartSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(cartPath), nil)
	if err != nil {
		return nil, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, storefront.NewResponseError(status)
	}
	return decodeCartSnapshot(body)
}

// UpdateCartCount fetches the cart and shows its item count. The count view
// is checked at write time, after the cart has been fetched.
func (c *Client) UpdateCartCount(ctx context.Context) (int, error) {
	cart, err := c.Cart(ctx)
	if err != nil {
		return 0, err
	}
	if c.view == nil {
		return 0, storefront.ErrCartCountNode
	}
	if err := c.view.SetCartCount(cart.ItemCount); err != nil {
		return 0, err
	}
	return cart.ItemCount, nil
}

// AddToCart posts a single item. 200 means added and 422 means the platform
// refused the item; any other status is an error carrying the platform's
// description.
func (c *Client) AddToCart(ctx context.Context, item storefront.CartItemRequest) (storefront.CartItemResult, error) {
	payload, err := json.Marshal(CartAddRequest{Items: []storefront.CartItemRequest{item}})
	if err != nil {
		return storefront.CartItemResult{}, fmt.Errorf("shopify: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(cartAddPath), bytes.NewReader(payload))
	if err != nil {
		return storefront.CartItemResult{}, fmt.Errorf("shopify: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	status, body, err := c.do(req)
	if err != nil {
		return storefront.CartItemResult{}, err
	}

	switch status {
	case http.StatusOK:
		return storefront.Added(), nil
	case http.StatusUnprocessableEntity:
		errResp, err := decodeCartError(body)
		if err != nil {
			return storefront.CartItemResult{}, err
		}
		return storefront.Unprocessable(errResp.Description), nil
	default:
		c.logger.Error("Unrecognized response code when adding to cart",
			zap.Int("status", status),
			zap.Int64("variant_id", item.ID),
			zap.ByteString("body", body),
		)
		errResp, err := decodeCartError(body)
		if err != nil {
			return storefront.CartItemResult{}, err
		}
		return storefront.CartItemResult{}, &storefront.CartAddError{
			StatusCode:  status,
			Description: errResp.Description,
		}
	}
}

// do performs the request and reads a bounded body
func (c *Client) do(req *http.Request) (int, []byte, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", storefront.ErrCartUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to read response: %v", storefront.ErrCartUnavailable, err)
	}
	return resp.StatusCode, body, nil
}
