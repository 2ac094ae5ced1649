// Package idlookup is the HTTP adapter for the ARI part id lookup service,
// which maps merchant SKUs to storefront variant ids.
package idlookup

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aokpower/ari-cart/internal/domain/storefront"
)

// maxResponseSize caps the lookup body; a variant id is a handful of digits
const maxResponseSize = 64 * 1024

const checkPath = "/check/"

// Client implements storefront.PartLookup over HTTP
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a lookup client with the given configuration
func NewClient(config *Config, logger *zap.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("idlookup"),
	}, nil
}

// endpoint builds the check URL for a SKU, escaping it as a path segment
func (c *Client) endpoint(sku string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + checkPath + url.PathEscape(sku)
}

// IDOfSKU asks the lookup service for the variant id of sku.
// A success response with an empty body means the SKU isn't sold online;
// any other body is returned as is.
func (c *Client) IDOfSKU(ctx context.Context, sku string) (storefront.LookupResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(sku), nil)
	if err != nil {
		return storefront.LookupResult{}, fmt.Errorf("idlookup: failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Lookup request failed", zap.String("sku", sku), zap.Error(err))
		return storefront.LookupResult{}, &storefront.LookupServiceError{Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Lookup service returned an error status",
			zap.String("sku", sku),
			zap.Int("status", resp.StatusCode),
		)
		return storefront.LookupResult{}, &storefront.LookupServiceError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return storefront.LookupResult{}, &storefront.LookupServiceError{StatusCode: resp.StatusCode, Cause: err}
	}

	if len(body) == 0 {
		return storefront.NotFound(), nil
	}
	return storefront.Found(string(body)), nil
}
