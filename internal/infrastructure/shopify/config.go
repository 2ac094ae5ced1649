package shopify

import (
	"errors"
	"net/url"
)

// Config holds configuration for the storefront cart API
type Config struct {
	// BaseURL is the storefront origin, e.g. https://shop.example.com
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// DefaultBaseURL is the local theme development server
	DefaultBaseURL = "http://127.0.0.1:9292"
	// DefaultTimeoutSeconds is used when no timeout is configured
	DefaultTimeoutSeconds = 15

	cartPath    = "/cart.js"
	cartAddPath = "/cart/add.js"
)

// Errors for storefront configuration
var (
	ErrConfigInvalidBaseURL = errors.New("shopify: base URL must be an absolute http(s) URL")
)

// NewConfig creates a storefront configuration for the given origin
func NewConfig(baseURL string) *Config {
	return &Config{
		BaseURL:        baseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if _, err := c.origin(); err != nil {
		return err
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}

// origin parses BaseURL; cookies are scoped to it
func (c *Config) origin() (*url.URL, error) {
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrConfigInvalidBaseURL
	}
	return u, nil
}
