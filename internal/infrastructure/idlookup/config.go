package idlookup

import (
	"errors"
	"net/url"
)

// Config holds configuration for the part id lookup service
type Config struct {
	// BaseURL is the service root; lookups go to BaseURL + "/check/{sku}"
	BaseURL string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

const (
	// DefaultBaseURL is the production lookup endpoint
	DefaultBaseURL = "https://idlookup.aokpower.com"
	// DefaultTimeoutSeconds is used when no timeout is configured
	DefaultTimeoutSeconds = 10
)

// Errors for lookup configuration
var (
	ErrConfigInvalidBaseURL = errors.New("idlookup: base URL must be an absolute http(s) URL")
)

// NewConfig creates a lookup configuration with defaults
func NewConfig() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Validate validates the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ErrConfigInvalidBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return nil
}
