package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        AppConfig
	Log        LogConfig
	Lookup     LookupConfig
	Storefront StorefrontConfig
	ARI        ARIConfig
	HTTP       HTTPConfig
	Telemetry  TelemetryConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// LookupConfig holds the part id lookup service settings
type LookupConfig struct {
	BaseURL string
	Timeout time.Duration
}

// StorefrontConfig holds the storefront cart API settings
type StorefrontConfig struct {
	BaseURL           string
	Timeout           time.Duration
	CartCountSelector string
}

// ARIConfig holds add-to-cart orchestration settings
type ARIConfig struct {
	// StepTimeout bounds the wait on each network step; zero disables it
	StepTimeout time.Duration
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
	MaxBodySize    int64
}

// TelemetryConfig holds OpenTelemetry configuration
type TelemetryConfig struct {
	Enabled           bool
	CollectorEndpoint string
	SamplingRatio     float64
	ServiceName       string
	Insecure          bool
	// MetricsEnabled turns on OTLP metric export next to traces
	MetricsEnabled        bool
	MetricsExportInterval time.Duration
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ARI_ prefix (e.g., ARI_LOOKUP_BASE_URL)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/ari-cart")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	return fromViper(v)
}

// fromViper builds the config from an already-populated viper instance
func fromViper(v *viper.Viper) (*Config, error) {
	v.SetEnvPrefix("ARI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Lookup: LookupConfig{
			BaseURL: v.GetString("lookup.base_url"),
			Timeout: v.GetDuration("lookup.timeout"),
		},
		Storefront: StorefrontConfig{
			BaseURL:           v.GetString("storefront.base_url"),
			Timeout:           v.GetDuration("storefront.timeout"),
			CartCountSelector: v.GetString("storefront.cart_count_selector"),
		},
		ARI: ARIConfig{
			StepTimeout: v.GetDuration("ari.step_timeout"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
			MaxBodySize:    v.GetInt64("http.max_body_size"),
		},
		Telemetry: TelemetryConfig{
			Enabled:           v.GetBool("telemetry.enabled"),
			CollectorEndpoint: v.GetString("telemetry.collector_endpoint"),
			SamplingRatio:     v.GetFloat64("telemetry.sampling_ratio"),
			ServiceName:       v.GetString("telemetry.service_name"),
			Insecure:          v.GetBool("telemetry.insecure"),

			MetricsEnabled:        v.GetBool("telemetry.metrics_enabled"),
			MetricsExportInterval: v.GetDuration("telemetry.metrics_export_interval"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "ari-cart"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stderr"
	}
	if cfg.Lookup.BaseURL == "" {
		cfg.Lookup.BaseURL = "https://idlookup.aokpower.com"
	}
	if cfg.Lookup.Timeout == 0 {
		cfg.Lookup.Timeout = 10 * time.Second
	}
	if cfg.Storefront.BaseURL == "" {
		cfg.Storefront.BaseURL = "http://127.0.0.1:9292"
	}
	if cfg.Storefront.Timeout == 0 {
		cfg.Storefront.Timeout = 15 * time.Second
	}
	if cfg.Storefront.CartCountSelector == "" {
		cfg.Storefront.CartCountSelector = "#CartCount>span"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 45 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
	if cfg.HTTP.MaxHeaderBytes == 0 {
		cfg.HTTP.MaxHeaderBytes = 1 << 20 // 1MB
	}
	if cfg.HTTP.MaxBodySize == 0 {
		cfg.HTTP.MaxBodySize = 64 << 10 // 64KB
	}
	if cfg.Telemetry.CollectorEndpoint == "" {
		cfg.Telemetry.CollectorEndpoint = "localhost:4317"
	}
	if cfg.Telemetry.SamplingRatio == 0 {
		cfg.Telemetry.SamplingRatio = 1.0
	}
	if cfg.Telemetry.MetricsExportInterval == 0 {
		cfg.Telemetry.MetricsExportInterval = 60 * time.Second
	}
	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = cfg.App.Name
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if err := validateBaseURL("lookup.base_url", c.Lookup.BaseURL); err != nil {
		return err
	}
	if err := validateBaseURL("storefront.base_url", c.Storefront.BaseURL); err != nil {
		return err
	}
	if c.Lookup.Timeout < 0 || c.Storefront.Timeout < 0 {
		return fmt.Errorf("lookup.timeout and storefront.timeout cannot be negative")
	}
	if c.ARI.StepTimeout < 0 {
		return fmt.Errorf("ari.step_timeout cannot be negative")
	}

	if c.App.Env == "production" {
		if !strings.HasPrefix(c.Storefront.BaseURL, "https://") {
			return fmt.Errorf("storefront.base_url must use https in production")
		}
		if !strings.HasPrefix(c.Lookup.BaseURL, "https://") {
			return fmt.Errorf("lookup.base_url must use https in production")
		}
	}

	if c.Telemetry.SamplingRatio < 0.0 || c.Telemetry.SamplingRatio > 1.0 {
		return fmt.Errorf("telemetry.sampling_ratio must be between 0.0 and 1.0, got %f", c.Telemetry.SamplingRatio)
	}
	return nil
}

func validateBaseURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s must be an absolute http(s) URL, got %q", key, raw)
	}
	return nil
}

// TimeoutSeconds converts a duration into the whole seconds the HTTP adapters
// take, rounding up so sub-second values are not lost.
func TimeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}
