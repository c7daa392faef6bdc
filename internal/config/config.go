// Package config assembles runtime settings for the server and CLI
// from an optional YAML file and environment overrides, so main stays
// lean.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vucehq/go-leadengine/pkg/currency"
	"github.com/vucehq/go-leadengine/pkg/geo"
)

// Config is the full runtime configuration. Every field has a working
// default; the relay's API key is the only value that must come from
// the operator for real deliveries.
type Config struct {
	Server   Server  `yaml:"server"`
	Lookups  Lookups `yaml:"lookups"`
	Relay    Relay   `yaml:"relay"`
	LogLevel string  `yaml:"log_level"`
}

// Server holds HTTP listener settings.
type Server struct {
	Addr    string `yaml:"addr"`
	SiteURL string `yaml:"site_url"`
}

// Lookups points at the best-effort enrichment endpoints.
type Lookups struct {
	GeoEndpoint      string `yaml:"geo_endpoint"`
	CurrencyEndpoint string `yaml:"currency_endpoint"`
}

// Relay configures outbound email delivery.
type Relay struct {
	APIKey       string `yaml:"api_key"`
	ContactEmail string `yaml:"contact_email"`
	FromEmail    string `yaml:"from_email"`
	// DevFallback makes a missing API key a logged no-op success
	// instead of a server error, for local development.
	DevFallback bool `yaml:"dev_fallback"`
}

// Default returns the baseline configuration.
func Default() Config {
	return Config{
		Server: Server{
			Addr:    ":8080",
			SiteURL: "http://localhost:8080",
		},
		Lookups: Lookups{
			GeoEndpoint:      geo.DefaultEndpoint,
			CurrencyEndpoint: currency.DefaultEndpoint,
		},
		Relay: Relay{
			ContactEmail: "hello@vuce.co",
			FromEmail:    "VUCE <noreply@vuce.co>",
		},
		LogLevel: "info",
	}
}

// Load builds the effective configuration: defaults, then the YAML
// file if a path is given, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// FromEnv builds the configuration from defaults plus environment
// overrides only.
func FromEnv() Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

func (c *Config) applyEnv() {
	setString(&c.Server.Addr, "LEADENGINE_ADDR")
	setString(&c.Server.SiteURL, "LEADENGINE_SITE_URL")
	setString(&c.Lookups.GeoEndpoint, "LEADENGINE_GEO_ENDPOINT")
	setString(&c.Lookups.CurrencyEndpoint, "LEADENGINE_CURRENCY_ENDPOINT")
	setString(&c.LogLevel, "LEADENGINE_LOG_LEVEL")

	setString(&c.Relay.APIKey, "RESEND_API_KEY")
	setString(&c.Relay.ContactEmail, "CONTACT_EMAIL")
	setString(&c.Relay.FromEmail, "FROM_EMAIL")
	if v := os.Getenv("LEADENGINE_DEV_FALLBACK"); v != "" {
		c.Relay.DevFallback = v == "true" || v == "1"
	}
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
