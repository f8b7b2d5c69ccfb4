// Carolgate - NTSB CAROL Accident Data Proxy
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/carolgate

package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config is the root configuration for the proxy.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Carol    CarolConfig    `koanf:"carol"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// CarolConfig holds settings for the upstream CAROL FileExport client.
//
// BaseURL and Origin default to the public data.ntsb.gov endpoint; they
// are configurable so tests and mirrors can point elsewhere.
type CarolConfig struct {
	BaseURL   string `koanf:"base_url"`
	Origin    string `koanf:"origin"`
	UserAgent string `koanf:"user_agent"`

	// Timeout bounds each individual network attempt. Exceeding it counts
	// as a transport failure for retry purposes.
	Timeout time.Duration `koanf:"timeout"`

	// MaxRetries is the total attempt cap, not the count of additional
	// retries after the first attempt.
	MaxRetries int `koanf:"max_retries"`

	// RetryBackoff is multiplied by the attempt number between attempts.
	RetryBackoff time.Duration `koanf:"retry_backoff"`

	// Outbound politeness limiter toward data.ntsb.gov.
	RateLimitRPS   float64 `koanf:"rate_limit_rps"`
	RateLimitBurst int     `koanf:"rate_limit_burst"`

	// BreakerDisabled bypasses the circuit breaker (tests, one-shot use).
	BreakerDisabled bool `koanf:"breaker_disabled"`
}

// APIConfig holds pagination defaults for the case listing endpoints.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds inbound rate limiting and CORS settings.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Addr returns the listen address in host:port form.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate checks for values that would misbehave at runtime. It runs after
// unmarshaling, before anything is constructed from the config.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be 1-65535, got %d", c.Server.Port)
	}

	if c.Carol.BaseURL == "" {
		return fmt.Errorf("carol.base_url must not be empty")
	}
	if _, err := url.ParseRequestURI(c.Carol.BaseURL); err != nil {
		return fmt.Errorf("carol.base_url is not a valid URL: %w", err)
	}
	if c.Carol.Timeout <= 0 {
		return fmt.Errorf("carol.timeout must be positive, got %s", c.Carol.Timeout)
	}
	if c.Carol.MaxRetries < 1 {
		return fmt.Errorf("carol.max_retries must be at least 1, got %d", c.Carol.MaxRetries)
	}
	if c.Carol.RetryBackoff < 0 {
		return fmt.Errorf("carol.retry_backoff must not be negative, got %s", c.Carol.RetryBackoff)
	}

	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("api.default_page_size must be at least 1, got %d", c.API.DefaultPageSize)
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("api.max_page_size (%d) must be >= api.default_page_size (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}

	if !c.Security.RateLimitDisabled && c.Security.RateLimitReqs < 1 {
		return fmt.Errorf("security.rate_limit_requests must be at least 1, got %d",
			c.Security.RateLimitReqs)
	}

	return nil
}
