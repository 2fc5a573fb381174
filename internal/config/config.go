// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	domain "github.com/atcovolan/pricewatch/pkg/types"
)

// Config is the top-level application configuration. It is loaded once at
// startup and treated as immutable for the lifetime of the process.
type Config struct {
	Products      []domain.Product    `yaml:"products"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Fetch         FetchConfig         `yaml:"fetch"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Server        ServerConfig        `yaml:"server"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
	Webhook WebhookConfig `yaml:"webhook"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// WebhookConfig defines generic webhook settings.
type WebhookConfig struct {
	Enabled bool              `yaml:"enabled"`
	URL     string            `yaml:"url"`
	Headers map[string]string `yaml:"headers"`
}

// FetchConfig defines outbound page request settings. Headers are sent
// verbatim on every fetch; UserAgent is merged into them unless the headers
// already carry one.
type FetchConfig struct {
	Headers        map[string]string `yaml:"headers"`
	UserAgent      string            `yaml:"user_agent"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
	RateLimit      RateLimitConfig   `yaml:"rate_limit"`
}

// RateLimitConfig caps the outbound request rate across all products.
type RateLimitConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// ScheduleConfig defines the monitoring cadence. All values are whole
// seconds, matching the config file's *_seconds keys.
type ScheduleConfig struct {
	IntervalBetweenProductsSeconds int `yaml:"interval_between_products_seconds"`
	IntervalBetweenCyclesSeconds   int `yaml:"interval_between_cycles_seconds"`
	MaxRetries                     int `yaml:"max_retries"`
	RetryDelaySeconds              int `yaml:"retry_delay_seconds"`
}

// ServerConfig defines the optional health/metrics listener. Disabled by
// default so the daemon exposes no inbound surface unless asked to.
type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution, default application, and validation. A missing or malformed
// required field is an error: monitoring must not start on a partial config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadProducts returns the ordered product list.
func (c *Config) LoadProducts() []domain.Product {
	return c.Products
}

// RequestHeaders returns the headers sent on every page fetch, with the
// configured user agent merged in when the headers don't set one.
func (c *Config) RequestHeaders() map[string]string {
	headers := make(map[string]string, len(c.Fetch.Headers)+1)
	for k, v := range c.Fetch.Headers {
		headers[k] = v
	}
	if _, ok := headers["User-Agent"]; !ok && c.Fetch.UserAgent != "" {
		headers["User-Agent"] = c.Fetch.UserAgent
	}
	return headers
}

// IntervalBetweenProducts returns the pause after each product's processing.
func (c *Config) IntervalBetweenProducts() time.Duration {
	return time.Duration(c.Schedule.IntervalBetweenProductsSeconds) * time.Second
}

// IntervalBetweenCycles returns the pause after each full pass.
func (c *Config) IntervalBetweenCycles() time.Duration {
	return time.Duration(c.Schedule.IntervalBetweenCyclesSeconds) * time.Second
}

// MaxRetries returns the number of retries allowed per product per cycle,
// on top of the initial attempt.
func (c *Config) MaxRetries() int {
	return c.Schedule.MaxRetries
}

// RetryDelay returns the base delay between attempts; the monitor jitters
// around it.
func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.Schedule.RetryDelaySeconds) * time.Second
}

// FetchTimeout returns the per-request timeout for page fetches.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Fetch.TimeoutSeconds) * time.Second
}

func applyDefaults(cfg *Config) {
	applyFetchDefaults(&cfg.Fetch)
	applyScheduleDefaults(&cfg.Schedule)
	applyServerDefaults(&cfg.Server)
	applyLoggingDefaults(&cfg.Logging)
}

func applyFetchDefaults(f *FetchConfig) {
	if f.TimeoutSeconds == 0 {
		f.TimeoutSeconds = 15
	}
	if f.UserAgent == "" {
		f.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"
	}
	if f.RateLimit.PerSecond == 0 {
		f.RateLimit.PerSecond = 1.0
	}
	if f.RateLimit.Burst == 0 {
		f.RateLimit.Burst = 1
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.IntervalBetweenProductsSeconds == 0 {
		s.IntervalBetweenProductsSeconds = 5
	}
	if s.IntervalBetweenCyclesSeconds == 0 {
		s.IntervalBetweenCyclesSeconds = 30
	}
	if s.MaxRetries == 0 {
		s.MaxRetries = 3
	}
	if s.RetryDelaySeconds == 0 {
		s.RetryDelaySeconds = 10
	}
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 9090
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if len(cfg.Products) == 0 {
		errs = append(errs, fmt.Errorf("products: at least one product is required"))
	}
	for i, p := range cfg.Products {
		if p.Name == "" {
			errs = append(errs, fmt.Errorf("products[%d].name is required", i))
		}
		if p.URL == "" {
			errs = append(errs, fmt.Errorf("products[%d].url is required", i))
		}
		if p.TargetPrice <= 0 {
			errs = append(errs, fmt.Errorf("products[%d].target_price must be positive", i))
		}
		if p.Parser == domain.ParserCSS && p.Selector == "" {
			errs = append(errs, fmt.Errorf("products[%d].selector is required for the css parser", i))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if cfg.Notifications.Webhook.Enabled && cfg.Notifications.Webhook.URL == "" {
		errs = append(errs, fmt.Errorf("notifications.webhook.url is required when webhook is enabled"))
	}

	s := cfg.Schedule
	if s.IntervalBetweenProductsSeconds < 0 ||
		s.IntervalBetweenCyclesSeconds < 0 ||
		s.MaxRetries < 0 ||
		s.RetryDelaySeconds < 0 {
		errs = append(errs, fmt.Errorf("schedule values must be non-negative"))
	}

	if cfg.Fetch.TimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("fetch.timeout_seconds must be non-negative"))
	}
	if cfg.Fetch.RateLimit.PerSecond < 0 {
		errs = append(errs, fmt.Errorf("fetch.rate_limit.per_second must be non-negative"))
	}

	return errors.Join(errs...)
}
