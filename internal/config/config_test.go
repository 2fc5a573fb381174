package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		yaml      string
		envVars   map[string]string
		wantErr   string
		checkFunc func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid minimal config",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				require.Len(t, cfg.Products, 1)
				assert.Equal(t, "Console X", cfg.Products[0].Name)
				assert.Equal(t, "http://x", cfg.Products[0].URL)
				assert.InDelta(t, 300.0, cfg.Products[0].TargetPrice, 0.001)
			},
		},
		{
			name: "defaults applied for optional fields",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t, 15, cfg.Fetch.TimeoutSeconds)
				assert.NotEmpty(t, cfg.Fetch.UserAgent)
				assert.InDelta(t, 1.0, cfg.Fetch.RateLimit.PerSecond, 0.001)
				assert.Equal(t, 1, cfg.Fetch.RateLimit.Burst)
				assert.Equal(t, 5, cfg.Schedule.IntervalBetweenProductsSeconds)
				assert.Equal(t, 30, cfg.Schedule.IntervalBetweenCyclesSeconds)
				assert.Equal(t, 3, cfg.Schedule.MaxRetries)
				assert.Equal(t, 10, cfg.Schedule.RetryDelaySeconds)
				assert.False(t, cfg.Server.Enabled)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "text", cfg.Logging.Format)
			},
		},
		{
			name: "env var substitution",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
notifications:
  discord:
    enabled: true
    webhook_url: ${TEST_WEBHOOK_URL}
`,
			envVars: map[string]string{
				"TEST_WEBHOOK_URL": "https://discord.com/api/webhooks/123/abc",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				t.Helper()
				assert.Equal(t,
					"https://discord.com/api/webhooks/123/abc",
					cfg.Notifications.Discord.WebhookURL,
				)
			},
		},
		{
			name:    "no products",
			yaml:    `products: []`,
			wantErr: "at least one product is required",
		},
		{
			name: "product missing name",
			yaml: `
products:
  - url: http://x
    target_price: 300.0
`,
			wantErr: "products[0].name is required",
		},
		{
			name: "product missing url",
			yaml: `
products:
  - name: Console X
    target_price: 300.0
`,
			wantErr: "products[0].url is required",
		},
		{
			name: "product with non-positive target price",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 0
`,
			wantErr: "target_price must be positive",
		},
		{
			name: "css parser without selector",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
    parser: css
`,
			wantErr: "selector is required for the css parser",
		},
		{
			name: "discord enabled without webhook url",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
notifications:
  discord:
    enabled: true
`,
			wantErr: "notifications.discord.webhook_url is required",
		},
		{
			name: "webhook enabled without url",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
notifications:
  webhook:
    enabled: true
`,
			wantErr: "notifications.webhook.url is required",
		},
		{
			name: "negative schedule value",
			yaml: `
products:
  - name: Console X
    url: http://x
    target_price: 300.0
schedule:
  interval_between_cycles_seconds: -5
`,
			wantErr: "schedule values must be non-negative",
		},
		{
			name:    "malformed yaml",
			yaml:    `products: [`,
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := filepath.Join(t.TempDir(), "config.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o600))

			cfg, err := Load(path)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			tt.checkFunc(t, cfg)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestConfig_Accessors(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Fetch: FetchConfig{
			Headers:        map[string]string{"Accept-Language": "pt-BR"},
			UserAgent:      "test-agent",
			TimeoutSeconds: 20,
		},
		Schedule: ScheduleConfig{
			IntervalBetweenProductsSeconds: 5,
			IntervalBetweenCyclesSeconds:   30,
			MaxRetries:                     3,
			RetryDelaySeconds:              10,
		},
	}

	assert.Equal(t, 5*time.Second, cfg.IntervalBetweenProducts())
	assert.Equal(t, 30*time.Second, cfg.IntervalBetweenCycles())
	assert.Equal(t, 3, cfg.MaxRetries())
	assert.Equal(t, 10*time.Second, cfg.RetryDelay())
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout())

	headers := cfg.RequestHeaders()
	assert.Equal(t, "pt-BR", headers["Accept-Language"])
	assert.Equal(t, "test-agent", headers["User-Agent"])
}

func TestConfig_RequestHeaders_ExplicitUserAgentWins(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		Fetch: FetchConfig{
			Headers:   map[string]string{"User-Agent": "explicit"},
			UserAgent: "ignored",
		},
	}

	assert.Equal(t, "explicit", cfg.RequestHeaders()["User-Agent"])
}
