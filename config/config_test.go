package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "USD", cfg.Account.Currency)
	assert.Equal(t, 10000.0, cfg.Account.Balance)
	assert.Equal(t, 1.0, cfg.Account.RiskPercent)
	assert.Equal(t, 1.0850, cfg.Rates["EURUSD"])
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"valid config", func(c *Config) {}, ""},
		{"missing currency", func(c *Config) { c.Account.Currency = "" }, "account.currency"},
		{"unsupported currency", func(c *Config) { c.Account.Currency = "SEK" }, "account.currency"},
		{"negative balance", func(c *Config) { c.Account.Balance = -1000 }, "account.balance must be positive"},
		{"risk too high", func(c *Config) { c.Account.RiskPercent = 10.5 }, "account.risk_percent"},
		{"bad ratio", func(c *Config) { c.Account.RewardRisk = "2" }, "account.reward_risk"},
		{"derived rate", func(c *Config) { c.Rates["EURJPY"] = 160 }, "not an observed instrument"},
		{"zero rate", func(c *Config) { c.Rates["USDJPY"] = 0 }, "USDJPY must be positive"},
		{"bad feed", func(c *Config) { c.Feed.Type = "kafka" }, "feed.type"},
		{"csv feed without path", func(c *Config) { c.Feed.Type = "csv" }, "feed.csv_path"},
		{"oanda feed without account", func(c *Config) { c.Feed.Type = "oanda" }, "feed.oanda.account_id"},
		{"bad interval", func(c *Config) { c.Feed.Interval = "soon" }, "feed.interval"},
		{"negative interval", func(c *Config) { c.Feed.Interval = "-1s" }, "feed.interval"},
		{"bad stale", func(c *Config) { c.Feed.StaleAfter = "x" }, "feed.stale_after"},
		{"sqlite without path", func(c *Config) { c.Journal.Type = "sqlite" }, "journal.db_path"},
		{"csv journal without file", func(c *Config) { c.Journal.Type = "csv" }, "journal.file"},
		{"bad journal", func(c *Config) { c.Journal.Type = "mongo" }, "journal.type"},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Account.Currency = "EUR"
			cfg.Rates["USDJPY"] = 151.25
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)

			assert.Equal(t, cfg.Account, loaded.Account)
			assert.Equal(t, cfg.Rates, loaded.Rates)
			assert.Equal(t, cfg.Feed, loaded.Feed)
			assert.Equal(t, cfg.Journal, loaded.Journal)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := []byte(`
account:
  currency: GBP
  balance: 2500
  risk_percent: 0.5
  reward_risk: "1:3"
rates:
  EURUSD: 1.1
`)
	require.NoError(t, os.WriteFile(path, data, 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "GBP", cfg.Account.Currency)
	assert.Equal(t, 1.1, cfg.Rates["EURUSD"])
	assert.Equal(t, 149.50, cfg.Rates["USDJPY"])
	assert.Equal(t, "random", cfg.Feed.Type)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestFeedDurations(t *testing.T) {
	tests := []struct {
		interval string
		expected time.Duration
		wantErr  bool
	}{
		{"1h", time.Hour, false},
		{"30s", 30 * time.Second, false},
		{"", 30 * time.Second, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.interval, func(t *testing.T) {
			d, err := FeedConfig{Interval: tt.interval}.IntervalDuration()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, d)
			}
		})
	}

	d, err := FeedConfig{}.StaleDuration()
	assert.NoError(t, err)
	assert.Zero(t, d)
}
