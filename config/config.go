package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"gopkg.in/yaml.v3"
)

// Config is the complete application configuration
type Config struct {
	Account    AccountConfig      `json:"account" yaml:"account"`
	Rates      map[string]float64 `json:"rates" yaml:"rates"`
	Feed       FeedConfig         `json:"feed" yaml:"feed"`
	Conversion ConversionConfig   `json:"conversion" yaml:"conversion"`
	Journal    JournalConfig      `json:"journal" yaml:"journal"`
	Server     ServerConfig       `json:"server" yaml:"server"`
	Log        LogConfig          `json:"log" yaml:"log"`
}

// AccountConfig holds the defaults for a sizing request
type AccountConfig struct {
	Currency    string  `json:"currency" yaml:"currency"`
	Balance     float64 `json:"balance" yaml:"balance"`
	RiskPercent float64 `json:"risk_percent" yaml:"risk_percent"`
	RewardRisk  string  `json:"reward_risk" yaml:"reward_risk"`
}

// FeedConfig selects where rate updates come from
type FeedConfig struct {
	Type       string      `json:"type" yaml:"type"` // "random", "csv", "static" or "oanda"
	Interval   string      `json:"interval" yaml:"interval"`
	CSVPath    string      `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
	StaleAfter string      `json:"stale_after,omitempty" yaml:"stale_after,omitempty"`
	Seed       int64       `json:"seed,omitempty" yaml:"seed,omitempty"`
	OANDA      OANDAConfig `json:"oanda,omitempty" yaml:"oanda,omitempty"`
}

type OANDAConfig struct {
	Env       string `json:"env,omitempty" yaml:"env,omitempty"` // practice or live
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	Token     string `json:"token,omitempty" yaml:"token,omitempty"` // falls back to $OANDA_TOKEN
}

// TokenOrEnv returns the configured token or $OANDA_TOKEN.
func (o OANDAConfig) TokenOrEnv() string {
	if o.Token != "" {
		return o.Token
	}
	return os.Getenv("OANDA_TOKEN")
}

// ConversionConfig controls what happens when no rate path exists
type ConversionConfig struct {
	PassthroughOnGap bool `json:"passthrough_on_gap" yaml:"passthrough_on_gap"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
}

// LoadFromFile loads configuration from a file (YAML first, then JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if _, err := market.ParseCurrency(c.Account.Currency); err != nil {
		return fmt.Errorf("account.currency: %w", err)
	}
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Account.RiskPercent <= 0 || c.Account.RiskPercent > risk.DefaultLimits.MaxRiskPct {
		return fmt.Errorf("account.risk_percent must be between 0 and %.0f", risk.DefaultLimits.MaxRiskPct)
	}
	if _, err := risk.ParseRewardRisk(c.Account.RewardRisk); err != nil {
		return fmt.Errorf("account.reward_risk: %w", err)
	}

	for sym, r := range c.Rates {
		meta, ok := market.Instruments[sym]
		if !ok || meta.Derived {
			return fmt.Errorf("rates: %s is not an observed instrument", sym)
		}
		if r <= 0 {
			return fmt.Errorf("rates: %s must be positive", sym)
		}
	}

	switch c.Feed.Type {
	case "random", "static":
	case "csv":
		if c.Feed.CSVPath == "" {
			return fmt.Errorf("feed.csv_path required for csv feed")
		}
	case "oanda":
		if c.Feed.OANDA.AccountID == "" {
			return fmt.Errorf("feed.oanda.account_id required for oanda feed")
		}
	default:
		return fmt.Errorf("feed.type must be 'random', 'csv', 'static' or 'oanda'")
	}
	if _, err := c.Feed.IntervalDuration(); err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	}
	if _, err := c.Feed.StaleDuration(); err != nil {
		return fmt.Errorf("feed.stale_after: %w", err)
	}

	switch c.Journal.Type {
	case "none", "":
	case "csv":
		if c.Journal.File == "" {
			return fmt.Errorf("journal.file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be debug|info|warn|error")
	}
	return nil
}

// IntervalDuration parses the refresh cadence; empty means the default.
func (f FeedConfig) IntervalDuration() (time.Duration, error) {
	if f.Interval == "" {
		return 30 * time.Second, nil
	}
	d, err := time.ParseDuration(f.Interval)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}

// StaleDuration parses stale_after; empty disables the staleness warning.
func (f FeedConfig) StaleDuration() (time.Duration, error) {
	if f.StaleAfter == "" {
		return 0, nil
	}
	return time.ParseDuration(f.StaleAfter)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	rates := make(map[string]float64, len(market.DefaultSeed))
	for k, v := range market.DefaultSeed {
		rates[k] = v
	}
	return &Config{
		Account: AccountConfig{
			Currency:    "USD",
			Balance:     10000,
			RiskPercent: 1,
			RewardRisk:  "1:2",
		},
		Rates: rates,
		Feed: FeedConfig{
			Type:       "random",
			Interval:   "30s",
			StaleAfter: "2m",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
