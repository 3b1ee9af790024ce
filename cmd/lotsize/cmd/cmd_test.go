package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/oanda"
	"github.com/rustyeddy/lotsize/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestDayBounds(t *testing.T) {
	loc := time.FixedZone("X", -5*3600)
	start, end, err := dayBounds(loc, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, loc), start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))

	_, _, err = dayBounds(loc, "15/01/2024")
	assert.Error(t, err)
}

func TestNewFeed(t *testing.T) {
	store, err := market.NewRateStore(nil, time.Now())
	require.NoError(t, err)

	f, closeFeed, err := newFeed(config.FeedConfig{Type: "random", Seed: 7}, nil, store)
	require.NoError(t, err)
	assert.IsType(t, &pricing.RandomWalkFeed{}, f)
	assert.NoError(t, closeFeed())

	_, _, err = newFeed(config.FeedConfig{Type: "csv", CSVPath: filepath.Join(t.TempDir(), "missing.csv")}, nil, store)
	assert.Error(t, err)

	f, _, err = newFeed(config.FeedConfig{
		Type:  "oanda",
		OANDA: config.OANDAConfig{Env: "practice", AccountID: "101-001-1", Token: "t"},
	}, nil, store)
	require.NoError(t, err)
	assert.IsType(t, &oanda.PricingFeed{}, f)

	_, _, err = newFeed(config.FeedConfig{Type: "kafka"}, nil, store)
	assert.Error(t, err)
}

func TestStaticFeedRepublishesConfiguredRates(t *testing.T) {
	store, err := market.NewRateStore(nil, time.Now())
	require.NoError(t, err)

	f, _, err := newFeed(config.FeedConfig{Type: "static"}, map[string]float64{"EURUSD": 1.2}, store)
	require.NoError(t, err)

	r := pricing.NewRefresher(store, f, time.Second, nil)
	require.NoError(t, r.RefreshOnce(context.Background()))

	got, ok := store.Get("EURUSD")
	require.True(t, ok)
	assert.InDelta(t, 1.2, got, 1e-12)
}

func TestOpenJournalNone(t *testing.T) {
	j, err := openJournal(config.JournalConfig{Type: "none"})
	require.NoError(t, err)
	assert.Nil(t, j)
}

func TestCalcCommand(t *testing.T) {
	out := execute(t, "calc", "--pair", "EURUSD", "--stop", "50")
	assert.Contains(t, out, "Position Size: 0.20 lots")
	assert.Contains(t, out, "Money at Risk: $100.00")
	assert.Contains(t, out, "Potential Profit: $200.00")
}

func TestCalcCommandWarnsOnStaleRates(t *testing.T) {
	cfg := config.Default()
	cfg.Feed.StaleAfter = "1ns"
	path := filepath.Join(t.TempDir(), "stale.yaml")
	require.NoError(t, cfg.SaveToFile(path))
	t.Cleanup(func() { cfgFile = "" })

	out := execute(t, "calc", "--config", path, "--pair", "EURUSD", "--stop", "50")
	assert.Contains(t, out, "Position Size: 0.20 lots")
	assert.Contains(t, out, "Warning: rates are stale")
}

func TestConvertCommand(t *testing.T) {
	out := execute(t, "convert", "100", "EUR", "EUR")
	assert.Equal(t, "€100.00 = €100.00\n", out)
}

func TestConvertCommandRejectsNonFinite(t *testing.T) {
	for _, amount := range []string{"NaN", "Inf", "+Inf"} {
		rootCmd.SetOut(&bytes.Buffer{})
		rootCmd.SetErr(&bytes.Buffer{})
		rootCmd.SetArgs([]string{"convert", amount, "EUR", "USD"})
		err := rootCmd.Execute()
		require.Error(t, err, amount)
		assert.Contains(t, err.Error(), "finite")
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lotsize.yaml")

	out := execute(t, "config", "init", "-o", path)
	assert.Contains(t, out, "Created default configuration")

	out = execute(t, "config", "validate", "-f", path)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Feed: random every 30s")
}
