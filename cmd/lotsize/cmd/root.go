package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/config"
	"github.com/rustyeddy/lotsize/internal/logging"
	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/oanda"
	"github.com/rustyeddy/lotsize/pricing"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "lotsize",
	Short: "Forex position size calculator",
	Long: `Lotsize works out how many lots to trade so that a stop loss costs a
fixed share of the account.

It provides tools for:
  - Sizing a position from balance, risk and stop distance
  - Pip values and currency conversion in any account currency
  - A JSON API with a periodically refreshed rate table
  - A journal of past calculations

Complete documentation is available at https://github.com/rustyeddy/lotsize`,
	SilenceUsage: true,
}

var (
	cfgFile  string
	logLevel string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file, YAML or JSON (built-in defaults when empty)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log.level from the config")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(cfgFile)
}

// app is what every subcommand needs: config, logger, rates and the engine.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *market.RateStore
	engine *risk.Engine
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if logLevel != "" {
		level = logLevel
	}
	log, err := logging.New(level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	store, err := market.NewRateStore(cfg.Rates, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	engine := risk.NewEngine(store)
	engine.Passthrough = cfg.Conversion.PassthroughOnGap

	return &app{cfg: cfg, log: log, store: store, engine: engine}, nil
}

// newFeed builds the configured rate feed. The returned close func is never nil.
func newFeed(fc config.FeedConfig, rates map[string]float64, store *market.RateStore) (pricing.Feed, func() error, error) {
	nop := func() error { return nil }

	switch fc.Type {
	case "random", "":
		seed := fc.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return pricing.NewRandomWalkFeed(store, seed), nop, nil
	case "csv":
		f, err := pricing.OpenCSVFeed(fc.CSVPath)
		if err != nil {
			return nil, nop, err
		}
		return f, f.Close, nil
	case "static":
		ticks := make([]pricing.Tick, 0, len(rates))
		for sym, r := range rates {
			ticks = append(ticks, pricing.Tick{Instrument: sym, Bid: r, Ask: r})
		}
		return &pricing.StaticFeed{Ticks: ticks}, nop, nil
	case "oanda":
		c, err := oanda.NewClient(fc.OANDA.Env, fc.OANDA.TokenOrEnv())
		if err != nil {
			return nil, nop, err
		}
		return oanda.NewPricingFeed(c, fc.OANDA.AccountID), nop, nil
	default:
		return nil, nop, fmt.Errorf("unknown feed type %q", fc.Type)
	}
}

// refresh pulls a single batch from the configured feed.
func (a *app) refresh(ctx context.Context) error {
	feed, closeFeed, err := newFeed(a.cfg.Feed, a.cfg.Rates, a.store)
	if err != nil {
		return err
	}
	defer closeFeed()

	return pricing.NewRefresher(a.store, feed, 0, a.log).RefreshOnce(ctx)
}

// openJournal returns nil when journaling is off.
func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "csv":
		return journal.NewCSV(jc.File)
	case "sqlite":
		return journal.NewSQLite(jc.DBPath)
	default:
		return nil, nil
	}
}
