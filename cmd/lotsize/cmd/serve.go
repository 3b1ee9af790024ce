package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/lotsize/api"
	"github.com/rustyeddy/lotsize/pricing"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the JSON API with live rate refresh",
	Long: `Serve the calculator over HTTP. Rates are pulled from the configured
feed every feed.interval and published atomically, so each request sees one
consistent table.

Endpoints:
  POST /v1/calculate
  GET  /v1/rates
  GET  /v1/pip-value?pair=EURUSD&currency=USD&lots=1
  GET  /v1/convert?amount=100&from=EUR&to=JPY
  GET  /health

Example:
  lotsize serve --config lotsize.yaml --addr :9090`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	interval, err := a.cfg.Feed.IntervalDuration()
	if err != nil {
		return fmt.Errorf("feed.interval: %w", err)
	}
	staleAfter, err := a.cfg.Feed.StaleDuration()
	if err != nil {
		return fmt.Errorf("feed.stale_after: %w", err)
	}

	feed, closeFeed, err := newFeed(a.cfg.Feed, a.cfg.Rates, a.store)
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	defer closeFeed()

	j, err := openJournal(a.cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j != nil {
		defer j.Close()
	}

	addr := a.cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	refresher := pricing.NewRefresher(a.store, feed, interval, a.log.Named("rates"))
	go func() {
		if err := refresher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			a.log.Error("refresher stopped", zap.Error(err))
		}
	}()

	h := api.NewHandler(a.engine, a.store, a.log.Named("api"), api.Options{
		Journal:    j,
		StaleAfter: staleAfter,
	})
	srv := h.Server(addr)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening",
			zap.String("addr", addr),
			zap.String("feed", a.cfg.Feed.Type),
			zap.Duration("interval", interval),
			zap.String("journal", a.cfg.Journal.Type),
		)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server: %w", err)
		}
	case <-ctx.Done():
	}

	a.log.Info("shutdown requested")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 8*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
