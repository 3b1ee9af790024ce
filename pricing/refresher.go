package pricing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"go.uber.org/zap"
)

const DefaultInterval = 30 * time.Second

// Refresher pulls quotes from a Feed and publishes them to a RateStore.
type Refresher struct {
	Store    *market.RateStore
	Feed     Feed
	Interval time.Duration
	Log      *zap.Logger
	Now      func() time.Time
}

func NewRefresher(store *market.RateStore, feed Feed, interval time.Duration, log *zap.Logger) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Refresher{Store: store, Feed: feed, Interval: interval, Log: log, Now: time.Now}
}

// RefreshOnce takes one batch from the feed and applies the observed mids.
// Ticks for instruments the store does not observe are ignored.
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	ticks, err := r.Feed.Quotes(ctx)
	if err != nil {
		return err
	}

	quotes := make(map[string]float64, len(ticks))
	var asOf time.Time
	for _, t := range ticks {
		p, err := market.ParsePair(t.Instrument)
		if err != nil {
			r.Log.Debug("skip tick", zap.String("instrument", t.Instrument), zap.Error(err))
			continue
		}
		meta, ok := market.Instruments[p.Symbol]
		if !ok || meta.Derived {
			r.Log.Debug("skip unobserved instrument", zap.String("instrument", p.Symbol))
			continue
		}
		quotes[p.Symbol] = t.Mid()
		if t.Time.After(asOf) {
			asOf = t.Time
		}
	}
	if len(quotes) == 0 {
		return nil
	}
	if asOf.IsZero() {
		asOf = r.Now().UTC()
	}

	if err := r.Store.UpdateMajors(quotes, asOf); err != nil {
		return fmt.Errorf("update majors: %w", err)
	}
	r.Log.Debug("rates refreshed", zap.Int("quotes", len(quotes)), zap.Time("as_of", asOf))
	return nil
}

// Run refreshes immediately and then every Interval until ctx is done or a
// finite feed runs out. Feed errors are logged and the last good rates stay
// in place.
func (r *Refresher) Run(ctx context.Context) error {
	tk := time.NewTicker(r.Interval)
	defer tk.Stop()

	for {
		err := r.RefreshOnce(ctx)
		switch {
		case errors.Is(err, io.EOF):
			r.Log.Info("rate feed exhausted")
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		case err != nil:
			r.Log.Warn("rate refresh failed", zap.Error(err))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tk.C:
		}
	}
}
