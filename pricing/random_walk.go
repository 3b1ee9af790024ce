package pricing

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rustyeddy/lotsize/market"
)

// Step is the maximum distance a simulated mid moves per tick, either way.
type Step struct {
	Instrument string
	Max        float64
}

// DefaultSteps walks the three most quoted majors.
var DefaultSteps = []Step{
	{Instrument: "EURUSD", Max: 0.0005},
	{Instrument: "USDJPY", Max: 0.05},
	{Instrument: "GBPUSD", Max: 0.0005},
}

// RandomWalkFeed stands in for a market data feed by nudging the store's
// current mids by a bounded random amount. Quotes are zero-spread.
type RandomWalkFeed struct {
	Store *market.RateStore
	Steps []Step
	Now   func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandomWalkFeed(store *market.RateStore, seed int64) *RandomWalkFeed {
	return &RandomWalkFeed{
		Store: store,
		Steps: DefaultSteps,
		Now:   time.Now,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

func (f *RandomWalkFeed) Quotes(ctx context.Context) ([]Tick, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.Now().UTC()
	tbl := f.Store.Snapshot()
	out := make([]Tick, 0, len(f.Steps))
	for _, s := range f.Steps {
		prev, ok := tbl.Rate(s.Instrument)
		if !ok {
			continue
		}
		mid := prev + (f.rng.Float64()-0.5)*2*s.Max
		if mid <= 0 {
			mid = prev
		}
		out = append(out, Tick{Instrument: s.Instrument, Time: now, Bid: mid, Ask: mid})
	}
	return out, nil
}
