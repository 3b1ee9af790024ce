package market

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultSeed holds the mids the store starts from when nothing else is
// configured.
var DefaultSeed = map[string]float64{
	"EURUSD": 1.0850,
	"USDJPY": 149.50,
	"GBPUSD": 1.2145,
	"USDCHF": 0.8850,
	"USDCAD": 1.3550,
	"AUDUSD": 0.6520,
	"NZDUSD": 0.5980,
	Gold:     2650.00,
}

// Rates is the read side of a rate table.
type Rates interface {
	Rate(symbol string) (float64, bool)
}

// RateTable is an immutable snapshot of observed and derived rates.
// A rate is quote units per one base unit.
type RateTable struct {
	AsOf  time.Time
	rates map[string]float64
}

// NewRateTable builds a table from exactly the given rates. No crosses are
// derived, which makes it suitable for sparse fixtures.
func NewRateTable(asOf time.Time, rates map[string]float64) *RateTable {
	m := make(map[string]float64, len(rates))
	for k, v := range rates {
		m[k] = v
	}
	return &RateTable{AsOf: asOf, rates: m}
}

func (t *RateTable) Rate(symbol string) (float64, bool) {
	if t == nil {
		return 0, false
	}
	r, ok := t.rates[symbol]
	return r, ok
}

// Symbols returns the table's pairs in lexical order.
func (t *RateTable) Symbols() []string {
	out := make([]string, 0, len(t.rates))
	for k := range t.rates {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Map returns a copy of the underlying rates.
func (t *RateTable) Map() map[string]float64 {
	out := make(map[string]float64, len(t.rates))
	for k, v := range t.rates {
		out[k] = v
	}
	return out
}

// Stale reports whether the table is older than maxAge at now.
// A zero maxAge disables the check.
func (t *RateTable) Stale(maxAge time.Duration, now time.Time) bool {
	return StaleAt(t.AsOf, maxAge, now)
}

// StaleAt is Stale for a bare as-of time, e.g. one carried on a result.
func StaleAt(asOf time.Time, maxAge time.Duration, now time.Time) bool {
	if maxAge <= 0 {
		return false
	}
	return now.Sub(asOf) > maxAge
}

// DeriveCrosses computes every cross from the majors. Missing majors yield
// missing crosses rather than zeros.
func DeriveCrosses(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(Crosses))
	has := func(syms ...string) bool {
		for _, s := range syms {
			if _, ok := m[s]; !ok {
				return false
			}
		}
		return true
	}

	if has("EURUSD", "GBPUSD") {
		out["EURGBP"] = m["EURUSD"] / m["GBPUSD"]
	}
	if has("EURUSD", "USDJPY") {
		out["EURJPY"] = m["EURUSD"] * m["USDJPY"]
	}
	if has("GBPUSD", "USDJPY") {
		out["GBPJPY"] = m["GBPUSD"] * m["USDJPY"]
	}
	if has("AUDUSD", "USDCAD") {
		out["AUDCAD"] = m["AUDUSD"] * m["USDCAD"]
	}
	if has("AUDUSD", "USDJPY") {
		out["AUDJPY"] = m["AUDUSD"] * m["USDJPY"]
	}
	if has("USDJPY", "USDCAD") {
		out["CADJPY"] = m["USDJPY"] / m["USDCAD"]
	}
	if has("NZDUSD", "USDCAD") {
		out["NZDCAD"] = m["NZDUSD"] * m["USDCAD"]
	}
	if has("NZDUSD", "USDJPY") {
		out["NZDJPY"] = m["NZDUSD"] * m["USDJPY"]
	}
	if has("USDCHF", "USDCAD") {
		out["CADCHF"] = m["USDCHF"] / m["USDCAD"]
	}
	if has("EURUSD", "USDCHF") {
		out["EURCHF"] = m["EURUSD"] * m["USDCHF"]
	}
	if has("AUDUSD", "NZDUSD") {
		out["AUDNZD"] = m["AUDUSD"] / m["NZDUSD"]
	}
	if has("USDJPY", "USDCHF") {
		out["CHFJPY"] = m["USDJPY"] / m["USDCHF"]
	}
	return out
}

// RateStore is the process-wide source of rates. Readers load an immutable
// snapshot; writers are serialised and publish a whole new table, so majors
// and their crosses always change together.
type RateStore struct {
	mu      sync.Mutex
	current atomic.Pointer[RateTable]
}

// NewRateStore seeds a store from observed mids. Nil seed means DefaultSeed.
func NewRateStore(seed map[string]float64, asOf time.Time) (*RateStore, error) {
	if seed == nil {
		seed = DefaultSeed
	}
	s := &RateStore{}
	s.current.Store(&RateTable{rates: map[string]float64{}})
	if err := s.UpdateMajors(seed, asOf); err != nil {
		return nil, fmt.Errorf("seed rates: %w", err)
	}
	return s, nil
}

// Snapshot returns the current table. The table must not be modified.
func (s *RateStore) Snapshot() *RateTable {
	return s.current.Load()
}

// Get is an exact lookup against the current snapshot.
func (s *RateStore) Get(symbol string) (float64, bool) {
	return s.Snapshot().Rate(symbol)
}

// UpdateMajors overlays observed quotes onto the current majors, rederives
// the crosses and publishes the result. Quotes may be partial; pairs absent
// from quotes keep their previous value. Invalid input leaves the store
// untouched.
func (s *RateStore) UpdateMajors(quotes map[string]float64, asOf time.Time) error {
	for sym, r := range quotes {
		meta, ok := Instruments[sym]
		if !ok {
			return fmt.Errorf("unknown instrument %s", sym)
		}
		if meta.Derived {
			return fmt.Errorf("%s is derived and cannot be quoted", sym)
		}
		if r <= 0 || math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%s: rate must be positive, got %v", sym, r)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.current.Load()
	majors := make(map[string]float64, len(Observed))
	for _, sym := range Observed {
		if r, ok := prev.rates[sym]; ok {
			majors[sym] = r
		}
	}
	for sym, r := range quotes {
		majors[sym] = r
	}

	next := &RateTable{AsOf: asOf, rates: majors}
	for sym, r := range DeriveCrosses(majors) {
		next.rates[sym] = r
	}
	s.current.Store(next)
	return nil
}
