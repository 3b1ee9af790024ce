package market

import (
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCrossesConsistent(t *testing.T, tbl *RateTable) {
	t.Helper()

	r := func(s string) float64 {
		v, ok := tbl.Rate(s)
		require.True(t, ok, s)
		return v
	}
	assert.Equal(t, r("EURUSD")/r("GBPUSD"), r("EURGBP"))
	assert.Equal(t, r("EURUSD")*r("USDJPY"), r("EURJPY"))
	assert.Equal(t, r("GBPUSD")*r("USDJPY"), r("GBPJPY"))
	assert.Equal(t, r("AUDUSD")*r("USDCAD"), r("AUDCAD"))
	assert.Equal(t, r("AUDUSD")*r("USDJPY"), r("AUDJPY"))
	assert.Equal(t, r("USDJPY")/r("USDCAD"), r("CADJPY"))
	assert.Equal(t, r("NZDUSD")*r("USDCAD"), r("NZDCAD"))
	assert.Equal(t, r("NZDUSD")*r("USDJPY"), r("NZDJPY"))
	assert.Equal(t, r("USDCHF")/r("USDCAD"), r("CADCHF"))
	assert.Equal(t, r("EURUSD")*r("USDCHF"), r("EURCHF"))
	assert.Equal(t, r("AUDUSD")/r("NZDUSD"), r("AUDNZD"))
	assert.Equal(t, r("USDJPY")/r("USDCHF"), r("CHFJPY"))
}

func TestNewRateStore_Seed(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	s, err := NewRateStore(nil, asOf)
	require.NoError(t, err)

	tbl := s.Snapshot()
	assert.Equal(t, asOf, tbl.AsOf)
	assert.Len(t, tbl.Symbols(), len(Observed)+len(Crosses))

	r, ok := s.Get("EURUSD")
	assert.True(t, ok)
	assert.Equal(t, 1.0850, r)

	_, ok = s.Get("GBPCHF")
	assert.False(t, ok)

	assertCrossesConsistent(t, tbl)
}

func TestUpdateMajors_RederivesCrosses(t *testing.T) {
	t.Parallel()

	s, err := NewRateStore(nil, time.Time{})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		prev := s.Snapshot()
		eu, _ := prev.Rate("EURUSD")
		uj, _ := prev.Rate("USDJPY")
		gu, _ := prev.Rate("GBPUSD")
		err := s.UpdateMajors(map[string]float64{
			"EURUSD": eu + (rng.Float64()-0.5)*0.001,
			"USDJPY": uj + (rng.Float64()-0.5)*0.1,
			"GBPUSD": gu + (rng.Float64()-0.5)*0.001,
		}, time.Unix(int64(i), 0))
		require.NoError(t, err)
		assertCrossesConsistent(t, s.Snapshot())
	}

	// untouched majors keep their seed value
	r, _ := s.Get("USDCAD")
	assert.Equal(t, 1.3550, r)
}

func TestUpdateMajors_RejectsBadQuotes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		quotes map[string]float64
	}{
		{"unknown", map[string]float64{"EURSEK": 11.2}},
		{"derived", map[string]float64{"EURJPY": 160}},
		{"zero", map[string]float64{"EURUSD": 0}},
		{"negative", map[string]float64{"USDJPY": -1}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := NewRateStore(nil, time.Time{})
			require.NoError(t, err)
			before := s.Snapshot()

			assert.Error(t, s.UpdateMajors(tt.quotes, time.Now()))
			assert.Same(t, before, s.Snapshot())
		})
	}
}

func TestDeriveCrosses_SkipsMissingMajors(t *testing.T) {
	t.Parallel()

	got := DeriveCrosses(map[string]float64{"EURUSD": 1.1, "GBPUSD": 1.25})
	assert.Equal(t, map[string]float64{"EURGBP": 1.1 / 1.25}, got)
}

func TestRateTable_Stale(t *testing.T) {
	t.Parallel()

	asOf := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tbl := NewRateTable(asOf, nil)

	assert.False(t, tbl.Stale(time.Minute, asOf.Add(30*time.Second)))
	assert.True(t, tbl.Stale(time.Minute, asOf.Add(2*time.Minute)))
	assert.False(t, tbl.Stale(0, asOf.Add(24*time.Hour)))

	assert.Equal(t, tbl.Stale(time.Minute, asOf.Add(2*time.Minute)), StaleAt(asOf, time.Minute, asOf.Add(2*time.Minute)))
	assert.False(t, StaleAt(asOf, time.Minute, asOf.Add(time.Minute)))
}

func TestRateStore_ReadersSeeConsistentSnapshots(t *testing.T) {
	t.Parallel()

	s, err := NewRateStore(nil, time.Time{})
	require.NoError(t, err)

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			_ = s.UpdateMajors(map[string]float64{
				"EURUSD": 1.0 + float64(i)*0.0001,
				"USDJPY": 140 + float64(i)*0.01,
			}, time.Time{})
		}
		close(done)
	}()

	for {
		select {
		case <-done:
			wg.Wait()
			return
		default:
		}
		tbl := s.Snapshot()
		eu, _ := tbl.Rate("EURUSD")
		uj, _ := tbl.Rate("USDJPY")
		ej, _ := tbl.Rate("EURJPY")
		if eu*uj != ej {
			t.Fatalf("inconsistent snapshot: %v * %v != %v", eu, uj, ej)
		}
	}
}
