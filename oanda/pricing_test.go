package oanda

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/pricing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pricingBody = `{
  "time": "2024-01-01T10:00:01.000000000Z",
  "prices": [
    {"type": "PRICE", "instrument": "EUR_USD", "time": "2024-01-01T10:00:00.000000000Z",
     "bids": [{"price": "1.08490", "liquidity": 1000000}], "asks": [{"price": "1.08510", "liquidity": 1000000}]},
    {"type": "PRICE", "instrument": "USD_JPY", "time": "2024-01-01T10:00:00.500000000Z",
     "bids": [{"price": "149.480"}], "asks": [{"price": "149.520"}]},
    {"type": "PRICE", "instrument": "XAU_USD", "time": "2024-01-01T10:00:00.000000000Z",
     "bids": [], "asks": []}
  ]
}`

func newTestFeed(t *testing.T, h http.HandlerFunc) *PricingFeed {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := &Client{BaseURL: srv.URL, Token: "test-token", HTTP: srv.Client()}
	return NewPricingFeed(c, "101-001-1")
}

func TestBaseURL(t *testing.T) {
	u, err := BaseURL("practice")
	require.NoError(t, err)
	assert.Equal(t, PracticeURL, u)

	u, err = BaseURL("LIVE")
	require.NoError(t, err)
	assert.Equal(t, LiveURL, u)

	_, err = BaseURL("moon")
	assert.Error(t, err)
}

func TestPricingFeedQuotes(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/accounts/101-001-1/pricing", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		instr := strings.Split(r.URL.Query().Get("instruments"), ",")
		assert.Len(t, instr, len(market.Observed))
		assert.Contains(t, instr, "EUR_USD")
		assert.Contains(t, instr, "XAU_USD")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(pricingBody))
	})

	ticks, err := f.Quotes(context.Background())
	require.NoError(t, err)
	require.Len(t, ticks, 2, "empty books are skipped")

	assert.Equal(t, "EUR_USD", ticks[0].Instrument)
	assert.InDelta(t, 1.085, ticks[0].Mid(), 1e-9)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC), ticks[0].Time)
	assert.InDelta(t, 149.5, ticks[1].Mid(), 1e-9)
}

func TestPricingFeedDrivesRefresher(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(pricingBody))
	})

	store, err := market.NewRateStore(nil, time.Time{})
	require.NoError(t, err)

	r := pricing.NewRefresher(store, f, time.Second, nil)
	require.NoError(t, r.RefreshOnce(context.Background()))

	tbl := store.Snapshot()
	eurusd, _ := tbl.Rate("EURUSD")
	eurjpy, _ := tbl.Rate("EURJPY")
	assert.InDelta(t, 1.085, eurusd, 1e-9)
	assert.InDelta(t, 1.085*149.5, eurjpy, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 1, 10, 0, 0, 500_000_000, time.UTC), tbl.AsOf)
}

func TestPricingFeedHTTPError(t *testing.T) {
	f := newTestFeed(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errorMessage":"Insufficient authorization"}`, http.StatusUnauthorized)
	})

	_, err := f.Quotes(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oanda http 401")
}

func TestPricingFeedMissingToken(t *testing.T) {
	f := NewPricingFeed(&Client{BaseURL: PracticeURL}, "acct")
	_, err := f.Quotes(context.Background())
	assert.ErrorContains(t, err, "missing token")
}
