package oanda

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/pricing"
)

type priceBucket struct {
	Price string `json:"price"`
}

type apiPrice struct {
	Type       string        `json:"type"`
	Instrument string        `json:"instrument"`
	Time       string        `json:"time"`
	Bids       []priceBucket `json:"bids"`
	Asks       []priceBucket `json:"asks"`
}

type pricingResponse struct {
	Prices []apiPrice `json:"prices"`
}

// PricingFeed polls the account pricing endpoint for the observed
// instruments and hands back top-of-book quotes.
type PricingFeed struct {
	Client      *Client
	AccountID   string
	Instruments []string // OANDA form, EUR_USD
}

// NewPricingFeed polls every observed instrument.
func NewPricingFeed(c *Client, accountID string) *PricingFeed {
	instr := make([]string, 0, len(market.Observed))
	for _, sym := range market.Observed {
		instr = append(instr, market.Instruments[sym].Instrument())
	}
	return &PricingFeed{Client: c, AccountID: accountID, Instruments: instr}
}

func (f *PricingFeed) Quotes(ctx context.Context) ([]pricing.Tick, error) {
	if f.AccountID == "" {
		return nil, fmt.Errorf("oanda: missing account id")
	}
	if len(f.Instruments) == 0 {
		return nil, fmt.Errorf("oanda: missing instruments")
	}

	params := url.Values{}
	params.Set("instruments", strings.Join(f.Instruments, ","))
	path := fmt.Sprintf("/v3/accounts/%s/pricing", f.AccountID)

	var resp pricingResponse
	if err := f.Client.getJSON(ctx, path, params, &resp); err != nil {
		return nil, err
	}

	ticks := make([]pricing.Tick, 0, len(resp.Prices))
	for _, p := range resp.Prices {
		// closed markets still report a PRICE with empty books
		if len(p.Bids) == 0 || len(p.Asks) == 0 {
			continue
		}
		bid, err := strconv.ParseFloat(p.Bids[0].Price, 64)
		if err != nil {
			return nil, fmt.Errorf("oanda: %s bid: %w", p.Instrument, err)
		}
		ask, err := strconv.ParseFloat(p.Asks[0].Price, 64)
		if err != nil {
			return nil, fmt.Errorf("oanda: %s ask: %w", p.Instrument, err)
		}
		var ts time.Time
		if p.Time != "" {
			if ts, err = time.Parse(time.RFC3339Nano, p.Time); err != nil {
				return nil, fmt.Errorf("oanda: %s time: %w", p.Instrument, err)
			}
		}
		ticks = append(ticks, pricing.Tick{
			Instrument: p.Instrument,
			Time:       ts,
			Bid:        bid,
			Ask:        ask,
		})
	}
	return ticks, nil
}
