// market/instruments.go
package market

import (
	"fmt"
	"strings"
)

// Gold is the one non-FX instrument: troy ounces of gold quoted in USD.
const Gold = "XAUUSD"

// Pair is a currency pair or gold. Symbol is always the 6-letter form.
type Pair struct {
	Symbol        string
	BaseCurrency  Currency
	QuoteCurrency Currency
}

// InstrumentMeta describes how a pair is quoted.
type InstrumentMeta struct {
	Pair
	Derived bool
}

// Observed pairs are quoted by the feed. Every other entry in Instruments is
// derived from them.
var Observed = []string{
	"EURUSD", "USDJPY", "GBPUSD", "USDCHF", "USDCAD", "AUDUSD", "NZDUSD", Gold,
}

// Crosses are never quoted directly; see DeriveCrosses.
var Crosses = []string{
	"EURGBP", "EURJPY", "GBPJPY", "AUDCAD", "AUDJPY", "CADJPY",
	"NZDCAD", "NZDJPY", "CADCHF", "EURCHF", "AUDNZD", "CHFJPY",
}

var Instruments = buildInstruments()

func buildInstruments() map[string]InstrumentMeta {
	out := make(map[string]InstrumentMeta, len(Observed)+len(Crosses))
	add := func(sym string, derived bool) {
		p, err := ParsePair(sym)
		if err != nil {
			panic(err)
		}
		out[p.Symbol] = InstrumentMeta{Pair: p, Derived: derived}
	}
	for _, s := range Observed {
		add(s, false)
	}
	for _, s := range Crosses {
		add(s, true)
	}
	return out
}

// ParsePair accepts "EURUSD", "EUR_USD" or "EUR/USD" in any case.
// Gold is accepted as "XAUUSD" / "XAU_USD" / "XAU/USD".
func ParsePair(s string) (Pair, error) {
	sym := strings.ToUpper(strings.TrimSpace(s))
	sym = strings.NewReplacer("_", "", "/", "").Replace(sym)
	if len(sym) != 6 {
		return Pair{}, fmt.Errorf("invalid pair symbol %q", s)
	}
	if sym == Gold {
		return Pair{Symbol: Gold, BaseCurrency: "XAU", QuoteCurrency: USD}, nil
	}

	base, err := ParseCurrency(sym[:3])
	if err != nil {
		return Pair{}, fmt.Errorf("pair %q: %w", s, err)
	}
	quote, err := ParseCurrency(sym[3:])
	if err != nil {
		return Pair{}, fmt.Errorf("pair %q: %w", s, err)
	}
	if base == quote {
		return Pair{}, fmt.Errorf("pair %q: base and quote are both %s", s, base)
	}
	return Pair{Symbol: sym, BaseCurrency: base, QuoteCurrency: quote}, nil
}

// MustPair is ParsePair for literals.
func MustPair(s string) Pair {
	p, err := ParsePair(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Pair) IsGold() bool { return p.Symbol == Gold }

// PipLocation is the power of ten of one pip: -2 for JPY quotes and gold,
// -4 otherwise.
func (p Pair) PipLocation() int {
	if p.IsGold() || p.QuoteCurrency == JPY {
		return -2
	}
	return -4
}

// PipSize returns 10^PipLocation.
func (p Pair) PipSize() float64 {
	if p.PipLocation() == -2 {
		return 0.01
	}
	return 0.0001
}

// Instrument returns the OANDA style name, e.g. "EUR_USD".
func (p Pair) Instrument() string {
	return p.Symbol[:3] + "_" + p.Symbol[3:]
}

func (p Pair) String() string { return p.Symbol }
