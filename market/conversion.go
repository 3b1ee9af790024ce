package market

import (
	"errors"
	"fmt"
)

// ErrConversionGap means the rate table has no path between two currencies.
var ErrConversionGap = errors.New("no conversion path")

// ConversionGapError names the currencies that could not be bridged.
type ConversionGapError struct {
	From, To Currency
}

func (e *ConversionGapError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrConversionGap, e.From, e.To)
}

func (e *ConversionGapError) Unwrap() error { return ErrConversionGap }

// Converter moves amounts between currencies using one rate table.
//
// With Passthrough set, a missing leg is skipped and a missing path returns
// the amount unchanged instead of an error. That matches the old calculator
// and can silently produce wrong sizes, so it is off by default.
type Converter struct {
	Rates       Rates
	Passthrough bool
}

func NewConverter(rates Rates) *Converter {
	return &Converter{Rates: rates}
}

// Convert tries, in order: identity, the direct pair, the inverse pair, then
// a two-leg route through USD.
func (c *Converter) Convert(amount float64, from, to Currency) (float64, error) {
	if from == to {
		return amount, nil
	}
	if r, ok := c.Rates.Rate(string(from + to)); ok {
		return amount * r, nil
	}
	if r, ok := c.Rates.Rate(string(to + from)); ok {
		return amount / r, nil
	}

	inUSD := amount
	if from != USD {
		usd, ok := c.leg(amount, from, USD)
		if !ok && !c.Passthrough {
			return 0, &ConversionGapError{From: from, To: to}
		}
		if ok {
			inUSD = usd
		}
	}
	if to == USD {
		return inUSD, nil
	}

	if out, ok := c.leg(inUSD, USD, to); ok {
		return out, nil
	}
	if c.Passthrough {
		return amount, nil
	}
	return 0, &ConversionGapError{From: from, To: to}
}

// leg is a single direct-or-inverse hop.
func (c *Converter) leg(amount float64, from, to Currency) (float64, bool) {
	if r, ok := c.Rates.Rate(string(from + to)); ok {
		return amount * r, true
	}
	if r, ok := c.Rates.Rate(string(to + from)); ok {
		return amount / r, true
	}
	return 0, false
}

// QuoteToAccountRate is the multiplier that turns one unit of the pair's
// quote currency into account currency.
func (c *Converter) QuoteToAccountRate(p Pair, account Currency) (float64, error) {
	return c.Convert(1.0, p.QuoteCurrency, account)
}
