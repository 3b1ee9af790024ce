package market

import (
	"fmt"
	"strings"
)

// Currency is an ISO code from the closed set of account and quote
// currencies the engine knows how to price.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
	CHF Currency = "CHF"
	AUD Currency = "AUD"
	NZD Currency = "NZD"
	CAD Currency = "CAD"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{USD, EUR, GBP, JPY, CHF, AUD, NZD, CAD}

var symbols = map[Currency]string{
	USD: "$",
	EUR: "€",
	GBP: "£",
	JPY: "¥",
	CHF: "CHF",
	AUD: "A$",
	NZD: "NZ$",
	CAD: "C$",
}

// ParseCurrency normalises s and checks it against the supported set.
func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unsupported currency %q", s)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	_, ok := symbols[c]
	return ok
}

// Symbol returns the display prefix for c, "$" for anything unknown.
func (c Currency) Symbol() string {
	if s, ok := symbols[c]; ok {
		return s
	}
	return "$"
}

func (c Currency) String() string { return string(c) }
