package risk

// lots = risk amount / (stop pips x pip value per lot)

import (
	"errors"
	"math"
	"time"

	"github.com/rustyeddy/lotsize/market"
)

// ErrNotFinite means the inputs were individually valid but the arithmetic
// overflowed or produced NaN.
var ErrNotFinite = errors.New("result is not a finite number")

func finite(xs ...float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// RateSource hands out the rate snapshot a calculation runs against.
type RateSource interface {
	Snapshot() *market.RateTable
}

type Result struct {
	LotSize         float64
	Units           float64
	MoneyRisk       float64
	PotentialProfit float64
	PotentialLoss   float64
	RiskPct         float64
	RewardRisk      RewardRisk
	PipValuePerLot  float64
	RatesAsOf       time.Time
}

// Engine sizes positions. It holds no state of its own beyond its
// collaborators, so one Engine can serve any number of callers.
type Engine struct {
	Rates       RateSource
	Limits      Limits
	Passthrough bool // see market.Converter
}

func NewEngine(rates RateSource) *Engine {
	return &Engine{Rates: rates, Limits: DefaultLimits}
}

func (e *Engine) converter(tbl *market.RateTable) *market.Converter {
	return &market.Converter{Rates: tbl, Passthrough: e.Passthrough}
}

// Calculate validates in and sizes the position against a single rate
// snapshot. Same inputs and same snapshot give the same result.
func (e *Engine) Calculate(in Inputs) (Result, error) {
	if err := e.Limits.Validate(in); err != nil {
		return Result{}, err
	}

	tbl := e.Rates.Snapshot()
	riskAmt := in.AccountBalance * (in.RiskPct / 100)

	pipValue, err := market.PipValue(e.converter(tbl), in.Pair, in.AccountCurrency, 1.0)
	if err != nil {
		return Result{}, err
	}

	lots := riskAmt / (in.StopLossPips * pipValue)
	profit := riskAmt * in.RewardRisk.Multiplier()
	if !finite(riskAmt, pipValue, lots, lots*market.ContractSize, profit) {
		return Result{}, ErrNotFinite
	}

	return Result{
		LotSize:         lots,
		Units:           lots * market.ContractSize,
		MoneyRisk:       riskAmt,
		PotentialProfit: profit,
		PotentialLoss:   riskAmt,
		RiskPct:         in.RiskPct,
		RewardRisk:      in.RewardRisk,
		PipValuePerLot:  pipValue,
		RatesAsOf:       tbl.AsOf,
	}, nil
}

// PipValue prices one pip on lots lots of p in account currency.
func (e *Engine) PipValue(p market.Pair, account market.Currency, lots float64) (float64, error) {
	v, err := market.PipValue(e.converter(e.Rates.Snapshot()), p, account, lots)
	if err != nil {
		return 0, err
	}
	if !finite(lots, v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// Convert runs the engine's converter against the current snapshot.
func (e *Engine) Convert(amount float64, from, to market.Currency) (float64, error) {
	v, err := e.converter(e.Rates.Snapshot()).Convert(amount, from, to)
	if err != nil {
		return 0, err
	}
	if !finite(amount, v) {
		return 0, ErrNotFinite
	}
	return v, nil
}
