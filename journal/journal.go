// journal/journal.go
package journal

import (
	"time"

	"github.com/rustyeddy/lotsize/pkg/id"
	"github.com/rustyeddy/lotsize/risk"
)

// Entry is one position sizing calculation, inputs and outputs together.
type Entry struct {
	ID              string
	Time            time.Time
	Pair            string
	AccountCurrency string
	AccountBalance  float64
	RiskPct         float64
	StopLossPips    float64
	RewardRisk      string
	PipValuePerLot  float64
	LotSize         float64
	MoneyRisk       float64
	PotentialProfit float64
	PotentialLoss   float64
	RatesAsOf       time.Time
}

// NewEntry captures a finished calculation under a fresh id.
func NewEntry(in risk.Inputs, res risk.Result, at time.Time) Entry {
	return Entry{
		ID:              id.New(),
		Time:            at.UTC(),
		Pair:            in.Pair.Symbol,
		AccountCurrency: in.AccountCurrency.String(),
		AccountBalance:  in.AccountBalance,
		RiskPct:         res.RiskPct,
		StopLossPips:    in.StopLossPips,
		RewardRisk:      res.RewardRisk.String(),
		PipValuePerLot:  res.PipValuePerLot,
		LotSize:         res.LotSize,
		MoneyRisk:       res.MoneyRisk,
		PotentialProfit: res.PotentialProfit,
		PotentialLoss:   res.PotentialLoss,
		RatesAsOf:       res.RatesAsOf.UTC(),
	}
}

type Journal interface {
	Record(Entry) error
	Close() error
}

