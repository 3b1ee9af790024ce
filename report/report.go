// Package report renders engine results for people. Rounding happens here
// and nowhere else.
package report

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to two places. NaN and infinities
// render as "NaN", "+Inf" and "-Inf".
func Round2(x float64) string {
	return fixed(x, 2)
}

func fixed(x float64, places int32) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', int(places), 64)
	}
	return decimal.NewFromFloat(x).StringFixed(places)
}

// Money formats an amount with the currency's symbol, e.g. "€92.17".
func Money(amount float64, c market.Currency) string {
	return c.Symbol() + Round2(amount)
}

// Summary is a Result with every figure already formatted.
type Summary struct {
	LotSize         string  `json:"lot_size"`
	MoneyRisk       string  `json:"money_risk"`
	PotentialProfit string  `json:"potential_profit"`
	PotentialLoss   string  `json:"potential_loss"`
	RiskPercent     string  `json:"risk_percent"`
	RewardRisk      string  `json:"reward_risk"`
	RiskBarPct      float64 `json:"risk_bar_pct"`
	RewardBarPct    float64 `json:"reward_bar_pct"`
	GaugePct        float64 `json:"gauge_pct"`
}

func Summarize(res risk.Result, account market.Currency) Summary {
	riskBar, rewardBar := res.RewardRisk.Split()
	return Summary{
		LotSize:         Round2(res.LotSize),
		MoneyRisk:       Money(res.MoneyRisk, account),
		PotentialProfit: Money(res.PotentialProfit, account),
		PotentialLoss:   Money(res.PotentialLoss, account),
		RiskPercent:     fixed(res.RiskPct, 1),
		RewardRisk:      res.RewardRisk.String(),
		RiskBarPct:      riskBar,
		RewardBarPct:    rewardBar,
		GaugePct:        risk.Gauge(res.RiskPct),
	}
}

// Text is the plain block a user copies out of the calculator.
func (s Summary) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Position Size: %s lots\n", s.LotSize)
	fmt.Fprintf(&b, "Money at Risk: %s\n", s.MoneyRisk)
	fmt.Fprintf(&b, "Potential Profit: %s\n", s.PotentialProfit)
	fmt.Fprintf(&b, "Potential Loss: %s", s.PotentialLoss)
	return b.String()
}

// Detail adds the inputs and rate context to Text for terminal output.
func Detail(in risk.Inputs, res risk.Result) string {
	s := Summarize(res, in.AccountCurrency)
	var b strings.Builder
	fmt.Fprintf(&b, "Pair: %s  Account: %s %s\n", in.Pair, Money(in.AccountBalance, in.AccountCurrency), in.AccountCurrency)
	fmt.Fprintf(&b, "Risk: %s%%  Stop: %s pips  R:R %s\n", s.RiskPercent, Round2(in.StopLossPips), s.RewardRisk)
	fmt.Fprintf(&b, "Pip value (1 lot): %s\n", Money(res.PipValuePerLot, in.AccountCurrency))
	fmt.Fprintf(&b, "Units: %s\n", fixed(res.Units, 0))
	b.WriteString("\n")
	b.WriteString(s.Text())
	return b.String()
}
