package report

import (
	"math"
	"testing"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want string
	}{
		{0.2, "0.20"},
		{0.125, "0.13"},
		{-0.125, "-0.13"},
		{100, "100.00"},
		{1234.5678, "1234.57"},
		{0, "0.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "%v", tt.in)
	}
}

func TestRound2NonFinite(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "NaN", Round2(math.NaN()))
	assert.Equal(t, "+Inf", Round2(math.Inf(1)))
	assert.Equal(t, "-Inf", Round2(math.Inf(-1)))
	assert.Equal(t, "$+Inf", Money(math.Inf(1), market.USD))

	res := sampleResult()
	res.LotSize = math.Inf(1)
	res.Units = math.NaN()
	assert.NotPanics(t, func() {
		s := Summarize(res, market.USD)
		assert.Equal(t, "+Inf", s.LotSize)
	})
}

func TestMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$100.00", Money(100, market.USD))
	assert.Equal(t, "€92.17", Money(92.1659, market.EUR))
	assert.Equal(t, "NZ$5.00", Money(5, market.NZD))
	assert.Equal(t, "CHF12.30", Money(12.3, market.CHF))
}

func sampleResult() risk.Result {
	return risk.Result{
		LotSize:         0.2,
		Units:           20000,
		MoneyRisk:       100,
		PotentialProfit: 200,
		PotentialLoss:   100,
		RiskPct:         1,
		RewardRisk:      risk.OneToTwo,
		PipValuePerLot:  10,
		RatesAsOf:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	res := sampleResult()
	s := Summarize(res, market.USD)

	assert.Equal(t, "0.20", s.LotSize)
	assert.Equal(t, "$100.00", s.MoneyRisk)
	assert.Equal(t, "$200.00", s.PotentialProfit)
	assert.Equal(t, "$100.00", s.PotentialLoss)
	assert.Equal(t, "1.0", s.RiskPercent)
	assert.Equal(t, "1:2", s.RewardRisk)
	assert.InDelta(t, 33.333, s.RiskBarPct, 1e-3)
	assert.InDelta(t, 66.667, s.RewardBarPct, 1e-3)
	assert.Equal(t, 10.0, s.GaugePct)

	// formatting must not touch the result
	assert.Equal(t, 0.2, res.LotSize)
}

func TestSummaryText(t *testing.T) {
	t.Parallel()

	want := "Position Size: 0.20 lots\n" +
		"Money at Risk: $100.00\n" +
		"Potential Profit: $200.00\n" +
		"Potential Loss: $100.00"
	assert.Equal(t, want, Summarize(sampleResult(), market.USD).Text())
}

func TestDetail(t *testing.T) {
	t.Parallel()

	in := risk.Inputs{
		AccountBalance:  10000,
		AccountCurrency: market.USD,
		RiskPct:         1,
		Pair:            market.MustPair("EURUSD"),
		StopLossPips:    50,
		RewardRisk:      risk.OneToTwo,
	}
	out := Detail(in, sampleResult())
	assert.Contains(t, out, "Pair: EURUSD  Account: $10000.00 USD")
	assert.Contains(t, out, "Pip value (1 lot): $10.00")
	assert.Contains(t, out, "Units: 20000")
	assert.Contains(t, out, "Position Size: 0.20 lots")
}
