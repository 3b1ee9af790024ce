package api

import (
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/risk"
)

// CalculateRequest is the JSON body of POST /v1/calculate.
type CalculateRequest struct {
	AccountBalance  float64 `json:"account_balance"`
	AccountCurrency string  `json:"account_currency"`
	RiskPercent     float64 `json:"risk_percent"`
	Pair            string  `json:"pair"`
	StopLossPips    float64 `json:"stop_loss_pips"`
	RewardRisk      string  `json:"reward_risk"`
}

// Inputs turns the request into engine inputs. Enumerated strings are
// checked here; numeric ranges are left to the engine.
func (r CalculateRequest) Inputs() (risk.Inputs, error) {
	cur, err := market.ParseCurrency(r.AccountCurrency)
	if err != nil {
		return risk.Inputs{}, &risk.ValidationError{Field: "account_currency", Msg: err.Error()}
	}
	pair, err := market.ParsePair(r.Pair)
	if err != nil {
		return risk.Inputs{}, &risk.ValidationError{Field: "pair", Msg: err.Error()}
	}
	rr, err := risk.ParseRewardRisk(r.RewardRisk)
	if err != nil {
		return risk.Inputs{}, err
	}
	return risk.Inputs{
		AccountBalance:  r.AccountBalance,
		AccountCurrency: cur,
		RiskPct:         r.RiskPercent,
		Pair:            pair,
		StopLossPips:    r.StopLossPips,
		RewardRisk:      rr,
	}, nil
}

func parsePositive(field, s string, def float64) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !(v > 0) || math.IsInf(v, 0) {
		return 0, &risk.ValidationError{Field: field, Msg: "must be a positive number"}
	}
	return v, nil
}

func parseCurrency(field, s string) (market.Currency, error) {
	c, err := market.ParseCurrency(s)
	if err != nil {
		return "", &risk.ValidationError{Field: field, Msg: err.Error()}
	}
	return c, nil
}
