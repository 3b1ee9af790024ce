package risk

import (
	"fmt"
	"math"
)

// ValidationError rejects a request before any computation happens.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Msg)
}

func absent(x float64) bool {
	return x == 0 || math.IsNaN(x)
}

// Validate checks in against l. The first violation wins.
func (l Limits) Validate(in Inputs) error {
	if absent(in.AccountBalance) || in.AccountBalance < 0 || math.IsInf(in.AccountBalance, 0) {
		return &ValidationError{Field: "account_balance", Msg: "enter a valid account balance"}
	}
	if !in.AccountCurrency.Valid() {
		return &ValidationError{Field: "account_currency", Msg: fmt.Sprintf("unsupported currency %q", in.AccountCurrency)}
	}
	if absent(in.RiskPct) || in.RiskPct < 0 || in.RiskPct > l.MaxRiskPct {
		return &ValidationError{
			Field: "risk_percent",
			Msg:   fmt.Sprintf("must be between %.1f%% and %.0f%%", l.MinRiskPct, l.MaxRiskPct),
		}
	}
	if in.Pair.Symbol == "" {
		return &ValidationError{Field: "pair", Msg: "pair is required"}
	}
	if absent(in.StopLossPips) || in.StopLossPips < 0 || math.IsInf(in.StopLossPips, 0) {
		return &ValidationError{Field: "stop_loss_pips", Msg: "enter a valid stop loss in pips"}
	}
	return in.RewardRisk.Validate()
}
