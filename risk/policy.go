package risk

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/rustyeddy/lotsize/market"
)

// Limits bounds the risk inputs accepted by the engine.
type Limits struct {
	MaxRiskPct float64 // 10, in percent of balance
	MinRiskPct float64 // 0.1, input clamp only; Validate enforces > 0
}

var DefaultLimits = Limits{
	MaxRiskPct: 10,
	MinRiskPct: 0.1,
}

// Clamp pins a slider-style risk value into [MinRiskPct, MaxRiskPct].
func (l Limits) Clamp(pct float64) float64 {
	return math.Max(l.MinRiskPct, math.Min(l.MaxRiskPct, pct))
}

// RewardRisk is a ratio such as 1:2, meaning risk one unit to make two.
type RewardRisk struct {
	Risk   int `json:"risk" yaml:"risk"`
	Reward int `json:"reward" yaml:"reward"`
}

// Presets offered by the calculator; anything else is a custom ratio.
var (
	OneToOne   = RewardRisk{Risk: 1, Reward: 1}
	OneToTwo   = RewardRisk{Risk: 1, Reward: 2}
	OneToThree = RewardRisk{Risk: 1, Reward: 3}

	DefaultRewardRisk = OneToTwo
)

// ParseRewardRisk parses "risk:reward", e.g. "1:2". Empty means the default.
func ParseRewardRisk(s string) (RewardRisk, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultRewardRisk, nil
	}
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return RewardRisk{}, &ValidationError{Field: "reward_risk", Msg: fmt.Sprintf("want risk:reward, got %q", s)}
	}
	risk, err1 := strconv.Atoi(strings.TrimSpace(a))
	reward, err2 := strconv.Atoi(strings.TrimSpace(b))
	if err1 != nil || err2 != nil {
		return RewardRisk{}, &ValidationError{Field: "reward_risk", Msg: fmt.Sprintf("want whole numbers, got %q", s)}
	}
	rr := RewardRisk{Risk: risk, Reward: reward}
	if err := rr.Validate(); err != nil {
		return RewardRisk{}, err
	}
	return rr, nil
}

func (rr RewardRisk) Validate() error {
	if rr.Risk <= 0 || rr.Reward <= 0 {
		return &ValidationError{Field: "reward_risk", Msg: "risk and reward must both be positive"}
	}
	return nil
}

// Multiplier is reward / risk.
func (rr RewardRisk) Multiplier() float64 {
	return float64(rr.Reward) / float64(rr.Risk)
}

// Split returns the risk and reward shares of the whole ratio in percent,
// e.g. 1:2 -> 33.3, 66.7.
func (rr RewardRisk) Split() (riskPct, rewardPct float64) {
	total := float64(rr.Risk + rr.Reward)
	if total == 0 {
		return 0, 0
	}
	return float64(rr.Risk) / total * 100, float64(rr.Reward) / total * 100
}

func (rr RewardRisk) String() string {
	return fmt.Sprintf("%d:%d", rr.Risk, rr.Reward)
}

// Inputs are the validated primitives for one sizing request.
type Inputs struct {
	AccountBalance  float64
	AccountCurrency market.Currency
	RiskPct         float64 // percent, 1 means 1%
	Pair            market.Pair
	StopLossPips    float64
	RewardRisk      RewardRisk
}
