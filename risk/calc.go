package risk

import (
	"math"

	"github.com/rustyeddy/lotsize/market"
)

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

// StopPips turns an entry and stop price into a pip distance for p.
func StopPips(p market.Pair, entry, stop float64) float64 {
	return abs(entry-stop) / p.PipSize()
}

// Gauge maps a risk percent onto a 0-100 meter, full at 10%.
func Gauge(riskPct float64) float64 {
	return math.Min(riskPct*10, 100)
}
