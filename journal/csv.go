package journal

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"
)

var csvHeader = []string{
	"id", "time", "pair", "account_currency", "account_balance", "risk_pct",
	"stop_loss_pips", "reward_risk", "pip_value_per_lot", "lot_size",
	"money_risk", "potential_profit", "potential_loss", "rates_as_of",
}

// CSV appends entries to a file, writing the header only when the file
// is new or empty.
type CSV struct {
	w *csv.Writer
	f *os.File
}

func NewCSV(path string) (*CSV, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if st.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		w.Flush()
		if err := w.Error(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}
	return &CSV{w: w, f: f}, nil
}

func (j *CSV) Record(e Entry) error {
	err := j.w.Write([]string{
		e.ID,
		e.Time.UTC().Format(time.RFC3339Nano),
		e.Pair,
		e.AccountCurrency,
		f(e.AccountBalance),
		f(e.RiskPct),
		f(e.StopLossPips),
		e.RewardRisk,
		f(e.PipValuePerLot),
		f(e.LotSize),
		f(e.MoneyRisk),
		f(e.PotentialProfit),
		f(e.PotentialLoss),
		e.RatesAsOf.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.w.Flush()
	return j.w.Error()
}

func (j *CSV) Close() error {
	j.w.Flush()
	if err := j.w.Error(); err != nil {
		_ = j.f.Close()
		return err
	}
	return j.f.Close()
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
