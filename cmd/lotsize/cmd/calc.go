package cmd

import (
	"fmt"
	"time"

	"github.com/rustyeddy/lotsize/journal"
	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/report"
	"github.com/rustyeddy/lotsize/risk"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Size a position",
	Long: `Work out the lot size that risks a fixed percent of the account on
a given stop distance. Account defaults come from the config file.

The stop can be given in pips or as an entry and stop price pair.

Examples:
  lotsize calc --pair EURUSD --stop 50
  lotsize calc --pair GBPJPY --balance 25000 --currency EUR --risk 0.5 --stop 35 --rr 1:3
  lotsize calc --pair USDJPY --entry 149.50 --stop-price 149.00 --record`,
	Args: cobra.NoArgs,
	RunE: runCalc,
}

var (
	calcBalance   float64
	calcCurrency  string
	calcRisk      float64
	calcPair      string
	calcStopPips  float64
	calcEntry     float64
	calcStopPrice float64
	calcRR        string
	calcRefresh   bool
	calcRecord    bool
)

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Float64VarP(&calcBalance, "balance", "b", 0, "account balance (default from config)")
	calcCmd.Flags().StringVar(&calcCurrency, "currency", "", "account currency (default from config)")
	calcCmd.Flags().Float64VarP(&calcRisk, "risk", "r", 0, "percent of balance to risk (default from config)")
	calcCmd.Flags().StringVarP(&calcPair, "pair", "p", "", "instrument, e.g. EURUSD (required)")
	calcCmd.Flags().Float64VarP(&calcStopPips, "stop", "s", 0, "stop loss distance in pips")
	calcCmd.Flags().Float64Var(&calcEntry, "entry", 0, "entry price, used with --stop-price")
	calcCmd.Flags().Float64Var(&calcStopPrice, "stop-price", 0, "stop loss price, used with --entry")
	calcCmd.Flags().StringVar(&calcRR, "rr", "", "risk:reward ratio (default from config)")
	calcCmd.Flags().BoolVar(&calcRefresh, "refresh", false, "pull one batch from the configured feed first")
	calcCmd.Flags().BoolVar(&calcRecord, "record", false, "write the result to the configured journal")
	calcCmd.MarkFlagRequired("pair")
	calcCmd.MarkFlagsMutuallyExclusive("stop", "entry")
	calcCmd.MarkFlagsRequiredTogether("entry", "stop-price")
}

func runCalc(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if calcRefresh {
		if err := a.refresh(cmd.Context()); err != nil {
			a.log.Warn("rate refresh failed, using configured rates", zap.Error(err))
		}
	}

	in, err := calcInputs(cmd, a)
	if err != nil {
		return err
	}

	res, err := a.engine.Calculate(in)
	if err != nil {
		return err
	}

	staleAfter, err := a.cfg.Feed.StaleDuration()
	if err != nil {
		return fmt.Errorf("feed.stale_after: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, report.Detail(in, res))
	if market.StaleAt(res.RatesAsOf, staleAfter, time.Now()) {
		fmt.Fprintf(out, "\nWarning: rates are stale (as of %s)\n", res.RatesAsOf.Format(time.RFC3339))
	}

	if !calcRecord {
		return nil
	}
	j, err := openJournal(a.cfg.Journal)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	if j == nil {
		return fmt.Errorf("--record needs journal.type csv or sqlite in the config")
	}
	defer j.Close()

	entry := journal.NewEntry(in, res, time.Now())
	if err := j.Record(entry); err != nil {
		return fmt.Errorf("record: %w", err)
	}
	fmt.Fprintf(out, "\nRecorded %s\n", entry.ID)
	return nil
}

// calcInputs merges flags over the config account defaults.
func calcInputs(cmd *cobra.Command, a *app) (risk.Inputs, error) {
	acct := a.cfg.Account
	flags := cmd.Flags()

	balance := acct.Balance
	if flags.Changed("balance") {
		balance = calcBalance
	}
	riskPct := acct.RiskPercent
	if flags.Changed("risk") {
		riskPct = calcRisk
	}
	curStr := acct.Currency
	if flags.Changed("currency") {
		curStr = calcCurrency
	}
	rrStr := acct.RewardRisk
	if flags.Changed("rr") {
		rrStr = calcRR
	}

	cur, err := market.ParseCurrency(curStr)
	if err != nil {
		return risk.Inputs{}, err
	}
	pair, err := market.ParsePair(calcPair)
	if err != nil {
		return risk.Inputs{}, err
	}
	rr, err := risk.ParseRewardRisk(rrStr)
	if err != nil {
		return risk.Inputs{}, err
	}

	stop := calcStopPips
	if flags.Changed("entry") {
		stop = risk.StopPips(pair, calcEntry, calcStopPrice)
	}

	return risk.Inputs{
		AccountBalance:  balance,
		AccountCurrency: cur,
		RiskPct:         riskPct,
		Pair:            pair,
		StopLossPips:    stop,
		RewardRisk:      rr,
	}, nil
}
