package cmd

import (
	"fmt"
	"math"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/report"
	"github.com/spf13/cobra"
)

var pipValueCmd = &cobra.Command{
	Use:   "pipvalue <pair>",
	Short: "Value of one pip in the account currency",
	Long: `Price a single pip on a position of the given size.

Examples:
  lotsize pipvalue EURUSD
  lotsize pipvalue USDJPY --currency EUR --lots 0.5`,
	Args: cobra.ExactArgs(1),
	RunE: runPipValue,
}

var (
	pipValueCurrency string
	pipValueLots     float64
)

func init() {
	rootCmd.AddCommand(pipValueCmd)
	pipValueCmd.Flags().StringVar(&pipValueCurrency, "currency", "", "account currency (default from config)")
	pipValueCmd.Flags().Float64VarP(&pipValueLots, "lots", "l", 1, "position size in lots")
}

func runPipValue(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	pair, err := market.ParsePair(args[0])
	if err != nil {
		return err
	}
	curStr := a.cfg.Account.Currency
	if pipValueCurrency != "" {
		curStr = pipValueCurrency
	}
	cur, err := market.ParseCurrency(curStr)
	if err != nil {
		return err
	}
	if !(pipValueLots > 0) || math.IsInf(pipValueLots, 0) {
		return fmt.Errorf("--lots must be a positive finite number")
	}

	v, err := a.engine.PipValue(pair, cur, pipValueLots)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s pip (%s lots, size %g): %s\n",
		pair, report.Round2(pipValueLots), pair.PipSize(), report.Money(v, cur))
	return nil
}
