package cmd

import (
	"fmt"
	"math"
	"strconv"

	"github.com/rustyeddy/lotsize/market"
	"github.com/rustyeddy/lotsize/report"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert <amount> <from> <to>",
	Short: "Convert an amount between currencies",
	Long: `Convert using direct, inverse or USD-triangulated rates.

Example:
  lotsize convert 100 EUR JPY`,
	Args: cobra.ExactArgs(3),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return fmt.Errorf("amount must be a finite number, got %s", args[0])
	}
	from, err := market.ParseCurrency(args[1])
	if err != nil {
		return err
	}
	to, err := market.ParseCurrency(args[2])
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	v, err := a.engine.Convert(amount, from, to)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", report.Money(amount, from), report.Money(v, to))
	return nil
}
