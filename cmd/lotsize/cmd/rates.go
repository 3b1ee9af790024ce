package cmd

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/rustyeddy/lotsize/market"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var ratesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show the rate table",
	Long: `Print every observed and derived rate the engine would use.

Examples:
  lotsize rates
  lotsize rates --refresh`,
	Args: cobra.NoArgs,
	RunE: runRates,
}

var ratesRefresh bool

func init() {
	rootCmd.AddCommand(ratesCmd)
	ratesCmd.Flags().BoolVar(&ratesRefresh, "refresh", false, "pull one batch from the configured feed first")
}

func runRates(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.log.Sync()

	if ratesRefresh {
		if err := a.refresh(cmd.Context()); err != nil {
			a.log.Warn("rate refresh failed, using configured rates", zap.Error(err))
		}
	}

	tbl := a.store.Snapshot()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rates as of %s\n\n", tbl.AsOf.Format(time.RFC3339))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAIR\tRATE\tSOURCE")
	for _, sym := range tbl.Symbols() {
		r, _ := tbl.Rate(sym)
		src := "observed"
		if market.Instruments[sym].Derived {
			src = "derived"
		}
		fmt.Fprintf(w, "%s\t%.5f\t%s\n", sym, r, src)
	}
	return w.Flush()
}
