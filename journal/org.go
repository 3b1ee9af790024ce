package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatEntryOrg renders an Entry as an Org-mode block. The structured
// facts go in a PROPERTIES drawer so they stay searchable; the Plan and
// Review headings are left for the trader to fill in.
func FormatEntryOrg(e Entry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** Sizing: %s %.2f lots (%s)\n", e.Pair, e.LotSize, shortID(e.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", e.ID)
	fmt.Fprintf(&b, ":TIME: %s\n", e.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, ":PAIR: %s\n", e.Pair)
	fmt.Fprintf(&b, ":ACCOUNT: %.2f %s\n", e.AccountBalance, e.AccountCurrency)
	fmt.Fprintf(&b, ":RISK_PCT: %.2f\n", e.RiskPct)
	fmt.Fprintf(&b, ":STOP_LOSS_PIPS: %.1f\n", e.StopLossPips)
	fmt.Fprintf(&b, ":REWARD_RISK: %s\n", e.RewardRisk)
	fmt.Fprintf(&b, ":PIP_VALUE: %.4f\n", e.PipValuePerLot)
	fmt.Fprintf(&b, ":LOT_SIZE: %.2f\n", e.LotSize)
	fmt.Fprintf(&b, ":MONEY_RISK: %.2f\n", e.MoneyRisk)
	fmt.Fprintf(&b, ":POTENTIAL_PROFIT: %.2f\n", e.PotentialProfit)
	fmt.Fprintf(&b, ":POTENTIAL_LOSS: %.2f\n", e.PotentialLoss)
	fmt.Fprintf(&b, ":RATES_AS_OF: %s\n", e.RatesAsOf.UTC().Format(time.RFC3339))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Plan\n- \n\n")
	b.WriteString("*** Review\n- \n")
	return b.String()
}

// FormatEntriesOrg renders multiple entries separated by blank lines.
func FormatEntriesOrg(entries []Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatEntryOrg(e))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
