package market

// ContractSize is the number of base units in one standard lot.
const ContractSize = 100_000.0

// GoldPipValue is USD per lot for a 0.01 move in XAUUSD.
const GoldPipValue = 1.0

// PipValue returns the account-currency value of a one pip move on lots
// lots of p. Gold is GoldPipValue USD per lot, so it scales with lots like
// every other pair; at one lot it is the flat 1.0 USD.
func PipValue(c *Converter, p Pair, account Currency, lots float64) (float64, error) {
	if p.IsGold() {
		return c.Convert(GoldPipValue*lots, USD, account)
	}

	inQuote := ContractSize * lots * p.PipSize()
	if p.QuoteCurrency == account {
		return inQuote, nil
	}
	return c.Convert(inQuote, p.QuoteCurrency, account)
}
