// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS calculations (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	pair TEXT NOT NULL,
	account_currency TEXT NOT NULL,
	account_balance REAL NOT NULL,
	risk_pct REAL NOT NULL,
	stop_loss_pips REAL NOT NULL,
	reward_risk TEXT NOT NULL,
	pip_value_per_lot REAL NOT NULL,
	lot_size REAL NOT NULL,
	money_risk REAL NOT NULL,
	potential_profit REAL NOT NULL,
	potential_loss REAL NOT NULL,
	rates_as_of DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_calculations_time ON calculations(time);
`

const entryColumns = `id, time, pair, account_currency, account_balance, risk_pct, stop_loss_pips,
	reward_risk, pip_value_per_lot, lot_size, money_risk, potential_profit, potential_loss, rates_as_of`
