package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

var ErrNotFound = errors.New("entry not found")

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Record(e Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO calculations (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Time.UTC(), e.Pair, e.AccountCurrency, e.AccountBalance, e.RiskPct,
		e.StopLossPips, e.RewardRisk, e.PipValuePerLot, e.LotSize, e.MoneyRisk,
		e.PotentialProfit, e.PotentialLoss, e.RatesAsOf.UTC(),
	)
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	err := s.Scan(
		&e.ID,
		&e.Time,
		&e.Pair,
		&e.AccountCurrency,
		&e.AccountBalance,
		&e.RiskPct,
		&e.StopLossPips,
		&e.RewardRisk,
		&e.PipValuePerLot,
		&e.LotSize,
		&e.MoneyRisk,
		&e.PotentialProfit,
		&e.PotentialLoss,
		&e.RatesAsOf,
	)
	return e, err
}

// Get returns a single entry by id.
func (j *SQLite) Get(entryID string) (Entry, error) {
	row := j.db.QueryRow(`SELECT `+entryColumns+` FROM calculations WHERE id = ?`, entryID)
	e, err := scanEntry(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, entryID)
		}
		return Entry{}, err
	}
	return e, nil
}

// ListBetween returns entries recorded within [start, end), oldest first.
func (j *SQLite) ListBetween(start, end time.Time) ([]Entry, error) {
	rows, err := j.db.Query(`
		SELECT `+entryColumns+`
		FROM calculations
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
