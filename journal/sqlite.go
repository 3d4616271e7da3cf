package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS trades (
	trade_id TEXT PRIMARY KEY,
	date DATETIME NOT NULL,
	symbol TEXT NOT NULL,
	side TEXT NOT NULL,
	entry_price REAL NOT NULL,
	exit_price REAL NOT NULL,
	size REAL NOT NULL,
	returns REAL NOT NULL,
	return_pct REAL NOT NULL,
	status TEXT NOT NULL,
	setup TEXT NOT NULL,
	entry_type TEXT NOT NULL,
	duration TEXT NOT NULL,
	notes TEXT NOT NULL,
	balance REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_date ON trades(date);
`

// SQLite is a queryable snapshot of a trade collection, for ad-hoc SQL
// analysis of an account. It is an export surface, not the primary store;
// the account's trades.dat stays authoritative.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) a snapshot database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// SnapshotTrades replaces the table contents with the given collection.
func (j *SQLite) SnapshotTrades(trades []*Trade) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM trades`); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO trades
		(trade_id, date, symbol, side, entry_price, exit_price, size, returns, return_pct, status, setup, entry_type, duration, notes, balance)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, t := range trades {
		_, err := stmt.Exec(
			t.ID, t.Date, t.Symbol, t.Side, t.Entry, t.Exit, t.Size,
			t.Returns, t.ReturnPercentage, t.RefreshStatus(),
			t.Setup, t.EntryType, t.Duration, t.Notes, t.Balance,
		)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetTrade returns a single snapshotted trade by ID.
func (j *SQLite) GetTrade(tradeID string) (*Trade, error) {
	row := j.db.QueryRow(`
		SELECT trade_id, date, symbol, side, entry_price, exit_price, size, returns, return_pct, status, setup, entry_type, duration, notes, balance
		FROM trades
		WHERE trade_id = ?`, tradeID)

	t, err := scanTrade(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("trade %q not found", tradeID)
		}
		return nil, err
	}
	return t, nil
}

// ListTradesBetween returns snapshotted trades whose date is within
// [start, end), oldest first.
func (j *SQLite) ListTradesBetween(start, end time.Time) ([]*Trade, error) {
	rows, err := j.db.Query(`
		SELECT trade_id, date, symbol, side, entry_price, exit_price, size, returns, return_pct, status, setup, entry_type, duration, notes, balance
		FROM trades
		WHERE date >= ? AND date < ?
		ORDER BY date ASC`, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Trade
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Close closes the underlying database.
func (j *SQLite) Close() error {
	return j.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTrade(row rowScanner) (*Trade, error) {
	var t Trade
	err := row.Scan(
		&t.ID,
		&t.Date,
		&t.Symbol,
		&t.Side,
		&t.Entry,
		&t.Exit,
		&t.Size,
		&t.Returns,
		&t.ReturnPercentage,
		&t.Status,
		&t.Setup,
		&t.EntryType,
		&t.Duration,
		&t.Notes,
		&t.Balance,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
