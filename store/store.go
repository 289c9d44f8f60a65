// Package store persists enriched transactions in a local SQLite database.
//
// The store is deliberately dumb: create, read, delete. Transactions are
// immutable once recorded, so there is no update path; removing one simply
// forces the caller to recompute every derived aggregate from the remaining
// history.
package store

import (
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	nepfolio "github.com/nepfolio/nepfolio"
	"github.com/nepfolio/nepfolio/date"
)

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id                         TEXT PRIMARY KEY,
	company                    TEXT NOT NULL,
	date                       TEXT NOT NULL,
	type                       TEXT NOT NULL,
	quantity                   TEXT NOT NULL,
	price                      TEXT NOT NULL,
	transaction_source         TEXT,
	holding_type               TEXT,
	broker_commission          TEXT NOT NULL,
	sebon_fee                  TEXT NOT NULL,
	dp_charge                  TEXT NOT NULL,
	amount_payable             TEXT,
	wacc                       TEXT,
	investment                 TEXT,
	profit_before_tax          TEXT,
	capital_gain_tax           TEXT,
	net_profit_loss            TEXT,
	net_profit_loss_percentage REAL,
	amount_receivable          TEXT
);
CREATE INDEX IF NOT EXISTS idx_transactions_company ON transactions(company);
`

// Store is a SQLite-backed transaction store. Amounts are stored as decimal
// strings so nothing is lost to float rounding on the way through the
// database.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open transaction store %q: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize transaction store %q: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Append records one enriched transaction.
func (s *Store) Append(tx nepfolio.Transaction) error {
	_, err := s.db.Exec(`INSERT INTO transactions (
		id, company, date, type, quantity, price,
		transaction_source, holding_type,
		broker_commission, sebon_fee, dp_charge,
		amount_payable, wacc,
		investment, profit_before_tax, capital_gain_tax,
		net_profit_loss, net_profit_loss_percentage, amount_receivable
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Symbol, tx.Date.String(), string(tx.Side),
		tx.Quantity.Decimal().String(), tx.Price.Decimal().String(),
		string(tx.Source), string(tx.HoldingType),
		tx.Fees.Broker.Decimal().String(), tx.Fees.Sebon.Decimal().String(), tx.Fees.DPCharge.Decimal().String(),
		tx.AmountPayable.Decimal().String(), tx.WACC.Decimal().String(),
		tx.Investment.Decimal().String(), tx.ProfitBeforeTax.Decimal().String(), tx.CapitalGainTax.Decimal().String(),
		tx.NetProfitLoss.Decimal().String(), float64(tx.NetProfitLossPct), tx.AmountReceivable.Decimal().String(),
	)
	if err != nil {
		return fmt.Errorf("cannot record transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Delete removes the transaction with the given id. Deleting is the only
// mutation: every derived aggregate must be recomputed afterwards.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec(`DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("cannot delete transaction %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("no transaction with id %s", id)
	}
	return nil
}

// History returns all transactions ordered by date, insertion order breaking
// ties, ready to be folded by the engine.
func (s *Store) History() (nepfolio.History, error) {
	rows, err := s.db.Query(`SELECT
		id, company, date, type, quantity, price,
		transaction_source, holding_type,
		broker_commission, sebon_fee, dp_charge,
		amount_payable, wacc,
		investment, profit_before_tax, capital_gain_tax,
		net_profit_loss, net_profit_loss_percentage, amount_receivable
	FROM transactions ORDER BY date, rowid`)
	if err != nil {
		return nil, fmt.Errorf("cannot read transaction history: %w", err)
	}
	defer rows.Close()

	var history nepfolio.History
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		history = append(history, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("cannot read transaction history: %w", err)
	}
	return history, nil
}

func scanTransaction(rows *sql.Rows) (nepfolio.Transaction, error) {
	var (
		tx                                                 nepfolio.Transaction
		day, side, source, holding                         string
		quantity, price                                    string
		broker, sebon, dp                                  string
		payable, wacc, investment, pbt, tax, netPL, recvbl string
		pct                                                float64
	)
	err := rows.Scan(&tx.ID, &tx.Symbol, &day, &side, &quantity, &price,
		&source, &holding, &broker, &sebon, &dp,
		&payable, &wacc, &investment, &pbt, &tax, &netPL, &pct, &recvbl)
	if err != nil {
		return tx, fmt.Errorf("cannot scan transaction row: %w", err)
	}

	tx.Date, err = date.Parse(day)
	if err != nil {
		return tx, err
	}
	tx.Side, err = nepfolio.ParseSide(side)
	if err != nil {
		return tx, err
	}
	tx.Source = nepfolio.Source(source)
	tx.HoldingType = nepfolio.HoldingType(holding)
	tx.NetProfitLossPct = nepfolio.Percent(pct)

	fields := []struct {
		raw  string
		dest *nepfolio.Money
	}{
		{broker, &tx.Fees.Broker}, {sebon, &tx.Fees.Sebon}, {dp, &tx.Fees.DPCharge},
		{payable, &tx.AmountPayable}, {wacc, &tx.WACC},
		{investment, &tx.Investment}, {pbt, &tx.ProfitBeforeTax}, {tax, &tx.CapitalGainTax},
		{netPL, &tx.NetProfitLoss}, {recvbl, &tx.AmountReceivable},
	}
	for _, f := range fields {
		d, err := decimal.NewFromString(f.raw)
		if err != nil {
			return tx, fmt.Errorf("cannot parse stored amount %q: %w", f.raw, err)
		}
		*f.dest = nepfolio.M(d)
	}
	qd, err := decimal.NewFromString(quantity)
	if err != nil {
		return tx, fmt.Errorf("cannot parse stored quantity %q: %w", quantity, err)
	}
	tx.Quantity = nepfolio.Q(qd)
	pd, err := decimal.NewFromString(price)
	if err != nil {
		return tx, fmt.Errorf("cannot parse stored price %q: %w", price, err)
	}
	tx.Price = nepfolio.M(pd)

	return tx, nil
}
