package payments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/ncruces/go-sqlite3/driver" // registers the "sqlite3" driver
	_ "github.com/ncruces/go-sqlite3/embed"  // bundles the SQLite wasm build

	"github.com/zjrosen/feeportal/internal/log"
)

const schema = `
CREATE TABLE payments (
	seq            INTEGER PRIMARY KEY,
	id             TEXT    NOT NULL UNIQUE,
	date           TEXT    NOT NULL,
	amount_cents   INTEGER NOT NULL CHECK (amount_cents >= 0),
	description    TEXT    NOT NULL,
	status         TEXT    NOT NULL CHECK (status IN ('completed', 'pending', 'failed')),
	method         TEXT    NOT NULL,
	transaction_id TEXT    NOT NULL
);`

// SQLiteProvider serves records from an in-memory SQLite database seeded
// once at construction. The connection is switched to query_only after
// seeding, so the provider cannot write.
type SQLiteProvider struct {
	db *sql.DB
}

// NewSQLiteProvider opens an in-memory database and loads seed into it.
func NewSQLiteProvider(ctx context.Context, seed []PaymentRecord) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite: %w", err)
	}
	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	if err := load(ctx, db, seed); err != nil {
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("locking sqlite: %w", err)
	}

	log.Debug(log.CatPayments, "SQLite provider ready", "records", len(seed))
	return &SQLiteProvider{db: db}, nil
}

func load(ctx context.Context, db *sql.DB, seed []PaymentRecord) (err error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
		}
	}()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO payments
		(seq, id, date, amount_cents, description, status, method, transaction_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("seeding: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range seed {
		if _, err := stmt.ExecContext(ctx, i, r.ID, r.Date.Format(DateLayout), int64(r.Amount),
			r.Description, string(r.Status), r.Method, r.TransactionID); err != nil {
			return fmt.Errorf("seeding record %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// Records implements Provider. Rows come back in seed order.
func (p *SQLiteProvider) Records(ctx context.Context) ([]PaymentRecord, error) {
	rows, err := p.db.QueryContext(ctx, `SELECT id, date, amount_cents, description, status, method, transaction_id
		FROM payments ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []PaymentRecord
	for rows.Next() {
		var (
			r      PaymentRecord
			date   string
			cents  int64
			status string
		)
		if err := rows.Scan(&r.ID, &date, &cents, &r.Description, &status, &r.Method, &r.TransactionID); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		r.Date, err = time.Parse(DateLayout, date)
		if err != nil {
			return nil, fmt.Errorf("payment %s: bad date %q: %w", r.ID, date, err)
		}
		r.Amount = Amount(cents)
		r.Status = Status(status)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}
	return records, nil
}

// Close releases the database.
func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}
