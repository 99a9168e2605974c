package repository

import (
	"context"
	"database/sql"
	"fmt"

	"salestracker/internal/models"
)

type TransactionRepository struct {
	db *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ Transactions = (*TransactionRepository)(nil)

const (
	insertTransactionSQL = `INSERT INTO transactions (customer_name, amount, date, uploaded_by) VALUES (?, ?, ?, ?)`

	selectTotalsSQL = `SELECT COALESCE(SUM(amount), 0), COUNT(*), COALESCE(AVG(amount), 0) FROM transactions`

	selectTotalsByDateSQL = `SELECT COALESCE(SUM(amount), 0), COUNT(*), COALESCE(AVG(amount), 0) FROM transactions WHERE date BETWEEN ? AND ?`

	selectTopCustomersSQL = `SELECT customer_name, SUM(amount) AS total_sales FROM transactions GROUP BY customer_name ORDER BY total_sales DESC, customer_name ASC LIMIT ?`
)

// InsertBatch writes the whole batch inside one transaction and returns the
// number of rows persisted. Any failure rolls the entire batch back.
func (r *TransactionRepository) InsertBatch(ctx context.Context, batch []models.Transaction) (int, error) {
	if len(batch) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin batch insert: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after Commit
	}()

	stmt, err := tx.PrepareContext(ctx, insertTransactionSQL)
	if err != nil {
		return 0, fmt.Errorf("prepare batch insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range batch {
		if _, err := stmt.ExecContext(ctx, t.CustomerName, t.Amount, t.Date, t.UploadedBy); err != nil {
			return 0, fmt.Errorf("insert transaction %d of %d: %w", i+1, len(batch), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit batch insert: %w", err)
	}
	return len(batch), nil
}

// Totals returns raw sum/count/avg over all transactions. COALESCE keeps the
// empty table a defined zero state rather than NULL scans.
func (r *TransactionRepository) Totals(ctx context.Context) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, selectTotalsSQL).Scan(&t.Sum, &t.Count, &t.Avg)
	if err != nil {
		return Totals{}, fmt.Errorf("select totals: %w", err)
	}
	return t, nil
}

// TotalsByDateRange aggregates transactions with date in [from, to].
// Lexicographic BETWEEN is correct because dates are canonical YYYY-MM-DD.
func (r *TransactionRepository) TotalsByDateRange(ctx context.Context, from, to string) (Totals, error) {
	var t Totals
	err := r.db.QueryRowContext(ctx, selectTotalsByDateSQL, from, to).Scan(&t.Sum, &t.Count, &t.Avg)
	if err != nil {
		return Totals{}, fmt.Errorf("select totals for [%s, %s]: %w", from, to, err)
	}
	return t, nil
}

// TopCustomers returns per-customer totals ordered by total descending.
// Equal totals are ordered by customer name ascending for determinism.
func (r *TransactionRepository) TopCustomers(ctx context.Context, limit int) ([]models.CustomerTotal, error) {
	rows, err := r.db.QueryContext(ctx, selectTopCustomersSQL, limit)
	if err != nil {
		return nil, fmt.Errorf("select top customers: %w", err)
	}
	defer rows.Close()

	out := make([]models.CustomerTotal, 0, limit)
	for rows.Next() {
		var ct models.CustomerTotal
		if err := rows.Scan(&ct.CustomerName, &ct.TotalSales); err != nil {
			return nil, fmt.Errorf("scan top customer row: %w", err)
		}
		out = append(out, ct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top customers: %w", err)
	}
	return out, nil
}
