package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// scanTransaction reads a row in selectColumns order.
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	if err := s.Scan(
		&tx.Seq, &tx.ID, &tx.Title, &tx.Description, &tx.Price, &tx.Category, &tx.Image,
		&tx.DateOfSale, &tx.Sold, &tx.ImportID,
	); err != nil {
		return nil, err
	}

	return &tx, nil
}

const selectColumns = `
	seq, external_id, title, description, price, category, image,
	date_of_sale, sold, import_id
`

// InsertTransactions writes the whole batch in one database transaction.
func (s *Store) InsertTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO sale_transactions (external_id, title, description, price, category, image, date_of_sale, sold, import_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING seq
	`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		err := stmt.QueryRowContext(ctx,
			tx.ID,
			tx.Title,
			tx.Description,
			tx.Price,
			tx.Category,
			tx.Image,
			tx.DateOfSale,
			tx.Sold,
			tx.ImportID,
		).Scan(&tx.Seq)
		if err != nil {
			return fmt.Errorf("inserting transaction %d: %w", tx.ID, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) CountTransactions(ctx context.Context, where transaction.Predicate) (int64, error) {
	clause, args := buildWhere(where)
	query := `SELECT COUNT(*) FROM sale_transactions WHERE ` + clause

	var count int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return count, nil
}

func (s *Store) FindTransactions(ctx context.Context, where transaction.Predicate, w transaction.Window) ([]*transaction.Transaction, error) {
	clause, args := buildWhere(where)
	query := `SELECT ` + selectColumns + ` FROM sale_transactions WHERE ` + clause + ` ORDER BY seq ASC`

	if w.Offset > 0 {
		args = append(args, w.Offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	if w.Limit > 0 {
		args = append(args, w.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finding transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
