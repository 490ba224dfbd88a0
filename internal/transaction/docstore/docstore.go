// Package docstore keeps sale transactions as JSON documents in BadgerDB.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
)

const (
	keyPrefix    = "sale:"
	seqKey       = "meta:sale-seq"
	seqBandwidth = 1000
)

var ErrClosed = errors.New("document store is closed")

// document is the stored JSON shape of a transaction.
type document struct {
	Seq         int64     `json:"seq"`
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	DateOfSale  time.Time `json:"dateOfSale"`
	Sold        bool      `json:"sold"`
	ImportID    uuid.UUID `json:"importId"`
}

func toDocument(tx *transaction.Transaction) document {
	return document{
		Seq:         tx.Seq,
		ID:          tx.ID,
		Title:       tx.Title,
		Description: tx.Description,
		Price:       tx.Price,
		Category:    tx.Category,
		Image:       tx.Image,
		DateOfSale:  tx.DateOfSale,
		Sold:        tx.Sold,
		ImportID:    tx.ImportID,
	}
}

func (d document) transaction() *transaction.Transaction {
	return &transaction.Transaction{
		Seq:         d.Seq,
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		Image:       d.Image,
		DateOfSale:  d.DateOfSale,
		Sold:        d.Sold,
		ImportID:    d.ImportID,
	}
}

// key pads seq so that lexical key order is insertion order.
func key(seq int64) []byte {
	return fmt.Appendf(nil, "%s%020d", keyPrefix, seq)
}

type Store struct {
	db  *badger.DB
	seq *badger.Sequence
}

func New(db *badger.DB) (*Store, error) {
	seq, err := db.GetSequence([]byte(seqKey), seqBandwidth)
	if err != nil {
		return nil, fmt.Errorf("leasing sequence: %w", err)
	}

	return &Store{db: db, seq: seq}, nil
}

// Close returns unused sequence numbers. It does not close the database.
func (s *Store) Close() error {
	return s.seq.Release()
}

func (s *Store) InsertTransactions(ctx context.Context, txs []*transaction.Transaction) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for _, tx := range txs {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, err := s.seq.Next()
		if err != nil {
			return fmt.Errorf("next sequence: %w", err)
		}

		tx.Seq = int64(n) + 1

		data, err := json.Marshal(toDocument(tx))
		if err != nil {
			return fmt.Errorf("failed to marshal transaction %d: %w", tx.ID, err)
		}

		if err := wb.Set(key(tx.Seq), data); err != nil {
			return fmt.Errorf("failed to stage transaction %d: %w", tx.ID, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return fmt.Errorf("failed to store transactions: %w", err)
	}

	return nil
}

func (s *Store) CountTransactions(ctx context.Context, where transaction.Predicate) (int64, error) {
	var count int64

	err := s.scan(ctx, func(tx *transaction.Transaction) bool {
		if where.Match(tx) {
			count++
		}

		return true
	})
	if err != nil {
		return 0, fmt.Errorf("counting transactions: %w", err)
	}

	return count, nil
}

func (s *Store) FindTransactions(ctx context.Context, where transaction.Predicate, w transaction.Window) ([]*transaction.Transaction, error) {
	var (
		txs     []*transaction.Transaction
		skipped int
	)

	err := s.scan(ctx, func(tx *transaction.Transaction) bool {
		if !where.Match(tx) {
			return true
		}

		if skipped < w.Offset {
			skipped++
			return true
		}

		txs = append(txs, tx)

		return w.Limit <= 0 || len(txs) < w.Limit
	})
	if err != nil {
		return nil, fmt.Errorf("finding transactions: %w", err)
	}

	return txs, nil
}

func (s *Store) Ping(_ context.Context) error {
	if s.db.IsClosed() {
		return ErrClosed
	}

	return nil
}

// scan visits every document in key order until fn returns false.
func (s *Store) scan(ctx context.Context, fn func(*transaction.Transaction) bool) error {
	prefix := []byte(keyPrefix)

	return s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc document

			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			})
			if err != nil {
				return fmt.Errorf("decoding %s: %w", it.Item().Key(), err)
			}

			if !fn(doc.transaction()) {
				return nil
			}
		}

		return nil
	})
}
