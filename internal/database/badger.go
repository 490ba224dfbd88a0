package database

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v3"
)

// OpenBadger opens the embedded document store at path. An empty path
// opens an in-memory store that is lost on close.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)

	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else if err := os.MkdirAll(path, 0o755); err != nil {
		return nil, fmt.Errorf("creating badger directory: %w", err)
	}

	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening badger: %w", err)
	}

	return db, nil
}
