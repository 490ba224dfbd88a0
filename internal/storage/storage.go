// Package storage opens the transaction repository selected by configuration.
package storage

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/salesdash/internal/config"
	"github.com/MrJamesThe3rd/salesdash/internal/database"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction"
	"github.com/MrJamesThe3rd/salesdash/internal/transaction/docstore"
	txStore "github.com/MrJamesThe3rd/salesdash/internal/transaction/store"
)

// Handle owns an open repository and everything that has to be closed with it.
type Handle struct {
	transaction.Repository
	closers []func() error
}

func (h *Handle) Close() error {
	var errs []error

	for i := len(h.closers) - 1; i >= 0; i-- {
		if err := h.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func Open(cfg *config.Config) (*Handle, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return openPostgres(cfg)
	case config.DriverBadger:
		return openBadger(cfg)
	}

	return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

func openPostgres(cfg *config.Config) (*Handle, error) {
	if cfg.DB.Migrate {
		if err := database.Migrate(cfg.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migrating database: %w", err)
		}

		slog.Info("database migrations applied")
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	return &Handle{
		Repository: txStore.New(db),
		closers:    []func() error{db.Close},
	}, nil
}

func openBadger(cfg *config.Config) (*Handle, error) {
	db, err := database.OpenBadger(cfg.Badger.Path)
	if err != nil {
		return nil, err
	}

	s, err := docstore.New(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	if cfg.Badger.Path == "" {
		slog.Warn("badger running in memory, seeded data is lost on shutdown")
	}

	return &Handle{
		Repository: s,
		closers:    []func() error{db.Close, s.Close},
	}, nil
}
