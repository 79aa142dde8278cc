package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-product-sync/internal/logger"
)

// ClientStorages groups the client-side stores.
type ClientStorages struct {
	// LocalStore holds the catalog and the pending queue.
	LocalStore LocalStore

	db *DB
}

// NewClientStorages initialises the client storage layer:
//  1. Opens an SQLite connection to dsn, creating the database file if it
//     does not yet exist.
//  2. Runs pending schema migrations.
//  3. Wires a [LocalStore] over the connection.
func NewClientStorages(ctx context.Context, dsn string, logger *logger.Logger) (*ClientStorages, error) {
	logger.Info().Msg("creating new client storages...")

	db, err := NewConnectSQLite(ctx, dsn, logger)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.MigrateLocal(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &ClientStorages{
		LocalStore: NewLocalStore(db, logger),
		db:         db,
	}, nil
}

// Close releases the database.
func (s *ClientStorages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
