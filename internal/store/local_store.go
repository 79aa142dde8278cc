package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/models"
)

// Keys of the client key-value table.
const (
	CatalogKey = "productos"
	PendingKey = "offline-products"
)

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type localStore struct {
	*DB
	logger *logger.Logger
}

// NewLocalStore constructs a [LocalStore] over the client SQLite database.
func NewLocalStore(db *DB, log *logger.Logger) LocalStore {
	return &localStore{
		DB:     db,
		logger: log.WithComponent("local-store"),
	}
}

// LoadCatalog implements [LocalStore].
func (s *localStore) LoadCatalog(ctx context.Context) ([]models.ProductRecord, error) {
	return s.read(ctx, s.DB.DB, CatalogKey)
}

// SaveCatalog implements [LocalStore].
func (s *localStore) SaveCatalog(ctx context.Context, catalog []models.ProductRecord) error {
	return s.write(ctx, s.DB.DB, CatalogKey, catalog)
}

// PeekPending implements [LocalStore].
func (s *localStore) PeekPending(ctx context.Context) ([]models.ProductRecord, error) {
	return s.read(ctx, s.DB.DB, PendingKey)
}

// EnqueuePending implements [LocalStore]. The read-append-write runs in one
// transaction.
func (s *localStore) EnqueuePending(ctx context.Context, record models.ProductRecord) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		pending, err := s.read(ctx, tx, PendingKey)
		if err != nil {
			return err
		}
		return s.write(ctx, tx, PendingKey, append(pending, record))
	})
}

// DrainPending implements [LocalStore]. Reading and clearing the queue
// commit together, so a record is handed out at most once.
func (s *localStore) DrainPending(ctx context.Context) ([]models.ProductRecord, error) {
	var drained []models.ProductRecord

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		pending, err := s.read(ctx, tx, PendingKey)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			drained = pending
			return nil
		}
		if err = s.write(ctx, tx, PendingKey, []models.ProductRecord{}); err != nil {
			return err
		}
		drained = pending
		return nil
	})
	if err != nil {
		return nil, err
	}

	return drained, nil
}

// RemovePending implements [LocalStore]. The queue is left untouched when
// no record matches.
func (s *localStore) RemovePending(ctx context.Context, record models.ProductRecord) (bool, error) {
	removed, err := s.AckPending(ctx, []models.ProductRecord{record})
	return removed > 0, err
}

// AckPending implements [LocalStore]. Each acknowledged record removes at
// most one queue entry, the first equal one, and all removals commit
// together.
func (s *localStore) AckPending(ctx context.Context, records []models.ProductRecord) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}

	var removed int
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		pending, err := s.read(ctx, tx, PendingKey)
		if err != nil {
			return err
		}

		for _, record := range records {
			for i := range pending {
				if pending[i].Equal(record) {
					pending = append(pending[:i:i], pending[i+1:]...)
					removed++
					break
				}
			}
		}
		if removed == 0 {
			return nil
		}
		return s.write(ctx, tx, PendingKey, pending)
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func (s *localStore) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Err(err).Str("func", "localStore.inTx").Msg("failed to begin transaction")
		return fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}

	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err = tx.Commit(); err != nil {
		s.logger.Err(err).Str("func", "localStore.inTx").Msg("failed to commit transaction")
		return fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	return nil
}

func (s *localStore) read(ctx context.Context, q queryer, key string) ([]models.ProductRecord, error) {
	var raw string
	err := q.QueryRowContext(ctx, selectLocalValue, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.ProductRecord{}, nil
	}
	if err != nil {
		s.logger.Err(err).Str("func", "localStore.read").Str("key", key).Msg("failed to read value")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var records []models.ProductRecord
	if err = json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.Warn().
			Err(fmt.Errorf("%w: %w", ErrPersistenceCorrupt, err)).
			Str("key", key).
			Msg("discarding corrupt value")
		return []models.ProductRecord{}, nil
	}
	if records == nil {
		records = []models.ProductRecord{}
	}

	return records, nil
}

func (s *localStore) write(ctx context.Context, q queryer, key string, records []models.ProductRecord) error {
	if records == nil {
		records = []models.ProductRecord{}
	}

	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if _, err = q.ExecContext(ctx, upsertLocalValue, key, string(payload)); err != nil {
		s.logger.Err(err).Str("func", "localStore.write").Str("key", key).Msg("failed to write value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
