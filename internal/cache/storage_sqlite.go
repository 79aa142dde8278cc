// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/migrations"
)

const (
	upsertRegion = `INSERT INTO cache_regions (name, created_at) VALUES (?, ?)
ON CONFLICT (name) DO UPDATE SET created_at = excluded.created_at`

	deleteRegionEntries = `DELETE FROM cache_entries WHERE region = ?`

	deleteRegion = `DELETE FROM cache_regions WHERE name = ?`

	insertEntry = `INSERT INTO cache_entries (region, url, status, header, body, checksum, stored_at)
VALUES (:region, :url, :status, :header, :body, :checksum, :stored_at)`

	selectEntriesByURL = `SELECT e.region, e.url, e.status, e.header, e.body, e.checksum, e.stored_at
FROM cache_entries e
JOIN cache_regions r ON r.name = e.region
WHERE e.url = ?
ORDER BY r.created_at DESC, r.name DESC`

	selectRegions = `SELECT name, created_at FROM cache_regions ORDER BY created_at, name`
)

type entryRow struct {
	Region   string `db:"region"`
	URL      string `db:"url"`
	Status   int    `db:"status"`
	Header   string `db:"header"`
	Body     []byte `db:"body"`
	Checksum string `db:"checksum"`
	StoredAt int64  `db:"stored_at"`
}

type regionRow struct {
	Name      string `db:"name"`
	CreatedAt int64  `db:"created_at"`
}

// SQLiteStorage keeps cache regions in a dedicated SQLite database. Every
// body is stored with its BLAKE2b-256 digest and verified on read.
type SQLiteStorage struct {
	db     *sqlx.DB
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLiteStorage opens (or creates) the cache database at dsn and applies
// its migrations. ":memory:" gives a private in-process database.
func NewSQLiteStorage(ctx context.Context, dsn string, log *logger.Logger) (*SQLiteStorage, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error opening cache database")
		return nil, fmt.Errorf("error opening cache database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error connecting cache database (ping)")
		return nil, fmt.Errorf("error connecting cache database: %w", err)
	}

	if err = migrations.MigrateCache(db.DB); err != nil {
		_ = db.Close()
		log.Err(err).Str("func", "NewSQLiteStorage").Msg("error migrating cache database")
		return nil, err
	}

	return &SQLiteStorage{
		db:     db,
		now:    time.Now,
		logger: log.WithComponent("cache-storage"),
	}, nil
}

// PutRegion implements [Storage].
func (s *SQLiteStorage) PutRegion(ctx context.Context, name string, entries []Entry) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := s.now().UnixNano()
	if _, err = tx.ExecContext(ctx, upsertRegion, name, now); err != nil {
		return fmt.Errorf("error storing region %q: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRegionEntries, name); err != nil {
		return fmt.Errorf("error clearing region %q: %w", name, err)
	}

	for _, e := range entries {
		header, mErr := json.Marshal(e.Header)
		if mErr != nil {
			err = fmt.Errorf("error encoding header of %s: %w", e.URL, mErr)
			return err
		}
		body := e.Body
		if body == nil {
			body = []byte{}
		}
		row := entryRow{
			Region:   name,
			URL:      e.URL,
			Status:   e.Status,
			Header:   string(header),
			Body:     body,
			Checksum: checksum(body),
			StoredAt: now,
		}
		if _, err = tx.NamedExecContext(ctx, insertEntry, row); err != nil {
			return fmt.Errorf("error storing entry %s: %w", e.URL, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("error committing region %q: %w", name, err)
	}
	return nil
}

// Match implements [Storage].
func (s *SQLiteStorage) Match(ctx context.Context, url string) (Entry, bool, error) {
	var rows []entryRow
	if err := s.db.SelectContext(ctx, &rows, selectEntriesByURL, url); err != nil {
		return Entry{}, false, fmt.Errorf("error matching %s: %w", url, err)
	}

	for _, row := range rows {
		if checksum(row.Body) != row.Checksum {
			s.logger.Warn().Str("region", row.Region).Str("url", row.URL).Msg("cached entry failed checksum, skipping")
			continue
		}

		var header http.Header
		if err := json.Unmarshal([]byte(row.Header), &header); err != nil {
			s.logger.Warn().Err(err).Str("region", row.Region).Str("url", row.URL).Msg("cached entry has unreadable header, skipping")
			continue
		}

		return Entry{URL: row.URL, Status: row.Status, Header: header, Body: row.Body}, true, nil
	}

	return Entry{}, false, nil
}

// Regions implements [Storage].
func (s *SQLiteStorage) Regions(ctx context.Context) ([]Region, error) {
	var rows []regionRow
	if err := s.db.SelectContext(ctx, &rows, selectRegions); err != nil {
		return nil, fmt.Errorf("error listing regions: %w", err)
	}

	regions := make([]Region, 0, len(rows))
	for _, row := range rows {
		regions = append(regions, Region{Name: row.Name, CreatedAt: time.Unix(0, row.CreatedAt)})
	}
	return regions, nil
}

// DeleteRegion implements [Storage].
func (s *SQLiteStorage) DeleteRegion(ctx context.Context, name string) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, deleteRegionEntries, name); err != nil {
		return fmt.Errorf("error deleting entries of %q: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, deleteRegion, name); err != nil {
		return fmt.Errorf("error deleting region %q: %w", name, err)
	}

	return tx.Commit()
}

// Close releases the database.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func checksum(body []byte) string {
	sum := blake2b.Sum256(body)
	return hex.EncodeToString(sum[:])
}
