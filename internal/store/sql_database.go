package store

import (
	"database/sql"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/migrations"
)

// DB wraps a *sql.DB together with the error classifier of its dialect.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// MigratePostgres applies the server schema.
func (db *DB) MigratePostgres() error {
	return migrations.MigratePostgres(db.DB)
}

// MigrateLocal applies the client key-value schema.
func (db *DB) MigrateLocal() error {
	return migrations.MigrateLocal(db.DB)
}

// Retryable reports whether err is a transient database failure.
func (db *DB) Retryable(err error) bool {
	if db.errorClassificator == nil {
		return false
	}
	return db.errorClassificator.Classify(err) == Retryable
}
