// Package migrations embeds the SQL schema of every database the project
// owns and applies it with goose.
//
//	postgres/: catalog server products table
//	local/   : client key-value store (catalog and pending queue)
//	cache/   : client asset cache regions
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql local/*.sql cache/*.sql
var embedMigrations embed.FS

// goose keeps its dialect and filesystem in package globals.
var gooseMu sync.Mutex

// MigratePostgres applies the server schema.
func MigratePostgres(db *sql.DB) error {
	return migrate(db, goose.DialectPostgres, "postgres")
}

// MigrateLocal applies the client key-value schema.
func MigrateLocal(db *sql.DB) error {
	return migrate(db, goose.DialectSQLite3, "local")
}

// MigrateCache applies the client cache schema.
func MigrateCache(db *sql.DB) error {
	return migrate(db, goose.DialectSQLite3, "cache")
}

func migrate(db *sql.DB, dialect goose.Dialect, dir string) error {
	if db == nil {
		return errors.New("migration error: db is nil")
	}

	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(string(dialect)); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}
