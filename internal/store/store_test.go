package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/models"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

// newDBFromSQL wraps an existing *sql.DB for tests.
func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func testRecord(name string, at time.Time) models.ProductRecord {
	return models.NewProductRecord(
		models.Client{Name: "Ana Ruiz", IDNumber: "8-123-456", Phone: "6000-0000", Address: "Calle 50"},
		models.Item{
			Name:             name,
			Description:      "boxed",
			Origin:           "PA",
			ExpiryDate:       "2027-01-01",
			Price:            decimal.RequireFromString("12.50"),
			Currency:         "USD",
			Quantity:         3,
			Condition:        models.ConditionNew,
			HomeDelivery:     true,
			WarrantyIncluded: true,
			WarrantyMonths:   12,
		},
		at,
	)
}
