package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-product-sync/internal/logger"
	"github.com/MKhiriev/go-product-sync/models"
)

// productRepository is the PostgreSQL-backed implementation of
// [ProductRepository].
//
// Every public method obtains a context-scoped logger via
// [logger.FromContext] so that database interactions carry the request's
// trace fields.
type productRepository struct {
	*DB
	logger *logger.Logger
}

// NewProductRepository constructs a [ProductRepository] backed by db.
func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	return &productRepository{
		DB:     db,
		logger: logger,
	}
}

// SaveProduct inserts record into the products table.
func (p *productRepository) SaveProduct(ctx context.Context, record models.ProductRecord) error {
	log := logger.FromContext(ctx)

	result, err := p.DB.ExecContext(ctx, saveProduct,
		record.Client.Name,
		record.Client.IDNumber,
		record.Client.Phone,
		record.Client.Address,
		record.Item.Name,
		record.Item.Description,
		record.Item.Origin,
		record.Item.ExpiryDate,
		record.Item.Price,
		record.Item.Currency,
		record.Item.Quantity,
		string(record.Item.Condition),
		record.Item.HomeDelivery,
		record.Item.WarrantyIncluded,
		record.Item.WarrantyMonths,
		record.RegisteredAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.SaveProduct").
			Bool("retryable", p.Retryable(err)).
			Msg("failed to insert product")
		return p.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Error().Str("func", "productRepository.SaveProduct").Msg("insert affected no rows")
		return ErrProductNotSaved
	}

	return nil
}

// ListProducts returns products matching filter, newest first. Returns an
// empty slice when nothing matches.
func (p *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.ProductRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListProductsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "productRepository.ListProducts").Msg("failed to create query")
		return nil, err
	}

	rows, err := p.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "productRepository.ListProducts").
			Str("search", filter.Search).
			Msg("failed to execute product listing query")
		return nil, p.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	results := make([]models.ProductRecord, 0, 50)

	for rows.Next() {
		var (
			item      models.ProductRecord
			condition string
		)

		scanErr := rows.Scan(
			&item.Client.Name,
			&item.Client.IDNumber,
			&item.Client.Phone,
			&item.Client.Address,
			&item.Item.Name,
			&item.Item.Description,
			&item.Item.Origin,
			&item.Item.ExpiryDate,
			&item.Item.Price,
			&item.Item.Currency,
			&item.Item.Quantity,
			&condition,
			&item.Item.HomeDelivery,
			&item.Item.WarrantyIncluded,
			&item.Item.WarrantyMonths,
			&item.RegisteredAt,
		)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "productRepository.ListProducts").Msg("failed to scan product row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		item.Item.Condition = models.Condition(condition)
		item.RegisteredAt = item.RegisteredAt.UTC()

		results = append(results, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "productRepository.ListProducts").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

// wrap tags err with sentinel, and with [ErrStoreUnavailable] when the
// failure is transient.
func (p *productRepository) wrap(sentinel, err error) error {
	if p.Retryable(err) {
		return fmt.Errorf("%w: %w: %w", ErrStoreUnavailable, sentinel, err)
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
