package store

import (
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/MKhiriev/go-product-sync/models"
)

const (
	saveProduct = `INSERT INTO products (
			client_name,
			client_id_number,
			client_phone,
			client_address,
			item_name,
			item_description,
			item_origin,
			expiry_date,
			price,
			currency,
			quantity,
			condition,
			home_delivery,
			warranty_included,
			warranty_months,
			registered_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	selectLocalValue = `SELECT value FROM kv WHERE key = ?;`

	upsertLocalValue = `INSERT INTO kv (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at;`
)

var productColumns = []string{
	"client_name",
	"client_id_number",
	"client_phone",
	"client_address",
	"item_name",
	"item_description",
	"item_origin",
	"expiry_date",
	"price",
	"currency",
	"quantity",
	"condition",
	"home_delivery",
	"warranty_included",
	"warranty_months",
	"registered_at",
}

// buildListProductsQuery renders the filtered, newest-first product listing.
func buildListProductsQuery(filter models.ProductFilter) (string, []any, error) {
	builder := sq.Select(productColumns...).
		From("products").
		PlaceholderFormat(sq.Dollar).
		OrderBy("registered_at DESC", "id DESC")

	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + escapeLike(search) + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"item_name": pattern},
			sq.ILike{"item_description": pattern},
			sq.ILike{"client_name": pattern},
		})
	}

	if filter.Condition != "" {
		builder = builder.Where(sq.Eq{"condition": string(filter.Condition)})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return query, args, nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
