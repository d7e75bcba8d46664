package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CameronXie/storefront/internal/repository"
)

const pricesQuery = `SELECT pr.amount, c.label
FROM price pr
JOIN currency c ON c.id = pr.currency_id
WHERE pr.product_id = ?
ORDER BY pr.id`

// PriceRepository reads product prices.
type PriceRepository struct {
	store *Store
}

// NewPriceRepository creates a new PriceRepository instance
func NewPriceRepository(store *Store) *PriceRepository {
	return &PriceRepository{store: store}
}

// FetchPrices returns the prices of productID with their currency label.
func (r *PriceRepository) FetchPrices(ctx context.Context, productID string) ([]repository.PriceRow, error) {
	rows, err := queryRows(
		ctx,
		r.store.db,
		r.store.dialect.Rebind(pricesQuery),
		[]any{productID},
		func(rows *sql.Rows) (repository.PriceRow, error) {
			var row repository.PriceRow
			err := rows.Scan(&row.Amount, &row.CurrencyLabel)
			return row, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query prices for product %s: %w", productID, err)
	}

	return rows, nil
}
