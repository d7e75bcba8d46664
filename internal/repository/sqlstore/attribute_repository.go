package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CameronXie/storefront/internal/repository"
)

const attributesQuery = `SELECT a.id, a.value, a.display_value, s.id, s.name, s.type
FROM product_attributes pa
JOIN attribute a ON a.attribute_set_id = pa.attribute_set_id AND a.id = pa.attribute_id
JOIN attribute_set s ON s.id = pa.attribute_set_id
WHERE pa.product_id = ?
ORDER BY pa.id`

// AttributeRepository reads the attributes linked to a product.
type AttributeRepository struct {
	store *Store
}

// NewAttributeRepository creates a new AttributeRepository instance
func NewAttributeRepository(store *Store) *AttributeRepository {
	return &AttributeRepository{store: store}
}

// FetchAttributes returns the attributes of productID in link order.
func (r *AttributeRepository) FetchAttributes(ctx context.Context, productID string) ([]repository.AttributeRow, error) {
	rows, err := queryRows(
		ctx,
		r.store.db,
		r.store.dialect.Rebind(attributesQuery),
		[]any{productID},
		func(rows *sql.Rows) (repository.AttributeRow, error) {
			var row repository.AttributeRow
			err := rows.Scan(
				&row.AttributeID,
				&row.Value,
				&row.DisplayValue,
				&row.AttributeSetID,
				&row.AttributeSetName,
				&row.AttributeSetType,
			)
			return row, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query attributes for product %s: %w", productID, err)
	}

	return rows, nil
}
