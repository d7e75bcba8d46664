package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/CameronXie/storefront/internal/repository"
)

const productsQuery = `SELECT p.id, p.name, p.in_stock, p.description, c.name, b.name, g.url
FROM product p
LEFT JOIN category c ON p.category_id = c.id
LEFT JOIN brand b ON p.brand_id = b.id
LEFT JOIN gallery g ON g.product_id = p.id`

// ProductRepository reads products with their category, brand and gallery.
type ProductRepository struct {
	store *Store
}

// NewProductRepository creates a new ProductRepository instance
func NewProductRepository(store *Store) *ProductRepository {
	return &ProductRepository{store: store}
}

// FetchProducts returns one row per product and gallery image, ordered by product id then image insertion.
func (r *ProductRepository) FetchProducts(
	ctx context.Context,
	filter repository.ProductFilter,
) ([]repository.ProductRow, error) {
	query, args := buildProductsQuery(filter)

	rows, err := queryRows(ctx, r.store.db, r.store.dialect.Rebind(query), args, scanProductRow)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}

	return rows, nil
}

func buildProductsQuery(filter repository.ProductFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != "" {
		conditions = append(conditions, "c.name = ?")
		args = append(args, filter.Category)
	}

	if filter.Brand != "" {
		conditions = append(conditions, "b.name = ?")
		args = append(args, filter.Brand)
	}

	if filter.ProductID != "" {
		conditions = append(conditions, "p.id = ?")
		args = append(args, filter.ProductID)
	}

	var sb strings.Builder
	sb.WriteString(productsQuery)
	if len(conditions) > 0 {
		sb.WriteString("\nWHERE ")
		sb.WriteString(strings.Join(conditions, " AND "))
	}
	sb.WriteString("\nORDER BY p.id, g.id")

	return sb.String(), args
}

func scanProductRow(rows *sql.Rows) (repository.ProductRow, error) {
	var row repository.ProductRow
	err := rows.Scan(
		&row.ID,
		&row.Name,
		&row.InStock,
		&row.Description,
		&row.CategoryName,
		&row.BrandName,
		&row.GalleryURL,
	)

	return row, err
}
