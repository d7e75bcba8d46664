package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CameronXie/storefront/internal/repository"
)

// CategoryRepository reads categories.
type CategoryRepository struct {
	store *Store
}

// NewCategoryRepository creates a new CategoryRepository instance
func NewCategoryRepository(store *Store) *CategoryRepository {
	return &CategoryRepository{store: store}
}

// FetchCategories returns every category ordered by id.
func (r *CategoryRepository) FetchCategories(ctx context.Context) ([]repository.CategoryRow, error) {
	rows, err := queryRows(
		ctx,
		r.store.db,
		"SELECT id, name FROM category ORDER BY id",
		nil,
		func(rows *sql.Rows) (repository.CategoryRow, error) {
			var row repository.CategoryRow
			err := rows.Scan(&row.ID, &row.Name)
			return row, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}

	return rows, nil
}
