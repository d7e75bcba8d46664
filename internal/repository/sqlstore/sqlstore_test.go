package sqlstore

import (
	"bytes"
	"context"
	"database/sql"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/CameronXie/storefront/internal/catalog"
)

// setupTestStore returns a migrated in-memory SQLite store.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := sql.Open(SQLiteDriverName, ":memory:")
	require.NoError(t, err)

	// In-memory databases exist per connection.
	db.SetMaxOpenConns(1)

	dialect, err := LookupDialect(DialectSQLite)
	require.NoError(t, err)

	store := New(db, dialect)
	require.NoError(t, store.Migrate(context.Background()))

	t.Cleanup(func() {
		require.NoError(t, store.Close())
	})

	return store
}

// setupSeededStore returns a store holding testCatalog.
func setupSeededStore(t *testing.T) *Store {
	t.Helper()

	store := setupTestStore(t)
	require.NoError(t, NewSeeder(store, discardLogger()).Seed(context.Background(), testCatalog()))

	return store
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func countRows(t *testing.T, store *Store, table string) int {
	t.Helper()

	var n int
	require.NoError(t, store.db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&n))

	return n
}

func testCatalog() *catalog.Catalog {
	usd := catalog.Currency{Label: "USD", Symbol: "$"}

	return &catalog.Catalog{
		Categories: []catalog.Category{{Name: "all"}, {Name: "tech"}, {Name: "clothes"}},
		Products: []catalog.Product{
			{
				ID:          "xbox-series-s",
				Name:        "Xbox Series S 512GB",
				InStock:     false,
				Gallery:     []string{"https://images.example.com/xbox-1.jpg"},
				Description: "Hardware-beschleunigtes Raytracing",
				Category:    "tech",
				Brand:       "Microsoft",
				Attributes: []catalog.AttributeSet{
					{
						ID:   "Color",
						Name: "Color",
						Type: "swatch",
						Items: []catalog.Attribute{
							{ID: "Green", Value: "#44FF03", DisplayValue: "Green"},
							{ID: "Black", Value: "#000000", DisplayValue: "Black"},
						},
					},
				},
				Prices: []catalog.Price{
					{Amount: 333.99, Currency: usd},
					{Amount: 310, Currency: catalog.Currency{Label: "EUR", Symbol: "€"}},
				},
			},
			{
				ID:          "apple-imac-2021",
				Name:        "iMac 2021",
				InStock:     true,
				Gallery:     []string{"https://images.example.com/imac-1.jpg", "https://images.example.com/imac-2.jpg"},
				Description: "The new iMac!",
				Category:    "tech",
				Brand:       "Apple",
				Attributes: []catalog.AttributeSet{
					{
						ID:   "Capacity",
						Name: "Capacity",
						Type: "text",
						Items: []catalog.Attribute{
							{ID: "256GB", Value: "256GB", DisplayValue: "256GB"},
							{ID: "512GB", Value: "512GB", DisplayValue: "512GB"},
						},
					},
					{
						ID:   "With USB 3 ports",
						Name: "With USB 3 ports",
						Type: "text",
						Items: []catalog.Attribute{
							{ID: "Yes", Value: "Yes", DisplayValue: "Yes"},
							{ID: "No", Value: "No", DisplayValue: "No"},
						},
					},
				},
				Prices: []catalog.Price{{Amount: 1688.03, Currency: usd}},
			},
			{
				ID:          "jacket-canada-goosee",
				Name:        "Jacket",
				InStock:     true,
				Gallery:     []string{"https://images.example.com/jacket-1.jpg"},
				Description: "Awesome winter jacket",
				Category:    "clothes",
				Brand:       "Canada Goose",
				Attributes: []catalog.AttributeSet{
					{
						ID:   "Size",
						Name: "Size",
						Type: "text",
						Items: []catalog.Attribute{
							{ID: "Small", Value: "S", DisplayValue: "Small"},
						},
					},
				},
				Prices: []catalog.Price{{Amount: 518.47, Currency: usd}},
			},
		},
	}
}
