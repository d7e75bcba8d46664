package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CameronXie/storefront/internal/catalog"
)

// Seeder writes a catalog into the store. Every row is upserted so seeding twice is harmless.
type Seeder struct {
	store  *Store
	logger *slog.Logger
}

// NewSeeder creates a new Seeder instance
func NewSeeder(store *Store, logger *slog.Logger) *Seeder {
	return &Seeder{store: store, logger: logger}
}

// seedStatements are the rebound upsert statements of one dialect.
type seedStatements struct {
	category         string
	brand            string
	currency         string
	product          string
	gallery          string
	price            string
	attributeSet     string
	attribute        string
	productAttribute string
}

func newSeedStatements(d Dialect) seedStatements {
	stmt := func(query string, conflict []string, update []string) string {
		return d.Rebind(query + d.Upsert(conflict, update))
	}

	return seedStatements{
		category: stmt("INSERT INTO category (name) VALUES (?)", []string{"name"}, nil),
		brand:    stmt("INSERT INTO brand (name) VALUES (?)", []string{"name"}, nil),
		currency: stmt(
			"INSERT INTO currency (label, symbol) VALUES (?, ?)",
			[]string{"label"},
			[]string{"symbol"},
		),
		product: stmt(
			`INSERT INTO product (id, name, in_stock, description, category_id, brand_id)
VALUES (?, ?, ?, ?, (SELECT id FROM category WHERE name = ?), (SELECT id FROM brand WHERE name = ?))`,
			[]string{"id"},
			[]string{"name", "in_stock", "description", "category_id", "brand_id"},
		),
		gallery: stmt("INSERT INTO gallery (product_id, url) VALUES (?, ?)", []string{"product_id", "url"}, nil),
		price: stmt(
			"INSERT INTO price (product_id, currency_id, amount) VALUES (?, (SELECT id FROM currency WHERE label = ?), ?)",
			[]string{"product_id", "currency_id"},
			[]string{"amount"},
		),
		attributeSet: stmt(
			"INSERT INTO attribute_set (id, name, type) VALUES (?, ?, ?)",
			[]string{"id"},
			[]string{"name", "type"},
		),
		attribute: stmt(
			"INSERT INTO attribute (id, attribute_set_id, value, display_value) VALUES (?, ?, ?, ?)",
			[]string{"attribute_set_id", "id"},
			[]string{"value", "display_value"},
		),
		productAttribute: stmt(
			"INSERT INTO product_attributes (product_id, attribute_set_id, attribute_id) VALUES (?, ?, ?)",
			[]string{"product_id", "attribute_set_id", "attribute_id"},
			nil,
		),
	}
}

// Seed writes c inside one transaction. Any failure rolls back everything written.
func (s *Seeder) Seed(ctx context.Context, c *catalog.Catalog) (err error) {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin_transaction: %w", err)
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.ErrorContext(ctx, "seed_rollback_failed", "error", rbErr)
		}
	}()

	stmts := newSeedStatements(s.store.dialect)

	for _, cat := range c.Categories {
		if err = exec(ctx, tx, stmts.category, strings.ToLower(strings.TrimSpace(cat.Name))); err != nil {
			return fmt.Errorf("seed_category %s: %w", cat.Name, err)
		}
	}
	s.logger.DebugContext(ctx, "categories_seeded", "count", len(c.Categories))

	brands := c.Brands()
	for _, brand := range brands {
		if err = exec(ctx, tx, stmts.brand, brand); err != nil {
			return fmt.Errorf("seed_brand %s: %w", brand, err)
		}
	}
	s.logger.DebugContext(ctx, "brands_seeded", "count", len(brands))

	currencies := c.Currencies()
	for _, cur := range currencies {
		if err = exec(ctx, tx, stmts.currency, cur.Label, cur.Symbol); err != nil {
			return fmt.Errorf("seed_currency %s: %w", cur.Label, err)
		}
	}
	s.logger.DebugContext(ctx, "currencies_seeded", "count", len(currencies))

	for _, p := range c.Products {
		if err = seedProduct(ctx, tx, stmts, p); err != nil {
			return fmt.Errorf("seed_product %s: %w", p.ID, err)
		}
		s.logger.DebugContext(ctx, "product_seeded", "product_id", p.ID)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	s.logger.InfoContext(
		ctx,
		"catalog_seeded",
		"categories", len(c.Categories),
		"brands", len(brands),
		"currencies", len(currencies),
		"products", len(c.Products),
	)

	return nil
}

func seedProduct(ctx context.Context, tx *sql.Tx, stmts seedStatements, p catalog.Product) error {
	var brand any
	if p.Brand != "" {
		brand = p.Brand
	}

	if err := exec(
		ctx,
		tx,
		stmts.product,
		p.ID,
		p.Name,
		p.InStock,
		p.Description,
		strings.ToLower(strings.TrimSpace(p.Category)),
		brand,
	); err != nil {
		return err
	}

	for _, url := range p.Gallery {
		if err := exec(ctx, tx, stmts.gallery, p.ID, url); err != nil {
			return fmt.Errorf("gallery %s: %w", url, err)
		}
	}

	for _, price := range p.Prices {
		label := strings.ToUpper(strings.TrimSpace(price.Currency.Label))
		if err := exec(ctx, tx, stmts.price, p.ID, label, price.DecimalAmount()); err != nil {
			return fmt.Errorf("price %s: %w", label, err)
		}
	}

	for _, set := range p.Attributes {
		setType := strings.ToLower(strings.TrimSpace(set.Type))
		if err := exec(ctx, tx, stmts.attributeSet, set.ID, set.Name, setType); err != nil {
			return fmt.Errorf("attribute set %s: %w", set.ID, err)
		}

		for _, item := range set.Items {
			if err := exec(ctx, tx, stmts.attribute, item.ID, set.ID, item.Value, item.DisplayValue); err != nil {
				return fmt.Errorf("attribute %s/%s: %w", set.ID, item.ID, err)
			}

			if err := exec(ctx, tx, stmts.productAttribute, p.ID, set.ID, item.ID); err != nil {
				return fmt.Errorf("product attribute %s/%s: %w", set.ID, item.ID, err)
			}
		}
	}

	return nil
}

func exec(ctx context.Context, q querier, query string, args ...any) error {
	_, err := q.ExecContext(ctx, query, args...)
	return err
}
