package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

const schemaVersionTable = `CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER NOT NULL PRIMARY KEY
)`

// Migration represents a database schema migration.
// Up and Down hold one statement per element as not every driver accepts multi statement strings.
type Migration struct {
	Version int
	Up      []string
	Down    []string
}

var catalogDown = []string{
	`DROP TABLE IF EXISTS order_product_attributes`,
	`DROP TABLE IF EXISTS order_products`,
	`DROP TABLE IF EXISTS orders`,
	`DROP TABLE IF EXISTS product_attributes`,
	`DROP TABLE IF EXISTS attribute`,
	`DROP TABLE IF EXISTS attribute_set`,
	`DROP TABLE IF EXISTS price`,
	`DROP TABLE IF EXISTS gallery`,
	`DROP TABLE IF EXISTS product`,
	`DROP TABLE IF EXISTS currency`,
	`DROP TABLE IF EXISTS brand`,
	`DROP TABLE IF EXISTS category`,
}

var mysqlMigrations = []Migration{
	{
		Version: 1,
		Up: []string{
			`CREATE TABLE IF NOT EXISTS category (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS brand (
    id INT AUTO_INCREMENT PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS currency (
    id INT AUTO_INCREMENT PRIMARY KEY,
    label VARCHAR(10) NOT NULL UNIQUE,
    symbol VARCHAR(10) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS product (
    id VARCHAR(255) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    in_stock BOOLEAN NOT NULL DEFAULT TRUE,
    description TEXT NOT NULL,
    category_id INT,
    brand_id INT,
    FOREIGN KEY (category_id) REFERENCES category(id),
    FOREIGN KEY (brand_id) REFERENCES brand(id)
)`,
			`CREATE TABLE IF NOT EXISTS gallery (
    id INT AUTO_INCREMENT PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL,
    url VARCHAR(500) NOT NULL,
    UNIQUE KEY uq_gallery_product_url (product_id, url),
    FOREIGN KEY (product_id) REFERENCES product(id) ON DELETE CASCADE
)`,
			`CREATE TABLE IF NOT EXISTS price (
    id INT AUTO_INCREMENT PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL,
    currency_id INT NOT NULL,
    amount DECIMAL(10, 2) NOT NULL,
    UNIQUE KEY uq_price_product_currency (product_id, currency_id),
    FOREIGN KEY (product_id) REFERENCES product(id) ON DELETE CASCADE,
    FOREIGN KEY (currency_id) REFERENCES currency(id)
)`,
			`CREATE TABLE IF NOT EXISTS attribute_set (
    id VARCHAR(255) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    type VARCHAR(50) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS attribute (
    id VARCHAR(255) NOT NULL,
    attribute_set_id VARCHAR(255) NOT NULL,
    value VARCHAR(255) NOT NULL,
    display_value VARCHAR(255) NOT NULL,
    PRIMARY KEY (attribute_set_id, id),
    FOREIGN KEY (attribute_set_id) REFERENCES attribute_set(id) ON DELETE CASCADE
)`,
			`CREATE TABLE IF NOT EXISTS product_attributes (
    id INT AUTO_INCREMENT PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL,
    attribute_set_id VARCHAR(255) NOT NULL,
    attribute_id VARCHAR(255) NOT NULL,
    UNIQUE KEY uq_product_attribute (product_id, attribute_set_id, attribute_id),
    FOREIGN KEY (product_id) REFERENCES product(id) ON DELETE CASCADE,
    FOREIGN KEY (attribute_set_id, attribute_id) REFERENCES attribute(attribute_set_id, id)
)`,
			`CREATE TABLE IF NOT EXISTS orders (
    id INT AUTO_INCREMENT PRIMARY KEY,
    order_number VARCHAR(21) NOT NULL UNIQUE,
    total_amount DECIMAL(10, 2) NOT NULL,
    currency_id INT NOT NULL,
    placed_at DATETIME NOT NULL,
    FOREIGN KEY (currency_id) REFERENCES currency(id)
)`,
			`CREATE TABLE IF NOT EXISTS order_products (
    id INT AUTO_INCREMENT PRIMARY KEY,
    order_id INT NOT NULL,
    product_id VARCHAR(255) NOT NULL,
    quantity INT NOT NULL,
    FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
    FOREIGN KEY (product_id) REFERENCES product(id)
)`,
			`CREATE TABLE IF NOT EXISTS order_product_attributes (
    order_product_id INT NOT NULL,
    attribute_set_id VARCHAR(255) NOT NULL,
    attribute_id VARCHAR(255) NOT NULL,
    PRIMARY KEY (order_product_id, attribute_set_id),
    FOREIGN KEY (order_product_id) REFERENCES order_products(id) ON DELETE CASCADE
)`,
		},
		Down: catalogDown,
	},
}

var postgresMigrations = []Migration{
	{
		Version: 1,
		Up: []string{
			`CREATE TABLE IF NOT EXISTS category (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS brand (
    id SERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS currency (
    id SERIAL PRIMARY KEY,
    label VARCHAR(10) NOT NULL UNIQUE,
    symbol VARCHAR(10) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS product (
    id VARCHAR(255) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    in_stock BOOLEAN NOT NULL DEFAULT TRUE,
    description TEXT NOT NULL,
    category_id INT REFERENCES category(id),
    brand_id INT REFERENCES brand(id)
)`,
			`CREATE TABLE IF NOT EXISTS gallery (
    id SERIAL PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    url TEXT NOT NULL,
    UNIQUE (product_id, url)
)`,
			`CREATE TABLE IF NOT EXISTS price (
    id SERIAL PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    currency_id INT NOT NULL REFERENCES currency(id),
    amount NUMERIC(10, 2) NOT NULL,
    UNIQUE (product_id, currency_id)
)`,
			`CREATE TABLE IF NOT EXISTS attribute_set (
    id VARCHAR(255) PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    type VARCHAR(50) NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS attribute (
    id VARCHAR(255) NOT NULL,
    attribute_set_id VARCHAR(255) NOT NULL REFERENCES attribute_set(id) ON DELETE CASCADE,
    value VARCHAR(255) NOT NULL,
    display_value VARCHAR(255) NOT NULL,
    PRIMARY KEY (attribute_set_id, id)
)`,
			`CREATE TABLE IF NOT EXISTS product_attributes (
    id SERIAL PRIMARY KEY,
    product_id VARCHAR(255) NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    attribute_set_id VARCHAR(255) NOT NULL,
    attribute_id VARCHAR(255) NOT NULL,
    UNIQUE (product_id, attribute_set_id, attribute_id),
    FOREIGN KEY (attribute_set_id, attribute_id) REFERENCES attribute(attribute_set_id, id)
)`,
			`CREATE TABLE IF NOT EXISTS orders (
    id SERIAL PRIMARY KEY,
    order_number VARCHAR(21) NOT NULL UNIQUE,
    total_amount NUMERIC(10, 2) NOT NULL,
    currency_id INT NOT NULL REFERENCES currency(id),
    placed_at TIMESTAMP NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS order_products (
    id SERIAL PRIMARY KEY,
    order_id INT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id VARCHAR(255) NOT NULL REFERENCES product(id),
    quantity INT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS order_product_attributes (
    order_product_id INT NOT NULL REFERENCES order_products(id) ON DELETE CASCADE,
    attribute_set_id VARCHAR(255) NOT NULL,
    attribute_id VARCHAR(255) NOT NULL,
    PRIMARY KEY (order_product_id, attribute_set_id)
)`,
		},
		Down: catalogDown,
	},
}

var sqliteMigrations = []Migration{
	{
		Version: 1,
		Up: []string{
			`CREATE TABLE IF NOT EXISTS category (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS brand (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL UNIQUE
)`,
			`CREATE TABLE IF NOT EXISTS currency (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    label TEXT NOT NULL UNIQUE,
    symbol TEXT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS product (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    in_stock BOOLEAN NOT NULL DEFAULT 1,
    description TEXT NOT NULL,
    category_id INTEGER REFERENCES category(id),
    brand_id INTEGER REFERENCES brand(id)
)`,
			`CREATE TABLE IF NOT EXISTS gallery (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id TEXT NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    url TEXT NOT NULL,
    UNIQUE (product_id, url)
)`,
			`CREATE TABLE IF NOT EXISTS price (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id TEXT NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    currency_id INTEGER NOT NULL REFERENCES currency(id),
    amount DECIMAL(10, 2) NOT NULL,
    UNIQUE (product_id, currency_id)
)`,
			`CREATE TABLE IF NOT EXISTS attribute_set (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    type TEXT NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS attribute (
    id TEXT NOT NULL,
    attribute_set_id TEXT NOT NULL REFERENCES attribute_set(id) ON DELETE CASCADE,
    value TEXT NOT NULL,
    display_value TEXT NOT NULL,
    PRIMARY KEY (attribute_set_id, id)
)`,
			`CREATE TABLE IF NOT EXISTS product_attributes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    product_id TEXT NOT NULL REFERENCES product(id) ON DELETE CASCADE,
    attribute_set_id TEXT NOT NULL,
    attribute_id TEXT NOT NULL,
    UNIQUE (product_id, attribute_set_id, attribute_id),
    FOREIGN KEY (attribute_set_id, attribute_id) REFERENCES attribute(attribute_set_id, id)
)`,
			`CREATE TABLE IF NOT EXISTS orders (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_number TEXT NOT NULL UNIQUE,
    total_amount DECIMAL(10, 2) NOT NULL,
    currency_id INTEGER NOT NULL REFERENCES currency(id),
    placed_at DATETIME NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS order_products (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
    product_id TEXT NOT NULL REFERENCES product(id),
    quantity INTEGER NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS order_product_attributes (
    order_product_id INTEGER NOT NULL REFERENCES order_products(id) ON DELETE CASCADE,
    attribute_set_id TEXT NOT NULL,
    attribute_id TEXT NOT NULL,
    PRIMARY KEY (order_product_id, attribute_set_id)
)`,
		},
		Down: catalogDown,
	},
}

// ApplyMigrations runs every migration of the dialect newer than the recorded schema version.
func ApplyMigrations(ctx context.Context, db *sql.DB, d Dialect) error {
	if _, err := db.ExecContext(ctx, schemaVersionTable); err != nil {
		return fmt.Errorf("create_schema_version: %w", err)
	}

	current, err := currentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	for _, m := range d.migrations {
		if m.Version <= current {
			continue
		}

		for _, stmt := range m.Up {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("apply_migration %d: %w", m.Version, err)
			}
		}

		if _, err := db.ExecContext(ctx, d.Rebind("INSERT INTO schema_version (version) VALUES (?)"), m.Version); err != nil {
			return fmt.Errorf("record_migration %d: %w", m.Version, err)
		}

		current = m.Version
	}

	return nil
}

// RollbackMigration reverts the most recently applied migration.
func RollbackMigration(ctx context.Context, db *sql.DB, d Dialect) error {
	current, err := currentSchemaVersion(ctx, db)
	if err != nil {
		return err
	}

	if current == 0 {
		return fmt.Errorf("no migrations to rollback")
	}

	var migration *Migration
	for i := range d.migrations {
		if d.migrations[i].Version == current {
			migration = &d.migrations[i]
			break
		}
	}

	if migration == nil {
		return fmt.Errorf("migration %d not found", current)
	}

	for _, stmt := range migration.Down {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("rollback_migration %d: %w", current, err)
		}
	}

	if _, err := db.ExecContext(ctx, d.Rebind("DELETE FROM schema_version WHERE version = ?"), current); err != nil {
		return fmt.Errorf("remove_migration_record %d: %w", current, err)
	}

	return nil
}

func currentSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("read_schema_version: %w", err)
	}

	return version, nil
}
