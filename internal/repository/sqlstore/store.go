package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/CameronXie/storefront/internal/config"
)

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PoolOptions configures the connection pool of a Store.
type PoolOptions struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Store is a database/sql connection pool bound to one SQL dialect.
type Store struct {
	db      *sql.DB
	dialect Dialect
}

// Open connects to the database described by dsn and verifies the connection.
func Open(ctx context.Context, dialect Dialect, dsn string, opts PoolOptions) (*Store, error) {
	dsn, err := dialect.NormaliseDSN(dsn)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open_database: %w", err)
	}

	if dialect.Name == DialectSQLite {
		// SQLite allows a single writer.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(opts.MaxOpenConns)
		db.SetMaxIdleConns(opts.MaxIdleConns)
		db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping_database: %w", err)
	}

	return New(db, dialect), nil
}

// OpenFromConfig resolves the configured dialect and opens a Store.
// The DSN is composed from the individual connection settings when none is given.
func OpenFromConfig(ctx context.Context, cfg config.Database) (*Store, error) {
	dialect, err := LookupDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = dialect.BuildDSN(ConnParams{
			Host:     cfg.Host,
			Port:     cfg.Port,
			Name:     cfg.Name,
			User:     cfg.User,
			Password: cfg.Password,
			SSLMode:  cfg.SSLMode,
		})
	}

	return Open(ctx, dialect, dsn, PoolOptions{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
}

// New wraps an existing connection pool.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return ApplyMigrations(ctx, s.db, s.dialect)
}

// Rollback reverts the most recently applied schema migration.
func (s *Store) Rollback(ctx context.Context) error {
	return RollbackMigration(ctx, s.db, s.dialect)
}

// Close closes the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryRows runs query and scans every row with scan. The result is never nil.
func queryRows[T any](
	ctx context.Context,
	q querier,
	query string,
	args []any,
	scan func(*sql.Rows) (T, error),
) ([]T, error) {
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// insertReturningID inserts one row and returns its generated id.
func insertReturningID(ctx context.Context, q querier, d Dialect, query string, args ...any) (int64, error) {
	if d.returningID {
		var id int64
		if err := q.QueryRowContext(ctx, d.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}

	res, err := q.ExecContext(ctx, d.Rebind(query), args...)
	if err != nil {
		return 0, err
	}

	return res.LastInsertId()
}
