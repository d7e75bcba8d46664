package sqlstore

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	DialectMySQL    = "mysql"
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Dialect holds what differs between the supported SQL databases.
type Dialect struct {
	Name       string
	DriverName string

	numberedBinds bool
	returningID   bool
	upsertStyle   upsertStyle
	migrations    []Migration
}

type upsertStyle int

const (
	upsertOnDuplicateKey upsertStyle = iota
	upsertOnConflict
)

var dialects = map[string]Dialect{
	DialectMySQL: {
		Name:        DialectMySQL,
		DriverName:  "mysql",
		upsertStyle: upsertOnDuplicateKey,
		migrations:  mysqlMigrations,
	},
	DialectPostgres: {
		Name:          DialectPostgres,
		DriverName:    "pgx",
		numberedBinds: true,
		returningID:   true,
		upsertStyle:   upsertOnConflict,
		migrations:    postgresMigrations,
	},
	DialectSQLite: {
		Name:        DialectSQLite,
		DriverName:  SQLiteDriverName,
		upsertStyle: upsertOnConflict,
		migrations:  sqliteMigrations,
	},
}

// LookupDialect returns the dialect registered under name.
func LookupDialect(name string) (Dialect, error) {
	d, ok := dialects[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Dialect{}, fmt.Errorf("unsupported database driver %q", name)
	}

	return d, nil
}

// Rebind rewrites the ? placeholders of query into the dialect's bind syntax.
// Queries must not contain literal question marks.
func (d Dialect) Rebind(query string) string {
	if !d.numberedBinds {
		return query
	}

	var sb strings.Builder
	sb.Grow(len(query) + 8)

	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] != '?' {
			sb.WriteByte(query[i])
			continue
		}

		n++
		sb.WriteByte('$')
		sb.WriteString(strconv.Itoa(n))
	}

	return sb.String()
}

// Upsert returns the clause that turns an INSERT into an upsert on the conflict columns.
// When update is empty, conflicting rows are left unchanged.
func (d Dialect) Upsert(conflict []string, update []string) string {
	if d.upsertStyle == upsertOnDuplicateKey {
		if len(update) == 0 {
			return fmt.Sprintf(" ON DUPLICATE KEY UPDATE %s = %s", conflict[0], conflict[0])
		}

		assignments := make([]string, 0, len(update))
		for _, col := range update {
			assignments = append(assignments, fmt.Sprintf("%s = VALUES(%s)", col, col))
		}
		return " ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	}

	target := strings.Join(conflict, ", ")
	if len(update) == 0 {
		return fmt.Sprintf(" ON CONFLICT (%s) DO NOTHING", target)
	}

	assignments := make([]string, 0, len(update))
	for _, col := range update {
		assignments = append(assignments, fmt.Sprintf("%s = excluded.%s", col, col))
	}
	return fmt.Sprintf(" ON CONFLICT (%s) DO UPDATE SET %s", target, strings.Join(assignments, ", "))
}

// ConnParams are the parts a DSN is composed from when no DSN is given.
type ConnParams struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

// BuildDSN composes a DSN for the dialect from its parts.
func (d Dialect) BuildDSN(p ConnParams) string {
	switch d.Name {
	case DialectMySQL:
		cfg := mysql.NewConfig()
		cfg.User = p.User
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(p.Host, p.Port)
		cfg.DBName = p.Name
		cfg.ParseTime = true
		return cfg.FormatDSN()
	case DialectPostgres:
		u := url.URL{
			Scheme: "postgres",
			User:   url.UserPassword(p.User, p.Password),
			Host:   net.JoinHostPort(p.Host, p.Port),
			Path:   "/" + p.Name,
		}
		if p.SSLMode != "" {
			u.RawQuery = url.Values{"sslmode": []string{p.SSLMode}}.Encode()
		}
		return u.String()
	default:
		return p.Name
	}
}

// NormaliseDSN applies the settings the store relies on to a user supplied DSN.
// MySQL DSNs always get parseTime so DATETIME columns scan into time.Time.
func (d Dialect) NormaliseDSN(dsn string) (string, error) {
	if d.Name != DialectMySQL {
		return dsn, nil
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse_mysql_dsn: %w", err)
	}
	cfg.ParseTime = true

	return cfg.FormatDSN(), nil
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}

	return strings.Repeat("?, ", n-1) + "?"
}
