// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultPort               = "8080"
	DefaultDBDriver           = "mysql"
	DefaultDBHost             = "localhost"
	DefaultDBName             = "storefront"
	DefaultSQLiteName         = "storefront.db"
	DefaultMaxOpenConns       = 10
	DefaultMaxIdleConns       = 5
	DefaultConnMaxLifetime    = 5 * time.Minute
	DefaultAllowedDomains     = "*"
	DefaultKafkaTopic         = "orders.placed"
	DefaultPricingConcurrency = 4
	DefaultCatalogPath        = "data/data.json"
	DefaultShutdownTimeout    = 10 * time.Second
)

var defaultDBPorts = map[string]string{
	"mysql":    "3306",
	"postgres": "5432",
}

// LookupFunc returns the value of an environment variable and whether it is set.
type LookupFunc func(key string) (string, bool)

// Config holds every runtime setting of the API and the seeder.
type Config struct {
	Port               string
	LogLevel           slog.Level
	Database           Database
	AllowedDomains     []string
	Kafka              Kafka
	PricingConcurrency int
	CatalogPath        string
	ShutdownTimeout    time.Duration
}

// Database holds connection settings. DSN wins over the individual parts when set.
type Database struct {
	Driver          string
	DSN             string
	Host            string
	Port            string
	Name            string
	User            string
	Password        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

// Kafka holds publisher settings. No brokers means events are not published.
type Kafka struct {
	Brokers []string
	Topic   string
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads the configuration through lookup.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	r := reader{lookup: lookup}

	driver := strings.ToLower(r.getString("DB_DRIVER", DefaultDBDriver))
	name := DefaultDBName
	if driver == "sqlite" {
		name = DefaultSQLiteName
	}

	cfg := &Config{
		Port:     r.getString("PORT", DefaultPort),
		LogLevel: r.getLevel("LOG_LEVEL", slog.LevelInfo),
		Database: Database{
			Driver:          driver,
			DSN:             r.getString("DB_DSN", ""),
			Host:            r.getString("DB_HOST", DefaultDBHost),
			Port:            r.getString("DB_PORT", defaultDBPorts[driver]),
			Name:            r.getString("DB_NAME", name),
			User:            r.getString("DB_USER", ""),
			Password:        r.getString("DB_PASSWORD", ""),
			SSLMode:         r.getString("DB_SSLMODE", ""),
			MaxOpenConns:    r.getInt("DB_MAX_OPEN_CONNS", DefaultMaxOpenConns),
			MaxIdleConns:    r.getInt("DB_MAX_IDLE_CONNS", DefaultMaxIdleConns),
			ConnMaxLifetime: r.getDuration("DB_CONN_MAX_LIFETIME", DefaultConnMaxLifetime),
			Migrate:         r.getBool("DB_MIGRATE", true),
		},
		AllowedDomains: r.getList("ALLOWED_DOMAINS", DefaultAllowedDomains),
		Kafka: Kafka{
			Brokers: r.getList("KAFKA_BROKERS", ""),
			Topic:   r.getString("KAFKA_TOPIC", DefaultKafkaTopic),
		},
		PricingConcurrency: r.getInt("PRICING_CONCURRENCY", DefaultPricingConcurrency),
		CatalogPath:        r.getString("CATALOG_PATH", DefaultCatalogPath),
		ShutdownTimeout:    r.getDuration("SHUTDOWN_TIMEOUT", DefaultShutdownTimeout),
	}

	if r.err != nil {
		return nil, r.err
	}

	return cfg, nil
}

// reader keeps the first parse error so every setting can be read in one pass.
type reader struct {
	lookup LookupFunc
	err    error
}

func (r *reader) getString(key, fallback string) string {
	v, ok := r.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}

	return strings.TrimSpace(v)
}

func (r *reader) getInt(key string, fallback int) int {
	v := r.getString(key, "")
	if v == "" {
		return fallback
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}

	if n < 0 {
		r.fail(key, fmt.Errorf("must not be negative"))
		return fallback
	}

	return n
}

func (r *reader) getBool(key string, fallback bool) bool {
	v := r.getString(key, "")
	if v == "" {
		return fallback
	}

	b, err := strconv.ParseBool(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}

	return b
}

func (r *reader) getDuration(key string, fallback time.Duration) time.Duration {
	v := r.getString(key, "")
	if v == "" {
		return fallback
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		r.fail(key, err)
		return fallback
	}

	return d
}

func (r *reader) getLevel(key string, fallback slog.Level) slog.Level {
	v := r.getString(key, "")
	if v == "" {
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		r.fail(key, err)
		return fallback
	}

	return level
}

func (r *reader) getList(key, fallback string) []string {
	items := make([]string, 0)
	for _, item := range strings.Split(r.getString(key, fallback), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}

	return items
}

func (r *reader) fail(key string, err error) {
	if r.err == nil {
		r.err = fmt.Errorf("invalid %s: %w", key, err)
	}
}
