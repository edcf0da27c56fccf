package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"tenantadmin/internal/platform/config"
)

const pingTimeout = 5 * time.Second

// Config sizes the connection pool.
type Config struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultConfig suits a low-traffic admin service.
func DefaultConfig() Config {
	return Config{
		MaxOpenConns:    10,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

// ConfigFrom overlays the environment settings on DefaultConfig; zero values
// keep the defaults.
func ConfigFrom(db config.Database) Config {
	cfg := DefaultConfig()
	cfg.URL = db.URL
	if db.MaxOpenConns > 0 {
		cfg.MaxOpenConns = db.MaxOpenConns
	}
	if db.MaxIdleConns > 0 {
		cfg.MaxIdleConns = db.MaxIdleConns
	}
	if db.ConnMaxLifetime > 0 {
		cfg.ConnMaxLifetime = db.ConnMaxLifetime
	}
	return cfg
}

// Pool owns the tenant store's *sql.DB, opened through the pgx stdlib driver.
type Pool struct {
	db *sql.DB
}

// New opens and pings the pool. An empty URL yields (nil, nil): the caller
// runs on the in-memory store instead.
func New(ctx context.Context, cfg Config) (*Pool, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	db, err := sql.Open("pgx", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pool := &Pool{db: db}
	if err := pool.Health(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func (p *Pool) DB() *sql.DB {
	return p.db
}

// Health pings with a bounded deadline; it backs the /health database check.
func (p *Pool) Health(ctx context.Context) error {
	if p == nil || p.db == nil {
		return fmt.Errorf("database not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.db.PingContext(ctx)
}

func (p *Pool) Close() error {
	if p == nil || p.db == nil {
		return nil
	}
	return p.db.Close()
}
