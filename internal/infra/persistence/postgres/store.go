// Package postgres persists the durable collections to a Postgres "state"
// table with one JSONB row per bucket.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"restaurantcore/internal/infra/persistence/buckets"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// DefaultDSN is used when no DSN is configured.
const DefaultDSN = "postgres://localhost/restaurantcore?sslmode=disable"

var (
	openMu  sync.Mutex
	sqlOpen = sql.Open
)

// Store is a buckets.Store saving to Postgres.
type Store struct {
	*buckets.Store
	db *sql.DB
}

// NewStore connects to dsn, creates the state table if needed and loads the
// durable collections.
func NewStore(dsn string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	openMu.Lock()
	db, err := sqlOpen("pgx", dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	table := buckets.SQLTable{DB: db, Dialect: buckets.Postgres}
	if err := table.Ensure(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	inner, err := buckets.Open(ctx, table, engine, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Store: inner, db: db}, nil
}

// DB exposes the connection pool.
func (s *Store) DB() *sql.DB { return s.db }

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// OverrideSQLOpen replaces the driver opener until the returned func is called.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	prev := sqlOpen
	sqlOpen = fn
	openMu.Unlock()
	return func() {
		openMu.Lock()
		sqlOpen = prev
		openMu.Unlock()
	}
}
