// Package sqlite persists the durable collections to an embedded SQLite file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	"restaurantcore/internal/infra/persistence/buckets"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

// DefaultPath is used when no database path is configured.
const DefaultPath = "restaurantcore.db"

// Store is a buckets.Store saving to a SQLite file.
type Store struct {
	*buckets.Store
	db   *sql.DB
	path string
}

// NewStore opens or creates the database at path and loads the durable
// collections.
func NewStore(path string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	ctx := context.Background()
	table := buckets.SQLTable{DB: db, Dialect: buckets.SQLite}
	if err := table.Ensure(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	inner, err := buckets.Open(ctx, table, engine, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{Store: inner, db: db, path: path}, nil
}

// DB exposes the database handle.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error { return s.db.Close() }
