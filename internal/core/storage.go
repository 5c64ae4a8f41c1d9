package core

import (
	"context"
	"fmt"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/internal/infra/persistence/postgres"
	"restaurantcore/internal/infra/persistence/redis"
	"restaurantcore/internal/infra/persistence/sqlite"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
	StorageRedis    StorageDriver = "redis"    // Redis keys per durable bucket
)

// StorageConfig selects and addresses the storage backend.
type StorageConfig struct {
	Driver      StorageDriver `mapstructure:"driver"`
	SQLitePath  string        `mapstructure:"sqlite_path"`
	PostgresDSN string        `mapstructure:"postgres_dsn"`
	RedisURL    string        `mapstructure:"redis_url"`
}

// ClosableStore is a PersistentStore holding a connection or file handle.
type ClosableStore interface {
	PersistentStore
	Close() error
}

type memoryStore struct {
	*memory.Store
}

func (memoryStore) Close() error { return nil }

// OpenPersistentStore opens the backend named by cfg. An empty driver selects
// sqlite. Durable collections are loaded before it returns.
func OpenPersistentStore(ctx context.Context, cfg StorageConfig, engine *RulesEngine, opts ...memory.Option) (ClosableStore, error) {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	driver := cfg.Driver
	if driver == "" {
		driver = StorageSQLite
	}
	var (
		store ClosableStore
		err   error
	)
	switch driver {
	case StorageMemory:
		return memoryStore{memory.NewStore(engine, opts...)}, nil
	case StorageSQLite:
		var s *sqlite.Store
		s, err = sqlite.NewStore(cfg.SQLitePath, engine, opts...)
		store = s
	case StoragePostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a dsn")
		}
		var s *postgres.Store
		s, err = postgres.NewStore(cfg.PostgresDSN, engine, opts...)
		store = s
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, fmt.Errorf("redis storage requires a url")
		}
		var s *redis.Store
		s, err = redis.NewStore(ctx, cfg.RedisURL, engine, opts...)
		store = s
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", driver, err)
	}
	return store, nil
}
