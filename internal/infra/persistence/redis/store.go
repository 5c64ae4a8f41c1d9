// Package redis persists the durable collections as one JSON string per
// bucket under a shared key prefix.
package redis

import (
	"context"
	"fmt"

	goredis "github.com/go-redis/redis/v8"

	"restaurantcore/internal/infra/persistence/buckets"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

var _ domain.PersistentStore = (*Store)(nil)

const (
	// DefaultURL is used when no Redis URL is configured.
	DefaultURL = "redis://localhost:6379/0"
	keyPrefix  = "restaurantcore:state:"
)

// KV is the subset of the Redis client used by the store.
type KV interface {
	MGet(ctx context.Context, keys ...string) *goredis.SliceCmd
	MSet(ctx context.Context, values ...interface{}) *goredis.StatusCmd
}

// Store is a buckets.Store saving to Redis.
type Store struct {
	*buckets.Store
	closer func() error
}

// NewStore connects to redisURL, pings it and loads the durable collections.
func NewStore(ctx context.Context, redisURL string, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	if redisURL == "" {
		redisURL = DefaultURL
	}
	opt, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	s, err := NewStoreWithClient(ctx, rdb, engine, opts...)
	if err != nil {
		_ = rdb.Close()
		return nil, err
	}
	s.closer = rdb.Close
	return s, nil
}

// NewStoreWithClient builds a store over an existing client. Close leaves
// the client open.
func NewStoreWithClient(ctx context.Context, kv KV, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	inner, err := buckets.Open(ctx, kvBackend{kv: kv}, engine, opts...)
	if err != nil {
		return nil, err
	}
	return &Store{Store: inner}, nil
}

// Close releases the client when the store opened it.
func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

type kvBackend struct {
	kv KV
}

func key(bucket string) string { return keyPrefix + bucket }

func (b kvBackend) Load(ctx context.Context) ([]buckets.Payload, error) {
	keys := make([]string, len(buckets.Names))
	for i, name := range buckets.Names {
		keys[i] = key(name)
	}
	values, err := b.kv.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("load redis state: %w", err)
	}
	var out []buckets.Payload
	for i, v := range values {
		if i >= len(buckets.Names) || v == nil {
			continue
		}
		p := buckets.Payload{Bucket: buckets.Names[i]}
		switch raw := v.(type) {
		case string:
			p.Data = []byte(raw)
		case []byte:
			p.Data = raw
		default:
			return nil, fmt.Errorf("load redis state: unexpected %T for %s", v, p.Bucket)
		}
		out = append(out, p)
	}
	return out, nil
}

func (b kvBackend) Save(ctx context.Context, payloads []buckets.Payload) error {
	pairs := make([]interface{}, 0, 2*len(payloads))
	for _, p := range payloads {
		pairs = append(pairs, key(p.Bucket), p.Data)
	}
	if err := b.kv.MSet(ctx, pairs...).Err(); err != nil {
		return fmt.Errorf("write redis state: %w", err)
	}
	return nil
}
