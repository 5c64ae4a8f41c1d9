package buckets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

// Backend reads and writes encoded buckets.
type Backend interface {
	Load(ctx context.Context) ([]Payload, error)
	Save(ctx context.Context, payloads []Payload) error
}

// Store keeps the full state in memory and, after each commit, saves the
// durable buckets the transaction touched.
type Store struct {
	*memory.Store
	backend Backend
	mu      sync.Mutex
}

// Open loads the durable buckets from backend into a fresh memory store.
func Open(ctx context.Context, backend Backend, engine *domain.RulesEngine, opts ...memory.Option) (*Store, error) {
	payloads, err := backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	dec := NewDecoder()
	for _, p := range payloads {
		if err := dec.Add(p.Bucket, p.Data); err != nil {
			return nil, err
		}
	}
	mem := memory.NewStore(engine, opts...)
	if !dec.Empty() {
		mem.ImportDurable(dec.State())
	}
	return &Store{Store: mem, backend: backend}, nil
}

// RunInTransaction commits fn in memory, then saves the touched buckets. A
// save failure is returned after the in-memory commit has happened.
func (s *Store) RunInTransaction(ctx context.Context, fn func(domain.Transaction) error) (domain.Result, error) {
	var changes []domain.Change
	res, err := s.Store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if err := fn(tx); err != nil {
			return err
		}
		changes = tx.Changes()
		return nil
	})
	if err != nil {
		return res, err
	}
	dirty := Touched(changes)
	if len(dirty) == 0 {
		return res, nil
	}
	if err := s.Flush(ctx, dirty...); err != nil {
		return res, err
	}
	return res, nil
}

// Flush saves the named buckets, or all of them, from the current state.
func (s *Store) Flush(ctx context.Context, names ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	payloads, err := Encode(s.ExportDurable(), names...)
	if err != nil {
		return err
	}
	if err := s.backend.Save(ctx, payloads); err != nil {
		return fmt.Errorf("save %s: %w", strings.Join(bucketNames(payloads), ","), err)
	}
	return nil
}

func bucketNames(payloads []Payload) []string {
	out := make([]string, len(payloads))
	for i, p := range payloads {
		out[i] = p.Bucket
	}
	return out
}
