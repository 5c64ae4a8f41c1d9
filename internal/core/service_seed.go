package core

import (
	"context"

	"restaurantcore/internal/seed"
	"restaurantcore/pkg/domain"
)

// InitializeStore replaces every collection with the fixed sample dataset.
func (s *Service) InitializeStore(ctx context.Context) (Result, error) {
	return s.SeedStore(ctx, seed.DefaultSeed)
}

// SeedStore replaces every collection with the sample dataset generated from
// value. The same value always yields the same records.
func (s *Service) SeedStore(ctx context.Context, value int64) (Result, error) {
	return s.run(ctx, operation{"initialize_store", domain.EntityActiveUser, domain.ActionCreate}, func(tx Transaction) (string, error) {
		tx.Reset()
		if err := seed.Load(tx, value); err != nil {
			return "", err
		}
		user, _ := tx.Snapshot().ActiveUser()
		return user.ID, nil
	})
}
