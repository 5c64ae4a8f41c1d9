package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

type record[T any] interface {
	*T
	Meta() *domain.Base
}

func createRecord[T any, P record[T]](ctx context.Context, s *Service, name string, entity domain.EntityType, coll func(Transaction) domain.Collection[T], v T) (T, Result, error) {
	var created T
	res, err := s.run(ctx, operation{name, entity, domain.ActionCreate}, func(tx Transaction) (string, error) {
		var err error
		created, err = coll(tx).Create(v)
		if err != nil {
			return "", err
		}
		return P(&created).Meta().ID, nil
	})
	return created, res, err
}

func updateRecord[T any](ctx context.Context, s *Service, name string, entity domain.EntityType, coll func(Transaction) domain.Collection[T], id string, mutator func(*T) error) (T, Result, error) {
	var updated T
	res, err := s.run(ctx, operation{name, entity, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		var err error
		updated, err = coll(tx).Update(id, mutator)
		return id, err
	})
	return updated, res, err
}

func saveRecord[T any, P record[T]](ctx context.Context, s *Service, name string, entity domain.EntityType, coll func(Transaction) domain.Collection[T], v T) (T, Result, error) {
	var saved T
	res, err := s.run(ctx, operation{name, entity, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		var err error
		saved, err = coll(tx).Upsert(v)
		if err != nil {
			return P(&v).Meta().ID, err
		}
		return P(&saved).Meta().ID, nil
	})
	return saved, res, err
}

func deleteRecord[T any](ctx context.Context, s *Service, name string, entity domain.EntityType, coll func(Transaction) domain.Collection[T], id string) (Result, error) {
	return s.run(ctx, operation{name, entity, domain.ActionDelete}, func(tx Transaction) (string, error) {
		return id, coll(tx).Delete(id)
	})
}

// List returns a snapshot of one collection in insertion order:
//
//	orders, err := core.List(ctx, svc, domain.TransactionView.Orders)
func List[T any](ctx context.Context, s *Service, coll func(TransactionView) domain.Reader[T]) ([]T, error) {
	var out []T
	err := s.view(ctx, "list", func(view TransactionView) error {
		out = coll(view).List()
		return nil
	})
	return out, err
}

// Get returns one record, or a NotFoundError naming entity.
func Get[T any](ctx context.Context, s *Service, entity domain.EntityType, coll func(TransactionView) domain.Reader[T], id string) (T, error) {
	var (
		out T
		ok  bool
	)
	if err := s.view(ctx, "get", func(view TransactionView) error {
		out, ok = coll(view).Get(id)
		return nil
	}); err != nil {
		return out, err
	}
	if !ok {
		return out, domain.NotFoundError{Entity: entity, ID: id}
	}
	return out, nil
}

// SetActiveUser signs user in, or signs the current user out when user is nil.
func (s *Service) SetActiveUser(ctx context.Context, user *domain.User) (Result, error) {
	id := ""
	if user != nil {
		id = user.ID
	}
	return s.run(ctx, operation{"set_active_user", domain.EntityActiveUser, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		tx.SetActiveUser(user)
		return id, nil
	})
}

// ActiveUser returns the signed-in user.
func (s *Service) ActiveUser(ctx context.Context) (domain.User, bool, error) {
	var (
		user domain.User
		ok   bool
	)
	err := s.view(ctx, "active_user", func(view TransactionView) error {
		user, ok = view.ActiveUser()
		return nil
	})
	return user, ok, err
}
