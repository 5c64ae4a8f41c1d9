package memory

import (
	"context"
	"testing"

	"restaurantcore/pkg/domain"
)

func TestDurableRoundTripKeepsSessionCollections(t *testing.T) {
	store := newTestStore(nil)
	ctx := context.Background()
	_, err := store.RunInTransaction(ctx, func(tx domain.Transaction) error {
		if _, err := tx.MenuItems().Create(domain.MenuItem{Name: "Soup"}); err != nil {
			return err
		}
		if _, err := tx.Orders().Create(domain.Order{Status: domain.OrderPending}); err != nil {
			return err
		}
		tx.SetActiveUser(&domain.User{ID: "u1", Name: "Sam"})
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	durable := store.ExportDurable()
	if len(durable.MenuItems) != 1 || durable.ActiveUser == nil || durable.ActiveUser.ID != "u1" {
		t.Fatalf("unexpected durable export %+v", durable)
	}

	fresh := newTestStore(nil)
	fresh.ImportDurable(durable)
	_ = fresh.View(ctx, func(v domain.TransactionView) error {
		if v.MenuItems().Len() != 1 {
			t.Fatalf("expected restored menu item")
		}
		if v.Orders().Len() != 0 {
			t.Fatalf("orders are session scoped and must not be restored")
		}
		if user, ok := v.ActiveUser(); !ok || user.Name != "Sam" {
			t.Fatalf("expected restored active user")
		}
		return nil
	})

	store.ImportDurable(domain.DurableState{})
	_ = store.View(ctx, func(v domain.TransactionView) error {
		if v.MenuItems().Len() != 0 {
			t.Fatalf("expected durable collections replaced")
		}
		if v.Orders().Len() != 1 {
			t.Fatalf("session collections must survive a durable import")
		}
		return nil
	})
}

func TestTouchesDurable(t *testing.T) {
	if domain.TouchesDurable([]domain.Change{{Entity: domain.EntityOrder}}) {
		t.Fatalf("orders are not durable")
	}
	if !domain.TouchesDurable([]domain.Change{{Entity: domain.EntityOrder}, {Entity: domain.EntityRecipe}}) {
		t.Fatalf("recipes are durable")
	}
}
