package core

import (
	"context"
	"testing"

	"restaurantcore/pkg/domain"
)

func TestInitializeStoreReplacesState(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	if _, err := f.svc.InitializeStore(ctx); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	user, ok, err := f.svc.ActiveUser(ctx)
	if err != nil || !ok || user.ID == "" {
		t.Fatalf("expected seeded active user, got %+v %v %v", user, ok, err)
	}
	if _, err := Get(ctx, f.svc, domain.EntityMenuItem, TransactionView.MenuItems, f.burger.ID); !domain.IsNotFound(err) {
		t.Fatalf("initialize must replace existing records, got %v", err)
	}

	names := func() []string {
		var out []string
		for _, m := range listOf(t, f.svc, TransactionView.MenuItems) {
			out = append(out, m.Name)
		}
		return out
	}
	first := names()
	orders := len(listOf(t, f.svc, TransactionView.Orders))
	if len(first) == 0 || orders == 0 {
		t.Fatalf("expected seeded menu and orders")
	}

	if _, err := f.svc.SeedStore(ctx, 42); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	second := names()
	if len(second) != len(first) || len(listOf(t, f.svc, TransactionView.Orders)) != orders {
		t.Fatalf("reseeding must not accumulate records")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("seed is not deterministic at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestSetActiveUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	if _, ok, _ := svc.ActiveUser(ctx); ok {
		t.Fatalf("expected no active user")
	}
	if _, err := svc.SetActiveUser(ctx, &domain.User{ID: "u1", Name: "Pat", Role: "server"}); err != nil {
		t.Fatalf("set active user: %v", err)
	}
	user, ok, _ := svc.ActiveUser(ctx)
	if !ok || user.Name != "Pat" {
		t.Fatalf("unexpected active user %+v", user)
	}
	if _, err := svc.SetActiveUser(ctx, nil); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if _, ok, _ := svc.ActiveUser(ctx); ok {
		t.Fatalf("expected sign out to clear the user")
	}
}
