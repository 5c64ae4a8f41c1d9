package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"restaurantcore/pkg/domain"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	clock := ClockFunc(func() time.Time { return testNow })
	return NewInMemoryService(NewDefaultRulesEngine(), append([]Option{WithClock(clock)}, opts...)...)
}

// must unwraps an operation result, failing the test on error:
//
//	table := must[domain.Table](t)(svc.CreateTable(ctx, domain.Table{Number: 1}))
func must[T any](t *testing.T) func(T, Result, error) T {
	t.Helper()
	return func(v T, _ Result, err error) T {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return v
	}
}

type fixture struct {
	svc    *Service
	burger domain.MenuItem
	flour  domain.InventoryItem
	table  domain.Table
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	ctx := context.Background()
	svc := newTestService(t, opts...)
	return fixture{
		svc:    svc,
		burger: must[domain.MenuItem](t)(svc.CreateMenuItem(ctx, domain.MenuItem{
			Name: "Burger", Category: "mains", Price: 12.5, Available: true,
		})),
		flour: must[domain.InventoryItem](t)(svc.CreateInventoryItem(ctx, domain.InventoryItem{
			Name: "Flour", Category: "dry", CurrentStock: 50, MinStock: 10, MaxStock: 200, Unit: "kg", CostPerUnit: 2,
		})),
		table: must[domain.Table](t)(svc.CreateTable(ctx, domain.Table{Number: 1, Capacity: 4, LocationID: "loc-1"})),
	}
}

func (f fixture) placeAtTable(t *testing.T, qty int) domain.Order {
	t.Helper()
	return must[domain.Order](t)(f.svc.PlaceOrder(context.Background(), domain.Order{
		TableID: &f.table.ID,
		Items:   []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: qty}},
	}))
}

func (f fixture) advanceTo(t *testing.T, id string, statuses ...domain.OrderStatus) domain.Order {
	t.Helper()
	var o domain.Order
	for _, status := range statuses {
		o = must[domain.Order](t)(f.svc.TransitionOrder(context.Background(), id, status))
	}
	return o
}

func listOf[T any](t *testing.T, svc *Service, coll func(TransactionView) domain.Reader[T]) []T {
	t.Helper()
	out, err := List(context.Background(), svc, coll)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	return out
}
