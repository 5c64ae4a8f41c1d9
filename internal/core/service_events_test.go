package core

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"restaurantcore/internal/events"
	"restaurantcore/pkg/domain"
)

func TestCommittedChangesArePublished(t *testing.T) {
	ctx := context.Background()
	bus := events.NewBus()
	rec := &events.Recorder{}
	bus.Subscribe(rec.Handle)
	f := newFixture(t, WithPublisher(bus))

	order := f.placeAtTable(t, 2)
	if _, _, err := f.svc.TransitionOrder(ctx, order.ID, domain.OrderReady); err == nil {
		t.Fatalf("expected invalid transition")
	}

	got := rec.Events()
	// menu item, inventory item and table fixtures, then the order and its table.
	if len(got) != 5 {
		t.Fatalf("expected 5 events, got %d", len(got))
	}
	placed := got[3]
	if placed.RoutingKey() != "order.create" || placed.Operation != "place_order" || placed.EntityID != order.ID {
		t.Fatalf("unexpected order event: %+v", placed)
	}
	if !placed.OccurredAt.Equal(testNow) {
		t.Fatalf("expected event time %v, got %v", testNow, placed.OccurredAt)
	}
	var payload domain.Order
	if err := json.Unmarshal(placed.Payload, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Total != 25 {
		t.Fatalf("expected payload total 25, got %v", payload.Total)
	}
	if got[4].RoutingKey() != "table.update" {
		t.Fatalf("expected table update event, got %s", got[4].RoutingKey())
	}

	if err := f.svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

type failingPublisher struct{ calls int }

func (p *failingPublisher) Publish(context.Context, []events.Event) error {
	p.calls++
	return errors.New("broker down")
}

func (p *failingPublisher) Close() error { return nil }

func TestPublishFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	pub := &failingPublisher{}
	logger := &captureLogger{}
	svc := newTestService(t, WithPublisher(pub), WithLogger(logger))

	if _, _, err := svc.CreateTable(ctx, domain.Table{Number: 1, Capacity: 2}); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if pub.calls != 1 {
		t.Fatalf("expected one publish attempt, got %d", pub.calls)
	}
	if got := logger.find("error", "publish change events"); len(got) != 1 {
		t.Fatalf("expected publish failure to be logged, got %d", len(got))
	}
	if tables := listOf(t, svc, TransactionView.Tables); len(tables) != 1 {
		t.Fatalf("committed table missing after publish failure")
	}
}
