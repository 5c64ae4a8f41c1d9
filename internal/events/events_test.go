package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"restaurantcore/pkg/domain"
)

func TestFromChanges(t *testing.T) {
	at := time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	item := domain.InventoryItem{Base: domain.Base{ID: "i1"}, Name: "Flour", CurrentStock: 3}
	changes := []domain.Change{
		{Entity: domain.EntityInventoryItem, Action: domain.ActionUpdate, EntityID: "i1", Before: item, After: item},
		{Entity: domain.EntityTable, Action: domain.ActionDelete, EntityID: "t1", Before: domain.Table{Base: domain.Base{ID: "t1"}, Number: 4}},
		{Entity: domain.EntityActiveUser, Action: domain.ActionDelete, EntityID: "u1"},
	}
	evts, err := FromChanges("adjust_stock", changes, at)
	if err != nil {
		t.Fatalf("from changes: %v", err)
	}
	if len(evts) != 3 {
		t.Fatalf("expected 3 events, got %d", len(evts))
	}
	if evts[0].RoutingKey() != "inventory_item.update" || evts[0].Operation != "adjust_stock" || !evts[0].OccurredAt.Equal(at) {
		t.Fatalf("unexpected event metadata: %+v", evts[0])
	}
	var decoded domain.InventoryItem
	if err := json.Unmarshal(evts[0].Payload, &decoded); err != nil || decoded.Name != "Flour" {
		t.Fatalf("expected inventory payload, got %s (%v)", evts[0].Payload, err)
	}
	var table domain.Table
	if err := json.Unmarshal(evts[1].Payload, &table); err != nil || table.Number != 4 {
		t.Fatalf("delete events carry the removed record, got %s", evts[1].Payload)
	}
	if evts[2].Payload != nil {
		t.Fatalf("expected empty payload without record")
	}
	if evts[0].ID == "" || evts[0].ID == evts[1].ID {
		t.Fatalf("expected unique event ids")
	}
}

func TestBusDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	rec := &Recorder{}
	bus.Subscribe(rec.Handle)
	evts := []Event{{ID: "1", Entity: domain.EntityOrder}, {ID: "2", Entity: domain.EntityOrder}}
	if err := bus.Publish(context.Background(), evts); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if got := rec.Events(); len(got) != 2 || got[1].ID != "2" {
		t.Fatalf("unexpected recorded events: %+v", got)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := bus.Publish(ctx, evts); err == nil {
		t.Fatalf("expected cancelled context to stop delivery")
	}
	_ = bus.Close()
	if err := bus.Publish(context.Background(), evts); err == nil {
		t.Fatalf("expected closed bus to reject publish")
	}
}
