package buckets

import (
	"testing"

	"restaurantcore/pkg/domain"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := domain.DurableState{
		MenuItems:  []domain.MenuItem{{Base: domain.Base{ID: "m1"}, Name: "Pho", Price: 13.5}},
		Inventory:  []domain.InventoryItem{{Base: domain.Base{ID: "i1"}, Name: "Rice noodles", CurrentStock: 8, Unit: "kg"}},
		Tables:     []domain.Table{{Base: domain.Base{ID: "t1"}, Number: 3, Capacity: 4, Status: domain.TableAvailable}},
		ActiveUser: &domain.User{ID: "u1", Name: "Lee", Role: "server"},
	}
	payloads, err := Encode(state)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if len(payloads) != len(Names) {
		t.Fatalf("expected %d payloads, got %d", len(Names), len(payloads))
	}
	dec := NewDecoder()
	if !dec.Empty() {
		t.Fatalf("new decoder should be empty")
	}
	for _, p := range payloads {
		if err := dec.Add(p.Bucket, p.Data); err != nil {
			t.Fatalf("add %s: %v", p.Bucket, err)
		}
	}
	if err := dec.Add("orders", []byte(`[{"id":"o1"}]`)); err != nil {
		t.Fatalf("unknown buckets are ignored: %v", err)
	}
	got := dec.State()
	if len(got.MenuItems) != 1 || got.MenuItems[0].Name != "Pho" {
		t.Fatalf("menu items not restored: %+v", got.MenuItems)
	}
	if len(got.Inventory) != 1 || got.Inventory[0].CurrentStock != 8 {
		t.Fatalf("inventory not restored: %+v", got.Inventory)
	}
	if got.ActiveUser == nil || got.ActiveUser.Name != "Lee" {
		t.Fatalf("active user not restored")
	}
	if got.Recipes != nil {
		t.Fatalf("absent collections decode as null")
	}
}

func TestDecoderRejectsCorruptPayload(t *testing.T) {
	if err := NewDecoder().Add(Inventory, []byte("{not json")); err == nil {
		t.Fatalf("expected decode error")
	}
}
