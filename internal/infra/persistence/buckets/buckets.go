// Package buckets encodes the durable subset of the restaurant state as one
// JSON payload per collection. SQL and key-value backends store each payload
// under its bucket name.
package buckets

import (
	"encoding/json"
	"fmt"

	"restaurantcore/pkg/domain"
)

// Bucket names, in persistence order.
const (
	MenuItems    = "menu_items"
	Inventory    = "inventory"
	Tables       = "tables"
	Recipes      = "recipes"
	Reservations = "reservations"
	ActiveUser   = "active_user"
)

// Names lists every durable bucket.
var Names = []string{MenuItems, Inventory, Tables, Recipes, Reservations, ActiveUser}

func targets(state *domain.DurableState) map[string]any {
	return map[string]any{
		MenuItems:    &state.MenuItems,
		Inventory:    &state.Inventory,
		Tables:       &state.Tables,
		Recipes:      &state.Recipes,
		Reservations: &state.Reservations,
		ActiveUser:   &state.ActiveUser,
	}
}

// Payload is one encoded bucket.
type Payload struct {
	Bucket string
	Data   []byte
}

var entityBuckets = map[domain.EntityType]string{
	domain.EntityMenuItem:      MenuItems,
	domain.EntityInventoryItem: Inventory,
	domain.EntityTable:         Tables,
	domain.EntityRecipe:        Recipes,
	domain.EntityReservation:   Reservations,
	domain.EntityActiveUser:    ActiveUser,
}

// ForEntity returns the bucket holding records of entity.
func ForEntity(entity domain.EntityType) (string, bool) {
	name, ok := entityBuckets[entity]
	return name, ok
}

// Touched returns the buckets affected by changes, in Names order.
func Touched(changes []domain.Change) []string {
	hit := make(map[string]bool, len(Names))
	for _, c := range changes {
		if name, ok := entityBuckets[c.Entity]; ok {
			hit[name] = true
		}
	}
	var out []string
	for _, name := range Names {
		if hit[name] {
			out = append(out, name)
		}
	}
	return out
}

// Encode serializes the named buckets, or every bucket when none are named,
// in Names order.
func Encode(state domain.DurableState, names ...string) ([]Payload, error) {
	byName := targets(&state)
	want := Names
	if len(names) > 0 {
		want = names
	}
	out := make([]Payload, 0, len(want))
	for _, name := range want {
		target, ok := byName[name]
		if !ok {
			return nil, fmt.Errorf("encode: unknown bucket %q", name)
		}
		data, err := json.Marshal(target)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		out = append(out, Payload{Bucket: name, Data: data})
	}
	return out, nil
}

// Decoder accumulates bucket payloads into a DurableState. Unknown buckets
// and empty payloads are ignored.
type Decoder struct {
	state   domain.DurableState
	targets map[string]any
	seen    int
}

// NewDecoder returns an empty decoder.
func NewDecoder() *Decoder {
	d := &Decoder{}
	d.targets = targets(&d.state)
	return d
}

// Add decodes one bucket payload.
func (d *Decoder) Add(bucket string, payload []byte) error {
	target, ok := d.targets[bucket]
	if !ok || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, target); err != nil {
		return fmt.Errorf("decode %s: %w", bucket, err)
	}
	d.seen++
	return nil
}

// Empty reports whether no bucket has been decoded.
func (d *Decoder) Empty() bool { return d.seen == 0 }

// State returns the decoded durable state.
func (d *Decoder) State() domain.DurableState { return d.state }
