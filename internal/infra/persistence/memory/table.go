package memory

import (
	"fmt"

	"restaurantcore/pkg/domain"
)

// record is satisfied by pointers to entities embedding domain.Base.
type record[T any] interface {
	*T
	Meta() *domain.Base
}

// table is an insertion-ordered keyed collection. Values are cloned on the
// way in and on the way out so callers never alias stored records.
type table[T any, P record[T]] struct {
	entity domain.EntityType
	order  []string
	rows   map[string]T
	copyFn func(T) T
}

func newTable[T any, P record[T]](entity domain.EntityType, copyFn func(T) T) *table[T, P] {
	return &table[T, P]{
		entity: entity,
		rows:   make(map[string]T),
		copyFn: copyFn,
	}
}

func (t *table[T, P]) clone() *table[T, P] {
	out := &table[T, P]{
		entity: t.entity,
		order:  append([]string(nil), t.order...),
		rows:   make(map[string]T, len(t.rows)),
		copyFn: t.copyFn,
	}
	for id, v := range t.rows {
		out.rows[id] = t.copyFn(v)
	}
	return out
}

// Get returns a copy of the record stored under id.
func (t *table[T, P]) Get(id string) (T, bool) {
	v, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, false
	}
	return t.copyFn(v), true
}

// List returns copies of every record in insertion order.
func (t *table[T, P]) List() []T {
	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		out = append(out, t.copyFn(t.rows[id]))
	}
	return out
}

// Len returns the number of stored records.
func (t *table[T, P]) Len() int { return len(t.order) }

func (t *table[T, P]) put(v T) {
	id := P(&v).Meta().ID
	if _, exists := t.rows[id]; !exists {
		t.order = append(t.order, id)
	}
	t.rows[id] = t.copyFn(v)
}

func (t *table[T, P]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, existing := range t.order {
		if existing == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// load replaces the contents with values, keeping their order. Duplicate ids
// keep the last value at the position of the first.
func (t *table[T, P]) load(values []T) {
	t.order = nil
	t.rows = make(map[string]T, len(values))
	for _, v := range values {
		if P(&v).Meta().ID == "" {
			continue
		}
		t.put(v)
	}
}

func (t *table[T, P]) notFound(id string) error {
	return domain.NotFoundError{Entity: t.entity, ID: id}
}

// txTable binds a table to a transaction so writes stamp metadata and record changes.
type txTable[T any, P record[T]] struct {
	*table[T, P]
	tx *transaction
}

func (c txTable[T, P]) Create(v T) (T, error) {
	meta := P(&v).Meta()
	if meta.ID == "" {
		meta.ID = c.tx.store.newID()
	}
	if _, exists := c.rows[meta.ID]; exists {
		var zero T
		return zero, fmt.Errorf("%s %q: %w", c.entity, meta.ID, domain.ErrAlreadyExists)
	}
	meta.CreatedAt = c.tx.now
	meta.UpdatedAt = c.tx.now
	meta.Revision = 1
	c.put(v)
	c.tx.recordChange(domain.Change{Entity: c.entity, Action: domain.ActionCreate, EntityID: meta.ID, After: c.copyFn(v)})
	return c.copyFn(v), nil
}

func (c txTable[T, P]) Update(id string, mutator func(*T) error) (T, error) {
	current, ok := c.rows[id]
	if !ok {
		var zero T
		return zero, c.notFound(id)
	}
	before := c.copyFn(current)
	next := c.copyFn(current)
	if err := mutator(&next); err != nil {
		var zero T
		return zero, err
	}
	prev := P(&before).Meta()
	meta := P(&next).Meta()
	meta.ID = id
	meta.CreatedAt = prev.CreatedAt
	meta.UpdatedAt = c.tx.now
	meta.Revision = prev.Revision + 1
	c.put(next)
	c.tx.recordChange(domain.Change{Entity: c.entity, Action: domain.ActionUpdate, EntityID: id, Before: before, After: c.copyFn(next)})
	return c.copyFn(next), nil
}

func (c txTable[T, P]) Upsert(v T) (T, error) {
	meta := P(&v).Meta()
	current, ok := c.rows[meta.ID]
	if meta.ID == "" || !ok {
		return c.Create(v)
	}
	prev := P(&current).Meta()
	if meta.Revision != prev.Revision {
		var zero T
		return zero, domain.StaleRevisionError{Entity: c.entity, ID: meta.ID, Expected: prev.Revision, Actual: meta.Revision}
	}
	before := c.copyFn(current)
	meta.CreatedAt = prev.CreatedAt
	meta.UpdatedAt = c.tx.now
	meta.Revision = prev.Revision + 1
	c.put(v)
	c.tx.recordChange(domain.Change{Entity: c.entity, Action: domain.ActionUpdate, EntityID: meta.ID, Before: before, After: c.copyFn(v)})
	return c.copyFn(v), nil
}

func (c txTable[T, P]) Delete(id string) error {
	current, ok := c.rows[id]
	if !ok {
		return c.notFound(id)
	}
	c.remove(id)
	c.tx.recordChange(domain.Change{Entity: c.entity, Action: domain.ActionDelete, EntityID: id, Before: c.copyFn(current)})
	return nil
}

// clear removes every record, recording a delete for each.
func (c txTable[T, P]) clear() {
	for _, id := range append([]string(nil), c.order...) {
		_ = c.Delete(id)
	}
}
