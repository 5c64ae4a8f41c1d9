// Package events converts committed changes into change events and fans
// them out to subscribers or message brokers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"restaurantcore/pkg/domain"
)

// Event is the broker-facing form of one committed change.
type Event struct {
	ID         string            `json:"id"`
	Operation  string            `json:"operation"`
	Entity     domain.EntityType `json:"entity"`
	Action     domain.Action     `json:"action"`
	EntityID   string            `json:"entity_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Payload    json.RawMessage   `json:"payload,omitempty"`
}

// RoutingKey returns "<entity>.<action>", used as topic routing key.
func (e Event) RoutingKey() string {
	return string(e.Entity) + "." + string(e.Action)
}

// Publisher delivers events after a transaction commits.
type Publisher interface {
	Publish(ctx context.Context, events []Event) error
	Close() error
}

// FromChanges builds one event per change. The payload is the record after
// the change, or the deleted record for deletes.
func FromChanges(operation string, changes []domain.Change, at time.Time) ([]Event, error) {
	out := make([]Event, 0, len(changes))
	for _, change := range changes {
		body := change.After
		if body == nil {
			body = change.Before
		}
		var payload json.RawMessage
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("encode %s %s payload: %w", change.Entity, change.EntityID, err)
			}
			payload = data
		}
		out = append(out, Event{
			ID:         cuid.New(),
			Operation:  operation,
			Entity:     change.Entity,
			Action:     change.Action,
			EntityID:   change.EntityID,
			OccurredAt: at,
			Payload:    payload,
		})
	}
	return out, nil
}

// Handler receives events published on a Bus.
type Handler func(Event)

// Bus is an in-process Publisher that calls every subscriber synchronously.
type Bus struct {
	mu       sync.RWMutex
	handlers []Handler
	closed   bool
}

// NewBus constructs an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for every subsequently published event.
func (b *Bus) Subscribe(h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers = append(b.handlers, h)
}

// Publish delivers events in order to every subscriber.
func (b *Bus) Publish(ctx context.Context, events []Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return fmt.Errorf("event bus closed")
	}
	for _, e := range events {
		if err := ctx.Err(); err != nil {
			return err
		}
		for _, h := range b.handlers {
			h(e)
		}
	}
	return nil
}

// Close stops delivery; later publishes fail.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
	return nil
}

// Recorder is a Bus subscriber that keeps every event it sees.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Handle appends e; pass it to Bus.Subscribe.
func (r *Recorder) Handle(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
