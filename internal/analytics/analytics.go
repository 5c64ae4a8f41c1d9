// Package analytics holds the derived computations of restaurantcore. Every
// function here is pure: it reads values taken from a snapshot and returns a
// new value without touching its inputs.
package analytics

import (
	"math"
	"time"

	"restaurantcore/pkg/domain"
)

// Window is the half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Valid reports whether the window has a positive length.
func (w Window) Valid() bool {
	return w.End.After(w.Start)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// countsAsRevenue reports whether an order contributes to revenue figures.
func countsAsRevenue(o domain.Order, w Window) bool {
	return o.Status != domain.OrderCancelled && w.Contains(o.OrderTime)
}

// IndexInventory keys inventory items by id.
func IndexInventory(items []domain.InventoryItem) map[string]domain.InventoryItem {
	out := make(map[string]domain.InventoryItem, len(items))
	for _, item := range items {
		out[item.ID] = item
	}
	return out
}

// IndexOrders keys orders by id.
func IndexOrders(orders []domain.Order) map[string]domain.Order {
	out := make(map[string]domain.Order, len(orders))
	for _, o := range orders {
		out[o.ID] = o
	}
	return out
}
