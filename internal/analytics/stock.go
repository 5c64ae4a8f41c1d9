package analytics

import "restaurantcore/pkg/domain"

// StockStatus pairs an inventory item with its derived classification.
type StockStatus struct {
	Item         domain.InventoryItem `json:"item"`
	Level        domain.StockLevel    `json:"level"`
	NeedsReorder bool                 `json:"needs_reorder"`
	Value        float64              `json:"value"`
}

// ClassifyInventory classifies every item, keeping input order.
func ClassifyInventory(items []domain.InventoryItem) []StockStatus {
	out := make([]StockStatus, 0, len(items))
	for _, item := range items {
		level := item.StockLevel()
		out = append(out, StockStatus{
			Item:         item,
			Level:        level,
			NeedsReorder: level.NeedsReorder(),
			Value:        item.InventoryValue(),
		})
	}
	return out
}

// ReorderList returns the statuses of items that are low or critical.
func ReorderList(items []domain.InventoryItem) []StockStatus {
	var out []StockStatus
	for _, s := range ClassifyInventory(items) {
		if s.NeedsReorder {
			out = append(out, s)
		}
	}
	return out
}

// InventoryValue sums the value of every item on hand.
func InventoryValue(items []domain.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.InventoryValue()
	}
	return round2(total)
}

// CrossedIntoReorder reports whether a stock change moved an item into a
// worse reorder level.
func CrossedIntoReorder(before, after domain.InventoryItem) bool {
	prev, next := before.StockLevel(), after.StockLevel()
	return next.NeedsReorder() && prev != next && prev != domain.StockCritical
}
