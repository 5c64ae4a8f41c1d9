package domain

import "math"

// StockLevel classifies an inventory item's current stock.
type StockLevel string

// Stock classifications, ordered from most to least urgent.
const (
	StockCritical StockLevel = "critical"
	StockLow      StockLevel = "low"
	StockNormal   StockLevel = "normal"
	StockHigh     StockLevel = "high"
)

const (
	lowStockFactor  = 1.5
	highStockFactor = 0.9
)

// ClassifyStock derives the stock level from current, minimum and maximum stock.
// It is recomputed on every read and never stored.
func ClassifyStock(current, minStock, maxStock float64) StockLevel {
	switch {
	case current <= minStock:
		return StockCritical
	case current <= minStock*lowStockFactor:
		return StockLow
	case current >= maxStock*highStockFactor:
		return StockHigh
	default:
		return StockNormal
	}
}

// StockLevel classifies the item's current stock.
func (i InventoryItem) StockLevel() StockLevel {
	return ClassifyStock(i.CurrentStock, i.MinStock, i.MaxStock)
}

// NeedsReorder reports whether the item is low or critical.
func (l StockLevel) NeedsReorder() bool {
	return l == StockCritical || l == StockLow
}

// InventoryValue returns the stock value at the current cost per unit. Negative
// stock contributes nothing.
func (i InventoryItem) InventoryValue() float64 {
	if i.CurrentStock <= 0 {
		return 0
	}
	return roundCents(i.CurrentStock * i.CostPerUnit)
}

// quantityScale is the number of stock units per whole unit of measure.
const quantityScale = 1e4

// RoundQuantity rounds a stock quantity to four decimals.
func RoundQuantity(v float64) float64 {
	return math.Round(v*quantityScale) / quantityScale
}

// AddQuantity adds delta to stock in whole ten-thousandths. Both operands are
// rounded before the sum, so a sequence of deltas gives the same stock in any
// order.
func AddQuantity(stock, delta float64) float64 {
	return (math.Round(stock*quantityScale) + math.Round(delta*quantityScale)) / quantityScale
}
