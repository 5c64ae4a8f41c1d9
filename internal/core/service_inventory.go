package core

import (
	"context"
	"fmt"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

// AdjustStock adds delta to an item's current stock. Negative results are
// kept; the item then classifies as critical and the negative_stock rule
// returns a warning.
func (s *Service) AdjustStock(ctx context.Context, itemID string, delta float64) (domain.InventoryItem, Result, error) {
	var adjusted domain.InventoryItem
	res, err := s.run(ctx, operation{"adjust_stock", domain.EntityInventoryItem, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		var err error
		adjusted, err = adjustStock(tx, itemID, delta, nil)
		return itemID, err
	})
	return adjusted, res, err
}

// adjustStock applies delta and the optional extra mutation, and raises a
// low_stock notification when the item crosses into a reorder level.
func adjustStock(tx Transaction, id string, delta float64, extra func(*domain.InventoryItem)) (domain.InventoryItem, error) {
	before, ok := tx.Inventory().Get(id)
	if !ok {
		return domain.InventoryItem{}, domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: id}
	}
	after, err := tx.Inventory().Update(id, func(item *domain.InventoryItem) error {
		item.CurrentStock = domain.AddQuantity(item.CurrentStock, delta)
		if extra != nil {
			extra(item)
		}
		return nil
	})
	if err != nil {
		return domain.InventoryItem{}, err
	}
	if analytics.CrossedIntoReorder(before, after) {
		level := after.StockLevel()
		msg := fmt.Sprintf("%s is %s: %g %s on hand, minimum %g", after.Name, level, after.CurrentStock, after.Unit, after.MinStock)
		if err := notify(tx, domain.NotifyLowStock, domain.EntityInventoryItem, id, "Low stock", msg); err != nil {
			return domain.InventoryItem{}, err
		}
	}
	return after, nil
}

// ReceivePurchaseOrder books every line of an open purchase order into stock,
// updating cost per unit and restock time, and marks the order received.
func (s *Service) ReceivePurchaseOrder(ctx context.Context, id string) (domain.PurchaseOrder, Result, error) {
	var received domain.PurchaseOrder
	res, err := s.run(ctx, operation{"receive_purchase_order", domain.EntityPurchaseOrder, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		po, ok := tx.PurchaseOrders().Get(id)
		if !ok {
			return id, domain.NotFoundError{Entity: domain.EntityPurchaseOrder, ID: id}
		}
		if po.Status == domain.PurchaseReceived || po.Status == domain.PurchaseCancelled {
			return id, fmt.Errorf("%w: purchase order %s is %s", domain.ErrInvalidTransition, id, po.Status)
		}
		now := tx.Now()
		for _, line := range po.Lines {
			unitCost := line.UnitCost
			if _, err := adjustStock(tx, line.InventoryItemID, line.Quantity, func(item *domain.InventoryItem) {
				if unitCost > 0 {
					item.CostPerUnit = unitCost
				}
				item.LastRestocked = ptr(now)
			}); err != nil {
				return id, err
			}
		}
		var err error
		received, err = tx.PurchaseOrders().Update(id, func(p *domain.PurchaseOrder) error {
			p.Status = domain.PurchaseReceived
			p.ReceivedAt = ptr(now)
			return nil
		})
		return id, err
	})
	return received, res, err
}

// RecordWaste logs spoiled or lost stock, costs it at the item's current cost
// and subtracts it from stock. The quantity may be given in any unit of the
// item's family.
func (s *Service) RecordWaste(ctx context.Context, waste domain.WasteRecord) (domain.WasteRecord, Result, error) {
	var recorded domain.WasteRecord
	res, err := s.run(ctx, operation{"record_waste", domain.EntityWasteRecord, domain.ActionCreate}, func(tx Transaction) (string, error) {
		if waste.Quantity <= 0 {
			return "", fmt.Errorf("%w: waste quantity must be positive", domain.ErrInvalidInput)
		}
		item, ok := tx.Inventory().Get(waste.InventoryItemID)
		if !ok {
			return "", domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: waste.InventoryItemID}
		}
		if waste.Unit == "" {
			waste.Unit = item.Unit
		}
		qty, err := domain.ConvertQuantity(waste.Quantity, waste.Unit, item.Unit)
		if err != nil {
			return "", fmt.Errorf("waste of %s: %w", item.Name, err)
		}
		waste.Cost = roundCents(qty * item.CostPerUnit)
		if waste.RecordedAt.IsZero() {
			waste.RecordedAt = tx.Now()
		}
		if waste.RecordedBy == "" {
			if user, ok := tx.Snapshot().ActiveUser(); ok {
				waste.RecordedBy = user.ID
			}
		}
		recorded, err = tx.WasteRecords().Create(waste)
		if err != nil {
			return "", err
		}
		_, err = adjustStock(tx, item.ID, -qty, nil)
		return recorded.ID, err
	})
	return recorded, res, err
}

// StockReport is the derived stock view of the whole inventory.
type StockReport struct {
	Items      []analytics.StockStatus `json:"items"`
	Reorder    []analytics.StockStatus `json:"reorder"`
	TotalValue float64                 `json:"total_value"`
}

// StockReport classifies every inventory item at read time.
func (s *Service) StockReport(ctx context.Context) (StockReport, error) {
	var report StockReport
	err := s.view(ctx, "stock_report", func(view TransactionView) error {
		items := view.Inventory().List()
		report = StockReport{
			Items:      analytics.ClassifyInventory(items),
			Reorder:    analytics.ReorderList(items),
			TotalValue: analytics.InventoryValue(items),
		}
		return nil
	})
	return report, err
}
