package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

const negativeStockRule = "negative_stock"

// NewNegativeStockRule warns when a write leaves an inventory item below zero.
// The write still commits.
func NewNegativeStockRule() domain.Rule {
	return negativeStock{}
}

type negativeStock struct{}

func (negativeStock) Name() string { return negativeStockRule }

func (negativeStock) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityInventoryItem {
			continue
		}
		item, ok := change.After.(domain.InventoryItem)
		if !ok || item.CurrentStock >= 0 {
			continue
		}
		res.Violations = append(res.Violations, violation(negativeStockRule, domain.SeverityWarn, domain.EntityInventoryItem, item.ID,
			fmt.Sprintf("%s stock is negative: %g %s", item.Name, item.CurrentStock, item.Unit)))
	}
	return res, nil
}
