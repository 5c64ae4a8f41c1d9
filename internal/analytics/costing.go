package analytics

import (
	"fmt"
	"time"

	"restaurantcore/pkg/domain"
)

// Costing defaults applied when no policy is configured.
const (
	DefaultLaborCost    = 2.50
	DefaultOverheadRate = 0.15
)

// CostingPolicy holds the constants added on top of ingredient cost. Labor is
// a fixed amount per recipe; overhead is a fraction of ingredient cost.
type CostingPolicy struct {
	LaborCost    float64 `mapstructure:"labor_cost"`
	OverheadRate float64 `mapstructure:"overhead_rate"`
}

// DefaultCostingPolicy returns the standard labor and overhead constants.
func DefaultCostingPolicy() CostingPolicy {
	return CostingPolicy{LaborCost: DefaultLaborCost, OverheadRate: DefaultOverheadRate}
}

// CostRecipe prices recipe from the current inventory costs and the linked
// menu item's price. A missing inventory item is reported as not found.
func CostRecipe(recipe domain.Recipe, menu domain.MenuItem, inventory map[string]domain.InventoryItem, policy CostingPolicy, now time.Time) (domain.RecipeCostCalculation, error) {
	calc := domain.RecipeCostCalculation{
		RecipeID:     recipe.ID,
		MenuItemID:   menu.ID,
		LaborCost:    round2(policy.LaborCost),
		OverheadRate: policy.OverheadRate,
		Servings:     recipe.Servings,
		SellingPrice: menu.Price,
		CalculatedAt: now,
	}
	var ingredientTotal float64
	for _, ing := range recipe.Ingredients {
		item, ok := inventory[ing.InventoryItemID]
		if !ok {
			return domain.RecipeCostCalculation{}, domain.NotFoundError{Entity: domain.EntityInventoryItem, ID: ing.InventoryItemID}
		}
		qty := ing.Quantity
		if ing.Unit != "" && item.Unit != "" {
			converted, err := domain.ConvertQuantity(ing.Quantity, ing.Unit, item.Unit)
			if err != nil {
				return domain.RecipeCostCalculation{}, fmt.Errorf("recipe %s ingredient %s: %w", recipe.ID, item.Name, err)
			}
			qty = converted
		}
		cost := qty * item.CostPerUnit
		ingredientTotal += cost
		calc.Ingredients = append(calc.Ingredients, domain.IngredientCost{
			InventoryItemID: item.ID,
			Name:            item.Name,
			Quantity:        qty,
			Unit:            item.Unit,
			CostPerUnit:     item.CostPerUnit,
			Cost:            round2(cost),
		})
	}
	calc.IngredientCost = round2(ingredientTotal)
	calc.OverheadCost = round2(ingredientTotal * policy.OverheadRate)
	calc.TotalCost = round2(calc.IngredientCost + calc.LaborCost + calc.OverheadCost)

	servings := recipe.Servings
	if servings <= 0 {
		servings = 1
	}
	calc.CostPerServing = round2(calc.TotalCost / float64(servings))
	calc.ProfitMargin = round2(calc.SellingPrice - calc.CostPerServing)
	if calc.SellingPrice > 0 {
		calc.ProfitPercentage = round2(calc.ProfitMargin / calc.SellingPrice * 100)
	}
	return calc, nil
}
