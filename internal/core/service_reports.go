package core

import (
	"context"
	"fmt"
	"time"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

// CalculateRecipeCost prices a recipe against current inventory costs and
// appends the result. Earlier calculations are never modified. A missing
// recipe, menu item or ingredient is reported as not found.
func (s *Service) CalculateRecipeCost(ctx context.Context, recipeID string) (domain.RecipeCostCalculation, Result, error) {
	var calc domain.RecipeCostCalculation
	res, err := s.run(ctx, operation{"calculate_recipe_cost", domain.EntityRecipeCost, domain.ActionCreate}, func(tx Transaction) (string, error) {
		recipe, ok := tx.Recipes().Get(recipeID)
		if !ok {
			return "", domain.NotFoundError{Entity: domain.EntityRecipe, ID: recipeID}
		}
		menu, ok := tx.MenuItems().Get(recipe.MenuItemID)
		if !ok {
			return "", domain.NotFoundError{Entity: domain.EntityMenuItem, ID: recipe.MenuItemID}
		}
		costed, err := analytics.CostRecipe(recipe, menu, analytics.IndexInventory(tx.Inventory().List()), s.costing, tx.Now())
		if err != nil {
			return "", fmt.Errorf("recipe %s: %w", recipe.Name, err)
		}
		calc, err = tx.RecipeCosts().Create(costed)
		return calc.ID, err
	})
	return calc, res, err
}

func reportWindow(start, end time.Time) (analytics.Window, error) {
	w := analytics.Window{Start: start, End: end}
	if !w.Valid() {
		return w, fmt.Errorf("%w: report window %s to %s is empty", domain.ErrInvalidInput, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return w, nil
}

// GenerateFinancialReport aggregates orders and expenses over [start, end)
// and appends the report. Cancelled orders never count.
func (s *Service) GenerateFinancialReport(ctx context.Context, period domain.ReportPeriod, start, end time.Time) (domain.FinancialReport, Result, error) {
	var report domain.FinancialReport
	res, err := s.run(ctx, operation{"generate_financial_report", domain.EntityFinancialReport, domain.ActionCreate}, func(tx Transaction) (string, error) {
		w, err := reportWindow(start, end)
		if err != nil {
			return "", err
		}
		summary := analytics.FinancialSummary(period, w, tx.Orders().List(), tx.Expenses().List(), tx.Now())
		report, err = tx.FinancialReports().Create(summary)
		return report.ID, err
	})
	return report, res, err
}

// GenerateMultiLocationReport ranks every location by revenue over
// [start, end) and appends the report.
func (s *Service) GenerateMultiLocationReport(ctx context.Context, period domain.ReportPeriod, start, end time.Time) (domain.MultiLocationReport, Result, error) {
	var report domain.MultiLocationReport
	res, err := s.run(ctx, operation{"generate_multi_location_report", domain.EntityMultiLocationReport, domain.ActionCreate}, func(tx Transaction) (string, error) {
		w, err := reportWindow(start, end)
		if err != nil {
			return "", err
		}
		ranked := analytics.RankLocations(period, w, tx.Locations().List(), tx.Orders().List(), tx.Expenses().List(), tx.Now())
		report, err = tx.LocationReports().Create(ranked)
		return report.ID, err
	})
	return report, res, err
}
