package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

func TestCalculateRecipeCostAppendsSnapshots(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	recipe := must[domain.Recipe](t)(f.svc.CreateRecipe(ctx, domain.Recipe{
		Name: "Burger", MenuItemID: f.burger.ID, Servings: 1,
		Ingredients: []domain.RecipeIngredient{{InventoryItemID: f.flour.ID, Quantity: 500, Unit: "g"}},
	}))

	first := must[domain.RecipeCostCalculation](t)(f.svc.CalculateRecipeCost(ctx, recipe.ID))
	if first.IngredientCost != 1 || first.LaborCost != analytics.DefaultLaborCost || first.OverheadCost != 0.15 {
		t.Fatalf("unexpected cost components: %+v", first)
	}
	if first.TotalCost != 3.65 || first.CostPerServing != 3.65 || first.ProfitMargin != 8.85 {
		t.Fatalf("unexpected totals: total=%v per=%v margin=%v", first.TotalCost, first.CostPerServing, first.ProfitMargin)
	}
	repeat := must[domain.RecipeCostCalculation](t)(f.svc.CalculateRecipeCost(ctx, recipe.ID))
	if repeat.ID == first.ID || repeat.TotalCost != first.TotalCost {
		t.Fatalf("expected a new record with identical figures, got %+v", repeat)
	}

	must[domain.InventoryItem](t)(f.svc.UpdateInventoryItem(ctx, f.flour.ID, func(i *domain.InventoryItem) error {
		i.CostPerUnit = 4
		return nil
	}))
	later := must[domain.RecipeCostCalculation](t)(f.svc.CalculateRecipeCost(ctx, recipe.ID))
	if later.IngredientCost != 2 {
		t.Fatalf("expected new ingredient cost of 2, got %v", later.IngredientCost)
	}
	stored, err := Get(ctx, f.svc, domain.EntityRecipeCost, TransactionView.RecipeCosts, first.ID)
	if err != nil {
		t.Fatalf("get first calculation: %v", err)
	}
	if stored.IngredientCost != 1 || stored.Ingredients[0].CostPerUnit != 2 {
		t.Fatalf("earlier calculation changed: %+v", stored)
	}
	if costs := listOf(t, f.svc, TransactionView.RecipeCosts); len(costs) != 3 {
		t.Fatalf("expected 3 calculations, got %d", len(costs))
	}
}

func TestCalculateRecipeCostCustomPolicy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, WithCostingPolicy(analytics.CostingPolicy{LaborCost: 1, OverheadRate: 0.5}))
	recipe := must[domain.Recipe](t)(f.svc.CreateRecipe(ctx, domain.Recipe{
		Name: "Bread", MenuItemID: f.burger.ID, Servings: 4,
		Ingredients: []domain.RecipeIngredient{{InventoryItemID: f.flour.ID, Quantity: 2, Unit: "kg"}},
	}))
	calc := must[domain.RecipeCostCalculation](t)(f.svc.CalculateRecipeCost(ctx, recipe.ID))
	if calc.TotalCost != 7 || calc.CostPerServing != 1.75 {
		t.Fatalf("expected total 7 and 1.75 per serving, got %v and %v", calc.TotalCost, calc.CostPerServing)
	}
}

func TestCalculateRecipeCostNotFound(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	orphan := must[domain.Recipe](t)(f.svc.CreateRecipe(ctx, domain.Recipe{Name: "Orphan", MenuItemID: "gone"}))
	missingIngredient := must[domain.Recipe](t)(f.svc.CreateRecipe(ctx, domain.Recipe{
		Name: "Broken", MenuItemID: f.burger.ID,
		Ingredients: []domain.RecipeIngredient{{InventoryItemID: "gone", Quantity: 1}},
	}))

	cases := map[string]struct {
		id     string
		entity domain.EntityType
	}{
		"recipe":     {"missing", domain.EntityRecipe},
		"menu item":  {orphan.ID, domain.EntityMenuItem},
		"ingredient": {missingIngredient.ID, domain.EntityInventoryItem},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.svc.CalculateRecipeCost(ctx, tc.id)
			var nf domain.NotFoundError
			if !errors.As(err, &nf) || nf.Entity != tc.entity {
				t.Fatalf("expected %s not found, got %v", tc.entity, err)
			}
		})
	}
	if costs := listOf(t, f.svc, TransactionView.RecipeCosts); len(costs) != 0 {
		t.Fatalf("failed calculations must not be stored, got %d", len(costs))
	}
}

func TestGenerateFinancialReportWindow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	start := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	place := func(at time.Time) domain.Order {
		return must[domain.Order](t)(f.svc.PlaceOrder(ctx, domain.Order{
			OrderTime: at,
			Items:     []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: 1}},
		}))
	}
	place(start)
	place(end)
	place(start.Add(-time.Nanosecond))
	cancelled := place(start.Add(time.Hour))
	f.advanceTo(t, cancelled.ID, domain.OrderCancelled)
	must[domain.Expense](t)(f.svc.CreateExpense(ctx, domain.Expense{Category: "supplies", Amount: 5, Date: start.Add(24 * time.Hour)}))
	must[domain.Expense](t)(f.svc.CreateExpense(ctx, domain.Expense{Category: "supplies", Amount: 50, Date: end}))

	report := must[domain.FinancialReport](t)(f.svc.GenerateFinancialReport(ctx, domain.PeriodMonthly, start, end))
	if report.OrderCount != 1 || report.Revenue != 12.5 {
		t.Fatalf("expected one order of 12.5, got %d orders %v revenue", report.OrderCount, report.Revenue)
	}
	if report.TotalExpenses != 5 || report.NetProfit != 7.5 || report.ProfitMargin != 60 {
		t.Fatalf("unexpected profit figures: %+v", report)
	}
	if report.RevenueByType[domain.OrderTakeout] != 12.5 || len(report.TopItems) != 1 {
		t.Fatalf("unexpected breakdowns: %+v %+v", report.RevenueByType, report.TopItems)
	}
	if !report.GeneratedAt.Equal(testNow) {
		t.Fatalf("expected generation time %v, got %v", testNow, report.GeneratedAt)
	}

	if _, _, err := f.svc.GenerateFinancialReport(ctx, domain.PeriodCustom, end, start); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected invalid window, got %v", err)
	}
	if reports := listOf(t, f.svc, TransactionView.FinancialReports); len(reports) != 1 {
		t.Fatalf("expected one stored report, got %d", len(reports))
	}
}

func TestReportsAreAppendOnly(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	report := must[domain.FinancialReport](t)(f.svc.GenerateFinancialReport(ctx, domain.PeriodDaily, testNow.Add(-24*time.Hour), testNow))

	_, err := f.svc.Store().RunInTransaction(ctx, func(tx Transaction) error {
		_, err := tx.FinancialReports().Update(report.ID, func(r *domain.FinancialReport) error {
			r.Revenue = 1000
			return nil
		})
		return err
	})
	var blocked domain.RuleViolationError
	if !errors.As(err, &blocked) || blocked.Result.Violations[0].Rule != appendOnlyHistoryRule {
		t.Fatalf("expected append_only_history violation, got %v", err)
	}
	stored, _ := Get(ctx, f.svc, domain.EntityFinancialReport, TransactionView.FinancialReports, report.ID)
	if stored.Revenue != 0 {
		t.Fatalf("blocked update leaked: %v", stored.Revenue)
	}
	if _, err := f.svc.DeleteFinancialReport(ctx, report.ID); err != nil {
		t.Fatalf("reports may be deleted: %v", err)
	}
}

func TestGenerateMultiLocationReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	downtown := must[domain.Location](t)(f.svc.CreateLocation(ctx, domain.Location{Name: "Downtown", Active: true}))
	harbor := must[domain.Location](t)(f.svc.CreateLocation(ctx, domain.Location{Name: "Harbor", Active: true}))
	for qty, loc := range map[int]string{1: downtown.ID, 3: harbor.ID} {
		must[domain.Order](t)(f.svc.PlaceOrder(ctx, domain.Order{
			LocationID: loc,
			Items:      []domain.OrderItem{{MenuItemID: f.burger.ID, Quantity: qty}},
		}))
	}

	report := must[domain.MultiLocationReport](t)(f.svc.GenerateMultiLocationReport(ctx, domain.PeriodDaily, testNow.Add(-time.Hour), testNow.Add(time.Hour)))
	if len(report.Locations) != 2 || report.BestPerforming != harbor.ID || report.WorstPerforming != downtown.ID {
		t.Fatalf("unexpected ranking: %+v", report)
	}
	if report.Locations[0].Rank != 1 || report.Locations[0].Revenue != 37.5 || report.TotalRevenue != 50 {
		t.Fatalf("unexpected figures: %+v", report.Locations)
	}
}
