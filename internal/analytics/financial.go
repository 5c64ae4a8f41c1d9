package analytics

import (
	"sort"
	"time"

	"restaurantcore/pkg/domain"
)

// TopItemsLimit caps the best-seller list of a financial report.
const TopItemsLimit = 5

// FinancialSummary aggregates orders and expenses over w. Cancelled orders
// and records outside the window are ignored. Refunded orders count toward
// revenue and are reported again under Refunds so NetRevenue nets them out.
func FinancialSummary(period domain.ReportPeriod, w Window, orders []domain.Order, expenses []domain.Expense, now time.Time) domain.FinancialReport {
	report := domain.FinancialReport{
		Period:             period,
		StartDate:          w.Start,
		EndDate:            w.End,
		ExpensesByCategory: make(map[string]float64),
		RevenueByType:      make(map[domain.OrderType]float64),
		GeneratedAt:        now,
	}

	var sales []domain.ItemSales
	salesIdx := make(map[string]int)
	for _, o := range orders {
		if !countsAsRevenue(o, w) {
			continue
		}
		report.OrderCount++
		report.Revenue += o.Total
		report.Tax += o.Tax
		report.Tips += o.Tip
		report.Discounts += o.Discount
		report.RevenueByType[o.Type] += o.Total
		if o.Status == domain.OrderRefunded || o.PaymentStatus == domain.PaymentRefunded {
			report.Refunds += o.Total
		}
		for _, item := range o.Items {
			i, ok := salesIdx[item.MenuItemID]
			if !ok {
				i = len(sales)
				salesIdx[item.MenuItemID] = i
				sales = append(sales, domain.ItemSales{MenuItemID: item.MenuItemID, Name: item.Name})
			}
			sales[i].Quantity += item.Quantity
			sales[i].Revenue += item.LineTotal()
		}
	}

	for _, e := range expenses {
		if !w.Contains(e.Date) {
			continue
		}
		report.TotalExpenses += e.Amount
		report.ExpensesByCategory[e.Category] += e.Amount
	}

	report.Revenue = round2(report.Revenue)
	report.Refunds = round2(report.Refunds)
	report.NetRevenue = round2(report.Revenue - report.Refunds)
	report.Tax = round2(report.Tax)
	report.Tips = round2(report.Tips)
	report.Discounts = round2(report.Discounts)
	report.TotalExpenses = round2(report.TotalExpenses)
	for k, v := range report.ExpensesByCategory {
		report.ExpensesByCategory[k] = round2(v)
	}
	for k, v := range report.RevenueByType {
		report.RevenueByType[k] = round2(v)
	}
	report.NetProfit = round2(report.NetRevenue - report.TotalExpenses)
	if report.NetRevenue > 0 {
		report.ProfitMargin = round2(report.NetProfit / report.NetRevenue * 100)
	}
	if report.OrderCount > 0 {
		report.AverageOrderValue = round2(report.Revenue / float64(report.OrderCount))
	}

	sort.SliceStable(sales, func(i, j int) bool { return sales[i].Revenue > sales[j].Revenue })
	if len(sales) > TopItemsLimit {
		sales = sales[:TopItemsLimit]
	}
	for i := range sales {
		sales[i].Revenue = round2(sales[i].Revenue)
	}
	report.TopItems = sales
	return report
}
