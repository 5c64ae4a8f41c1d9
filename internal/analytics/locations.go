package analytics

import (
	"sort"
	"time"

	"restaurantcore/pkg/domain"
)

// RankLocations builds a multi-location report over w. Locations are ranked by
// revenue, highest first; equal revenue keeps collection order. Best and worst
// performers are the first and last ranked location ids.
func RankLocations(period domain.ReportPeriod, w Window, locations []domain.Location, orders []domain.Order, expenses []domain.Expense, now time.Time) domain.MultiLocationReport {
	rows := make([]domain.LocationPerformance, len(locations))
	idx := make(map[string]int, len(locations))
	for i, loc := range locations {
		rows[i] = domain.LocationPerformance{LocationID: loc.ID, Name: loc.Name}
		idx[loc.ID] = i
	}

	refunds := make([]float64, len(rows))
	for _, o := range orders {
		i, ok := idx[o.LocationID]
		if !ok || !countsAsRevenue(o, w) {
			continue
		}
		rows[i].Revenue += o.Total
		rows[i].OrderCount++
		if o.Status == domain.OrderRefunded || o.PaymentStatus == domain.PaymentRefunded {
			refunds[i] += o.Total
		}
	}
	for _, e := range expenses {
		i, ok := idx[e.LocationID]
		if !ok || !w.Contains(e.Date) {
			continue
		}
		rows[i].Expenses += e.Amount
	}

	report := domain.MultiLocationReport{
		Period:      period,
		StartDate:   w.Start,
		EndDate:     w.End,
		GeneratedAt: now,
	}
	for i := range rows {
		r := &rows[i]
		r.Profit = round2(r.Revenue - refunds[i] - r.Expenses)
		if r.OrderCount > 0 {
			r.AverageOrderValue = round2(r.Revenue / float64(r.OrderCount))
		}
		r.Revenue = round2(r.Revenue)
		r.Expenses = round2(r.Expenses)
		report.TotalRevenue += r.Revenue
	}
	report.TotalRevenue = round2(report.TotalRevenue)

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Revenue > rows[j].Revenue })
	for i := range rows {
		rows[i].Rank = i + 1
	}
	if len(rows) > 0 {
		report.BestPerforming = rows[0].LocationID
		report.WorstPerforming = rows[len(rows)-1].LocationID
	}
	report.Locations = rows
	return report
}
