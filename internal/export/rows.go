package export

import (
	"strconv"
	"time"

	"restaurantcore/pkg/domain"
)

var financialHeader = []string{
	"id", "period", "start_date", "end_date", "revenue", "refunds", "net_revenue", "tax", "tips",
	"discounts", "total_expenses", "net_profit", "profit_margin", "order_count", "average_order_value", "generated_at",
}

type financialRow struct {
	ID                string  `parquet:"name=id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Period            string  `parquet:"name=period,type=BYTE_ARRAY,convertedtype=UTF8"`
	StartDate         int64   `parquet:"name=start_date,type=INT64"`
	EndDate           int64   `parquet:"name=end_date,type=INT64"`
	Revenue           float64 `parquet:"name=revenue,type=DOUBLE"`
	Refunds           float64 `parquet:"name=refunds,type=DOUBLE"`
	NetRevenue        float64 `parquet:"name=net_revenue,type=DOUBLE"`
	Tax               float64 `parquet:"name=tax,type=DOUBLE"`
	Tips              float64 `parquet:"name=tips,type=DOUBLE"`
	Discounts         float64 `parquet:"name=discounts,type=DOUBLE"`
	TotalExpenses     float64 `parquet:"name=total_expenses,type=DOUBLE"`
	NetProfit         float64 `parquet:"name=net_profit,type=DOUBLE"`
	ProfitMargin      float64 `parquet:"name=profit_margin,type=DOUBLE"`
	OrderCount        int64   `parquet:"name=order_count,type=INT64"`
	AverageOrderValue float64 `parquet:"name=average_order_value,type=DOUBLE"`
	GeneratedAt       int64   `parquet:"name=generated_at,type=INT64"`
}

func newFinancialRow(r domain.FinancialReport) financialRow {
	return financialRow{
		ID:                r.ID,
		Period:            string(r.Period),
		StartDate:         r.StartDate.UnixMilli(),
		EndDate:           r.EndDate.UnixMilli(),
		Revenue:           r.Revenue,
		Refunds:           r.Refunds,
		NetRevenue:        r.NetRevenue,
		Tax:               r.Tax,
		Tips:              r.Tips,
		Discounts:         r.Discounts,
		TotalExpenses:     r.TotalExpenses,
		NetProfit:         r.NetProfit,
		ProfitMargin:      r.ProfitMargin,
		OrderCount:        int64(r.OrderCount),
		AverageOrderValue: r.AverageOrderValue,
		GeneratedAt:       r.GeneratedAt.UnixMilli(),
	}
}

func (r financialRow) record() []string {
	return []string{
		r.ID, r.Period, formatMillis(r.StartDate), formatMillis(r.EndDate),
		formatMoney(r.Revenue), formatMoney(r.Refunds), formatMoney(r.NetRevenue), formatMoney(r.Tax),
		formatMoney(r.Tips), formatMoney(r.Discounts), formatMoney(r.TotalExpenses), formatMoney(r.NetProfit),
		formatMoney(r.ProfitMargin), strconv.FormatInt(r.OrderCount, 10), formatMoney(r.AverageOrderValue),
		formatMillis(r.GeneratedAt),
	}
}

var locationHeader = []string{
	"rank", "location_id", "name", "revenue", "expenses", "profit", "order_count", "average_order_value", "period", "start_date",
}

type locationRow struct {
	Rank              int64   `parquet:"name=rank,type=INT64"`
	LocationID        string  `parquet:"name=location_id,type=BYTE_ARRAY,convertedtype=UTF8"`
	Name              string  `parquet:"name=name,type=BYTE_ARRAY,convertedtype=UTF8"`
	Revenue           float64 `parquet:"name=revenue,type=DOUBLE"`
	Expenses          float64 `parquet:"name=expenses,type=DOUBLE"`
	Profit            float64 `parquet:"name=profit,type=DOUBLE"`
	OrderCount        int64   `parquet:"name=order_count,type=INT64"`
	AverageOrderValue float64 `parquet:"name=average_order_value,type=DOUBLE"`
	Period            string  `parquet:"name=period,type=BYTE_ARRAY,convertedtype=UTF8"`
	StartDate         int64   `parquet:"name=start_date,type=INT64"`
}

func newLocationRow(report domain.MultiLocationReport, l domain.LocationPerformance) locationRow {
	return locationRow{
		Rank:              int64(l.Rank),
		LocationID:        l.LocationID,
		Name:              l.Name,
		Revenue:           l.Revenue,
		Expenses:          l.Expenses,
		Profit:            l.Profit,
		OrderCount:        int64(l.OrderCount),
		AverageOrderValue: l.AverageOrderValue,
		Period:            string(report.Period),
		StartDate:         report.StartDate.UnixMilli(),
	}
}

func (r locationRow) record() []string {
	return []string{
		strconv.FormatInt(r.Rank, 10), r.LocationID, r.Name, formatMoney(r.Revenue), formatMoney(r.Expenses),
		formatMoney(r.Profit), strconv.FormatInt(r.OrderCount, 10), formatMoney(r.AverageOrderValue),
		r.Period, formatMillis(r.StartDate),
	}
}

func formatMoney(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }

func formatMillis(ms int64) string { return time.UnixMilli(ms).UTC().Format(time.RFC3339) }
