package domain

import "time"

// Expense is an outgoing payment.
type Expense struct {
	Base
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Amount        float64   `json:"amount"`
	Date          time.Time `json:"date"`
	Vendor        string    `json:"vendor,omitempty"`
	LocationID    string    `json:"location_id,omitempty"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	Recurring     bool      `json:"recurring"`
}

// ReportPeriod labels the granularity of a generated report.
type ReportPeriod string

// Report periods.
const (
	PeriodDaily   ReportPeriod = "daily"
	PeriodWeekly  ReportPeriod = "weekly"
	PeriodMonthly ReportPeriod = "monthly"
	PeriodCustom  ReportPeriod = "custom"
)

// ItemSales summarizes sales of one menu item in a report.
type ItemSales struct {
	MenuItemID string  `json:"menu_item_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`
	Revenue    float64 `json:"revenue"`
}

// FinancialReport is an append-only aggregation over [StartDate, EndDate).
type FinancialReport struct {
	Base
	Period             ReportPeriod          `json:"period"`
	StartDate          time.Time             `json:"start_date"`
	EndDate            time.Time             `json:"end_date"`
	Revenue            float64               `json:"revenue"`
	Refunds            float64               `json:"refunds"`
	NetRevenue         float64               `json:"net_revenue"`
	Tax                float64               `json:"tax"`
	Tips               float64               `json:"tips"`
	Discounts          float64               `json:"discounts"`
	TotalExpenses      float64               `json:"total_expenses"`
	ExpensesByCategory map[string]float64    `json:"expenses_by_category"`
	RevenueByType      map[OrderType]float64 `json:"revenue_by_type"`
	NetProfit          float64               `json:"net_profit"`
	ProfitMargin       float64               `json:"profit_margin"`
	OrderCount         int                   `json:"order_count"`
	AverageOrderValue  float64               `json:"average_order_value"`
	TopItems           []ItemSales           `json:"top_items"`
	GeneratedAt        time.Time             `json:"generated_at"`
}

// Location is a restaurant site.
type Location struct {
	Base
	Name     string     `json:"name"`
	Address  string     `json:"address,omitempty"`
	City     string     `json:"city,omitempty"`
	Manager  string     `json:"manager,omitempty"`
	Phone    string     `json:"phone,omitempty"`
	Seats    int        `json:"seats"`
	Active   bool       `json:"active"`
	OpenedAt *time.Time `json:"opened_at"`
}

// LocationPerformance is one ranked row of a multi-location report.
type LocationPerformance struct {
	LocationID        string  `json:"location_id"`
	Name              string  `json:"name"`
	Rank              int     `json:"rank"`
	Revenue           float64 `json:"revenue"`
	Expenses          float64 `json:"expenses"`
	Profit            float64 `json:"profit"`
	OrderCount        int     `json:"order_count"`
	AverageOrderValue float64 `json:"average_order_value"`
}

// MultiLocationReport ranks locations by revenue over [StartDate, EndDate).
type MultiLocationReport struct {
	Base
	Period          ReportPeriod          `json:"period"`
	StartDate       time.Time             `json:"start_date"`
	EndDate         time.Time             `json:"end_date"`
	Locations       []LocationPerformance `json:"locations"`
	TotalRevenue    float64               `json:"total_revenue"`
	BestPerforming  string                `json:"best_performing"`
	WorstPerforming string                `json:"worst_performing"`
	GeneratedAt     time.Time             `json:"generated_at"`
}
