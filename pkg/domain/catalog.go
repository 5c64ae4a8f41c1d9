package domain

import "time"

// MenuItem is a sellable dish or drink.
type MenuItem struct {
	Base
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	Available       bool     `json:"available"`
	PrepTimeMinutes int      `json:"prep_time_minutes"`
	Allergens       []string `json:"allergens,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

// InventoryItem is a stocked ingredient or supply.
type InventoryItem struct {
	Base
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CurrentStock  float64    `json:"current_stock"`
	MinStock      float64    `json:"min_stock"`
	MaxStock      float64    `json:"max_stock"`
	Unit          string     `json:"unit"`
	CostPerUnit   float64    `json:"cost_per_unit"`
	SupplierID    *string    `json:"supplier_id"`
	ExpiryDate    *time.Time `json:"expiry_date"`
	LastRestocked *time.Time `json:"last_restocked"`
	StorageArea   string     `json:"storage_area,omitempty"`
}

// RecipeIngredient references an inventory item consumed by a recipe.
type RecipeIngredient struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
}

// Recipe describes how a menu item is produced.
type Recipe struct {
	Base
	Name            string             `json:"name"`
	MenuItemID      string             `json:"menu_item_id"`
	Ingredients     []RecipeIngredient `json:"ingredients"`
	PrepTimeMinutes int                `json:"prep_time_minutes"`
	CookTimeMinutes int                `json:"cook_time_minutes"`
	Servings        int                `json:"servings"`
	Instructions    []string           `json:"instructions,omitempty"`
}

// IngredientCost is the snapshot of one ingredient's cost at calculation time.
type IngredientCost struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Name            string  `json:"name"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit"`
	CostPerUnit     float64 `json:"cost_per_unit"`
	Cost            float64 `json:"cost"`
}

// RecipeCostCalculation is a point-in-time costing of a recipe. Later
// inventory cost changes never alter it; recalculation appends a new record.
type RecipeCostCalculation struct {
	Base
	RecipeID         string           `json:"recipe_id"`
	MenuItemID       string           `json:"menu_item_id"`
	Ingredients      []IngredientCost `json:"ingredients"`
	IngredientCost   float64          `json:"ingredient_cost"`
	LaborCost        float64          `json:"labor_cost"`
	OverheadRate     float64          `json:"overhead_rate"`
	OverheadCost     float64          `json:"overhead_cost"`
	TotalCost        float64          `json:"total_cost"`
	Servings         int              `json:"servings"`
	CostPerServing   float64          `json:"cost_per_serving"`
	SellingPrice     float64          `json:"selling_price"`
	ProfitMargin     float64          `json:"profit_margin"`
	ProfitPercentage float64          `json:"profit_percentage"`
	CalculatedAt     time.Time        `json:"calculated_at"`
}

// Supplier provides inventory items.
type Supplier struct {
	Base
	Name         string   `json:"name"`
	ContactName  string   `json:"contact_name,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	LeadTimeDays int      `json:"lead_time_days"`
	Rating       float64  `json:"rating"`
	Active       bool     `json:"active"`
}

// PurchaseOrderStatus tracks a purchase order from draft to receipt.
type PurchaseOrderStatus string

// Purchase order statuses.
const (
	PurchaseDraft     PurchaseOrderStatus = "draft"
	PurchaseOrdered   PurchaseOrderStatus = "ordered"
	PurchaseReceived  PurchaseOrderStatus = "received"
	PurchaseCancelled PurchaseOrderStatus = "cancelled"
)

// PurchaseOrderLine is one item requested from a supplier.
type PurchaseOrderLine struct {
	InventoryItemID string  `json:"inventory_item_id"`
	Quantity        float64 `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
}

// PurchaseOrder requests stock from a supplier.
type PurchaseOrder struct {
	Base
	SupplierID string              `json:"supplier_id"`
	Lines      []PurchaseOrderLine `json:"lines"`
	Status     PurchaseOrderStatus `json:"status"`
	OrderedAt  *time.Time          `json:"ordered_at"`
	ExpectedAt *time.Time          `json:"expected_at"`
	ReceivedAt *time.Time          `json:"received_at"`
	Total      float64             `json:"total"`
	Notes      string              `json:"notes,omitempty"`
}

// WasteRecord documents stock lost to spoilage, breakage or preparation errors.
type WasteRecord struct {
	Base
	InventoryItemID string    `json:"inventory_item_id"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit"`
	Reason          string    `json:"reason"`
	Cost            float64   `json:"cost"`
	RecordedBy      string    `json:"recorded_by,omitempty"`
	RecordedAt      time.Time `json:"recorded_at"`
}
