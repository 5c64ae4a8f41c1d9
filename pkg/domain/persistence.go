package domain

import (
	"context"
	"time"
)

// Reader provides read access to one insertion-ordered entity collection.
// Every returned value is a copy; callers never alias stored records.
type Reader[T any] interface {
	Get(id string) (T, bool)
	List() []T
	Len() int
}

// Collection extends Reader with the mutations available inside a transaction.
// Create assigns an id when none is set. Update applies mutator to a copy of
// the stored record. Upsert replaces an existing record only when the supplied
// revision matches the stored one, and creates the record otherwise.
type Collection[T any] interface {
	Reader[T]
	Create(T) (T, error)
	Update(id string, mutator func(*T) error) (T, error)
	Upsert(T) (T, error)
	Delete(id string) error
}

// TransactionView provides read-only access to a consistent snapshot of every collection.
type TransactionView interface {
	Orders() Reader[Order]
	MenuItems() Reader[MenuItem]
	Inventory() Reader[InventoryItem]
	Tables() Reader[Table]
	Recipes() Reader[Recipe]
	RecipeCosts() Reader[RecipeCostCalculation]
	Reservations() Reader[Reservation]
	Waitlist() Reader[WaitlistEntry]
	StaffSchedules() Reader[StaffSchedule]
	TimeClock() Reader[TimeClockEntry]
	Suppliers() Reader[Supplier]
	PurchaseOrders() Reader[PurchaseOrder]
	WasteRecords() Reader[WasteRecord]
	Promotions() Reader[Promotion]
	Customers() Reader[CustomerProfile]
	Expenses() Reader[Expense]
	FinancialReports() Reader[FinancialReport]
	Locations() Reader[Location]
	LocationReports() Reader[MultiLocationReport]
	EmailCampaigns() Reader[EmailCampaign]
	EmailTemplates() Reader[EmailTemplate]
	Segments() Reader[CustomerSegment]
	Automations() Reader[MarketingAutomation]
	LoyaltyPrograms() Reader[LoyaltyProgram]
	LoyaltyRewards() Reader[LoyaltyReward]
	QRCodes() Reader[QRCode]
	Feedback() Reader[Feedback]
	Notifications() Reader[Notification]
	ActiveUser() (User, bool)
}

// Transaction exposes every collection for mutation within an atomic scope.
// Nothing becomes visible to other callers until the enclosing
// RunInTransaction returns without error.
type Transaction interface {
	Snapshot() TransactionView
	// Now is the timestamp stamped on every record written by the transaction.
	Now() time.Time
	// Changes lists the mutations recorded so far, in order.
	Changes() []Change
	// Reset empties every collection and clears the active user.
	Reset()
	SetActiveUser(*User)

	Orders() Collection[Order]
	MenuItems() Collection[MenuItem]
	Inventory() Collection[InventoryItem]
	Tables() Collection[Table]
	Recipes() Collection[Recipe]
	RecipeCosts() Collection[RecipeCostCalculation]
	Reservations() Collection[Reservation]
	Waitlist() Collection[WaitlistEntry]
	StaffSchedules() Collection[StaffSchedule]
	TimeClock() Collection[TimeClockEntry]
	Suppliers() Collection[Supplier]
	PurchaseOrders() Collection[PurchaseOrder]
	WasteRecords() Collection[WasteRecord]
	Promotions() Collection[Promotion]
	Customers() Collection[CustomerProfile]
	Expenses() Collection[Expense]
	FinancialReports() Collection[FinancialReport]
	Locations() Collection[Location]
	LocationReports() Collection[MultiLocationReport]
	EmailCampaigns() Collection[EmailCampaign]
	EmailTemplates() Collection[EmailTemplate]
	Segments() Collection[CustomerSegment]
	Automations() Collection[MarketingAutomation]
	LoyaltyPrograms() Collection[LoyaltyProgram]
	LoyaltyRewards() Collection[LoyaltyReward]
	QRCodes() Collection[QRCode]
	Feedback() Collection[Feedback]
	Notifications() Collection[Notification]
}

// PersistentStore is the abstraction over memory and durable backends used by
// higher layers.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	ExportDurable() DurableState
	ImportDurable(DurableState)
}

// DurableState is the subset of collections that survives a process restart.
// Catalog and floor configuration live here; orders, reports, staff and
// marketing data are session scoped.
type DurableState struct {
	MenuItems    []MenuItem      `json:"menu_items"`
	Inventory    []InventoryItem `json:"inventory"`
	Tables       []Table         `json:"tables"`
	Recipes      []Recipe        `json:"recipes"`
	Reservations []Reservation   `json:"reservations"`
	ActiveUser   *User           `json:"active_user"`
}

// DurableEntities lists the entity types stored in DurableState.
var DurableEntities = []EntityType{
	EntityMenuItem,
	EntityInventoryItem,
	EntityTable,
	EntityRecipe,
	EntityReservation,
	EntityActiveUser,
}

// IsDurable reports whether changes to entity must be persisted.
func IsDurable(entity EntityType) bool {
	for _, e := range DurableEntities {
		if e == entity {
			return true
		}
	}
	return false
}

// TouchesDurable reports whether any change affects the durable subset.
func TouchesDurable(changes []Change) bool {
	for _, c := range changes {
		if IsDurable(c.Entity) {
			return true
		}
	}
	return false
}
