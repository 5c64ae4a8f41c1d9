package memory

import "restaurantcore/pkg/domain"

// Snapshot captures a point-in-time copy of every collection in insertion order.
type Snapshot struct {
	Orders           []domain.Order                 `json:"orders"`
	MenuItems        []domain.MenuItem              `json:"menu_items"`
	Inventory        []domain.InventoryItem         `json:"inventory"`
	Tables           []domain.Table                 `json:"tables"`
	Recipes          []domain.Recipe                `json:"recipes"`
	RecipeCosts      []domain.RecipeCostCalculation `json:"recipe_costs"`
	Reservations     []domain.Reservation           `json:"reservations"`
	Waitlist         []domain.WaitlistEntry         `json:"waitlist"`
	StaffSchedules   []domain.StaffSchedule         `json:"staff_schedules"`
	TimeClock        []domain.TimeClockEntry        `json:"time_clock"`
	Suppliers        []domain.Supplier              `json:"suppliers"`
	PurchaseOrders   []domain.PurchaseOrder         `json:"purchase_orders"`
	WasteRecords     []domain.WasteRecord           `json:"waste_records"`
	Promotions       []domain.Promotion             `json:"promotions"`
	Customers        []domain.CustomerProfile       `json:"customers"`
	Expenses         []domain.Expense               `json:"expenses"`
	FinancialReports []domain.FinancialReport       `json:"financial_reports"`
	Locations        []domain.Location              `json:"locations"`
	LocationReports  []domain.MultiLocationReport   `json:"location_reports"`
	EmailCampaigns   []domain.EmailCampaign         `json:"email_campaigns"`
	EmailTemplates   []domain.EmailTemplate         `json:"email_templates"`
	Segments         []domain.CustomerSegment       `json:"segments"`
	Automations      []domain.MarketingAutomation   `json:"automations"`
	LoyaltyPrograms  []domain.LoyaltyProgram        `json:"loyalty_programs"`
	LoyaltyRewards   []domain.LoyaltyReward         `json:"loyalty_rewards"`
	QRCodes          []domain.QRCode                `json:"qr_codes"`
	Feedback         []domain.Feedback              `json:"feedback"`
	Notifications    []domain.Notification          `json:"notifications"`
	ActiveUser       *domain.User                   `json:"active_user"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	return Snapshot{
		Orders:           state.orders.List(),
		MenuItems:        state.menuItems.List(),
		Inventory:        state.inventory.List(),
		Tables:           state.tables.List(),
		Recipes:          state.recipes.List(),
		RecipeCosts:      state.recipeCosts.List(),
		Reservations:     state.reservations.List(),
		Waitlist:         state.waitlist.List(),
		StaffSchedules:   state.schedules.List(),
		TimeClock:        state.timeClock.List(),
		Suppliers:        state.suppliers.List(),
		PurchaseOrders:   state.purchaseOrders.List(),
		WasteRecords:     state.wasteRecords.List(),
		Promotions:       state.promotions.List(),
		Customers:        state.customers.List(),
		Expenses:         state.expenses.List(),
		FinancialReports: state.financialReports.List(),
		Locations:        state.locations.List(),
		LocationReports:  state.locationReports.List(),
		EmailCampaigns:   state.campaigns.List(),
		EmailTemplates:   state.templates.List(),
		Segments:         state.segments.List(),
		Automations:      state.automations.List(),
		LoyaltyPrograms:  state.loyaltyPrograms.List(),
		LoyaltyRewards:   state.loyaltyRewards.List(),
		QRCodes:          state.qrCodes.List(),
		Feedback:         state.feedback.List(),
		Notifications:    state.notifications.List(),
		ActiveUser:       clonePtr(state.activeUser),
	}
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	state.orders.load(s.Orders)
	state.menuItems.load(s.MenuItems)
	state.inventory.load(s.Inventory)
	state.tables.load(s.Tables)
	state.recipes.load(s.Recipes)
	state.recipeCosts.load(s.RecipeCosts)
	state.reservations.load(s.Reservations)
	state.waitlist.load(s.Waitlist)
	state.schedules.load(s.StaffSchedules)
	state.timeClock.load(s.TimeClock)
	state.suppliers.load(s.Suppliers)
	state.purchaseOrders.load(s.PurchaseOrders)
	state.wasteRecords.load(s.WasteRecords)
	state.promotions.load(s.Promotions)
	state.customers.load(s.Customers)
	state.expenses.load(s.Expenses)
	state.financialReports.load(s.FinancialReports)
	state.locations.load(s.Locations)
	state.locationReports.load(s.LocationReports)
	state.campaigns.load(s.EmailCampaigns)
	state.templates.load(s.EmailTemplates)
	state.segments.load(s.Segments)
	state.automations.load(s.Automations)
	state.loyaltyPrograms.load(s.LoyaltyPrograms)
	state.loyaltyRewards.load(s.LoyaltyRewards)
	state.qrCodes.load(s.QRCodes)
	state.feedback.load(s.Feedback)
	state.notifications.load(s.Notifications)
	state.activeUser = clonePtr(s.ActiveUser)
	return state
}

// ExportState clones the full store state.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the full store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = memoryStateFromSnapshot(snapshot)
}

// ExportDurable copies the collections that survive a restart.
func (s *Store) ExportDurable() domain.DurableState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.DurableState{
		MenuItems:    s.state.menuItems.List(),
		Inventory:    s.state.inventory.List(),
		Tables:       s.state.tables.List(),
		Recipes:      s.state.recipes.List(),
		Reservations: s.state.reservations.List(),
		ActiveUser:   clonePtr(s.state.activeUser),
	}
}

// ImportDurable replaces the durable collections and leaves session-scoped
// collections untouched.
func (s *Store) ImportDurable(d domain.DurableState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.state.clone()
	next.menuItems.load(d.MenuItems)
	next.inventory.load(d.Inventory)
	next.tables.load(d.Tables)
	next.recipes.load(d.Recipes)
	next.reservations.load(d.Reservations)
	next.activeUser = clonePtr(d.ActiveUser)
	s.state = next
}
