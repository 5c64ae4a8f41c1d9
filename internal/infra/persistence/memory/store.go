// Package memory provides the in-memory implementation of the restaurant state
// container. Every other backend embeds it and persists the durable subset.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/lucsky/cuid"

	"restaurantcore/pkg/domain"
)

// Compile-time contract assertion ensuring memory.Store adheres to the domain persistence interface.
var _ domain.PersistentStore = (*Store)(nil)

type (
	// Change aliases domain.Change captured in transactions.
	Change = domain.Change
	// Result aliases domain.Result summarizing rule evaluation.
	Result = domain.Result
	// RulesEngine aliases domain.RulesEngine used to evaluate rules.
	RulesEngine = domain.RulesEngine
	// Transaction aliases domain.Transaction representing a mutable unit of work.
	Transaction = domain.Transaction
	// TransactionView aliases domain.TransactionView providing read-only state.
	TransactionView = domain.TransactionView
)

type memoryState struct {
	orders           *table[domain.Order, *domain.Order]
	menuItems        *table[domain.MenuItem, *domain.MenuItem]
	inventory        *table[domain.InventoryItem, *domain.InventoryItem]
	tables           *table[domain.Table, *domain.Table]
	recipes          *table[domain.Recipe, *domain.Recipe]
	recipeCosts      *table[domain.RecipeCostCalculation, *domain.RecipeCostCalculation]
	reservations     *table[domain.Reservation, *domain.Reservation]
	waitlist         *table[domain.WaitlistEntry, *domain.WaitlistEntry]
	schedules        *table[domain.StaffSchedule, *domain.StaffSchedule]
	timeClock        *table[domain.TimeClockEntry, *domain.TimeClockEntry]
	suppliers        *table[domain.Supplier, *domain.Supplier]
	purchaseOrders   *table[domain.PurchaseOrder, *domain.PurchaseOrder]
	wasteRecords     *table[domain.WasteRecord, *domain.WasteRecord]
	promotions       *table[domain.Promotion, *domain.Promotion]
	customers        *table[domain.CustomerProfile, *domain.CustomerProfile]
	expenses         *table[domain.Expense, *domain.Expense]
	financialReports *table[domain.FinancialReport, *domain.FinancialReport]
	locations        *table[domain.Location, *domain.Location]
	locationReports  *table[domain.MultiLocationReport, *domain.MultiLocationReport]
	campaigns        *table[domain.EmailCampaign, *domain.EmailCampaign]
	templates        *table[domain.EmailTemplate, *domain.EmailTemplate]
	segments         *table[domain.CustomerSegment, *domain.CustomerSegment]
	automations      *table[domain.MarketingAutomation, *domain.MarketingAutomation]
	loyaltyPrograms  *table[domain.LoyaltyProgram, *domain.LoyaltyProgram]
	loyaltyRewards   *table[domain.LoyaltyReward, *domain.LoyaltyReward]
	qrCodes          *table[domain.QRCode, *domain.QRCode]
	feedback         *table[domain.Feedback, *domain.Feedback]
	notifications    *table[domain.Notification, *domain.Notification]
	activeUser       *domain.User
}

func newMemoryState() memoryState {
	return memoryState{
		orders:           newTable[domain.Order, *domain.Order](domain.EntityOrder, cloneOrder),
		menuItems:        newTable[domain.MenuItem, *domain.MenuItem](domain.EntityMenuItem, cloneMenuItem),
		inventory:        newTable[domain.InventoryItem, *domain.InventoryItem](domain.EntityInventoryItem, cloneInventoryItem),
		tables:           newTable[domain.Table, *domain.Table](domain.EntityTable, cloneTable),
		recipes:          newTable[domain.Recipe, *domain.Recipe](domain.EntityRecipe, cloneRecipe),
		recipeCosts:      newTable[domain.RecipeCostCalculation, *domain.RecipeCostCalculation](domain.EntityRecipeCost, cloneRecipeCost),
		reservations:     newTable[domain.Reservation, *domain.Reservation](domain.EntityReservation, cloneReservation),
		waitlist:         newTable[domain.WaitlistEntry, *domain.WaitlistEntry](domain.EntityWaitlistEntry, cloneWaitlistEntry),
		schedules:        newTable[domain.StaffSchedule, *domain.StaffSchedule](domain.EntityStaffSchedule, same[domain.StaffSchedule]),
		timeClock:        newTable[domain.TimeClockEntry, *domain.TimeClockEntry](domain.EntityTimeClockEntry, cloneTimeClockEntry),
		suppliers:        newTable[domain.Supplier, *domain.Supplier](domain.EntitySupplier, cloneSupplier),
		purchaseOrders:   newTable[domain.PurchaseOrder, *domain.PurchaseOrder](domain.EntityPurchaseOrder, clonePurchaseOrder),
		wasteRecords:     newTable[domain.WasteRecord, *domain.WasteRecord](domain.EntityWasteRecord, same[domain.WasteRecord]),
		promotions:       newTable[domain.Promotion, *domain.Promotion](domain.EntityPromotion, same[domain.Promotion]),
		customers:        newTable[domain.CustomerProfile, *domain.CustomerProfile](domain.EntityCustomerProfile, cloneCustomer),
		expenses:         newTable[domain.Expense, *domain.Expense](domain.EntityExpense, same[domain.Expense]),
		financialReports: newTable[domain.FinancialReport, *domain.FinancialReport](domain.EntityFinancialReport, cloneFinancialReport),
		locations:        newTable[domain.Location, *domain.Location](domain.EntityLocation, cloneLocation),
		locationReports:  newTable[domain.MultiLocationReport, *domain.MultiLocationReport](domain.EntityMultiLocationReport, cloneLocationReport),
		campaigns:        newTable[domain.EmailCampaign, *domain.EmailCampaign](domain.EntityEmailCampaign, cloneEmailCampaign),
		templates:        newTable[domain.EmailTemplate, *domain.EmailTemplate](domain.EntityEmailTemplate, same[domain.EmailTemplate]),
		segments:         newTable[domain.CustomerSegment, *domain.CustomerSegment](domain.EntityCustomerSegment, cloneSegment),
		automations:      newTable[domain.MarketingAutomation, *domain.MarketingAutomation](domain.EntityMarketingAutomation, cloneAutomation),
		loyaltyPrograms:  newTable[domain.LoyaltyProgram, *domain.LoyaltyProgram](domain.EntityLoyaltyProgram, cloneLoyaltyProgram),
		loyaltyRewards:   newTable[domain.LoyaltyReward, *domain.LoyaltyReward](domain.EntityLoyaltyReward, cloneLoyaltyReward),
		qrCodes:          newTable[domain.QRCode, *domain.QRCode](domain.EntityQRCode, cloneQRCode),
		feedback:         newTable[domain.Feedback, *domain.Feedback](domain.EntityFeedback, cloneFeedback),
		notifications:    newTable[domain.Notification, *domain.Notification](domain.EntityNotification, cloneNotification),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		orders:           s.orders.clone(),
		menuItems:        s.menuItems.clone(),
		inventory:        s.inventory.clone(),
		tables:           s.tables.clone(),
		recipes:          s.recipes.clone(),
		recipeCosts:      s.recipeCosts.clone(),
		reservations:     s.reservations.clone(),
		waitlist:         s.waitlist.clone(),
		schedules:        s.schedules.clone(),
		timeClock:        s.timeClock.clone(),
		suppliers:        s.suppliers.clone(),
		purchaseOrders:   s.purchaseOrders.clone(),
		wasteRecords:     s.wasteRecords.clone(),
		promotions:       s.promotions.clone(),
		customers:        s.customers.clone(),
		expenses:         s.expenses.clone(),
		financialReports: s.financialReports.clone(),
		locations:        s.locations.clone(),
		locationReports:  s.locationReports.clone(),
		campaigns:        s.campaigns.clone(),
		templates:        s.templates.clone(),
		segments:         s.segments.clone(),
		automations:      s.automations.clone(),
		loyaltyPrograms:  s.loyaltyPrograms.clone(),
		loyaltyRewards:   s.loyaltyRewards.clone(),
		qrCodes:          s.qrCodes.clone(),
		feedback:         s.feedback.clone(),
		notifications:    s.notifications.clone(),
		activeUser:       clonePtr(s.activeUser),
	}
}

// Store provides an in-memory transactional store for the restaurant domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
	idFn   func() string
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source stamped on created and updated records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// WithIDGenerator overrides the id source used when records are created without an id.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) {
		if fn != nil {
			s.idFn = fn
		}
	}
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine, opts ...Option) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	s := &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
		idFn:   cuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) newID() string {
	return s.idFn()
}

// RulesEngine exposes the currently configured engine.
func (s *Store) RulesEngine() *RulesEngine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.engine
}

// NowFunc returns the time provider used by the in-memory store.
func (s *Store) NowFunc() func() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nowFn
}

// RunInTransaction runs fn against a private copy of the state. The copy
// replaces the shared state only when fn succeeds and no rule blocks; any
// failure leaves the store untouched.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	var result Result
	if s.engine != nil {
		view := newTransactionView(&tx.state)
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()

	return fn(newTransactionView(&snapshot))
}

// transaction represents a mutation set applied to a cloned state.
type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot returns a read-only view over the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return newTransactionView(&tx.state)
}

func (tx *transaction) Now() time.Time { return tx.now }

func (tx *transaction) Changes() []Change {
	return append([]Change(nil), tx.changes...)
}

// SetActiveUser replaces the signed-in user; nil signs out.
func (tx *transaction) SetActiveUser(u *domain.User) {
	before := clonePtr(tx.state.activeUser)
	tx.state.activeUser = clonePtr(u)
	change := Change{Entity: domain.EntityActiveUser}
	switch {
	case before == nil && u == nil:
		return
	case u == nil:
		change.Action = domain.ActionDelete
		change.EntityID = before.ID
		change.Before = *before
	case before == nil:
		change.Action = domain.ActionCreate
		change.EntityID = u.ID
		change.After = *u
	default:
		change.Action = domain.ActionUpdate
		change.EntityID = u.ID
		change.Before = *before
		change.After = *u
	}
	tx.recordChange(change)
}

// Reset deletes every record and signs the active user out.
func (tx *transaction) Reset() {
	txTable[domain.Order, *domain.Order]{table: tx.state.orders, tx: tx}.clear()
	txTable[domain.MenuItem, *domain.MenuItem]{table: tx.state.menuItems, tx: tx}.clear()
	txTable[domain.InventoryItem, *domain.InventoryItem]{table: tx.state.inventory, tx: tx}.clear()
	txTable[domain.Table, *domain.Table]{table: tx.state.tables, tx: tx}.clear()
	txTable[domain.Recipe, *domain.Recipe]{table: tx.state.recipes, tx: tx}.clear()
	txTable[domain.RecipeCostCalculation, *domain.RecipeCostCalculation]{table: tx.state.recipeCosts, tx: tx}.clear()
	txTable[domain.Reservation, *domain.Reservation]{table: tx.state.reservations, tx: tx}.clear()
	txTable[domain.WaitlistEntry, *domain.WaitlistEntry]{table: tx.state.waitlist, tx: tx}.clear()
	txTable[domain.StaffSchedule, *domain.StaffSchedule]{table: tx.state.schedules, tx: tx}.clear()
	txTable[domain.TimeClockEntry, *domain.TimeClockEntry]{table: tx.state.timeClock, tx: tx}.clear()
	txTable[domain.Supplier, *domain.Supplier]{table: tx.state.suppliers, tx: tx}.clear()
	txTable[domain.PurchaseOrder, *domain.PurchaseOrder]{table: tx.state.purchaseOrders, tx: tx}.clear()
	txTable[domain.WasteRecord, *domain.WasteRecord]{table: tx.state.wasteRecords, tx: tx}.clear()
	txTable[domain.Promotion, *domain.Promotion]{table: tx.state.promotions, tx: tx}.clear()
	txTable[domain.CustomerProfile, *domain.CustomerProfile]{table: tx.state.customers, tx: tx}.clear()
	txTable[domain.Expense, *domain.Expense]{table: tx.state.expenses, tx: tx}.clear()
	txTable[domain.FinancialReport, *domain.FinancialReport]{table: tx.state.financialReports, tx: tx}.clear()
	txTable[domain.Location, *domain.Location]{table: tx.state.locations, tx: tx}.clear()
	txTable[domain.MultiLocationReport, *domain.MultiLocationReport]{table: tx.state.locationReports, tx: tx}.clear()
	txTable[domain.EmailCampaign, *domain.EmailCampaign]{table: tx.state.campaigns, tx: tx}.clear()
	txTable[domain.EmailTemplate, *domain.EmailTemplate]{table: tx.state.templates, tx: tx}.clear()
	txTable[domain.CustomerSegment, *domain.CustomerSegment]{table: tx.state.segments, tx: tx}.clear()
	txTable[domain.MarketingAutomation, *domain.MarketingAutomation]{table: tx.state.automations, tx: tx}.clear()
	txTable[domain.LoyaltyProgram, *domain.LoyaltyProgram]{table: tx.state.loyaltyPrograms, tx: tx}.clear()
	txTable[domain.LoyaltyReward, *domain.LoyaltyReward]{table: tx.state.loyaltyRewards, tx: tx}.clear()
	txTable[domain.QRCode, *domain.QRCode]{table: tx.state.qrCodes, tx: tx}.clear()
	txTable[domain.Feedback, *domain.Feedback]{table: tx.state.feedback, tx: tx}.clear()
	txTable[domain.Notification, *domain.Notification]{table: tx.state.notifications, tx: tx}.clear()
	tx.SetActiveUser(nil)
}

func (tx *transaction) Orders() domain.Collection[domain.Order] {
	return txTable[domain.Order, *domain.Order]{table: tx.state.orders, tx: tx}
}

func (tx *transaction) MenuItems() domain.Collection[domain.MenuItem] {
	return txTable[domain.MenuItem, *domain.MenuItem]{table: tx.state.menuItems, tx: tx}
}

func (tx *transaction) Inventory() domain.Collection[domain.InventoryItem] {
	return txTable[domain.InventoryItem, *domain.InventoryItem]{table: tx.state.inventory, tx: tx}
}

func (tx *transaction) Tables() domain.Collection[domain.Table] {
	return txTable[domain.Table, *domain.Table]{table: tx.state.tables, tx: tx}
}

func (tx *transaction) Recipes() domain.Collection[domain.Recipe] {
	return txTable[domain.Recipe, *domain.Recipe]{table: tx.state.recipes, tx: tx}
}

func (tx *transaction) RecipeCosts() domain.Collection[domain.RecipeCostCalculation] {
	return txTable[domain.RecipeCostCalculation, *domain.RecipeCostCalculation]{table: tx.state.recipeCosts, tx: tx}
}

func (tx *transaction) Reservations() domain.Collection[domain.Reservation] {
	return txTable[domain.Reservation, *domain.Reservation]{table: tx.state.reservations, tx: tx}
}

func (tx *transaction) Waitlist() domain.Collection[domain.WaitlistEntry] {
	return txTable[domain.WaitlistEntry, *domain.WaitlistEntry]{table: tx.state.waitlist, tx: tx}
}

func (tx *transaction) StaffSchedules() domain.Collection[domain.StaffSchedule] {
	return txTable[domain.StaffSchedule, *domain.StaffSchedule]{table: tx.state.schedules, tx: tx}
}

func (tx *transaction) TimeClock() domain.Collection[domain.TimeClockEntry] {
	return txTable[domain.TimeClockEntry, *domain.TimeClockEntry]{table: tx.state.timeClock, tx: tx}
}

func (tx *transaction) Suppliers() domain.Collection[domain.Supplier] {
	return txTable[domain.Supplier, *domain.Supplier]{table: tx.state.suppliers, tx: tx}
}

func (tx *transaction) PurchaseOrders() domain.Collection[domain.PurchaseOrder] {
	return txTable[domain.PurchaseOrder, *domain.PurchaseOrder]{table: tx.state.purchaseOrders, tx: tx}
}

func (tx *transaction) WasteRecords() domain.Collection[domain.WasteRecord] {
	return txTable[domain.WasteRecord, *domain.WasteRecord]{table: tx.state.wasteRecords, tx: tx}
}

func (tx *transaction) Promotions() domain.Collection[domain.Promotion] {
	return txTable[domain.Promotion, *domain.Promotion]{table: tx.state.promotions, tx: tx}
}

func (tx *transaction) Customers() domain.Collection[domain.CustomerProfile] {
	return txTable[domain.CustomerProfile, *domain.CustomerProfile]{table: tx.state.customers, tx: tx}
}

func (tx *transaction) Expenses() domain.Collection[domain.Expense] {
	return txTable[domain.Expense, *domain.Expense]{table: tx.state.expenses, tx: tx}
}

func (tx *transaction) FinancialReports() domain.Collection[domain.FinancialReport] {
	return txTable[domain.FinancialReport, *domain.FinancialReport]{table: tx.state.financialReports, tx: tx}
}

func (tx *transaction) Locations() domain.Collection[domain.Location] {
	return txTable[domain.Location, *domain.Location]{table: tx.state.locations, tx: tx}
}

func (tx *transaction) LocationReports() domain.Collection[domain.MultiLocationReport] {
	return txTable[domain.MultiLocationReport, *domain.MultiLocationReport]{table: tx.state.locationReports, tx: tx}
}

func (tx *transaction) EmailCampaigns() domain.Collection[domain.EmailCampaign] {
	return txTable[domain.EmailCampaign, *domain.EmailCampaign]{table: tx.state.campaigns, tx: tx}
}

func (tx *transaction) EmailTemplates() domain.Collection[domain.EmailTemplate] {
	return txTable[domain.EmailTemplate, *domain.EmailTemplate]{table: tx.state.templates, tx: tx}
}

func (tx *transaction) Segments() domain.Collection[domain.CustomerSegment] {
	return txTable[domain.CustomerSegment, *domain.CustomerSegment]{table: tx.state.segments, tx: tx}
}

func (tx *transaction) Automations() domain.Collection[domain.MarketingAutomation] {
	return txTable[domain.MarketingAutomation, *domain.MarketingAutomation]{table: tx.state.automations, tx: tx}
}

func (tx *transaction) LoyaltyPrograms() domain.Collection[domain.LoyaltyProgram] {
	return txTable[domain.LoyaltyProgram, *domain.LoyaltyProgram]{table: tx.state.loyaltyPrograms, tx: tx}
}

func (tx *transaction) LoyaltyRewards() domain.Collection[domain.LoyaltyReward] {
	return txTable[domain.LoyaltyReward, *domain.LoyaltyReward]{table: tx.state.loyaltyRewards, tx: tx}
}

func (tx *transaction) QRCodes() domain.Collection[domain.QRCode] {
	return txTable[domain.QRCode, *domain.QRCode]{table: tx.state.qrCodes, tx: tx}
}

func (tx *transaction) Feedback() domain.Collection[domain.Feedback] {
	return txTable[domain.Feedback, *domain.Feedback]{table: tx.state.feedback, tx: tx}
}

func (tx *transaction) Notifications() domain.Collection[domain.Notification] {
	return txTable[domain.Notification, *domain.Notification]{table: tx.state.notifications, tx: tx}
}

// transactionView exposes a read-only snapshot of the state to rules and callers.
type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) TransactionView {
	return transactionView{state: state}
}

func (v transactionView) Orders() domain.Reader[domain.Order] { return v.state.orders }
func (v transactionView) MenuItems() domain.Reader[domain.MenuItem] { return v.state.menuItems }
func (v transactionView) Inventory() domain.Reader[domain.InventoryItem] { return v.state.inventory }
func (v transactionView) Tables() domain.Reader[domain.Table] { return v.state.tables }
func (v transactionView) Recipes() domain.Reader[domain.Recipe] { return v.state.recipes }
func (v transactionView) RecipeCosts() domain.Reader[domain.RecipeCostCalculation] { return v.state.recipeCosts }
func (v transactionView) Reservations() domain.Reader[domain.Reservation] { return v.state.reservations }
func (v transactionView) Waitlist() domain.Reader[domain.WaitlistEntry] { return v.state.waitlist }
func (v transactionView) StaffSchedules() domain.Reader[domain.StaffSchedule] { return v.state.schedules }
func (v transactionView) TimeClock() domain.Reader[domain.TimeClockEntry] { return v.state.timeClock }
func (v transactionView) Suppliers() domain.Reader[domain.Supplier] { return v.state.suppliers }
func (v transactionView) PurchaseOrders() domain.Reader[domain.PurchaseOrder] { return v.state.purchaseOrders }
func (v transactionView) WasteRecords() domain.Reader[domain.WasteRecord] { return v.state.wasteRecords }
func (v transactionView) Promotions() domain.Reader[domain.Promotion] { return v.state.promotions }
func (v transactionView) Customers() domain.Reader[domain.CustomerProfile] { return v.state.customers }
func (v transactionView) Expenses() domain.Reader[domain.Expense] { return v.state.expenses }
func (v transactionView) FinancialReports() domain.Reader[domain.FinancialReport] { return v.state.financialReports }
func (v transactionView) Locations() domain.Reader[domain.Location] { return v.state.locations }
func (v transactionView) LocationReports() domain.Reader[domain.MultiLocationReport] { return v.state.locationReports }
func (v transactionView) EmailCampaigns() domain.Reader[domain.EmailCampaign] { return v.state.campaigns }
func (v transactionView) EmailTemplates() domain.Reader[domain.EmailTemplate] { return v.state.templates }
func (v transactionView) Segments() domain.Reader[domain.CustomerSegment] { return v.state.segments }
func (v transactionView) Automations() domain.Reader[domain.MarketingAutomation] { return v.state.automations }
func (v transactionView) LoyaltyPrograms() domain.Reader[domain.LoyaltyProgram] { return v.state.loyaltyPrograms }
func (v transactionView) LoyaltyRewards() domain.Reader[domain.LoyaltyReward] { return v.state.loyaltyRewards }
func (v transactionView) QRCodes() domain.Reader[domain.QRCode] { return v.state.qrCodes }
func (v transactionView) Feedback() domain.Reader[domain.Feedback] { return v.state.feedback }
func (v transactionView) Notifications() domain.Reader[domain.Notification] { return v.state.notifications }

func (v transactionView) ActiveUser() (domain.User, bool) {
	if v.state.activeUser == nil {
		return domain.User{}, false
	}
	return *v.state.activeUser, true
}
