// Package seed loads the fixed sample dataset used to bootstrap a store.
// Names and contact details come from a faker seeded with a constant, so every
// load produces the same content.
package seed

import (
	"math"
	"math/rand"
	"time"

	"github.com/jaswdr/faker"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

// DefaultSeed drives the faker used for generated names and contacts.
const DefaultSeed int64 = 42

type loader struct {
	tx   domain.Transaction
	now  time.Time
	fake faker.Faker
	err  error
}

func add[T any](l *loader, c domain.Collection[T], v T) T {
	if l.err != nil {
		var zero T
		return zero
	}
	out, err := c.Create(v)
	if err != nil {
		l.err = err
	}
	return out
}

func ptr[T any](v T) *T { return &v }

// Load populates every collection of tx with the sample dataset. Existing
// records are kept; callers wanting a clean store reset tx first.
func Load(tx domain.Transaction, seed int64) error {
	l := &loader{
		tx:   tx,
		now:  tx.Now(),
		fake: faker.NewWithSeed(rand.NewSource(seed)),
	}
	locations := l.locations()
	suppliers := l.suppliers()
	inventory := l.inventory(suppliers)
	menu := l.menu()
	recipes := l.recipes(menu, inventory)
	tables := l.tables(locations[0])
	customers := l.customers()
	staff := l.staff(locations[0])
	if l.err == nil {
		manager := staff[0]
		tx.SetActiveUser(&domain.User{ID: manager.id, Name: manager.name, Email: manager.email, Role: manager.role, LocationID: locations[0].ID})
	}
	l.floor(tables, customers)
	l.orders(locations, tables, menu, customers, staff)
	l.purchasing(suppliers, inventory)
	l.finance(locations)
	l.marketing()
	l.guestFacing(tables, customers)
	l.derived(recipes, locations)
	return l.err
}

func (l *loader) locations() []domain.Location {
	opened := l.now.AddDate(-3, 0, 0)
	return []domain.Location{
		add(l, l.tx.Locations(), domain.Location{
			Name: "Downtown", Address: l.fake.Address().Address(), City: l.fake.Address().City(),
			Manager: l.fake.Person().Name(), Phone: l.fake.Phone().Number(), Seats: 64, Active: true, OpenedAt: &opened,
		}),
		add(l, l.tx.Locations(), domain.Location{
			Name: "Harbor", Address: l.fake.Address().Address(), City: l.fake.Address().City(),
			Manager: l.fake.Person().Name(), Phone: l.fake.Phone().Number(), Seats: 40, Active: true,
		}),
	}
}

func (l *loader) suppliers() []domain.Supplier {
	rows := []struct {
		categories []string
		lead       int
		rating     float64
	}{
		{[]string{"produce", "dairy"}, 1, 4.6},
		{[]string{"meat", "seafood"}, 2, 4.2},
		{[]string{"dry goods", "beverages"}, 5, 3.9},
	}
	out := make([]domain.Supplier, 0, len(rows))
	for _, s := range rows {
		out = append(out, add(l, l.tx.Suppliers(), domain.Supplier{
			Name:         l.fake.Company().Name(),
			ContactName:  l.fake.Person().Name(),
			Email:        l.fake.Internet().Email(),
			Phone:        l.fake.Phone().Number(),
			Categories:   s.categories,
			LeadTimeDays: s.lead,
			Rating:       s.rating,
			Active:       true,
		}))
	}
	return out
}

type stockSpec struct {
	name, category, unit string
	cost                 float64
	current, min, max    float64
	supplier             int
	area                 string
}

var stockSpecs = []stockSpec{
	{"Flour", "dry goods", "kg", 1.20, 40, 10, 100, 2, "dry store"},
	{"Mozzarella", "dairy", "kg", 9.50, 12, 5, 30, 0, "walk-in"},
	{"Tomatoes", "produce", "kg", 3.20, 18, 8, 40, 0, "walk-in"},
	{"Basil", "produce", "g", 0.04, 300, 100, 1000, 0, "walk-in"},
	{"Olive Oil", "dry goods", "l", 8.00, 6, 2, 20, 2, "dry store"},
	{"Chicken Breast", "meat", "kg", 7.80, 9, 6, 25, 1, "walk-in"},
	{"Romaine", "produce", "kg", 2.60, 4, 3, 15, 0, "walk-in"},
	{"Parmesan", "dairy", "kg", 18.00, 3, 1, 8, 0, "walk-in"},
	{"Espresso Beans", "beverages", "kg", 22.00, 5, 2, 12, 2, "dry store"},
	{"Milk", "dairy", "l", 1.10, 20, 10, 40, 0, "walk-in"},
	{"Salmon Fillet", "seafood", "kg", 24.00, 2, 4, 15, 1, "freezer"},
}

func (l *loader) inventory(suppliers []domain.Supplier) map[string]domain.InventoryItem {
	out := make(map[string]domain.InventoryItem, len(stockSpecs))
	restocked := l.now.AddDate(0, 0, -2)
	for _, s := range stockSpecs {
		item := domain.InventoryItem{
			Name: s.name, Category: s.category, Unit: s.unit, CostPerUnit: s.cost,
			CurrentStock: s.current, MinStock: s.min, MaxStock: s.max,
			LastRestocked: &restocked, StorageArea: s.area,
		}
		if s.supplier < len(suppliers) {
			item.SupplierID = ptr(suppliers[s.supplier].ID)
		}
		if s.category == "dairy" || s.category == "seafood" {
			item.ExpiryDate = ptr(l.now.AddDate(0, 0, 6))
		}
		out[s.name] = add(l, l.tx.Inventory(), item)
	}
	return out
}

func (l *loader) menu() map[string]domain.MenuItem {
	items := []domain.MenuItem{
		{Name: "Margherita Pizza", Category: "mains", Price: 14.00, PrepTimeMinutes: 15, Allergens: []string{"gluten", "dairy"}, Tags: []string{"vegetarian"}},
		{Name: "Chicken Caesar Salad", Category: "salads", Price: 12.50, PrepTimeMinutes: 10, Allergens: []string{"dairy", "egg"}},
		{Name: "Grilled Salmon", Category: "mains", Price: 24.00, PrepTimeMinutes: 20, Allergens: []string{"fish"}, Tags: []string{"gluten-free"}},
		{Name: "Bruschetta", Category: "starters", Price: 8.50, PrepTimeMinutes: 8, Allergens: []string{"gluten"}, Tags: []string{"vegan"}},
		{Name: "Cappuccino", Category: "drinks", Price: 4.20, PrepTimeMinutes: 3, Allergens: []string{"dairy"}},
		{Name: "Tiramisu", Category: "desserts", Price: 7.50, PrepTimeMinutes: 5, Allergens: []string{"dairy", "egg", "gluten"}},
	}
	out := make(map[string]domain.MenuItem, len(items))
	for _, item := range items {
		item.Available = true
		item.Description = l.fake.Lorem().Sentence(8)
		out[item.Name] = add(l, l.tx.MenuItems(), item)
	}
	return out
}

func (l *loader) recipes(menu map[string]domain.MenuItem, inv map[string]domain.InventoryItem) []domain.Recipe {
	ing := func(name string, qty float64, unit string) domain.RecipeIngredient {
		return domain.RecipeIngredient{InventoryItemID: inv[name].ID, Quantity: qty, Unit: unit}
	}
	recipes := []domain.Recipe{
		{Name: "Margherita Pizza", MenuItemID: menu["Margherita Pizza"].ID, PrepTimeMinutes: 10, CookTimeMinutes: 8, Servings: 1,
			Ingredients: []domain.RecipeIngredient{ing("Flour", 250, "g"), ing("Mozzarella", 150, "g"), ing("Tomatoes", 120, "g"), ing("Basil", 5, "g"), ing("Olive Oil", 15, "ml")},
			Instructions: []string{"Stretch dough", "Top with sauce and cheese", "Bake at 260C"}},
		{Name: "Chicken Caesar Salad", MenuItemID: menu["Chicken Caesar Salad"].ID, PrepTimeMinutes: 8, CookTimeMinutes: 12, Servings: 1,
			Ingredients: []domain.RecipeIngredient{ing("Chicken Breast", 180, "g"), ing("Romaine", 150, "g"), ing("Parmesan", 30, "g"), ing("Olive Oil", 20, "ml")}},
		{Name: "Grilled Salmon", MenuItemID: menu["Grilled Salmon"].ID, PrepTimeMinutes: 5, CookTimeMinutes: 15, Servings: 1,
			Ingredients: []domain.RecipeIngredient{ing("Salmon Fillet", 200, "g"), ing("Olive Oil", 10, "ml"), ing("Basil", 3, "g")}},
		{Name: "Cappuccino", MenuItemID: menu["Cappuccino"].ID, PrepTimeMinutes: 2, CookTimeMinutes: 1, Servings: 1,
			Ingredients: []domain.RecipeIngredient{ing("Espresso Beans", 18, "g"), ing("Milk", 150, "ml")}},
	}
	out := make([]domain.Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, add(l, l.tx.Recipes(), r))
	}
	return out
}

func (l *loader) tables(loc domain.Location) []domain.Table {
	capacities := []int{2, 2, 4, 4, 4, 6, 6, 8}
	out := make([]domain.Table, 0, len(capacities))
	for i, c := range capacities {
		section := "main"
		if i >= 5 {
			section = "patio"
		}
		out = append(out, add(l, l.tx.Tables(), domain.Table{
			Number: i + 1, Capacity: c, Section: section, LocationID: loc.ID, Status: domain.TableAvailable,
		}))
	}
	return out
}

func (l *loader) customers() []domain.CustomerProfile {
	tiers := []struct {
		spent  float64
		visits int
		points int
		tier   string
	}{
		{1250, 28, 1250, "gold"},
		{640, 14, 640, "silver"},
		{310, 7, 310, "silver"},
		{95, 3, 95, "bronze"},
		{42, 1, 42, "bronze"},
		{0, 0, 0, "bronze"},
	}
	out := make([]domain.CustomerProfile, 0, len(tiers))
	for i, t := range tiers {
		c := domain.CustomerProfile{
			Name:           l.fake.Person().Name(),
			Email:          l.fake.Internet().Email(),
			Phone:          l.fake.Phone().Number(),
			TotalSpent:     t.spent,
			VisitCount:     t.visits,
			LoyaltyPoints:  t.points,
			LoyaltyTier:    t.tier,
			MarketingOptIn: i%2 == 0,
		}
		if t.visits > 0 {
			c.LastVisit = ptr(l.now.AddDate(0, 0, -(i*9 + 1)))
		}
		if i == 1 {
			c.Allergies = []string{"shellfish"}
			c.Preferences = []string{"window seat"}
		}
		out = append(out, add(l, l.tx.Customers(), c))
	}
	return out
}

type staffMember struct {
	id, name, email, role string
}

func (l *loader) staff(loc domain.Location) []staffMember {
	roles := []string{"manager", "server", "server", "chef"}
	members := make([]staffMember, 0, len(roles))
	for _, role := range roles {
		members = append(members, staffMember{
			id:    l.fake.UUID().V4(),
			name:  l.fake.Person().Name(),
			email: l.fake.Internet().Email(),
			role:  role,
		})
	}

	day := time.Date(l.now.Year(), l.now.Month(), l.now.Day(), 0, 0, 0, 0, l.now.Location())
	for i, m := range members {
		start := day.Add(time.Duration(10+i) * time.Hour)
		add(l, l.tx.StaffSchedules(), domain.StaffSchedule{
			StaffID: m.id, StaffName: m.name, Role: m.role, LocationID: loc.ID,
			ShiftStart: start, ShiftEnd: start.Add(8 * time.Hour),
		})

		yesterdayIn := start.AddDate(0, 0, -1)
		entry := domain.TimeClockEntry{UserID: m.id, ClockIn: yesterdayIn}
		entry.BreakStart = ptr(yesterdayIn.Add(4 * time.Hour))
		entry.EndBreakAt(yesterdayIn.Add(4*time.Hour + 30*time.Minute))
		entry.CloseAt(yesterdayIn.Add(8 * time.Hour))
		add(l, l.tx.TimeClock(), entry)
	}
	return members
}

func (l *loader) floor(tables []domain.Table, customers []domain.CustomerProfile) {
	add(l, l.tx.Reservations(), domain.Reservation{
		CustomerName: customers[0].Name, CustomerID: ptr(customers[0].ID), Phone: customers[0].Phone,
		PartySize: 4, TableID: ptr(tables[3].ID), StartsAt: l.now.Add(45 * time.Minute), DurationMinutes: 90,
		Status: domain.ReservationConfirmed, Notes: "anniversary",
	})
	add(l, l.tx.Reservations(), domain.Reservation{
		CustomerName: customers[1].Name, CustomerID: ptr(customers[1].ID), Email: customers[1].Email,
		PartySize: 6, TableID: ptr(tables[5].ID), StartsAt: l.now.Add(26 * time.Hour), DurationMinutes: 120,
		Status: domain.ReservationPending,
	})
	add(l, l.tx.Reservations(), domain.Reservation{
		CustomerName: l.fake.Person().Name(), Phone: l.fake.Phone().Number(),
		PartySize: 2, StartsAt: l.now.Add(-26 * time.Hour), DurationMinutes: 60, Status: domain.ReservationCompleted,
	})

	add(l, l.tx.Waitlist(), domain.WaitlistEntry{
		CustomerName: l.fake.Person().Name(), Phone: l.fake.Phone().Number(), PartySize: 3,
		Priority: domain.PriorityStandard, Status: domain.WaitlistWaiting, QuotedWaitMinutes: 15,
		JoinedAt: l.now.Add(-10 * time.Minute),
	})
	add(l, l.tx.Waitlist(), domain.WaitlistEntry{
		CustomerName: l.fake.Person().Name(), Phone: l.fake.Phone().Number(), PartySize: 2,
		Priority: domain.PriorityAccess, Status: domain.WaitlistWaiting, QuotedWaitMinutes: 30,
		JoinedAt: l.now.Add(-4 * time.Minute),
	})
}

func (l *loader) orders(locations []domain.Location, tables []domain.Table, menu map[string]domain.MenuItem, customers []domain.CustomerProfile, staff []staffMember) {
	line := func(name string, qty int, status domain.ItemStatus) domain.OrderItem {
		m := menu[name]
		return domain.OrderItem{MenuItemID: m.ID, Name: m.Name, Quantity: qty, UnitPrice: m.Price, Status: status}
	}
	type plannedOrder struct {
		table    int
		customer int
		location int
		kind     domain.OrderType
		status   domain.OrderStatus
		payment  domain.PaymentStatus
		age      time.Duration
		tip      float64
		items    []domain.OrderItem
	}
	plans := []plannedOrder{
		{0, 0, 0, domain.OrderDineIn, domain.OrderReady, domain.PaymentPending, 25 * time.Minute, 0,
			[]domain.OrderItem{line("Margherita Pizza", 1, domain.ItemReady), line("Cappuccino", 2, domain.ItemReady)}},
		{2, -1, 0, domain.OrderDineIn, domain.OrderPreparing, domain.PaymentPending, 12 * time.Minute, 0,
			[]domain.OrderItem{line("Grilled Salmon", 2, domain.ItemPreparing), line("Bruschetta", 1, domain.ItemReady)}},
		{-1, 1, 0, domain.OrderTakeout, domain.OrderServed, domain.PaymentPaid, 3 * time.Hour, 2,
			[]domain.OrderItem{line("Chicken Caesar Salad", 2, domain.ItemServed)}},
		{-1, 2, 1, domain.OrderTypeDelivery, domain.OrderServed, domain.PaymentPaid, 5 * time.Hour, 4,
			[]domain.OrderItem{line("Margherita Pizza", 2, domain.ItemServed), line("Tiramisu", 2, domain.ItemServed)}},
		{-1, -1, 1, domain.OrderTakeout, domain.OrderPending, domain.PaymentPending, 2 * time.Minute, 0,
			[]domain.OrderItem{line("Cappuccino", 1, domain.ItemPending)}},
		{-1, 3, 0, domain.OrderTakeout, domain.OrderCancelled, domain.PaymentPending, 6 * time.Hour, 0,
			[]domain.OrderItem{line("Grilled Salmon", 1, domain.ItemPending)}},
	}
	for i, s := range plans {
		o := domain.Order{
			Type: s.kind, Status: s.status, PaymentStatus: s.payment,
			LocationID: locations[s.location].ID, OrderTime: l.now.Add(-s.age),
			Items: s.items, Tip: s.tip,
		}
		if s.customer >= 0 {
			o.CustomerID = ptr(customers[s.customer].ID)
		}
		if s.table >= 0 {
			o.TableID = ptr(tables[s.table].ID)
		}
		if s.payment == domain.PaymentPaid {
			o.PaymentMethod = "card"
		}
		o.RecalculateTotals()
		o.Tax = salesTax(o.Subtotal)
		o.RecalculateTotals()
		if s.status == domain.OrderServed {
			o.Status = domain.OrderReady
		}
		created := add(l, l.tx.Orders(), o)
		if s.status == domain.OrderServed && l.err == nil {
			created = l.deliver(created, staff[1+i%2].id)
		}
		if s.table >= 0 && l.err == nil && s.status != domain.OrderCancelled {
			_, l.err = l.tx.Tables().Update(tables[s.table].ID, func(t *domain.Table) error {
				t.Status = domain.TableOccupied
				t.CurrentOrderID = ptr(created.ID)
				return nil
			})
		}
	}
}

// deliver claims a ready order for staffID and serves it, as ClaimOrder and
// MarkDelivered would.
func (l *loader) deliver(o domain.Order, staffID string) domain.Order {
	claimedAt := o.OrderTime.Add(30 * time.Minute)
	deliveredAt := o.OrderTime.Add(40 * time.Minute)
	o, l.err = l.tx.Orders().Update(o.ID, func(o *domain.Order) error {
		o.Claim = &domain.OrderClaim{StaffID: staffID, ClaimedAt: claimedAt}
		return nil
	})
	if l.err != nil {
		return o
	}
	o, l.err = l.tx.Orders().Update(o.ID, func(o *domain.Order) error {
		o.Status = domain.OrderServed
		o.Delivery = &domain.OrderDelivery{StaffID: staffID, DeliveredAt: deliveredAt}
		o.CompletedAt = ptr(deliveredAt)
		return nil
	})
	return o
}

// SalesTaxRate is applied to seeded order subtotals.
const SalesTaxRate = 0.08

func salesTax(subtotal float64) float64 {
	return math.Round(subtotal*SalesTaxRate*100) / 100
}

func (l *loader) purchasing(suppliers []domain.Supplier, inv map[string]domain.InventoryItem) {
	ordered := l.now.AddDate(0, 0, -1)
	lines := []domain.PurchaseOrderLine{
		{InventoryItemID: inv["Salmon Fillet"].ID, Quantity: 8, UnitCost: 23.50},
		{InventoryItemID: inv["Chicken Breast"].ID, Quantity: 10, UnitCost: 7.80},
	}
	var total float64
	for _, ln := range lines {
		total += ln.Quantity * ln.UnitCost
	}
	add(l, l.tx.PurchaseOrders(), domain.PurchaseOrder{
		SupplierID: suppliers[1].ID, Lines: lines, Status: domain.PurchaseOrdered,
		OrderedAt: &ordered, ExpectedAt: ptr(ordered.AddDate(0, 0, suppliers[1].LeadTimeDays)), Total: total,
	})
	add(l, l.tx.PurchaseOrders(), domain.PurchaseOrder{
		SupplierID: suppliers[0].ID, Status: domain.PurchaseDraft,
		Lines: []domain.PurchaseOrderLine{{InventoryItemID: inv["Romaine"].ID, Quantity: 6, UnitCost: 2.60}},
		Total: 15.60, Notes: "weekly produce",
	})
	tomatoes := inv["Tomatoes"]
	add(l, l.tx.WasteRecords(), domain.WasteRecord{
		InventoryItemID: tomatoes.ID, Quantity: 1.5, Unit: tomatoes.Unit, Reason: "spoiled",
		Cost: 1.5 * tomatoes.CostPerUnit, RecordedAt: l.now.Add(-20 * time.Hour),
	})
}

func (l *loader) finance(locations []domain.Location) {
	expenses := []domain.Expense{
		{Category: "rent", Amount: 4200, Recurring: true, LocationID: locations[0].ID},
		{Category: "rent", Amount: 3100, Recurring: true, LocationID: locations[1].ID},
		{Category: "utilities", Amount: 640, LocationID: locations[0].ID},
		{Category: "food", Amount: 1850, LocationID: locations[0].ID},
		{Category: "marketing", Amount: 300, LocationID: locations[1].ID},
	}
	for i, e := range expenses {
		e.Date = l.now.AddDate(0, 0, -i)
		e.Vendor = l.fake.Company().Name()
		e.PaymentMethod = "bank transfer"
		add(l, l.tx.Expenses(), e)
	}
}

func (l *loader) marketing() {
	welcome := add(l, l.tx.EmailTemplates(), domain.EmailTemplate{
		Name: "Welcome", Subject: "Welcome to the table", Body: l.fake.Lorem().Sentence(20), Category: "onboarding",
	})
	winback := add(l, l.tx.EmailTemplates(), domain.EmailTemplate{
		Name: "We miss you", Subject: "Your next dessert is on us", Body: l.fake.Lorem().Sentence(20), Category: "retention",
	})
	regulars := add(l, l.tx.Segments(), domain.CustomerSegment{
		Name: "Regulars", Description: "Frequent guests", Criteria: domain.SegmentCriteria{MinVisits: 5},
	})
	highValue := add(l, l.tx.Segments(), domain.CustomerSegment{
		Name: "High value", Description: "Guests who spent over 300", Criteria: domain.SegmentCriteria{MinTotalSpent: 300},
	})
	add(l, l.tx.EmailCampaigns(), domain.EmailCampaign{
		Name: "Spring menu", Subject: "New dishes this spring", TemplateID: welcome.ID, SegmentID: regulars.ID,
		Status: domain.CampaignScheduled, ScheduledAt: ptr(l.now.AddDate(0, 0, 3)),
	})
	add(l, l.tx.Automations(), domain.MarketingAutomation{
		Name: "Welcome series", Trigger: "first_visit", TemplateID: welcome.ID, DelayHours: 2, Status: domain.AutomationActive,
	})
	add(l, l.tx.Automations(), domain.MarketingAutomation{
		Name: "Win back", Trigger: "inactive_30_days", TemplateID: winback.ID, SegmentID: highValue.ID, DelayHours: 24, Status: domain.AutomationPaused,
	})
	program := add(l, l.tx.LoyaltyPrograms(), domain.LoyaltyProgram{
		Name: "Table Club", PointsPerDollar: 1, Active: true,
		Tiers: []domain.LoyaltyTier{{Name: "bronze", MinPoints: 0, Multiplier: 1}, {Name: "silver", MinPoints: 250, Multiplier: 1.25}, {Name: "gold", MinPoints: 1000, Multiplier: 1.5}},
	})
	add(l, l.tx.LoyaltyRewards(), domain.LoyaltyReward{ProgramID: program.ID, Name: "Free dessert", PointsCost: 150, Available: true})
	add(l, l.tx.LoyaltyRewards(), domain.LoyaltyReward{ProgramID: program.ID, Name: "Chef's table dinner", PointsCost: 1000, Available: true, Remaining: ptr(2)})
	add(l, l.tx.Promotions(), domain.Promotion{
		Name: "Lunch special", Code: "LUNCH10", DiscountType: domain.DiscountPercentage, DiscountValue: 10,
		MinOrderAmount: 15, MaxDiscount: 8, StartDate: l.now.AddDate(0, 0, -7), EndDate: l.now.AddDate(0, 1, 0), Active: true,
	})
	add(l, l.tx.Promotions(), domain.Promotion{
		Name: "Five off", Code: "FIVEOFF", DiscountType: domain.DiscountFixed, DiscountValue: 5,
		MinOrderAmount: 25, StartDate: l.now.AddDate(0, 0, -1), EndDate: l.now.AddDate(0, 0, 14), UsageLimit: 100, Active: true,
	})
}

func (l *loader) guestFacing(tables []domain.Table, customers []domain.CustomerProfile) {
	add(l, l.tx.QRCodes(), domain.QRCode{Label: "Digital menu", Kind: domain.QRMenu, URL: "https://menu.restaurantcore.local/", Active: true})
	for _, t := range tables[:3] {
		add(l, l.tx.QRCodes(), domain.QRCode{Label: "Table order", Kind: domain.QRTable, TableID: ptr(t.ID), Active: true})
	}
	add(l, l.tx.Feedback(), domain.Feedback{
		CustomerID: ptr(customers[1].ID), Rating: 5, Category: "food", Comment: l.fake.Lorem().Sentence(10), Status: domain.FeedbackNew,
	})
	add(l, l.tx.Feedback(), domain.Feedback{
		CustomerID: ptr(customers[3].ID), Rating: 2, Category: "service", Comment: l.fake.Lorem().Sentence(10), Status: domain.FeedbackNew,
	})
	add(l, l.tx.Notifications(), domain.Notification{
		Kind: domain.NotifySystem, Title: "Store initialized", Message: "Sample data loaded",
	})
}

func (l *loader) derived(recipes []domain.Recipe, locations []domain.Location) {
	if l.err != nil {
		return
	}
	snap := l.tx.Snapshot()
	inventory := analytics.IndexInventory(snap.Inventory().List())
	for _, r := range recipes {
		m, ok := snap.MenuItems().Get(r.MenuItemID)
		if !ok {
			continue
		}
		calc, err := analytics.CostRecipe(r, m, inventory, analytics.DefaultCostingPolicy(), l.now)
		if err != nil {
			l.err = err
			return
		}
		add(l, l.tx.RecipeCosts(), calc)
	}

	day := time.Date(l.now.Year(), l.now.Month(), l.now.Day(), 0, 0, 0, 0, l.now.Location())
	w := analytics.Window{Start: day.AddDate(0, 0, -6), End: day.AddDate(0, 0, 1)}
	orders, expenses := snap.Orders().List(), snap.Expenses().List()
	add(l, l.tx.FinancialReports(), analytics.FinancialSummary(domain.PeriodWeekly, w, orders, expenses, l.now))
	add(l, l.tx.LocationReports(), analytics.RankLocations(domain.PeriodWeekly, w, locations, orders, expenses, l.now))
}
