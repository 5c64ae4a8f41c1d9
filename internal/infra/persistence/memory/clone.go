package memory

import "restaurantcore/pkg/domain"

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	if m == nil {
		return nil
	}
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// same is the copy function for entities made only of value fields.
func same[T any](v T) T { return v }

func cloneOrder(o domain.Order) domain.Order {
	o.TableID = clonePtr(o.TableID)
	o.CustomerID = clonePtr(o.CustomerID)
	o.PromotionID = clonePtr(o.PromotionID)
	o.CompletedAt = clonePtr(o.CompletedAt)
	o.Claim = clonePtr(o.Claim)
	o.Delivery = clonePtr(o.Delivery)
	o.Items = cloneSlice(o.Items)
	return o
}

func cloneMenuItem(m domain.MenuItem) domain.MenuItem {
	m.Allergens = cloneSlice(m.Allergens)
	m.Tags = cloneSlice(m.Tags)
	return m
}

func cloneInventoryItem(i domain.InventoryItem) domain.InventoryItem {
	i.SupplierID = clonePtr(i.SupplierID)
	i.ExpiryDate = clonePtr(i.ExpiryDate)
	i.LastRestocked = clonePtr(i.LastRestocked)
	return i
}

func cloneTable(t domain.Table) domain.Table {
	t.CurrentOrderID = clonePtr(t.CurrentOrderID)
	t.ClearedAt = clonePtr(t.ClearedAt)
	return t
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Ingredients = cloneSlice(r.Ingredients)
	r.Instructions = cloneSlice(r.Instructions)
	return r
}

func cloneRecipeCost(c domain.RecipeCostCalculation) domain.RecipeCostCalculation {
	c.Ingredients = cloneSlice(c.Ingredients)
	return c
}

func cloneReservation(r domain.Reservation) domain.Reservation {
	r.CustomerID = clonePtr(r.CustomerID)
	r.TableID = clonePtr(r.TableID)
	return r
}

func cloneWaitlistEntry(w domain.WaitlistEntry) domain.WaitlistEntry {
	w.PreferredTime = clonePtr(w.PreferredTime)
	w.TableID = clonePtr(w.TableID)
	w.NotifiedAt = clonePtr(w.NotifiedAt)
	w.SeatedAt = clonePtr(w.SeatedAt)
	w.RemovedAt = clonePtr(w.RemovedAt)
	return w
}

func cloneTimeClockEntry(e domain.TimeClockEntry) domain.TimeClockEntry {
	e.ClockOut = clonePtr(e.ClockOut)
	e.BreakStart = clonePtr(e.BreakStart)
	e.BreakEnd = clonePtr(e.BreakEnd)
	return e
}

func cloneSupplier(s domain.Supplier) domain.Supplier {
	s.Categories = cloneSlice(s.Categories)
	return s
}

func clonePurchaseOrder(p domain.PurchaseOrder) domain.PurchaseOrder {
	p.Lines = cloneSlice(p.Lines)
	p.OrderedAt = clonePtr(p.OrderedAt)
	p.ExpectedAt = clonePtr(p.ExpectedAt)
	p.ReceivedAt = clonePtr(p.ReceivedAt)
	return p
}

func cloneCustomer(c domain.CustomerProfile) domain.CustomerProfile {
	c.LastVisit = clonePtr(c.LastVisit)
	c.Birthday = clonePtr(c.Birthday)
	c.Preferences = cloneSlice(c.Preferences)
	c.Allergies = cloneSlice(c.Allergies)
	return c
}

func cloneFinancialReport(r domain.FinancialReport) domain.FinancialReport {
	r.ExpensesByCategory = cloneMap(r.ExpensesByCategory)
	r.RevenueByType = cloneMap(r.RevenueByType)
	r.TopItems = cloneSlice(r.TopItems)
	return r
}

func cloneLocation(l domain.Location) domain.Location {
	l.OpenedAt = clonePtr(l.OpenedAt)
	return l
}

func cloneLocationReport(r domain.MultiLocationReport) domain.MultiLocationReport {
	r.Locations = cloneSlice(r.Locations)
	return r
}

func cloneEmailCampaign(c domain.EmailCampaign) domain.EmailCampaign {
	c.ScheduledAt = clonePtr(c.ScheduledAt)
	c.SentAt = clonePtr(c.SentAt)
	return c
}

func cloneSegment(s domain.CustomerSegment) domain.CustomerSegment {
	s.Criteria.LoyaltyTiers = cloneSlice(s.Criteria.LoyaltyTiers)
	s.RefreshedAt = clonePtr(s.RefreshedAt)
	return s
}

func cloneAutomation(a domain.MarketingAutomation) domain.MarketingAutomation {
	a.LastRun = clonePtr(a.LastRun)
	return a
}

func cloneLoyaltyProgram(p domain.LoyaltyProgram) domain.LoyaltyProgram {
	p.Tiers = cloneSlice(p.Tiers)
	return p
}

func cloneLoyaltyReward(r domain.LoyaltyReward) domain.LoyaltyReward {
	r.Remaining = clonePtr(r.Remaining)
	return r
}

func cloneQRCode(q domain.QRCode) domain.QRCode {
	q.TableID = clonePtr(q.TableID)
	q.LastScannedAt = clonePtr(q.LastScannedAt)
	return q
}

func cloneFeedback(f domain.Feedback) domain.Feedback {
	f.CustomerID = clonePtr(f.CustomerID)
	f.OrderID = clonePtr(f.OrderID)
	f.RespondedAt = clonePtr(f.RespondedAt)
	return f
}

func cloneNotification(n domain.Notification) domain.Notification {
	n.ReadAt = clonePtr(n.ReadAt)
	return n
}
