package core

import (
	"context"

	"restaurantcore/pkg/domain"
)

// Generic create, update, save and delete operations for every collection.
// Orders, stock, waitlist and reports also have named verbs that enforce
// cross-entity invariants; the rules engine guards the generic paths.

// CreateOrder persists an order.
func (s *Service) CreateOrder(ctx context.Context, v domain.Order) (domain.Order, Result, error) {
	return createRecord(ctx, s, "create_order", domain.EntityOrder, Transaction.Orders, v)
}

// UpdateOrder applies mutator to an order.
func (s *Service) UpdateOrder(ctx context.Context, id string, mutator func(*domain.Order) error) (domain.Order, Result, error) {
	return updateRecord(ctx, s, "update_order", domain.EntityOrder, Transaction.Orders, id, mutator)
}

// SaveOrder replaces an order when its revision is current, or creates it.
func (s *Service) SaveOrder(ctx context.Context, v domain.Order) (domain.Order, Result, error) {
	return saveRecord(ctx, s, "save_order", domain.EntityOrder, Transaction.Orders, v)
}

// DeleteOrder removes an order.
func (s *Service) DeleteOrder(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_order", domain.EntityOrder, Transaction.Orders, id)
}

// CreateMenuItem persists a menu item.
func (s *Service) CreateMenuItem(ctx context.Context, v domain.MenuItem) (domain.MenuItem, Result, error) {
	return createRecord(ctx, s, "create_menu_item", domain.EntityMenuItem, Transaction.MenuItems, v)
}

// UpdateMenuItem applies mutator to a menu item.
func (s *Service) UpdateMenuItem(ctx context.Context, id string, mutator func(*domain.MenuItem) error) (domain.MenuItem, Result, error) {
	return updateRecord(ctx, s, "update_menu_item", domain.EntityMenuItem, Transaction.MenuItems, id, mutator)
}

// SaveMenuItem replaces a menu item when its revision is current, or creates it.
func (s *Service) SaveMenuItem(ctx context.Context, v domain.MenuItem) (domain.MenuItem, Result, error) {
	return saveRecord(ctx, s, "save_menu_item", domain.EntityMenuItem, Transaction.MenuItems, v)
}

// DeleteMenuItem removes a menu item.
func (s *Service) DeleteMenuItem(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_menu_item", domain.EntityMenuItem, Transaction.MenuItems, id)
}

// CreateInventoryItem persists an inventory item.
func (s *Service) CreateInventoryItem(ctx context.Context, v domain.InventoryItem) (domain.InventoryItem, Result, error) {
	return createRecord(ctx, s, "create_inventory_item", domain.EntityInventoryItem, Transaction.Inventory, v)
}

// UpdateInventoryItem applies mutator to an inventory item.
func (s *Service) UpdateInventoryItem(ctx context.Context, id string, mutator func(*domain.InventoryItem) error) (domain.InventoryItem, Result, error) {
	return updateRecord(ctx, s, "update_inventory_item", domain.EntityInventoryItem, Transaction.Inventory, id, mutator)
}

// SaveInventoryItem replaces an inventory item when its revision is current, or creates it.
func (s *Service) SaveInventoryItem(ctx context.Context, v domain.InventoryItem) (domain.InventoryItem, Result, error) {
	return saveRecord(ctx, s, "save_inventory_item", domain.EntityInventoryItem, Transaction.Inventory, v)
}

// DeleteInventoryItem removes an inventory item.
func (s *Service) DeleteInventoryItem(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_inventory_item", domain.EntityInventoryItem, Transaction.Inventory, id)
}

// CreateTable persists a dining table.
func (s *Service) CreateTable(ctx context.Context, v domain.Table) (domain.Table, Result, error) {
	return createRecord(ctx, s, "create_table", domain.EntityTable, Transaction.Tables, v)
}

// UpdateTable applies mutator to a dining table.
func (s *Service) UpdateTable(ctx context.Context, id string, mutator func(*domain.Table) error) (domain.Table, Result, error) {
	return updateRecord(ctx, s, "update_table", domain.EntityTable, Transaction.Tables, id, mutator)
}

// SaveTable replaces a dining table when its revision is current, or creates it.
func (s *Service) SaveTable(ctx context.Context, v domain.Table) (domain.Table, Result, error) {
	return saveRecord(ctx, s, "save_table", domain.EntityTable, Transaction.Tables, v)
}

// DeleteTable removes a dining table.
func (s *Service) DeleteTable(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_table", domain.EntityTable, Transaction.Tables, id)
}

// CreateRecipe persists a recipe.
func (s *Service) CreateRecipe(ctx context.Context, v domain.Recipe) (domain.Recipe, Result, error) {
	return createRecord(ctx, s, "create_recipe", domain.EntityRecipe, Transaction.Recipes, v)
}

// UpdateRecipe applies mutator to a recipe.
func (s *Service) UpdateRecipe(ctx context.Context, id string, mutator func(*domain.Recipe) error) (domain.Recipe, Result, error) {
	return updateRecord(ctx, s, "update_recipe", domain.EntityRecipe, Transaction.Recipes, id, mutator)
}

// SaveRecipe replaces a recipe when its revision is current, or creates it.
func (s *Service) SaveRecipe(ctx context.Context, v domain.Recipe) (domain.Recipe, Result, error) {
	return saveRecord(ctx, s, "save_recipe", domain.EntityRecipe, Transaction.Recipes, v)
}

// DeleteRecipe removes a recipe.
func (s *Service) DeleteRecipe(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_recipe", domain.EntityRecipe, Transaction.Recipes, id)
}

// DeleteRecipeCost removes a recipe costing.
func (s *Service) DeleteRecipeCost(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_recipe_cost", domain.EntityRecipeCost, Transaction.RecipeCosts, id)
}

// CreateReservation persists a reservation.
func (s *Service) CreateReservation(ctx context.Context, v domain.Reservation) (domain.Reservation, Result, error) {
	return createRecord(ctx, s, "create_reservation", domain.EntityReservation, Transaction.Reservations, v)
}

// UpdateReservation applies mutator to a reservation.
func (s *Service) UpdateReservation(ctx context.Context, id string, mutator func(*domain.Reservation) error) (domain.Reservation, Result, error) {
	return updateRecord(ctx, s, "update_reservation", domain.EntityReservation, Transaction.Reservations, id, mutator)
}

// SaveReservation replaces a reservation when its revision is current, or creates it.
func (s *Service) SaveReservation(ctx context.Context, v domain.Reservation) (domain.Reservation, Result, error) {
	return saveRecord(ctx, s, "save_reservation", domain.EntityReservation, Transaction.Reservations, v)
}

// DeleteReservation removes a reservation.
func (s *Service) DeleteReservation(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_reservation", domain.EntityReservation, Transaction.Reservations, id)
}

// CreateWaitlistEntry persists a waitlist entry.
func (s *Service) CreateWaitlistEntry(ctx context.Context, v domain.WaitlistEntry) (domain.WaitlistEntry, Result, error) {
	return createRecord(ctx, s, "create_waitlist_entry", domain.EntityWaitlistEntry, Transaction.Waitlist, v)
}

// UpdateWaitlistEntry applies mutator to a waitlist entry.
func (s *Service) UpdateWaitlistEntry(ctx context.Context, id string, mutator func(*domain.WaitlistEntry) error) (domain.WaitlistEntry, Result, error) {
	return updateRecord(ctx, s, "update_waitlist_entry", domain.EntityWaitlistEntry, Transaction.Waitlist, id, mutator)
}

// SaveWaitlistEntry replaces a waitlist entry when its revision is current, or creates it.
func (s *Service) SaveWaitlistEntry(ctx context.Context, v domain.WaitlistEntry) (domain.WaitlistEntry, Result, error) {
	return saveRecord(ctx, s, "save_waitlist_entry", domain.EntityWaitlistEntry, Transaction.Waitlist, v)
}

// DeleteWaitlistEntry removes a waitlist entry.
func (s *Service) DeleteWaitlistEntry(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_waitlist_entry", domain.EntityWaitlistEntry, Transaction.Waitlist, id)
}

// CreateStaffSchedule persists a shift assignment.
func (s *Service) CreateStaffSchedule(ctx context.Context, v domain.StaffSchedule) (domain.StaffSchedule, Result, error) {
	return createRecord(ctx, s, "create_staff_schedule", domain.EntityStaffSchedule, Transaction.StaffSchedules, v)
}

// UpdateStaffSchedule applies mutator to a shift assignment.
func (s *Service) UpdateStaffSchedule(ctx context.Context, id string, mutator func(*domain.StaffSchedule) error) (domain.StaffSchedule, Result, error) {
	return updateRecord(ctx, s, "update_staff_schedule", domain.EntityStaffSchedule, Transaction.StaffSchedules, id, mutator)
}

// SaveStaffSchedule replaces a shift assignment when its revision is current, or creates it.
func (s *Service) SaveStaffSchedule(ctx context.Context, v domain.StaffSchedule) (domain.StaffSchedule, Result, error) {
	return saveRecord(ctx, s, "save_staff_schedule", domain.EntityStaffSchedule, Transaction.StaffSchedules, v)
}

// DeleteStaffSchedule removes a shift assignment.
func (s *Service) DeleteStaffSchedule(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_staff_schedule", domain.EntityStaffSchedule, Transaction.StaffSchedules, id)
}

// CreateTimeClockEntry persists a time-clock entry.
func (s *Service) CreateTimeClockEntry(ctx context.Context, v domain.TimeClockEntry) (domain.TimeClockEntry, Result, error) {
	return createRecord(ctx, s, "create_time_clock_entry", domain.EntityTimeClockEntry, Transaction.TimeClock, v)
}

// UpdateTimeClockEntry applies mutator to a time-clock entry.
func (s *Service) UpdateTimeClockEntry(ctx context.Context, id string, mutator func(*domain.TimeClockEntry) error) (domain.TimeClockEntry, Result, error) {
	return updateRecord(ctx, s, "update_time_clock_entry", domain.EntityTimeClockEntry, Transaction.TimeClock, id, mutator)
}

// SaveTimeClockEntry replaces a time-clock entry when its revision is current, or creates it.
func (s *Service) SaveTimeClockEntry(ctx context.Context, v domain.TimeClockEntry) (domain.TimeClockEntry, Result, error) {
	return saveRecord(ctx, s, "save_time_clock_entry", domain.EntityTimeClockEntry, Transaction.TimeClock, v)
}

// DeleteTimeClockEntry removes a time-clock entry.
func (s *Service) DeleteTimeClockEntry(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_time_clock_entry", domain.EntityTimeClockEntry, Transaction.TimeClock, id)
}

// CreateSupplier persists a supplier.
func (s *Service) CreateSupplier(ctx context.Context, v domain.Supplier) (domain.Supplier, Result, error) {
	return createRecord(ctx, s, "create_supplier", domain.EntitySupplier, Transaction.Suppliers, v)
}

// UpdateSupplier applies mutator to a supplier.
func (s *Service) UpdateSupplier(ctx context.Context, id string, mutator func(*domain.Supplier) error) (domain.Supplier, Result, error) {
	return updateRecord(ctx, s, "update_supplier", domain.EntitySupplier, Transaction.Suppliers, id, mutator)
}

// SaveSupplier replaces a supplier when its revision is current, or creates it.
func (s *Service) SaveSupplier(ctx context.Context, v domain.Supplier) (domain.Supplier, Result, error) {
	return saveRecord(ctx, s, "save_supplier", domain.EntitySupplier, Transaction.Suppliers, v)
}

// DeleteSupplier removes a supplier.
func (s *Service) DeleteSupplier(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_supplier", domain.EntitySupplier, Transaction.Suppliers, id)
}

// CreatePurchaseOrder persists a purchase order.
func (s *Service) CreatePurchaseOrder(ctx context.Context, v domain.PurchaseOrder) (domain.PurchaseOrder, Result, error) {
	return createRecord(ctx, s, "create_purchase_order", domain.EntityPurchaseOrder, Transaction.PurchaseOrders, v)
}

// UpdatePurchaseOrder applies mutator to a purchase order.
func (s *Service) UpdatePurchaseOrder(ctx context.Context, id string, mutator func(*domain.PurchaseOrder) error) (domain.PurchaseOrder, Result, error) {
	return updateRecord(ctx, s, "update_purchase_order", domain.EntityPurchaseOrder, Transaction.PurchaseOrders, id, mutator)
}

// SavePurchaseOrder replaces a purchase order when its revision is current, or creates it.
func (s *Service) SavePurchaseOrder(ctx context.Context, v domain.PurchaseOrder) (domain.PurchaseOrder, Result, error) {
	return saveRecord(ctx, s, "save_purchase_order", domain.EntityPurchaseOrder, Transaction.PurchaseOrders, v)
}

// DeletePurchaseOrder removes a purchase order.
func (s *Service) DeletePurchaseOrder(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_purchase_order", domain.EntityPurchaseOrder, Transaction.PurchaseOrders, id)
}

// CreateWasteRecord persists a waste record.
func (s *Service) CreateWasteRecord(ctx context.Context, v domain.WasteRecord) (domain.WasteRecord, Result, error) {
	return createRecord(ctx, s, "create_waste_record", domain.EntityWasteRecord, Transaction.WasteRecords, v)
}

// UpdateWasteRecord applies mutator to a waste record.
func (s *Service) UpdateWasteRecord(ctx context.Context, id string, mutator func(*domain.WasteRecord) error) (domain.WasteRecord, Result, error) {
	return updateRecord(ctx, s, "update_waste_record", domain.EntityWasteRecord, Transaction.WasteRecords, id, mutator)
}

// SaveWasteRecord replaces a waste record when its revision is current, or creates it.
func (s *Service) SaveWasteRecord(ctx context.Context, v domain.WasteRecord) (domain.WasteRecord, Result, error) {
	return saveRecord(ctx, s, "save_waste_record", domain.EntityWasteRecord, Transaction.WasteRecords, v)
}

// DeleteWasteRecord removes a waste record.
func (s *Service) DeleteWasteRecord(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_waste_record", domain.EntityWasteRecord, Transaction.WasteRecords, id)
}

// CreatePromotion persists a promotion.
func (s *Service) CreatePromotion(ctx context.Context, v domain.Promotion) (domain.Promotion, Result, error) {
	return createRecord(ctx, s, "create_promotion", domain.EntityPromotion, Transaction.Promotions, v)
}

// UpdatePromotion applies mutator to a promotion.
func (s *Service) UpdatePromotion(ctx context.Context, id string, mutator func(*domain.Promotion) error) (domain.Promotion, Result, error) {
	return updateRecord(ctx, s, "update_promotion", domain.EntityPromotion, Transaction.Promotions, id, mutator)
}

// SavePromotion replaces a promotion when its revision is current, or creates it.
func (s *Service) SavePromotion(ctx context.Context, v domain.Promotion) (domain.Promotion, Result, error) {
	return saveRecord(ctx, s, "save_promotion", domain.EntityPromotion, Transaction.Promotions, v)
}

// DeletePromotion removes a promotion.
func (s *Service) DeletePromotion(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_promotion", domain.EntityPromotion, Transaction.Promotions, id)
}

// CreateCustomer persists a customer profile.
func (s *Service) CreateCustomer(ctx context.Context, v domain.CustomerProfile) (domain.CustomerProfile, Result, error) {
	return createRecord(ctx, s, "create_customer", domain.EntityCustomerProfile, Transaction.Customers, v)
}

// UpdateCustomer applies mutator to a customer profile.
func (s *Service) UpdateCustomer(ctx context.Context, id string, mutator func(*domain.CustomerProfile) error) (domain.CustomerProfile, Result, error) {
	return updateRecord(ctx, s, "update_customer", domain.EntityCustomerProfile, Transaction.Customers, id, mutator)
}

// SaveCustomer replaces a customer profile when its revision is current, or creates it.
func (s *Service) SaveCustomer(ctx context.Context, v domain.CustomerProfile) (domain.CustomerProfile, Result, error) {
	return saveRecord(ctx, s, "save_customer", domain.EntityCustomerProfile, Transaction.Customers, v)
}

// DeleteCustomer removes a customer profile.
func (s *Service) DeleteCustomer(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_customer", domain.EntityCustomerProfile, Transaction.Customers, id)
}

// CreateExpense persists an expense.
func (s *Service) CreateExpense(ctx context.Context, v domain.Expense) (domain.Expense, Result, error) {
	return createRecord(ctx, s, "create_expense", domain.EntityExpense, Transaction.Expenses, v)
}

// UpdateExpense applies mutator to an expense.
func (s *Service) UpdateExpense(ctx context.Context, id string, mutator func(*domain.Expense) error) (domain.Expense, Result, error) {
	return updateRecord(ctx, s, "update_expense", domain.EntityExpense, Transaction.Expenses, id, mutator)
}

// SaveExpense replaces an expense when its revision is current, or creates it.
func (s *Service) SaveExpense(ctx context.Context, v domain.Expense) (domain.Expense, Result, error) {
	return saveRecord(ctx, s, "save_expense", domain.EntityExpense, Transaction.Expenses, v)
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_expense", domain.EntityExpense, Transaction.Expenses, id)
}

// DeleteFinancialReport removes a financial report.
func (s *Service) DeleteFinancialReport(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_financial_report", domain.EntityFinancialReport, Transaction.FinancialReports, id)
}

// CreateLocation persists a location.
func (s *Service) CreateLocation(ctx context.Context, v domain.Location) (domain.Location, Result, error) {
	return createRecord(ctx, s, "create_location", domain.EntityLocation, Transaction.Locations, v)
}

// UpdateLocation applies mutator to a location.
func (s *Service) UpdateLocation(ctx context.Context, id string, mutator func(*domain.Location) error) (domain.Location, Result, error) {
	return updateRecord(ctx, s, "update_location", domain.EntityLocation, Transaction.Locations, id, mutator)
}

// SaveLocation replaces a location when its revision is current, or creates it.
func (s *Service) SaveLocation(ctx context.Context, v domain.Location) (domain.Location, Result, error) {
	return saveRecord(ctx, s, "save_location", domain.EntityLocation, Transaction.Locations, v)
}

// DeleteLocation removes a location.
func (s *Service) DeleteLocation(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_location", domain.EntityLocation, Transaction.Locations, id)
}

// DeleteLocationReport removes a multi-location report.
func (s *Service) DeleteLocationReport(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_location_report", domain.EntityMultiLocationReport, Transaction.LocationReports, id)
}

// CreateEmailCampaign persists an email campaign.
func (s *Service) CreateEmailCampaign(ctx context.Context, v domain.EmailCampaign) (domain.EmailCampaign, Result, error) {
	return createRecord(ctx, s, "create_email_campaign", domain.EntityEmailCampaign, Transaction.EmailCampaigns, v)
}

// UpdateEmailCampaign applies mutator to an email campaign.
func (s *Service) UpdateEmailCampaign(ctx context.Context, id string, mutator func(*domain.EmailCampaign) error) (domain.EmailCampaign, Result, error) {
	return updateRecord(ctx, s, "update_email_campaign", domain.EntityEmailCampaign, Transaction.EmailCampaigns, id, mutator)
}

// SaveEmailCampaign replaces an email campaign when its revision is current, or creates it.
func (s *Service) SaveEmailCampaign(ctx context.Context, v domain.EmailCampaign) (domain.EmailCampaign, Result, error) {
	return saveRecord(ctx, s, "save_email_campaign", domain.EntityEmailCampaign, Transaction.EmailCampaigns, v)
}

// DeleteEmailCampaign removes an email campaign.
func (s *Service) DeleteEmailCampaign(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_email_campaign", domain.EntityEmailCampaign, Transaction.EmailCampaigns, id)
}

// CreateEmailTemplate persists an email template.
func (s *Service) CreateEmailTemplate(ctx context.Context, v domain.EmailTemplate) (domain.EmailTemplate, Result, error) {
	return createRecord(ctx, s, "create_email_template", domain.EntityEmailTemplate, Transaction.EmailTemplates, v)
}

// UpdateEmailTemplate applies mutator to an email template.
func (s *Service) UpdateEmailTemplate(ctx context.Context, id string, mutator func(*domain.EmailTemplate) error) (domain.EmailTemplate, Result, error) {
	return updateRecord(ctx, s, "update_email_template", domain.EntityEmailTemplate, Transaction.EmailTemplates, id, mutator)
}

// SaveEmailTemplate replaces an email template when its revision is current, or creates it.
func (s *Service) SaveEmailTemplate(ctx context.Context, v domain.EmailTemplate) (domain.EmailTemplate, Result, error) {
	return saveRecord(ctx, s, "save_email_template", domain.EntityEmailTemplate, Transaction.EmailTemplates, v)
}

// DeleteEmailTemplate removes an email template.
func (s *Service) DeleteEmailTemplate(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_email_template", domain.EntityEmailTemplate, Transaction.EmailTemplates, id)
}

// CreateSegment persists a customer segment.
func (s *Service) CreateSegment(ctx context.Context, v domain.CustomerSegment) (domain.CustomerSegment, Result, error) {
	return createRecord(ctx, s, "create_segment", domain.EntityCustomerSegment, Transaction.Segments, v)
}

// UpdateSegment applies mutator to a customer segment.
func (s *Service) UpdateSegment(ctx context.Context, id string, mutator func(*domain.CustomerSegment) error) (domain.CustomerSegment, Result, error) {
	return updateRecord(ctx, s, "update_segment", domain.EntityCustomerSegment, Transaction.Segments, id, mutator)
}

// SaveSegment replaces a customer segment when its revision is current, or creates it.
func (s *Service) SaveSegment(ctx context.Context, v domain.CustomerSegment) (domain.CustomerSegment, Result, error) {
	return saveRecord(ctx, s, "save_segment", domain.EntityCustomerSegment, Transaction.Segments, v)
}

// DeleteSegment removes a customer segment.
func (s *Service) DeleteSegment(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_segment", domain.EntityCustomerSegment, Transaction.Segments, id)
}

// CreateAutomation persists a marketing automation.
func (s *Service) CreateAutomation(ctx context.Context, v domain.MarketingAutomation) (domain.MarketingAutomation, Result, error) {
	return createRecord(ctx, s, "create_automation", domain.EntityMarketingAutomation, Transaction.Automations, v)
}

// UpdateAutomation applies mutator to a marketing automation.
func (s *Service) UpdateAutomation(ctx context.Context, id string, mutator func(*domain.MarketingAutomation) error) (domain.MarketingAutomation, Result, error) {
	return updateRecord(ctx, s, "update_automation", domain.EntityMarketingAutomation, Transaction.Automations, id, mutator)
}

// SaveAutomation replaces a marketing automation when its revision is current, or creates it.
func (s *Service) SaveAutomation(ctx context.Context, v domain.MarketingAutomation) (domain.MarketingAutomation, Result, error) {
	return saveRecord(ctx, s, "save_automation", domain.EntityMarketingAutomation, Transaction.Automations, v)
}

// DeleteAutomation removes a marketing automation.
func (s *Service) DeleteAutomation(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_automation", domain.EntityMarketingAutomation, Transaction.Automations, id)
}

// CreateLoyaltyProgram persists a loyalty program.
func (s *Service) CreateLoyaltyProgram(ctx context.Context, v domain.LoyaltyProgram) (domain.LoyaltyProgram, Result, error) {
	return createRecord(ctx, s, "create_loyalty_program", domain.EntityLoyaltyProgram, Transaction.LoyaltyPrograms, v)
}

// UpdateLoyaltyProgram applies mutator to a loyalty program.
func (s *Service) UpdateLoyaltyProgram(ctx context.Context, id string, mutator func(*domain.LoyaltyProgram) error) (domain.LoyaltyProgram, Result, error) {
	return updateRecord(ctx, s, "update_loyalty_program", domain.EntityLoyaltyProgram, Transaction.LoyaltyPrograms, id, mutator)
}

// SaveLoyaltyProgram replaces a loyalty program when its revision is current, or creates it.
func (s *Service) SaveLoyaltyProgram(ctx context.Context, v domain.LoyaltyProgram) (domain.LoyaltyProgram, Result, error) {
	return saveRecord(ctx, s, "save_loyalty_program", domain.EntityLoyaltyProgram, Transaction.LoyaltyPrograms, v)
}

// DeleteLoyaltyProgram removes a loyalty program.
func (s *Service) DeleteLoyaltyProgram(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_loyalty_program", domain.EntityLoyaltyProgram, Transaction.LoyaltyPrograms, id)
}

// CreateLoyaltyReward persists a loyalty reward.
func (s *Service) CreateLoyaltyReward(ctx context.Context, v domain.LoyaltyReward) (domain.LoyaltyReward, Result, error) {
	return createRecord(ctx, s, "create_loyalty_reward", domain.EntityLoyaltyReward, Transaction.LoyaltyRewards, v)
}

// UpdateLoyaltyReward applies mutator to a loyalty reward.
func (s *Service) UpdateLoyaltyReward(ctx context.Context, id string, mutator func(*domain.LoyaltyReward) error) (domain.LoyaltyReward, Result, error) {
	return updateRecord(ctx, s, "update_loyalty_reward", domain.EntityLoyaltyReward, Transaction.LoyaltyRewards, id, mutator)
}

// SaveLoyaltyReward replaces a loyalty reward when its revision is current, or creates it.
func (s *Service) SaveLoyaltyReward(ctx context.Context, v domain.LoyaltyReward) (domain.LoyaltyReward, Result, error) {
	return saveRecord(ctx, s, "save_loyalty_reward", domain.EntityLoyaltyReward, Transaction.LoyaltyRewards, v)
}

// DeleteLoyaltyReward removes a loyalty reward.
func (s *Service) DeleteLoyaltyReward(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_loyalty_reward", domain.EntityLoyaltyReward, Transaction.LoyaltyRewards, id)
}

// CreateQRCode persists a QR code.
func (s *Service) CreateQRCode(ctx context.Context, v domain.QRCode) (domain.QRCode, Result, error) {
	return createRecord(ctx, s, "create_qr_code", domain.EntityQRCode, Transaction.QRCodes, v)
}

// UpdateQRCode applies mutator to a QR code.
func (s *Service) UpdateQRCode(ctx context.Context, id string, mutator func(*domain.QRCode) error) (domain.QRCode, Result, error) {
	return updateRecord(ctx, s, "update_qr_code", domain.EntityQRCode, Transaction.QRCodes, id, mutator)
}

// SaveQRCode replaces a QR code when its revision is current, or creates it.
func (s *Service) SaveQRCode(ctx context.Context, v domain.QRCode) (domain.QRCode, Result, error) {
	return saveRecord(ctx, s, "save_qr_code", domain.EntityQRCode, Transaction.QRCodes, v)
}

// DeleteQRCode removes a QR code.
func (s *Service) DeleteQRCode(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_qr_code", domain.EntityQRCode, Transaction.QRCodes, id)
}

// CreateFeedback persists guest feedback.
func (s *Service) CreateFeedback(ctx context.Context, v domain.Feedback) (domain.Feedback, Result, error) {
	return createRecord(ctx, s, "create_feedback", domain.EntityFeedback, Transaction.Feedback, v)
}

// UpdateFeedback applies mutator to guest feedback.
func (s *Service) UpdateFeedback(ctx context.Context, id string, mutator func(*domain.Feedback) error) (domain.Feedback, Result, error) {
	return updateRecord(ctx, s, "update_feedback", domain.EntityFeedback, Transaction.Feedback, id, mutator)
}

// SaveFeedback replaces guest feedback when its revision is current, or creates it.
func (s *Service) SaveFeedback(ctx context.Context, v domain.Feedback) (domain.Feedback, Result, error) {
	return saveRecord(ctx, s, "save_feedback", domain.EntityFeedback, Transaction.Feedback, v)
}

// DeleteFeedback removes guest feedback.
func (s *Service) DeleteFeedback(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_feedback", domain.EntityFeedback, Transaction.Feedback, id)
}

// CreateNotification persists a notification.
func (s *Service) CreateNotification(ctx context.Context, v domain.Notification) (domain.Notification, Result, error) {
	return createRecord(ctx, s, "create_notification", domain.EntityNotification, Transaction.Notifications, v)
}

// UpdateNotification applies mutator to a notification.
func (s *Service) UpdateNotification(ctx context.Context, id string, mutator func(*domain.Notification) error) (domain.Notification, Result, error) {
	return updateRecord(ctx, s, "update_notification", domain.EntityNotification, Transaction.Notifications, id, mutator)
}

// SaveNotification replaces a notification when its revision is current, or creates it.
func (s *Service) SaveNotification(ctx context.Context, v domain.Notification) (domain.Notification, Result, error) {
	return saveRecord(ctx, s, "save_notification", domain.EntityNotification, Transaction.Notifications, v)
}

// DeleteNotification removes a notification.
func (s *Service) DeleteNotification(ctx context.Context, id string) (Result, error) {
	return deleteRecord(ctx, s, "delete_notification", domain.EntityNotification, Transaction.Notifications, id)
}
