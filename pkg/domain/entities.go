// Package domain defines the restaurant's persistent entities, value types, and
// rule evaluation primitives used by restaurantcore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	EntityOrder               EntityType = "order"
	EntityMenuItem            EntityType = "menu_item"
	EntityInventoryItem       EntityType = "inventory_item"
	EntityTable               EntityType = "table"
	EntityRecipe              EntityType = "recipe"
	EntityRecipeCost          EntityType = "recipe_cost_calculation"
	EntityReservation         EntityType = "reservation"
	EntityWaitlistEntry       EntityType = "waitlist_entry"
	EntityStaffSchedule       EntityType = "staff_schedule"
	EntityTimeClockEntry      EntityType = "time_clock_entry"
	EntitySupplier            EntityType = "supplier"
	EntityPurchaseOrder       EntityType = "purchase_order"
	EntityWasteRecord         EntityType = "waste_record"
	EntityPromotion           EntityType = "promotion"
	EntityCustomerProfile     EntityType = "customer_profile"
	EntityExpense             EntityType = "expense"
	EntityFinancialReport     EntityType = "financial_report"
	EntityLocation            EntityType = "location"
	EntityMultiLocationReport EntityType = "multi_location_report"
	EntityEmailCampaign       EntityType = "email_campaign"
	EntityEmailTemplate       EntityType = "email_template"
	EntityCustomerSegment     EntityType = "customer_segment"
	EntityMarketingAutomation EntityType = "marketing_automation"
	EntityLoyaltyProgram      EntityType = "loyalty_program"
	EntityLoyaltyReward       EntityType = "loyalty_reward"
	EntityQRCode              EntityType = "qr_code"
	EntityFeedback            EntityType = "feedback"
	EntityNotification        EntityType = "notification"
	// EntityActiveUser identifies the single signed-in user record.
	EntityActiveUser EntityType = "active_user"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn reports a problem but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	// Revision increases by one on every committed write of the record.
	Revision uint64 `json:"revision"`
}

// Meta exposes the embedded base record so generic collections can stamp ids and timestamps.
func (b *Base) Meta() *Base { return b }

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity   EntityType
	Action   Action
	EntityID string
	Before   any
	After    any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured in the operation log.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}

// Warnings returns the non-blocking violations.
func (r Result) Warnings() []Violation {
	var out []Violation
	for _, v := range r.Violations {
		if v.Severity == SeverityWarn {
			out = append(out, v)
		}
	}
	return out
}

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	for _, v := range e.Result.Violations {
		if v.Severity == SeverityBlock {
			return "transaction blocked by rules: " + v.Message
		}
	}
	return "transaction blocked by rules"
}
