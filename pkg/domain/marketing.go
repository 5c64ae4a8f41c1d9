package domain

import (
	"fmt"
	"time"
)

// DiscountType selects how a promotion discount is computed.
type DiscountType string

// Discount types.
const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Promotion is a discount that can be applied to an order.
type Promotion struct {
	Base
	Name           string       `json:"name"`
	Code           string       `json:"code"`
	Description    string       `json:"description,omitempty"`
	DiscountType   DiscountType `json:"discount_type"`
	DiscountValue  float64      `json:"discount_value"`
	MinOrderAmount float64      `json:"min_order_amount"`
	MaxDiscount    float64      `json:"max_discount"`
	StartDate      time.Time    `json:"start_date"`
	EndDate        time.Time    `json:"end_date"`
	// UsageLimit of zero means unlimited.
	UsageLimit int  `json:"usage_limit"`
	UsageCount int  `json:"usage_count"`
	Active     bool `json:"active"`
}

// DiscountFor validates the promotion against an order subtotal at now and
// returns the discount amount.
func (p Promotion) DiscountFor(subtotal float64, now time.Time) (float64, error) {
	if !p.Active {
		return 0, fmt.Errorf("%w: %s", ErrPromotionInactive, p.Code)
	}
	if now.Before(p.StartDate) || (!p.EndDate.IsZero() && !now.Before(p.EndDate)) {
		return 0, fmt.Errorf("%w: %s is outside its validity window", ErrPromotionNotValid, p.Code)
	}
	if p.UsageLimit > 0 && p.UsageCount >= p.UsageLimit {
		return 0, fmt.Errorf("%w: %s usage limit reached", ErrPromotionNotValid, p.Code)
	}
	if subtotal < p.MinOrderAmount {
		return 0, fmt.Errorf("%w: %s requires a subtotal of %.2f", ErrPromotionNotValid, p.Code, p.MinOrderAmount)
	}
	var discount float64
	switch p.DiscountType {
	case DiscountPercentage:
		discount = subtotal * p.DiscountValue / 100
	case DiscountFixed:
		discount = p.DiscountValue
	default:
		return 0, fmt.Errorf("%w: %s has unknown discount type %q", ErrPromotionNotValid, p.Code, p.DiscountType)
	}
	if p.MaxDiscount > 0 && discount > p.MaxDiscount {
		discount = p.MaxDiscount
	}
	if discount > subtotal {
		discount = subtotal
	}
	return roundCents(discount), nil
}

// CustomerProfile is a known guest.
type CustomerProfile struct {
	Base
	Name           string     `json:"name"`
	Email          string     `json:"email,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	TotalSpent     float64    `json:"total_spent"`
	VisitCount     int        `json:"visit_count"`
	LastVisit      *time.Time `json:"last_visit"`
	LoyaltyPoints  int        `json:"loyalty_points"`
	LoyaltyTier    string     `json:"loyalty_tier,omitempty"`
	Preferences    []string   `json:"preferences,omitempty"`
	Allergies      []string   `json:"allergies,omitempty"`
	Birthday       *time.Time `json:"birthday"`
	MarketingOptIn bool       `json:"marketing_opt_in"`
}

// CampaignStatus tracks an email campaign.
type CampaignStatus string

// Campaign statuses.
const (
	CampaignDraft     CampaignStatus = "draft"
	CampaignScheduled CampaignStatus = "scheduled"
	CampaignSent      CampaignStatus = "sent"
)

// EmailCampaign is a bulk email to a customer segment.
type EmailCampaign struct {
	Base
	Name        string         `json:"name"`
	Subject     string         `json:"subject"`
	TemplateID  string         `json:"template_id,omitempty"`
	SegmentID   string         `json:"segment_id,omitempty"`
	Status      CampaignStatus `json:"status"`
	ScheduledAt *time.Time     `json:"scheduled_at"`
	SentAt      *time.Time     `json:"sent_at"`
	Recipients  int            `json:"recipients"`
	Opens       int            `json:"opens"`
	Clicks      int            `json:"clicks"`
}

// EmailTemplate is reusable email content.
type EmailTemplate struct {
	Base
	Name     string `json:"name"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`
}

// SegmentCriteria selects customers into a segment. Zero values do not filter.
type SegmentCriteria struct {
	MinTotalSpent     float64  `json:"min_total_spent"`
	MinVisits         int      `json:"min_visits"`
	MaxDaysSinceVisit int      `json:"max_days_since_visit"`
	LoyaltyTiers      []string `json:"loyalty_tiers,omitempty"`
}

// Matches reports whether a customer satisfies the criteria at now.
func (c SegmentCriteria) Matches(p CustomerProfile, now time.Time) bool {
	if p.TotalSpent < c.MinTotalSpent || p.VisitCount < c.MinVisits {
		return false
	}
	if c.MaxDaysSinceVisit > 0 {
		if p.LastVisit == nil || now.Sub(*p.LastVisit) > time.Duration(c.MaxDaysSinceVisit)*24*time.Hour {
			return false
		}
	}
	if len(c.LoyaltyTiers) > 0 {
		found := false
		for _, tier := range c.LoyaltyTiers {
			if tier == p.LoyaltyTier {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// CustomerSegment groups customers by criteria. CustomerCount, AverageValue,
// EngagementRate and RefreshedAt are derived by segment refresh.
type CustomerSegment struct {
	Base
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Criteria       SegmentCriteria `json:"criteria"`
	CustomerCount  int             `json:"customer_count"`
	AverageValue   float64         `json:"average_value"`
	EngagementRate float64         `json:"engagement_rate"`
	RefreshedAt    *time.Time      `json:"refreshed_at"`
}

// AutomationStatus is the on/off state of a marketing automation.
type AutomationStatus string

// Automation statuses.
const (
	AutomationActive AutomationStatus = "active"
	AutomationPaused AutomationStatus = "paused"
)

// MarketingAutomation sends a template when a trigger fires.
type MarketingAutomation struct {
	Base
	Name           string           `json:"name"`
	Trigger        string           `json:"trigger"`
	TemplateID     string           `json:"template_id,omitempty"`
	SegmentID      string           `json:"segment_id,omitempty"`
	DelayHours     int              `json:"delay_hours"`
	Status         AutomationStatus `json:"status"`
	TimesTriggered int              `json:"times_triggered"`
	LastRun        *time.Time       `json:"last_run"`
}

// LoyaltyTier is one level of a loyalty program.
type LoyaltyTier struct {
	Name       string  `json:"name"`
	MinPoints  int     `json:"min_points"`
	Multiplier float64 `json:"multiplier"`
}

// LoyaltyProgram defines how points are earned.
type LoyaltyProgram struct {
	Base
	Name            string        `json:"name"`
	PointsPerDollar float64       `json:"points_per_dollar"`
	Tiers           []LoyaltyTier `json:"tiers"`
	Active          bool          `json:"active"`
}

// TierFor returns the highest tier whose threshold points meets.
func (p LoyaltyProgram) TierFor(points int) string {
	best, bestMin := "", -1
	for _, t := range p.Tiers {
		if points >= t.MinPoints && t.MinPoints > bestMin {
			best, bestMin = t.Name, t.MinPoints
		}
	}
	return best
}

// LoyaltyReward is redeemable for points.
type LoyaltyReward struct {
	Base
	ProgramID   string `json:"program_id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	PointsCost  int    `json:"points_cost"`
	Available   bool   `json:"available"`
	// Remaining of nil means unlimited.
	Remaining   *int `json:"remaining"`
	Redemptions int  `json:"redemptions"`
}

// Redeem debits the reward's cost from the customer and records the redemption.
func (r *LoyaltyReward) Redeem(customer *CustomerProfile) error {
	if !r.Available || (r.Remaining != nil && *r.Remaining <= 0) {
		return fmt.Errorf("%w: %s", ErrRewardUnavailable, r.Name)
	}
	if customer.LoyaltyPoints < r.PointsCost {
		return fmt.Errorf("%w: %s needs %d points, customer has %d", ErrInsufficientPoints, r.Name, r.PointsCost, customer.LoyaltyPoints)
	}
	customer.LoyaltyPoints -= r.PointsCost
	r.Redemptions++
	if r.Remaining != nil {
		left := *r.Remaining - 1
		r.Remaining = &left
	}
	return nil
}
