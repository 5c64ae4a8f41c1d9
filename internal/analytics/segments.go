package analytics

import (
	"time"

	"restaurantcore/pkg/domain"
)

// EngagementWindow is how recent a visit or order must be for a segment
// member to count as engaged.
const EngagementWindow = 30 * 24 * time.Hour

// RefreshSegment recomputes the membership-derived fields of seg from the
// current customers and orders. Name, description and criteria are returned
// unchanged.
func RefreshSegment(seg domain.CustomerSegment, customers []domain.CustomerProfile, orders []domain.Order, now time.Time) domain.CustomerSegment {
	cutoff := now.Add(-EngagementWindow)
	recentOrder := make(map[string]bool)
	for _, o := range orders {
		if o.CustomerID == nil || o.Status == domain.OrderCancelled {
			continue
		}
		if !o.OrderTime.Before(cutoff) && !o.OrderTime.After(now) {
			recentOrder[*o.CustomerID] = true
		}
	}

	var members, engaged int
	var spent float64
	for _, c := range customers {
		if !seg.Criteria.Matches(c, now) {
			continue
		}
		members++
		spent += c.TotalSpent
		if recentOrder[c.ID] || (c.LastVisit != nil && !c.LastVisit.Before(cutoff)) {
			engaged++
		}
	}

	out := seg
	out.CustomerCount = members
	out.AverageValue = 0
	out.EngagementRate = 0
	if members > 0 {
		out.AverageValue = round2(spent / float64(members))
		out.EngagementRate = round2(float64(engaged) / float64(members) * 100)
	}
	refreshed := now
	out.RefreshedAt = &refreshed
	return out
}
