package core

import (
	"context"
	"fmt"

	"restaurantcore/internal/analytics"
	"restaurantcore/pkg/domain"
)

// RedeemLoyaltyReward debits a reward's point cost from the customer and
// records the redemption against the reward's remaining stock.
func (s *Service) RedeemLoyaltyReward(ctx context.Context, customerID, rewardID string) (domain.CustomerProfile, Result, error) {
	var customer domain.CustomerProfile
	res, err := s.run(ctx, operation{"redeem_loyalty_reward", domain.EntityLoyaltyReward, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		reward, ok := tx.LoyaltyRewards().Get(rewardID)
		if !ok {
			return rewardID, domain.NotFoundError{Entity: domain.EntityLoyaltyReward, ID: rewardID}
		}
		if reward.ProgramID != "" {
			program, ok := tx.LoyaltyPrograms().Get(reward.ProgramID)
			if !ok {
				return rewardID, domain.NotFoundError{Entity: domain.EntityLoyaltyProgram, ID: reward.ProgramID}
			}
			if !program.Active {
				return rewardID, fmt.Errorf("loyalty program %s: %w", program.Name, domain.ErrInactive)
			}
		}
		var err error
		customer, err = tx.Customers().Update(customerID, func(c *domain.CustomerProfile) error {
			return reward.Redeem(c)
		})
		if err != nil {
			return rewardID, err
		}
		_, err = tx.LoyaltyRewards().Update(rewardID, func(r *domain.LoyaltyReward) error {
			r.Redemptions = reward.Redemptions
			r.Remaining = reward.Remaining
			return nil
		})
		return rewardID, err
	})
	return customer, res, err
}

// RefreshSegmentData recomputes a segment's count, average value and
// engagement from current customers and orders. Criteria are left untouched.
func (s *Service) RefreshSegmentData(ctx context.Context, segmentID string) (domain.CustomerSegment, Result, error) {
	var refreshed domain.CustomerSegment
	res, err := s.run(ctx, operation{"refresh_segment_data", domain.EntityCustomerSegment, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		customers := tx.Customers().List()
		orders := tx.Orders().List()
		now := tx.Now()
		var err error
		refreshed, err = tx.Segments().Update(segmentID, func(seg *domain.CustomerSegment) error {
			derived := analytics.RefreshSegment(*seg, customers, orders, now)
			seg.CustomerCount = derived.CustomerCount
			seg.AverageValue = derived.AverageValue
			seg.EngagementRate = derived.EngagementRate
			seg.RefreshedAt = derived.RefreshedAt
			return nil
		})
		return segmentID, err
	})
	return refreshed, res, err
}

// ToggleMarketingAutomation flips an automation between active and paused.
func (s *Service) ToggleMarketingAutomation(ctx context.Context, id string) (domain.MarketingAutomation, Result, error) {
	var toggled domain.MarketingAutomation
	res, err := s.run(ctx, operation{"toggle_marketing_automation", domain.EntityMarketingAutomation, domain.ActionUpdate}, func(tx Transaction) (string, error) {
		var err error
		toggled, err = tx.Automations().Update(id, func(a *domain.MarketingAutomation) error {
			if a.Status == domain.AutomationActive {
				a.Status = domain.AutomationPaused
			} else {
				a.Status = domain.AutomationActive
			}
			return nil
		})
		return id, err
	})
	return toggled, res, err
}
