package domain

import (
	"errors"
	"testing"
	"time"
)

func TestPromotionDiscountFor(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	promo := Promotion{
		Code:          "SUMMER10",
		DiscountType:  DiscountPercentage,
		DiscountValue: 10,
		StartDate:     now.Add(-24 * time.Hour),
		EndDate:       now.Add(24 * time.Hour),
		Active:        true,
	}
	got, err := promo.DiscountFor(50, now)
	if err != nil || got != 5 {
		t.Fatalf("expected 5 discount, got %v (%v)", got, err)
	}

	promo.MaxDiscount = 3
	if got, _ := promo.DiscountFor(50, now); got != 3 {
		t.Fatalf("expected cap of 3, got %v", got)
	}

	fixed := promo
	fixed.DiscountType = DiscountFixed
	fixed.DiscountValue = 20
	fixed.MaxDiscount = 0
	if got, _ := fixed.DiscountFor(12, now); got != 12 {
		t.Fatalf("fixed discount should not exceed subtotal, got %v", got)
	}

	promo.MinOrderAmount = 60
	if _, err := promo.DiscountFor(50, now); !errors.Is(err, ErrPromotionNotValid) {
		t.Fatalf("expected minimum amount error, got %v", err)
	}
	promo.MinOrderAmount = 0

	if _, err := promo.DiscountFor(50, now.Add(48*time.Hour)); !errors.Is(err, ErrPromotionNotValid) {
		t.Fatalf("expected window error, got %v", err)
	}

	promo.UsageLimit, promo.UsageCount = 2, 2
	if _, err := promo.DiscountFor(50, now); !errors.Is(err, ErrPromotionNotValid) {
		t.Fatalf("expected usage limit error, got %v", err)
	}

	promo.Active = false
	if _, err := promo.DiscountFor(50, now); !errors.Is(err, ErrPromotionInactive) {
		t.Fatalf("expected inactive error, got %v", err)
	}
}

func TestSegmentCriteriaMatches(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.Add(-10 * 24 * time.Hour)
	stale := now.Add(-90 * 24 * time.Hour)
	criteria := SegmentCriteria{MinTotalSpent: 100, MinVisits: 3, MaxDaysSinceVisit: 30, LoyaltyTiers: []string{"gold"}}

	match := CustomerProfile{TotalSpent: 150, VisitCount: 4, LastVisit: &recent, LoyaltyTier: "gold"}
	if !criteria.Matches(match, now) {
		t.Fatalf("expected customer to match")
	}
	noVisit := match
	noVisit.LastVisit = &stale
	if criteria.Matches(noVisit, now) {
		t.Fatalf("stale visit should not match")
	}
	wrongTier := match
	wrongTier.LoyaltyTier = "silver"
	if criteria.Matches(wrongTier, now) {
		t.Fatalf("wrong tier should not match")
	}
	if !(SegmentCriteria{}).Matches(CustomerProfile{}, now) {
		t.Fatalf("empty criteria should match everyone")
	}
}

func TestLoyaltyRewardRedeem(t *testing.T) {
	remaining := 1
	reward := LoyaltyReward{Name: "Dessert", PointsCost: 100, Available: true, Remaining: &remaining}
	customer := CustomerProfile{LoyaltyPoints: 150}
	if err := reward.Redeem(&customer); err != nil {
		t.Fatalf("redeem: %v", err)
	}
	if customer.LoyaltyPoints != 50 || reward.Redemptions != 1 || *reward.Remaining != 0 {
		t.Fatalf("unexpected state after redeem: points=%d redemptions=%d remaining=%d", customer.LoyaltyPoints, reward.Redemptions, *reward.Remaining)
	}
	if err := reward.Redeem(&customer); !errors.Is(err, ErrRewardUnavailable) {
		t.Fatalf("expected exhausted reward, got %v", err)
	}

	unlimited := LoyaltyReward{Name: "Coffee", PointsCost: 80, Available: true}
	if err := unlimited.Redeem(&customer); !errors.Is(err, ErrInsufficientPoints) {
		t.Fatalf("expected insufficient points, got %v", err)
	}
	if customer.LoyaltyPoints != 50 {
		t.Fatalf("failed redeem must not debit points")
	}
}

func TestLoyaltyProgramTierFor(t *testing.T) {
	program := LoyaltyProgram{Tiers: []LoyaltyTier{{Name: "bronze", MinPoints: 0}, {Name: "gold", MinPoints: 500}, {Name: "silver", MinPoints: 200}}}
	if tier := program.TierFor(250); tier != "silver" {
		t.Fatalf("expected silver, got %q", tier)
	}
	if tier := program.TierFor(900); tier != "gold" {
		t.Fatalf("expected gold, got %q", tier)
	}
}
