package analytics

import (
	"math"

	"restaurantcore/pkg/domain"
)

// PointsEarned returns the loyalty points earned for spending amount under
// program, applying the multiplier of the customer's current tier.
func PointsEarned(program domain.LoyaltyProgram, tier string, amount float64) int {
	if !program.Active || amount <= 0 {
		return 0
	}
	multiplier := 1.0
	for _, t := range program.Tiers {
		if t.Name == tier && t.Multiplier > 0 {
			multiplier = t.Multiplier
			break
		}
	}
	return int(math.Floor(amount * program.PointsPerDollar * multiplier))
}
