package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

const orderLifecycleRule = "order_lifecycle"

// NewOrderLifecycleRule blocks order writes that leave the lifecycle graph,
// claim an order that is not ready, replace an existing claim, or serve a
// claimed order without a delivery by the claimant. It covers writes made
// through generic creates and updates as well as the named operations.
func NewOrderLifecycleRule() domain.Rule {
	return orderLifecycle{}
}

type orderLifecycle struct{}

func (orderLifecycle) Name() string { return orderLifecycleRule }

func (orderLifecycle) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	block := func(id, msg string) {
		res.Violations = append(res.Violations, violation(orderLifecycleRule, domain.SeverityBlock, domain.EntityOrder, id, msg))
	}
	for _, change := range changes {
		if change.Entity != domain.EntityOrder {
			continue
		}
		after, ok := change.After.(domain.Order)
		if !ok {
			continue
		}
		if !domain.ValidOrderStatus(after.Status) {
			block(after.ID, fmt.Sprintf("order %s has unknown status %q", after.ID, after.Status))
			continue
		}
		before, ok := change.Before.(domain.Order)
		if !ok {
			if after.Claim != nil || after.Delivery != nil {
				block(after.ID, fmt.Sprintf("order %s cannot be created with a claim or delivery", after.ID))
			}
			continue
		}
		if before.Status != after.Status {
			if err := domain.CheckOrderTransition(before.Status, before.PaymentStatus, after.Status); err != nil {
				block(after.ID, err.Error())
			}
		}
		claimant := before.ClaimedBy()
		switch {
		case claimant != "" && after.ClaimedBy() != claimant:
			block(after.ID, fmt.Sprintf("order %s is claimed by %s and cannot be reassigned", after.ID, claimant))
		case claimant == "" && after.Claim != nil && before.Status != domain.OrderReady:
			block(after.ID, fmt.Sprintf("order %s is %s, only ready orders can be claimed", after.ID, before.Status))
		}
		if claimant != "" && before.Status != domain.OrderServed && after.Status == domain.OrderServed &&
			(after.Delivery == nil || after.Delivery.StaffID != claimant) {
			block(after.ID, fmt.Sprintf("order %s is claimed by %s, only the claimant can deliver it", after.ID, claimant))
		}
		if before.Delivery == nil && after.Delivery != nil && after.Delivery.StaffID != after.ClaimedBy() {
			block(after.ID, fmt.Sprintf("order %s delivery by %s does not match its claim", after.ID, after.Delivery.StaffID))
		}
	}
	return res, nil
}
