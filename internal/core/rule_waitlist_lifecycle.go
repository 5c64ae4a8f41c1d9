package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

const waitlistLifecycleRule = "waitlist_lifecycle"

// NewWaitlistLifecycleRule blocks waitlist status changes outside
// waiting -> notified -> seated, or removal from a non-terminal state.
func NewWaitlistLifecycleRule() domain.Rule {
	return waitlistLifecycle{}
}

type waitlistLifecycle struct{}

func (waitlistLifecycle) Name() string { return waitlistLifecycleRule }

func (waitlistLifecycle) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity != domain.EntityWaitlistEntry {
			continue
		}
		after, ok := change.After.(domain.WaitlistEntry)
		if !ok {
			continue
		}
		switch after.Status {
		case domain.WaitlistWaiting, domain.WaitlistNotified, domain.WaitlistSeated, domain.WaitlistRemoved:
		default:
			res.Violations = append(res.Violations, violation(waitlistLifecycleRule, domain.SeverityBlock, domain.EntityWaitlistEntry, after.ID,
				fmt.Sprintf("waitlist entry %s has unknown status %q", after.ID, after.Status)))
			continue
		}
		before, ok := change.Before.(domain.WaitlistEntry)
		if !ok {
			continue
		}
		if err := domain.CheckWaitlistTransition(before.Status, after.Status); err != nil {
			res.Violations = append(res.Violations, violation(waitlistLifecycleRule, domain.SeverityBlock, domain.EntityWaitlistEntry, after.ID, err.Error()))
		}
	}
	return res, nil
}
