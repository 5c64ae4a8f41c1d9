package core

import (
	"context"
	"fmt"

	"restaurantcore/pkg/domain"
)

const appendOnlyHistoryRule = "append_only_history"

var historyEntities = map[domain.EntityType]struct{}{
	domain.EntityRecipeCost:          {},
	domain.EntityFinancialReport:     {},
	domain.EntityMultiLocationReport: {},
}

// NewAppendOnlyHistoryRule blocks in-place updates of recipe costings and
// generated reports. Recalculation appends a new record instead.
func NewAppendOnlyHistoryRule() domain.Rule {
	return appendOnlyHistory{}
}

type appendOnlyHistory struct{}

func (appendOnlyHistory) Name() string { return appendOnlyHistoryRule }

func (appendOnlyHistory) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if _, ok := historyEntities[change.Entity]; !ok || change.Action != domain.ActionUpdate {
			continue
		}
		res.Violations = append(res.Violations, violation(appendOnlyHistoryRule, domain.SeverityBlock, change.Entity, change.EntityID,
			fmt.Sprintf("%s %s is a point-in-time snapshot and cannot be modified", change.Entity, change.EntityID)))
	}
	return res, nil
}
