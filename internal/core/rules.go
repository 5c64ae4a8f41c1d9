package core

import "restaurantcore/pkg/domain"

// NewRulesEngine constructs an empty engine.
func NewRulesEngine() *RulesEngine {
	return domain.NewRulesEngine()
}

// NewDefaultRulesEngine returns an engine with the lifecycle, stock and
// history rules registered.
func NewDefaultRulesEngine() *RulesEngine {
	engine := domain.NewRulesEngine()
	engine.Register(
		NewOrderLifecycleRule(),
		NewWaitlistLifecycleRule(),
		NewNegativeStockRule(),
		NewAppendOnlyHistoryRule(),
	)
	return engine
}

func violation(rule string, severity domain.Severity, entity domain.EntityType, id, msg string) domain.Violation {
	return domain.Violation{Rule: rule, Severity: severity, Message: msg, Entity: entity, EntityID: id}
}
