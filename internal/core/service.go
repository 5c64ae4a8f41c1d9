// Package core exposes the restaurant's named operations on top of a
// transactional store. Every mutation runs as one transaction that is traced,
// measured, audited and, once committed, published as change events.
package core

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"restaurantcore/internal/analytics"
	"restaurantcore/internal/events"
	"restaurantcore/internal/infra/persistence/memory"
	"restaurantcore/pkg/domain"
)

// Service exposes transactional operations over the restaurant state.
type Service struct {
	store     PersistentStore
	clock     Clock
	logger    Logger
	audit     AuditRecorder
	metrics   MetricsRecorder
	tracer    Tracer
	publisher events.Publisher
	costing   analytics.CostingPolicy
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the clock used for audit timestamps. In-memory services also
// stamp records with it.
func WithClock(clock Clock) Option {
	return func(s *Service) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithLogger sets the operation logger.
func WithLogger(logger Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAuditRecorder sets the audit sink.
func WithAuditRecorder(recorder AuditRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.audit = recorder
		}
	}
}

// WithMetricsRecorder sets the metrics sink.
func WithMetricsRecorder(recorder MetricsRecorder) Option {
	return func(s *Service) {
		if recorder != nil {
			s.metrics = recorder
		}
	}
}

// WithTracer sets the tracer.
func WithTracer(tracer Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

// WithPublisher sets where committed changes are published.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *Service) { s.publisher = publisher }
}

// WithCostingPolicy overrides the labor and overhead constants used by
// CalculateRecipeCost.
func WithCostingPolicy(policy analytics.CostingPolicy) Option {
	return func(s *Service) { s.costing = policy }
}

// NewSlogLogger adapts a slog logger; nil yields a logger that drops everything.
func NewSlogLogger(l *slog.Logger) Logger {
	if l == nil {
		return noopLogger{}
	}
	return l
}

func newService(opts ...Option) *Service {
	s := &Service{
		clock:   ClockFunc(func() time.Time { return time.Now().UTC() }),
		logger:  noopLogger{},
		audit:   noopAudit{},
		metrics: noopMetrics{},
		tracer:  noopTracer{},
		costing: analytics.DefaultCostingPolicy(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := newService(opts...)
	s.store = store
	return s
}

// NewInMemoryService creates a service over a fresh in-memory store. A nil
// engine installs the default rules.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	if engine == nil {
		engine = NewDefaultRulesEngine()
	}
	s := newService(opts...)
	s.store = memory.NewStore(engine, memory.WithClock(s.clock.Now))
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore {
	return s.store
}

// View runs fn against a consistent snapshot of every collection.
func (s *Service) View(ctx context.Context, fn func(TransactionView) error) error {
	return s.store.View(ctx, fn)
}

// Close releases the event publisher.
func (s *Service) Close() error {
	if s.publisher == nil {
		return nil
	}
	return s.publisher.Close()
}

type operation struct {
	name   string
	entity domain.EntityType
	action domain.Action
}

// run executes fn as one transaction. fn returns the id of the primary record
// it touched, which is reported to the audit log.
func (s *Service) run(ctx context.Context, op operation, fn func(tx Transaction) (string, error)) (Result, error) {
	ctx, span := s.tracer.Start(ctx, op.name)
	started := time.Now()

	var (
		entityID    string
		changes     []Change
		committedAt time.Time
	)
	res, err := s.store.RunInTransaction(ctx, func(tx Transaction) error {
		id, err := fn(tx)
		entityID = id
		if err != nil {
			return err
		}
		changes = tx.Changes()
		committedAt = tx.Now()
		return nil
	})
	duration := time.Since(started)

	span.End(err)
	s.metrics.Observe(ctx, op.name, err == nil, duration)
	entry := AuditEntry{
		Operation: op.name,
		Entity:    op.entity,
		Action:    op.action,
		EntityID:  entityID,
		Status:    statusOf(err == nil),
		Changes:   len(changes),
		Duration:  duration,
		Timestamp: s.clock.Now(),
	}
	if err != nil {
		entry.Error = err.Error()
	}
	s.audit.Record(ctx, entry)

	if err != nil {
		var blocked domain.RuleViolationError
		if errors.As(err, &blocked) {
			for _, v := range blocked.Result.Violations {
				s.logger.Warn("rule violation", "operation", op.name, "rule", v.Rule, "severity", v.Severity, "entity_id", v.EntityID, "message", v.Message)
			}
		}
		s.logger.Error("operation failed", "operation", op.name, "entity", op.entity, "entity_id", entityID, "error", err)
		return res, err
	}
	for _, v := range res.Warnings() {
		s.logger.Warn("rule warning", "operation", op.name, "rule", v.Rule, "entity", v.Entity, "entity_id", v.EntityID, "message", v.Message)
	}
	s.logger.Debug("operation committed", "operation", op.name, "entity", op.entity, "entity_id", entityID, "changes", len(changes), "duration", duration)
	s.publish(ctx, op.name, changes, committedAt)
	return res, nil
}

func (s *Service) publish(ctx context.Context, op string, changes []Change, at time.Time) {
	if s.publisher == nil || len(changes) == 0 {
		return
	}
	evts, err := events.FromChanges(op, changes, at)
	if err != nil {
		s.logger.Error("encode change events", "operation", op, "error", err)
		return
	}
	if err := s.publisher.Publish(ctx, evts); err != nil {
		s.logger.Error("publish change events", "operation", op, "events", len(evts), "error", err)
	}
}

// view runs a read-only operation with tracing and metrics.
func (s *Service) view(ctx context.Context, name string, fn func(TransactionView) error) error {
	ctx, span := s.tracer.Start(ctx, name)
	started := time.Now()
	err := s.store.View(ctx, fn)
	span.End(err)
	s.metrics.Observe(ctx, name, err == nil, time.Since(started))
	if err != nil {
		s.logger.Error("read failed", "operation", name, "error", err)
	}
	return err
}
