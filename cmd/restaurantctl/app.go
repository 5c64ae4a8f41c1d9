package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"restaurantcore/internal/blob"
	"restaurantcore/internal/config"
	"restaurantcore/internal/core"
	"restaurantcore/internal/events"
	"restaurantcore/internal/events/amqp"
	"restaurantcore/internal/events/kafka"
	"restaurantcore/internal/export"
)

// auditLimit bounds the in-memory operation log kept for one CLI run.
const auditLimit = 256

// app holds everything one CLI invocation needs.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	stdout   io.Writer
	store    core.ClosableStore
	svc      *core.Service
	audit    *core.OperationLog
	registry *prometheus.Registry
	blobs    blob.Store
	exporter *export.Exporter
}

func openApp(ctx context.Context, opts *rootOptions, stdout, stderr io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configFile, opts.envFiles...)
	if err != nil {
		return nil, err
	}
	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	metrics, err := core.NewPrometheusMetricsRecorder(registry)
	if err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	publisher, err := newPublisher(cfg.Events, logger)
	if err != nil {
		return nil, err
	}

	store, err := core.OpenPersistentStore(ctx, cfg.Storage, nil)
	if err != nil {
		if publisher != nil {
			_ = publisher.Close()
		}
		return nil, err
	}
	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		_ = store.Close()
		if publisher != nil {
			_ = publisher.Close()
		}
		return nil, err
	}

	audit := core.NewOperationLog(auditLimit)
	svcOpts := []core.Option{
		core.WithLogger(core.NewSlogLogger(logger)),
		core.WithMetricsRecorder(metrics),
		core.WithAuditRecorder(audit),
		core.WithCostingPolicy(cfg.Costing),
	}
	if publisher != nil {
		svcOpts = append(svcOpts, core.WithPublisher(publisher))
	}
	if opts.trace {
		svcOpts = append(svcOpts, core.WithTracer(core.NewJSONTracer(stderr)))
	}

	logger.Debug("store opened", "storage", cfg.Storage.Driver, "blob", blobs.Driver(), "publisher", cfg.Events.Publisher)
	return &app{
		cfg:      cfg,
		logger:   logger,
		stdout:   stdout,
		store:    store,
		svc:      core.NewService(store, svcOpts...),
		audit:    audit,
		registry: registry,
		blobs:    blobs,
		exporter: export.New(blobs, export.WithPrefix(cfg.Export.Prefix)),
	}, nil
}

// newPublisher returns nil when change events are disabled.
func newPublisher(cfg config.EventsConfig, logger *slog.Logger) (events.Publisher, error) {
	switch cfg.Publisher {
	case "", config.PublisherNone:
		return nil, nil
	case config.PublisherMemory:
		bus := events.NewBus()
		bus.Subscribe(func(e events.Event) {
			logger.Debug("change event", "routing_key", e.RoutingKey(), "entity_id", e.EntityID, "operation", e.Operation)
		})
		return bus, nil
	case config.PublisherKafka:
		p, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, err
		}
		return p, nil
	case config.PublisherAMQP:
		p, err := amqp.Dial(cfg.AMQP.URL, cfg.AMQP.Exchange)
		if err != nil {
			return nil, err
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unknown publisher %q", cfg.Publisher)
	}
}

// Close flushes metrics and releases the publisher and store.
func (a *app) Close() error {
	var errs []error
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := prometheus.WriteToTextfile(path, a.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		}
	}
	for _, entry := range a.audit.Failures() {
		a.logger.Debug("failed operation", "operation", entry.Operation, "error", entry.Error)
	}
	if err := a.svc.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close publisher: %w", err))
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}
