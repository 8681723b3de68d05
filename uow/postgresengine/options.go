package postgresengine

import (
	"github.com/poi2/unit-of-work-go/uow"
)

// Option defines a functional option for configuring the Provider.
type Option func(*Provider) error

// WithStores replaces the default persistence ports with custom implementations.
// All three ports must be populated.
func WithStores(stores uow.Stores) Option {
	return func(p *Provider) error {
		if err := stores.Validate(); err != nil {
			return err
		}

		p.stores = stores

		return nil
	}
}

// WithLogger sets the logger for coordinators and sessions.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: per-command replay dispatch (development use)
// Info level: commit outcomes, command counts, durations (production-safe)
// Warn level: non-critical issues
// Error level: begin/replay/commit/rollback failures.
func WithLogger(logger uow.Logger) Option {
	return func(p *Provider) error {
		p.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for coordinators and sessions.
// The contextual logger will receive log messages with context information including
// automatic trace/span correlation when tracing is enabled.
func WithContextualLogger(logger uow.ContextualLogger) Option {
	return func(p *Provider) error {
		p.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for coordinators and sessions.
// The collector will receive commit durations, applied command counts,
// rollback counts, and database error counts.
func WithMetrics(collector uow.MetricsCollector) Option {
	return func(p *Provider) error {
		p.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for coordinators and sessions.
// The collector will receive span creation for commit and lifecycle
// operations, context propagation, and error tracking.
func WithTracing(collector uow.TracingCollector) Option {
	return func(p *Provider) error {
		p.tracingCollector = collector
		return nil
	}
}
