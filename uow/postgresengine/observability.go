package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/poi2/unit-of-work-go/uow"
)

const (
	logMsgOperation               = "unit of work operation: "
	logMsgCommitSkippedEmptyQueue = "commit with empty queue, skipped opening a transaction"
	logMsgStagedCommandsCommitted = "staged commands committed"
	logMsgApplyingCommand         = "applying staged command"
	logMsgBeginTransactionFailed  = "failed to begin transaction"
	logMsgReplayCommandFailed     = "replaying staged command failed"
	logMsgCommitTransactionFailed = "failed to commit transaction"
	logMsgRollbackFailed          = "failed to rollback transaction"
	logMsgTransactionStarted      = "transaction started"
	logMsgTransactionCommitted    = "transaction committed"
	logMsgTransactionRolledBack   = "transaction rolled back"

	logAttrError         = "error"
	logAttrCommandCount  = "command_count"
	logAttrDurationMS    = "duration_ms"
	logAttrPosition      = "position"
	logAttrAggregateKind = "aggregate_kind"
	logAttrOperation     = "operation"

	metricCommitDuration  = "unitofwork_commit_duration_seconds"
	metricCommandsApplied = "unitofwork_commands_applied_total"
	metricDatabaseErrors  = "unitofwork_database_errors_total"
	metricRollbacks       = "unitofwork_rollbacks_total"

	spanNameCommit   = "unitofwork.commit"
	spanNameBegin    = "unitofwork.begin"
	spanNameRollback = "unitofwork.rollback"

	spanAttrOperation    = "operation"
	spanAttrErrorType    = "error_type"
	spanAttrCommandCount = "command_count"
	spanAttrDurationMS   = "duration_ms"

	operationCommit   = "commit"
	operationBegin    = "begin"
	operationRollback = "rollback"

	statusSuccess = "success"
	statusError   = "error"
)

// instrumentation bundles the observability collaborators shared by
// coordinators and sessions. Every method is nil-guarded, so a zero value
// is a valid no-op instrumentation.
type instrumentation struct {
	logger           uow.Logger
	contextualLogger uow.ContextualLogger
	metricsCollector uow.MetricsCollector
	tracingCollector uow.TracingCollector
}

// logOperation logs operational information at info level if a logger is configured.
func (i instrumentation) logOperation(ctx context.Context, action string, args ...any) {
	if i.logger != nil {
		i.logger.Info(logMsgOperation+action, args...)
	}

	if i.contextualLogger != nil {
		i.contextualLogger.InfoContext(ctx, logMsgOperation+action, args...)
	}
}

// logDebug logs developer-level detail at debug level if a logger is configured.
func (i instrumentation) logDebug(ctx context.Context, message string, args ...any) {
	if i.logger != nil {
		i.logger.Debug(message, args...)
	}

	if i.contextualLogger != nil {
		i.contextualLogger.DebugContext(ctx, message, args...)
	}
}

// logError logs error information at the error level if a logger is configured.
func (i instrumentation) logError(ctx context.Context, message string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if i.logger != nil {
		i.logger.Error(message, allArgs...)
	}

	if i.contextualLogger != nil {
		i.contextualLogger.ErrorContext(ctx, message, allArgs...)
	}
}

// recordDurationMetrics records a duration metric with context if the collector supports it.
func (i instrumentation) recordDurationMetrics(
	ctx context.Context,
	metricName string,
	duration time.Duration,
	operation, status string,
) {
	if i.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := i.metricsCollector.(uow.ContextualMetricsCollector); ok {
		contextualCollector.RecordDurationContext(ctx, metricName, duration, labels)
	} else {
		i.metricsCollector.RecordDuration(metricName, duration, labels)
	}
}

// recordValueMetrics records a value metric with context if the collector supports it.
func (i instrumentation) recordValueMetrics(
	ctx context.Context,
	metricName string,
	value float64,
	operation, status string,
) {
	if i.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          status,
	}

	if contextualCollector, ok := i.metricsCollector.(uow.ContextualMetricsCollector); ok {
		contextualCollector.RecordValueContext(ctx, metricName, value, labels)
	} else {
		i.metricsCollector.RecordValue(metricName, value, labels)
	}
}

// recordErrorMetrics records an error counter with context if the collector supports it.
func (i instrumentation) recordErrorMetrics(ctx context.Context, operation, errorType string) {
	if i.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
		"status":          statusError,
		spanAttrErrorType: errorType,
	}

	if contextualCollector, ok := i.metricsCollector.(uow.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricDatabaseErrors, labels)
	} else {
		i.metricsCollector.IncrementCounter(metricDatabaseErrors, labels)
	}
}

// recordRollbackMetrics counts attempted rollbacks if the collector is configured.
func (i instrumentation) recordRollbackMetrics(ctx context.Context, operation string) {
	if i.metricsCollector == nil {
		return
	}

	labels := map[string]string{
		spanAttrOperation: operation,
	}

	if contextualCollector, ok := i.metricsCollector.(uow.ContextualMetricsCollector); ok {
		contextualCollector.IncrementCounterContext(ctx, metricRollbacks, labels)
	} else {
		i.metricsCollector.IncrementCounter(metricRollbacks, labels)
	}
}

// startTraceSpan starts a tracing span if the tracing collector is configured.
func (i instrumentation) startTraceSpan(
	ctx context.Context,
	name string,
	attrs map[string]string,
) (context.Context, uow.SpanContext) {
	if i.tracingCollector != nil {
		return i.tracingCollector.StartSpan(ctx, name, attrs)
	}

	return ctx, nil
}

// finishSpanSuccess finishes a span successfully with timing information.
func (i instrumentation) finishSpanSuccess(span uow.SpanContext, duration time.Duration) {
	if span != nil {
		span.SetStatus(statusSuccess)
		span.AddAttribute(spanAttrDurationMS, fmt.Sprintf("%.2f", float64(duration.Nanoseconds())/1e6))
	}

	if i.tracingCollector != nil && span != nil {
		i.tracingCollector.FinishSpan(span, statusSuccess, nil)
	}
}

// finishSpanError finishes a span with error details.
func (i instrumentation) finishSpanError(span uow.SpanContext, errType string) {
	if span != nil {
		span.SetStatus(statusError)
		span.AddAttribute(spanAttrErrorType, errType)
	}

	if i.tracingCollector != nil && span != nil {
		i.tracingCollector.FinishSpan(span, statusError, map[string]string{spanAttrErrorType: errType})
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}

// errorTypeOf extracts a stable label from an error for metrics and spans.
func errorTypeOf(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, uow.ErrRollbackTransactionFailed):
		return "rollback_failed"
	case errors.Is(err, uow.ErrBeginTransactionFailed):
		return "begin_failed"
	case errors.Is(err, uow.ErrCommitTransactionFailed):
		return "commit_failed"
	case errors.Is(err, uow.ErrTransactionFailed):
		return "command_failed"
	case errors.Is(err, context.Canceled):
		return "context_canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "context_deadline_exceeded"
	default:
		return "other"
	}
}
