package helper

import (
	"sync"
	"time"
)

// MetricsCollectorSpy is a MetricsCollector implementation that captures
// metrics calls for testing coordinator and session instrumentation.
type MetricsCollectorSpy struct {
	durationRecords []SpyDurationRecord
	counterRecords  []SpyCounterRecord
	valueRecords    []SpyValueRecord
	mu              sync.Mutex
	recordCalls     bool
}

// SpyDurationRecord represents a recorded duration metric call.
type SpyDurationRecord struct {
	Metric   string
	Duration time.Duration
	Labels   map[string]string
}

// SpyCounterRecord represents a recorded counter increment call.
type SpyCounterRecord struct {
	Metric string
	Labels map[string]string
}

// SpyValueRecord represents a recorded value metric call.
type SpyValueRecord struct {
	Metric string
	Value  float64
	Labels map[string]string
}

// NewMetricsCollectorSpy creates a new MetricsCollectorSpy.
// Set recordCalls to true to capture all metrics calls for inspection in tests.
func NewMetricsCollectorSpy(recordCalls bool) *MetricsCollectorSpy {
	return &MetricsCollectorSpy{
		durationRecords: make([]SpyDurationRecord, 0),
		counterRecords:  make([]SpyCounterRecord, 0),
		valueRecords:    make([]SpyValueRecord, 0),
		recordCalls:     recordCalls,
	}
}

// RecordDuration implements the MetricsCollector interface for duration metrics.
func (s *MetricsCollectorSpy) RecordDuration(metric string, duration time.Duration, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = append(s.durationRecords, SpyDurationRecord{
		Metric:   metric,
		Duration: duration,
		Labels:   copyLabels(labels),
	})
}

// IncrementCounter implements the MetricsCollector interface for counter metrics.
func (s *MetricsCollectorSpy) IncrementCounter(metric string, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.counterRecords = append(s.counterRecords, SpyCounterRecord{
		Metric: metric,
		Labels: copyLabels(labels),
	})
}

// RecordValue implements the MetricsCollector interface for value/gauge metrics.
func (s *MetricsCollectorSpy) RecordValue(metric string, value float64, labels map[string]string) {
	if !s.recordCalls {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.valueRecords = append(s.valueRecords, SpyValueRecord{
		Metric: metric,
		Value:  value,
		Labels: copyLabels(labels),
	})
}

// GetDurationRecordCount returns the number of captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.durationRecords)
}

// GetCounterRecordCount returns the number of captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.counterRecords)
}

// GetValueRecordCount returns the number of captured value records.
func (s *MetricsCollectorSpy) GetValueRecordCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.valueRecords)
}

// GetDurationRecords returns a copy of all captured duration records.
func (s *MetricsCollectorSpy) GetDurationRecords() []SpyDurationRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyDurationRecord, len(s.durationRecords))
	copy(records, s.durationRecords)

	return records
}

// GetCounterRecords returns a copy of all captured counter records.
func (s *MetricsCollectorSpy) GetCounterRecords() []SpyCounterRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyCounterRecord, len(s.counterRecords))
	copy(records, s.counterRecords)

	return records
}

// GetValueRecords returns a copy of all captured value records.
func (s *MetricsCollectorSpy) GetValueRecords() []SpyValueRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make([]SpyValueRecord, len(s.valueRecords))
	copy(records, s.valueRecords)

	return records
}

// Reset clears all captured records.
func (s *MetricsCollectorSpy) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.durationRecords = s.durationRecords[:0]
	s.counterRecords = s.counterRecords[:0]
	s.valueRecords = s.valueRecords[:0]
}

// HasDurationRecordForMetric checks if a duration was recorded for the metric,
// optionally constrained by labels via the returned matcher.
func (s *MetricsCollectorSpy) HasDurationRecordForMetric(metric string) *SpyMetricMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.durationRecords {
		if s.durationRecords[i].Metric == metric {
			return &SpyMetricMatcher{labels: s.durationRecords[i].Labels, found: true}
		}
	}

	return &SpyMetricMatcher{found: false}
}

// HasCounterRecordForMetric checks if a counter was incremented for the metric,
// optionally constrained by labels via the returned matcher.
func (s *MetricsCollectorSpy) HasCounterRecordForMetric(metric string) *SpyMetricMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.counterRecords {
		if s.counterRecords[i].Metric == metric {
			return &SpyMetricMatcher{labels: s.counterRecords[i].Labels, found: true}
		}
	}

	return &SpyMetricMatcher{found: false}
}

// HasValueRecordForMetric checks if a value was recorded for the metric,
// optionally constrained by labels via the returned matcher.
func (s *MetricsCollectorSpy) HasValueRecordForMetric(metric string) *SpyMetricMatcher {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.valueRecords {
		if s.valueRecords[i].Metric == metric {
			return &SpyMetricMatcher{labels: s.valueRecords[i].Labels, found: true}
		}
	}

	return &SpyMetricMatcher{found: false}
}

// SpyMetricMatcher provides a fluent interface for checking metric labels.
type SpyMetricMatcher struct {
	labels map[string]string
	found  bool
}

// WithLabel checks if the matched record carries the given label value.
func (m *SpyMetricMatcher) WithLabel(key, value string) *SpyMetricMatcher {
	if !m.found {
		return m
	}

	if m.labels[key] != value {
		m.found = false
	}

	return m
}

// Assert returns true if all conditions in the fluent chain were met.
func (m *SpyMetricMatcher) Assert() bool {
	return m.found
}

func copyLabels(labels map[string]string) map[string]string {
	labelsCopy := make(map[string]string)
	for k, v := range labels {
		labelsCopy[k] = v
	}

	return labelsCopy
}
