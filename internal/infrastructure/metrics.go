package infrastructure

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AnalysisMetrics holds the application metrics. All Record methods are safe
// to call on a nil receiver.
type AnalysisMetrics struct {
	// HTTP metrics
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram
	HTTPActiveRequests  metric.Int64UpDownCounter

	// Pipeline metrics
	RunsTotal      metric.Int64Counter
	RunDuration    metric.Float64Histogram
	RowsNormalized metric.Int64Counter
	RowsDropped    metric.Int64Counter
	SourceFailures metric.Int64Counter

	// Cache metrics
	CacheHits      metric.Int64Counter
	CacheMisses    metric.Int64Counter
	CacheEvictions metric.Int64Counter
}

// NewAnalysisMetrics creates all application metrics on meter
func NewAnalysisMetrics(meter metric.Meter) (*AnalysisMetrics, error) {
	m := &AnalysisMetrics{}
	var err error

	counters := []struct {
		target *metric.Int64Counter
		name   string
		desc   string
	}{
		{&m.HTTPRequestsTotal, "http_requests_total", "Total number of HTTP requests"},
		{&m.RunsTotal, "analysis_runs_total", "Total number of analysis runs"},
		{&m.RowsNormalized, "analysis_rows_normalized_total", "Canonical rows produced by normalization"},
		{&m.RowsDropped, "analysis_rows_dropped_total", "Raw rows dropped as invalid during normalization"},
		{&m.SourceFailures, "analysis_source_failures_total", "Input sources that failed to load or normalize"},
		{&m.CacheHits, "analysis_cache_hits_total", "Analysis cache hits"},
		{&m.CacheMisses, "analysis_cache_misses_total", "Analysis cache misses"},
		{&m.CacheEvictions, "analysis_cache_evictions_total", "Analysis cache entries evicted or invalidated"},
	}
	for _, c := range counters {
		*c.target, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, fmt.Errorf("failed to create %s counter: %w", c.name, err)
		}
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"http_request_duration_seconds",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http duration histogram: %w", err)
	}

	m.HTTPActiveRequests, err = meter.Int64UpDownCounter(
		"http_active_requests",
		metric.WithDescription("Number of in-flight HTTP requests"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create active requests counter: %w", err)
	}

	m.RunDuration, err = meter.Float64Histogram(
		"analysis_run_duration_seconds",
		metric.WithDescription("Analysis run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create run duration histogram: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records one completed HTTP request
func (m *AnalysisMetrics) RecordHTTPRequest(ctx context.Context, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status_code", status),
	)
	m.HTTPRequestsTotal.Add(ctx, 1, attrs)
	m.HTTPRequestDuration.Record(ctx, duration.Seconds(), attrs)
}

// TrackActiveRequest adjusts the in-flight request gauge
func (m *AnalysisMetrics) TrackActiveRequest(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.HTTPActiveRequests.Add(ctx, delta)
}

// RecordRun records one analysis run
func (m *AnalysisMetrics) RecordRun(ctx context.Context, duration time.Duration, failedSources int) {
	if m == nil {
		return
	}
	status := "success"
	if failedSources > 0 {
		status = "partial"
	}
	attrs := metric.WithAttributes(attribute.String("status", status))
	m.RunsTotal.Add(ctx, 1, attrs)
	m.RunDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordSource records the outcome of normalizing one input dataset
func (m *AnalysisMetrics) RecordSource(ctx context.Context, dataset string, kept, dropped int, err error) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("dataset", dataset))
	if err != nil {
		m.SourceFailures.Add(ctx, 1, metric.WithAttributes(
			attribute.String("dataset", dataset),
			attribute.String("error.type", fmt.Sprintf("%T", err)),
		))
		return
	}
	m.RowsNormalized.Add(ctx, int64(kept), attrs)
	m.RowsDropped.Add(ctx, int64(dropped), attrs)
}

// RecordCacheLookup records a cache hit or miss
func (m *AnalysisMetrics) RecordCacheLookup(ctx context.Context, hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.CacheHits.Add(ctx, 1)
		return
	}
	m.CacheMisses.Add(ctx, 1)
}

// RecordCacheEviction records entries removed from the cache
func (m *AnalysisMetrics) RecordCacheEviction(ctx context.Context, n int, reason string) {
	if m == nil || n <= 0 {
		return
	}
	m.CacheEvictions.Add(ctx, int64(n), metric.WithAttributes(attribute.String("reason", reason)))
}
