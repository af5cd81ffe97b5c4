package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCommitsTotal = "gitdrift.run.commits.total"
	metricFieldsTotal  = "gitdrift.run.fields.total"
	metricRunDuration  = "gitdrift.run.duration.seconds"

	attrOutcome = "outcome"
	attrStatus  = "status"
)

// durationBucketBoundaries covers 10ms to 600s for runs that range from a
// handful of commits to long histories re-executing a command per commit.
var durationBucketBoundaries = []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300, 600}

// RunMetrics holds OTel instruments for per-run metrics.
type RunMetrics struct {
	commitsTotal metric.Int64Counter
	fieldsTotal  metric.Int64Counter
	runDuration  metric.Float64Histogram
}

// RunStats holds the statistics for a single run, decoupled from driver types.
type RunStats struct {
	CommitsContributed int64
	CommitsSkipped     int64
	FieldsRendered     int64
	FieldsSkipped      int64
	Duration           time.Duration
}

// NewRunMetrics creates run metric instruments from the given meter.
func NewRunMetrics(mt metric.Meter) (*RunMetrics, error) {
	commits, err := mt.Int64Counter(metricCommitsTotal,
		metric.WithDescription("Total commits examined, by outcome"),
		metric.WithUnit("{commit}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricCommitsTotal, err)
	}

	fields, err := mt.Int64Counter(metricFieldsTotal,
		metric.WithDescription("Total tracked fields, by chart status"),
		metric.WithUnit("{field}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFieldsTotal, err)
	}

	runDur, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("End-to-end run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	return &RunMetrics{
		commitsTotal: commits,
		fieldsTotal:  fields,
		runDuration:  runDur,
	}, nil
}

// RecordRun records statistics for a completed run.
// Safe to call on a nil receiver (no-op).
func (rm *RunMetrics) RecordRun(ctx context.Context, stats RunStats) {
	if rm == nil {
		return
	}

	contributedAttrs := metric.WithAttributes(attribute.String(attrOutcome, "contributed"))
	rm.commitsTotal.Add(ctx, stats.CommitsContributed, contributedAttrs)

	skippedAttrs := metric.WithAttributes(attribute.String(attrOutcome, "skipped"))
	rm.commitsTotal.Add(ctx, stats.CommitsSkipped, skippedAttrs)

	renderedAttrs := metric.WithAttributes(attribute.String(attrStatus, "rendered"))
	rm.fieldsTotal.Add(ctx, stats.FieldsRendered, renderedAttrs)

	fieldSkippedAttrs := metric.WithAttributes(attribute.String(attrStatus, "skipped"))
	rm.fieldsTotal.Add(ctx, stats.FieldsSkipped, fieldSkippedAttrs)

	rm.runDuration.Record(ctx, stats.Duration.Seconds())
}
