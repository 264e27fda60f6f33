package infrastructure

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// BatchMetrics holds the counters and histograms of the consolidation and
// analytics batches. A nil *BatchMetrics records nothing.
type BatchMetrics struct {
	ExtractsLoaded      metric.Int64Counter
	ExtractsSkipped     metric.Int64Counter
	FactRows            metric.Int64Counter
	UnmatchedAccounts   metric.Int64Counter
	UnmatchedCurrencies metric.Int64Counter
	NonNumericAmounts   metric.Int64Counter
	MissingFXRates      metric.Int64Counter
	ReportEntities      metric.Int64Counter
	StageDuration       metric.Float64Histogram
}

// NewBatchMetrics creates the batch instruments on meter
func NewBatchMetrics(meter metric.Meter) (*BatchMetrics, error) {
	var (
		m   BatchMetrics
		err error
	)

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.ExtractsLoaded, "alpha_extracts_loaded", "Entity extracts loaded"},
		{&m.ExtractsSkipped, "alpha_extracts_skipped", "Entity extracts skipped because the file was missing"},
		{&m.FactRows, "alpha_fact_rows", "Rows written to the master fact table"},
		{&m.UnmatchedAccounts, "alpha_unmatched_accounts", "Fact rows without a matching account mapping"},
		{&m.UnmatchedCurrencies, "alpha_unmatched_currencies", "Fact rows without a matching currency rate"},
		{&m.NonNumericAmounts, "alpha_non_numeric_amounts", "Local amounts that could not be parsed"},
		{&m.MissingFXRates, "alpha_missing_fx_rates", "Fact rows converted with the default FX rate"},
		{&m.ReportEntities, "alpha_report_entities", "Entities in the ROIC report"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return nil, err
		}
	}

	m.StageDuration, err = meter.Float64Histogram(
		"alpha_stage_duration",
		metric.WithDescription("Batch stage duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// RecordStage observes the duration and outcome of a stage
func (m *BatchMetrics) RecordStage(ctx context.Context, stage string, d time.Duration, err error) {
	if m == nil {
		return
	}
	m.StageDuration.Record(ctx, d.Seconds(), metric.WithAttributes(
		attribute.String("stage", stage),
		attribute.Bool("success", err == nil),
	))
}

// AddExtract counts a loaded or skipped entity extract
func (m *BatchMetrics) AddExtract(ctx context.Context, entity string, loaded bool) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("entity", entity))
	if loaded {
		m.ExtractsLoaded.Add(ctx, 1, attrs)
		return
	}
	m.ExtractsSkipped.Add(ctx, 1, attrs)
}

// AddConsolidation counts the outcome of a consolidation run
func (m *BatchMetrics) AddConsolidation(ctx context.Context, rows, unmatchedAccounts, unmatchedCurrencies, nonNumeric, missingFX int) {
	if m == nil {
		return
	}
	m.FactRows.Add(ctx, int64(rows))
	m.UnmatchedAccounts.Add(ctx, int64(unmatchedAccounts))
	m.UnmatchedCurrencies.Add(ctx, int64(unmatchedCurrencies))
	m.NonNumericAmounts.Add(ctx, int64(nonNumeric))
	m.MissingFXRates.Add(ctx, int64(missingFX))
}

// AddReportEntities counts the entities in a ROIC report
func (m *BatchMetrics) AddReportEntities(ctx context.Context, n int) {
	if m == nil {
		return
	}
	m.ReportEntities.Add(ctx, int64(n))
}
