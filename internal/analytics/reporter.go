package analytics

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"globalalpha/internal/config"
	"globalalpha/internal/dataprocessing"
	apperrors "globalalpha/internal/errors"
	"globalalpha/internal/exporter"
	"globalalpha/internal/infrastructure"
	"globalalpha/internal/validation"
	"globalalpha/pkg/contracts/domain"
)

// Reporter turns the master fact file into the ROIC report files and chart
type Reporter struct {
	cfg       config.ReportConfig
	paths     *config.Paths
	writer    *exporter.ReportWriter
	validator *validation.FileValidator
	telemetry *infrastructure.OTelProviders
	logger    *slog.Logger
	out       io.Writer
}

// NewReporter creates a reporter. Progress lines go to out (stdout when
// nil); telemetry may be nil.
func NewReporter(cfg config.ReportConfig, paths *config.Paths, telemetry *infrastructure.OTelProviders, logger *slog.Logger, out io.Writer) *Reporter {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	logger = infrastructure.WithComponent(logger, "analytics")
	return &Reporter{
		cfg:       cfg,
		paths:     paths,
		writer:    exporter.NewReportWriter(paths, logger),
		validator: validation.NewFileValidator(logger),
		telemetry: telemetry,
		logger:    logger,
		out:       out,
	}
}

func (r *Reporter) metrics() *infrastructure.BatchMetrics {
	if r.telemetry == nil {
		return nil
	}
	return r.telemetry.Metrics
}

// Run builds the ROIC report from the master fact file, writes the CSV and
// workbook, prints the console summary and renders the chart. A missing fact
// file is reported and yields a nil report without error.
func (r *Reporter) Run(ctx context.Context) (*domain.ROICReport, error) {
	fmt.Fprintln(r.out, "--- GENERATING EXECUTIVE ROIC REPORT ---")

	factPath := r.paths.MasterFactCSV
	if err := r.validator.ValidateCSVFile(factPath); err != nil {
		if apperrors.IsType(err, apperrors.ErrTypeNotFound) {
			r.logger.ErrorContext(ctx, "Master fact file not found", slog.String("path", factPath))
			fmt.Fprintf(r.out, "❌ Error: %s not found.\n", factPath)
			return nil, nil
		}
		return nil, err
	}

	report, err := r.buildReport(ctx, factPath)
	if err != nil {
		return nil, err
	}
	r.metrics().AddReportEntities(ctx, len(report.Rows))

	if err := r.export(ctx, report); err != nil {
		return nil, err
	}

	PrintReport(r.out, report)

	fmt.Fprintln(r.out, "--- GENERATING PERFORMANCE VISUALS ---")
	if err := r.renderChart(ctx, report); err != nil {
		return nil, err
	}

	fmt.Fprintln(r.out, "✅ Reports and visuals saved successfully.")
	return report, nil
}

func (r *Reporter) buildReport(ctx context.Context, factPath string) (report *domain.ROICReport, err error) {
	ctx, end := r.telemetry.StartStage(ctx, "build_report")
	defer func() { end(err) }()

	fact, err := dataprocessing.ReadTable(factPath)
	if err != nil {
		return nil, fmt.Errorf("read master fact file: %w", err)
	}
	NormalizeHeaders(fact)

	report, err = BuildReport(fact, r.cfg.TaxRate, r.cfg.HurdleRate)
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "ROIC report built",
		slog.Int("fact_rows", fact.Len()),
		slog.Int("entities", len(report.Rows)),
		slog.Int("plottable", len(report.Plottable())))
	return report, nil
}

func (r *Reporter) export(ctx context.Context, report *domain.ROICReport) (err error) {
	ctx, end := r.telemetry.StartStage(ctx, "export_report")
	defer func() { end(err) }()

	if err := r.writer.WriteCSV(ctx, r.paths.ROICReportCSV, report); err != nil {
		return err
	}
	return r.writer.WriteXLSX(ctx, r.paths.ExecutiveSummaryXLSX, report)
}

func (r *Reporter) renderChart(ctx context.Context, report *domain.ROICReport) (err error) {
	ctx, end := r.telemetry.StartStage(ctx, "render_chart")
	defer func() { end(err) }()

	if len(report.Plottable()) == 0 {
		r.logger.WarnContext(ctx, "No entity has a ROIC value, chart skipped")
		return nil
	}

	if err := r.validator.ValidateOutputDirectory(filepath.Dir(r.paths.ROICChartPNG)); err != nil {
		return err
	}
	opts := exporter.DefaultChartOptions(r.cfg.HurdleRate, r.cfg.ChartDPI)
	if err := exporter.RenderROICChart(r.paths.ROICChartPNG, report, opts); err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "ROIC chart rendered", slog.String("file", r.paths.ROICChartPNG))
	return nil
}
