package pipeline

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"globalalpha/internal/config"
	"globalalpha/internal/dataprocessing"
	"globalalpha/internal/exporter"
	"globalalpha/internal/files"
	"globalalpha/internal/infrastructure"
	"globalalpha/internal/validation"
)

// Result describes a finished consolidation run
type Result struct {
	Loaded   []string
	Skipped  []string
	Stats    dataprocessing.ConsolidationStats
	FactFile string
}

// Pipeline consolidates the subsidiary extracts into the master fact file
type Pipeline struct {
	cfg       *config.Config
	paths     *config.Paths
	validator *validation.FileValidator
	telemetry *infrastructure.OTelProviders
	logger    *slog.Logger
	out       io.Writer
}

// New creates a pipeline. Progress lines go to out (stdout when nil);
// telemetry may be nil.
func New(cfg *config.Config, paths *config.Paths, telemetry *infrastructure.OTelProviders, logger *slog.Logger, out io.Writer) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if out == nil {
		out = os.Stdout
	}
	logger = infrastructure.WithComponent(logger, "pipeline")
	return &Pipeline{
		cfg:       cfg,
		paths:     paths,
		validator: validation.NewFileValidator(logger),
		telemetry: telemetry,
		logger:    logger,
		out:       out,
	}
}

func (p *Pipeline) metrics() *infrastructure.BatchMetrics {
	if p.telemetry == nil {
		return nil
	}
	return p.telemetry.Metrics
}

// Run loads the reference workbook and every extract present, consolidates
// them and overwrites the master fact file. A missing or unreadable
// reference workbook aborts the run. When no extract is present nothing is
// written and the result has no fact file.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	fmt.Fprintln(p.out, "--- STARTING GLOBAL ALPHA ETL PIPELINE ---")
	p.paths.LogPathResolution(p.logger)

	ref, err := p.loadReference(ctx)
	if err != nil {
		infrastructure.WithError(p.logger, err).ErrorContext(ctx, "Failed to load mapping workbook",
			slog.String("path", p.paths.MappingWorkbook))
		fmt.Fprintf(p.out, "❌ Error: Could not find mapping file in %s\n", p.paths.DataDir)
		return nil, err
	}
	fmt.Fprintln(p.out, "✅ Mapping Logic Loaded.")

	result := &Result{}
	loaded, err := p.loadExtracts(ctx, result)
	if err != nil {
		return nil, err
	}
	for _, l := range loaded {
		fmt.Fprintf(p.out, "✅ Loaded & Cleaned: %s\n", l.Entity)
	}

	if len(loaded) == 0 {
		p.logger.WarnContext(ctx, "No entity extracts found, master fact file not written",
			slog.String("data_dir", p.paths.DataDir))
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := p.consolidate(ctx, loaded, ref, result); err != nil {
		return nil, err
	}

	fmt.Fprintln(p.out, "\n🎉 SUCCESS: Master File created in /data folder.")
	return result, nil
}

func (p *Pipeline) loadReference(ctx context.Context) (ref *dataprocessing.ReferenceData, err error) {
	ctx, end := p.telemetry.StartStage(ctx, "load_reference")
	defer func() { end(err) }()

	if err := p.validator.ValidateInputDirectory(p.paths.DataDir); err != nil {
		return nil, err
	}
	if err := p.validator.ValidateWorkbook(p.paths.MappingWorkbook); err != nil {
		return nil, err
	}
	ref, err = dataprocessing.LoadReferenceData(p.paths.MappingWorkbook,
		p.cfg.Pipeline.MappingSheet, p.cfg.Pipeline.CurrencySheet)
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "Mapping workbook loaded",
		slog.String("path", p.paths.MappingWorkbook),
		slog.Int("mapping_rows", ref.Mapping.Len()),
		slog.Int("currency_rows", ref.Currencies.Len()))
	return ref, nil
}

func (p *Pipeline) loadExtracts(ctx context.Context, result *Result) (loaded []dataprocessing.LoadedExtract, err error) {
	ctx, end := p.telemetry.StartStage(ctx, "load_extracts")
	defer func() { end(err) }()

	discovery := files.NewDiscovery(p.paths.DataDir)
	extracts := discovery.FindEntityExtracts(p.cfg.Pipeline.Entities)
	p.reportUnconfigured(ctx, discovery, extracts)

	for _, ex := range extracts {
		if !ex.Exists {
			result.Skipped = append(result.Skipped, ex.Entity)
			infrastructure.AddSpanEvent(ctx, "extract.missing", map[string]interface{}{
				"entity": ex.Entity,
				"file":   ex.Path,
			})
		}
	}

	loader := dataprocessing.NewExtractLoader(p.cfg.Pipeline.MaxParallelLoads, p.logger, p.metrics())
	loaded, err = loader.LoadAll(ctx, extracts)
	if err != nil {
		return nil, err
	}
	for _, l := range loaded {
		result.Loaded = append(result.Loaded, l.Entity)
	}
	return loaded, nil
}

// reportUnconfigured logs data files that match no configured input
func (p *Pipeline) reportUnconfigured(ctx context.Context, discovery *files.Discovery, extracts []files.EntityExtract) {
	found, err := discovery.FindDataFiles(p.paths.DataDir)
	if err != nil {
		p.logger.WarnContext(ctx, "Failed to list data directory", slog.String("error", err.Error()))
		return
	}
	stray := files.Unconfigured(found, extracts,
		p.paths.MappingWorkbook,
		p.paths.MasterFactCSV,
		p.paths.ROICReportCSV,
		p.paths.ExecutiveSummaryXLSX)
	for _, f := range stray {
		p.logger.InfoContext(ctx, "Ignoring unconfigured data file",
			slog.String("file", f.Name),
			slog.Int64("size", f.Size))
	}
}

func (p *Pipeline) consolidate(ctx context.Context, loaded []dataprocessing.LoadedExtract, ref *dataprocessing.ReferenceData, result *Result) (err error) {
	ctx, end := p.telemetry.StartStage(ctx, "consolidate")
	defer func() { end(err) }()

	consolidator := dataprocessing.NewConsolidator(p.cfg.CountryMap(), p.logger)
	fact, stats, err := consolidator.Consolidate(ctx, loaded, ref)
	if err != nil {
		return err
	}
	result.Stats = stats
	p.metrics().AddConsolidation(ctx, stats.Rows, stats.UnmatchedAccounts, stats.UnmatchedCurrencies,
		stats.NonNumericAmounts, stats.MissingFXRates)
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"fact.entities":             stats.Entities,
		"fact.rows":                 stats.Rows,
		"fact.unmatched_accounts":   stats.UnmatchedAccounts,
		"fact.unmatched_currencies": stats.UnmatchedCurrencies,
		"fact.non_numeric_amounts":  stats.NonNumericAmounts,
		"fact.missing_fx_rates":     stats.MissingFXRates,
	})

	writer := exporter.NewFactWriter(p.paths, p.logger)
	if err := writer.Write(ctx, p.paths.MasterFactCSV, fact); err != nil {
		return err
	}
	result.FactFile = p.paths.MasterFactCSV
	return nil
}
