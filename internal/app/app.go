package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"globalalpha/internal/analytics"
	"globalalpha/internal/config"
	"globalalpha/internal/infrastructure"
	"globalalpha/internal/operations"
	"globalalpha/internal/pipeline"
	"globalalpha/pkg/contracts"
)

// Step IDs of a combined run
const (
	StepPipeline  = "pipeline"
	StepAnalytics = "analytics"
)

// shutdownTimeout bounds the telemetry flush at exit
const shutdownTimeout = 5 * time.Second

// Options locates the project and its configuration
type Options struct {
	BaseDir    string
	ConfigFile string
	Out        io.Writer
}

// Application holds the wiring shared by the batch binaries
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Out           io.Writer
}

// NewApplication loads the configuration, prepares the output directories
// and starts logging and telemetry
func NewApplication(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.BaseDir, opts.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	paths := config.NewPaths(cfg)
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}

	cfg.Logging.FilePath = paths.LogFile
	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.GetFullVersionString()),
		slog.String("base_dir", paths.BaseDir))

	otelProviders, err := infrastructure.InitializeOTel(cfg.Telemetry, infrastructure.TelemetryOutputs{
		TracesFile:      paths.TracesFile,
		MetricsTextfile: paths.MetricsTextfile,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	return &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Out:           out,
	}, nil
}

// RunPipeline runs the consolidation batch
func (a *Application) RunPipeline(ctx context.Context) error {
	_, err := pipeline.New(a.Config, a.Paths, a.OTelProviders, a.Logger, a.Out).Run(ctx)
	return err
}

// RunAnalytics runs the ROIC reporting batch
func (a *Application) RunAnalytics(ctx context.Context) error {
	_, err := analytics.NewReporter(a.Config.Report, a.Paths, a.OTelProviders, a.Logger, a.Out).Run(ctx)
	return err
}

// Steps registers the batches of a combined run, analytics after pipeline
func (a *Application) Steps() (*operations.Registry, error) {
	registry := operations.NewRegistry()
	if err := registry.Register(operations.NewFuncStep(StepPipeline, "ETL pipeline", a.RunPipeline)); err != nil {
		return nil, err
	}
	if err := registry.Register(operations.NewFuncStep(StepAnalytics, "ROIC analytics", a.RunAnalytics, StepPipeline)); err != nil {
		return nil, err
	}
	return registry, nil
}

// RunAll runs the pipeline then the analytics batch. Analytics is skipped
// when the pipeline fails.
func (a *Application) RunAll(ctx context.Context) error {
	registry, err := a.Steps()
	if err != nil {
		return err
	}
	_, err = operations.NewRunner(registry, a.OTelProviders, a.Logger).Run(ctx)
	return err
}

// Close flushes telemetry and closes the log file
func (a *Application) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.OTelProviders.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
