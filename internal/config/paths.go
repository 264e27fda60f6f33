package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains all the application paths.
// This is the single source of truth for every file the batches touch.
type Paths struct {
	BaseDir   string
	DataDir   string
	ImagesDir string
	LogsDir   string

	// Inputs
	MappingWorkbook string

	// Outputs
	MasterFactCSV        string
	ROICReportCSV        string
	ExecutiveSummaryXLSX string
	ROICChartPNG         string
	LogFile              string
	TracesFile           string
	MetricsTextfile      string
}

// NewPaths resolves every path of cfg against its base directory
func NewPaths(cfg *Config) *Paths {
	base := cfg.Paths.BaseDir
	dataDir := resolve(base, cfg.Paths.DataDir)
	imagesDir := resolve(base, cfg.Paths.ImagesDir)
	logsDir := resolve(base, cfg.Paths.LogsDir)

	p := &Paths{
		BaseDir:   base,
		DataDir:   dataDir,
		ImagesDir: imagesDir,
		LogsDir:   logsDir,

		MappingWorkbook: resolve(dataDir, cfg.Pipeline.MappingWorkbook),

		MasterFactCSV:        resolve(dataDir, cfg.Pipeline.MasterFactFile),
		ROICReportCSV:        resolve(dataDir, cfg.Report.ReportCSV),
		ExecutiveSummaryXLSX: resolve(dataDir, cfg.Report.ReportXLSX),
		ROICChartPNG:         resolve(imagesDir, cfg.Report.ChartFile),
		LogFile:              resolve(base, cfg.Logging.FilePath),
	}
	if cfg.Telemetry.TracesFile != "" {
		p.TracesFile = resolve(base, cfg.Telemetry.TracesFile)
	}
	if cfg.Telemetry.MetricsTextfile != "" {
		p.MetricsTextfile = resolve(base, cfg.Telemetry.MetricsTextfile)
	}
	return p
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// EnsureDirectories creates the output directories if they don't exist.
// The data directory holds the inputs and is never created here.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.ImagesDir, p.LogsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
		slog.Debug("Ensured directory exists", slog.String("directory", dir))
	}
	return nil
}

// GetDataPath returns the path of a file in the data directory
func (p *Paths) GetDataPath(filename string) string {
	return resolve(p.DataDir, filename)
}

// LogPathResolution logs the resolved paths for debugging
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("images", p.ImagesDir),
			slog.String("logs", p.LogsDir),
		),
		slog.Group("files",
			slog.String("mapping_workbook", p.MappingWorkbook),
			slog.String("master_fact", p.MasterFactCSV),
			slog.String("roic_report_csv", p.ROICReportCSV),
			slog.String("roic_report_xlsx", p.ExecutiveSummaryXLSX),
			slog.String("roic_chart", p.ROICChartPNG),
		))
}
