package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	apperrors "globalalpha/internal/errors"
)

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "ALPHA"

// Config represents the complete application configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Paths     PathsConfig     `yaml:"paths" envconfig:"PATHS"`
	Pipeline  PipelineConfig  `yaml:"pipeline" envconfig:"PIPELINE"`
	Report    ReportConfig    `yaml:"report" envconfig:"REPORT"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" validate:"oneof=debug info warn warning error"`
	Format      string `yaml:"format" envconfig:"FORMAT" validate:"oneof=json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" validate:"oneof=console file both"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system locations. Relative directories are
// resolved against BaseDir, which defaults to the working directory.
type PathsConfig struct {
	BaseDir   string `yaml:"base_dir" envconfig:"BASE_DIR"`
	DataDir   string `yaml:"data_dir" envconfig:"DATA_DIR" validate:"required"`
	ImagesDir string `yaml:"images_dir" envconfig:"IMAGES_DIR" validate:"required"`
	LogsDir   string `yaml:"logs_dir" envconfig:"LOGS_DIR" validate:"required"`
}

// EntitySource ties a subsidiary to its raw extract and its reporting country.
type EntitySource struct {
	Name    string `yaml:"name" validate:"required"`
	File    string `yaml:"file" validate:"required"`
	Country string `yaml:"country"`
}

// PipelineConfig drives the consolidation batch
type PipelineConfig struct {
	MappingWorkbook  string         `yaml:"mapping_workbook" envconfig:"MAPPING_WORKBOOK" validate:"required"`
	MappingSheet     string         `yaml:"mapping_sheet" envconfig:"MAPPING_SHEET" validate:"required"`
	CurrencySheet    string         `yaml:"currency_sheet" envconfig:"CURRENCY_SHEET" validate:"required"`
	MasterFactFile   string         `yaml:"master_fact_file" envconfig:"MASTER_FACT_FILE" validate:"required"`
	MaxParallelLoads int            `yaml:"max_parallel_loads" envconfig:"MAX_PARALLEL_LOADS" validate:"min=1,max=64"`
	Entities         []EntitySource `yaml:"entities" ignored:"true" validate:"required,min=1,dive"`
}

// ReportConfig drives the ROIC analytics batch
type ReportConfig struct {
	TaxRate    float64 `yaml:"tax_rate" envconfig:"TAX_RATE" validate:"gte=0,lt=1"`
	HurdleRate float64 `yaml:"hurdle_rate" envconfig:"HURDLE_RATE"`
	ReportCSV  string  `yaml:"report_csv" envconfig:"REPORT_CSV" validate:"required"`
	ReportXLSX string  `yaml:"report_xlsx" envconfig:"REPORT_XLSX" validate:"required"`
	ChartFile  string  `yaml:"chart_file" envconfig:"CHART_FILE" validate:"required"`
	ChartDPI   int     `yaml:"chart_dpi" envconfig:"CHART_DPI" validate:"min=72,max=1200"`
}

// TelemetryConfig selects tracing and metrics sinks for batch runs
type TelemetryConfig struct {
	ServiceName     string `yaml:"service_name" envconfig:"SERVICE_NAME" validate:"required"`
	Environment     string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter   string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" validate:"oneof=none stdout file"`
	TracesFile      string `yaml:"traces_file" envconfig:"TRACES_FILE"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Load builds the configuration from defaults, an optional YAML file, an
// optional .env file and the environment, in increasing order of precedence.
func Load(baseDir, configFile string) (*Config, error) {
	cfg := Default()
	if baseDir != "" {
		cfg.Paths.BaseDir = baseDir
	}

	if err := loadDotEnv(cfg.Paths.BaseDir); err != nil {
		return nil, apperrors.NewConfigError("failed to load .env", err)
	}

	if configFile == "" {
		configFile = findConfigFile(cfg.Paths.BaseDir)
	}
	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, apperrors.NewConfigError("failed to load config from file", err).
				WithContext("file", configFile)
		}
	}

	// Fields without a matching variable keep their current value, so the
	// environment only overrides what it sets.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, apperrors.NewConfigError("failed to load config from env", err)
	}

	if err := cfg.resolveBaseDir(); err != nil {
		return nil, apperrors.NewConfigError("failed to resolve paths", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, apperrors.NewConfigError("config validation failed", err)
	}

	return cfg, nil
}

// loadDotEnv loads <base>/.env when present. Variables already set in the
// process environment win.
func loadDotEnv(baseDir string) error {
	path := filepath.Join(baseDir, ".env")
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// loadFromFile overlays YAML values onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// findConfigFile returns the first config file found in the usual places
func findConfigFile(baseDir string) string {
	locations := []string{
		filepath.Join(baseDir, "config.yaml"),
		filepath.Join(baseDir, "configs", "config.yaml"),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}
	return ""
}

func (c *Config) resolveBaseDir() error {
	if c.Paths.BaseDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.Paths.BaseDir = wd
	}
	abs, err := filepath.Abs(c.Paths.BaseDir)
	if err != nil {
		return err
	}
	c.Paths.BaseDir = abs
	return nil
}

// validate validates the configuration
func (c *Config) validate() error {
	c.Logging.Level = strings.ToLower(c.Logging.Level)
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join(c.Paths.LogsDir, "app.log")
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Pipeline.Entities))
	for _, e := range c.Pipeline.Entities {
		if seen[e.Name] {
			return fmt.Errorf("duplicate entity %q in pipeline.entities", e.Name)
		}
		seen[e.Name] = true
	}

	if c.Telemetry.TraceExporter == "file" && c.Telemetry.TracesFile == "" {
		return fmt.Errorf("telemetry.traces_file is required when trace_exporter is file")
	}

	return nil
}

// CountryMap returns the static entity to country table.
func (c *Config) CountryMap() map[string]string {
	m := make(map[string]string, len(c.Pipeline.Entities))
	for _, e := range c.Pipeline.Entities {
		if e.Country != "" {
			m[e.Name] = e.Country
		}
	}
	return m
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
			Output: "console",
		},
		Paths: PathsConfig{
			DataDir:   DefaultDataDir,
			ImagesDir: DefaultImagesDir,
			LogsDir:   DefaultLogsDir,
		},
		Pipeline: PipelineConfig{
			MappingWorkbook:  MappingWorkbookFileName,
			MappingSheet:     AccountMappingSheet,
			CurrencySheet:    CurrencyMasterSheet,
			MasterFactFile:   MasterFactFileName,
			MaxParallelLoads: DefaultMaxParallelLoads,
			Entities:         DefaultEntitySources(),
		},
		Report: ReportConfig{
			TaxRate:    DefaultTaxRate,
			HurdleRate: DefaultHurdleRate,
			ReportCSV:  ROICReportFileName,
			ReportXLSX: ExecutiveSummaryFileName,
			ChartFile:  ROICChartFileName,
			ChartDPI:   DefaultChartDPI,
		},
		Telemetry: TelemetryConfig{
			ServiceName:   ServiceName,
			Environment:   "development",
			TraceExporter: "none",
		},
	}
}
