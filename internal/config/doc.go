// Package config provides centralized configuration management for the
// consolidation and ROIC reporting batches.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//  1. Environment variables (highest priority)
//  2. A .env file in the base directory
//  3. A YAML configuration file (config.yaml or configs/config.yaml)
//  4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern ALPHA_* for namespacing:
//
//	ALPHA_LOGGING_LEVEL=debug
//	ALPHA_PATHS_DATA_DIR=/srv/finance/data
//	ALPHA_REPORT_TAX_RATE=0.21
//	ALPHA_TELEMETRY_TRACE_EXPORTER=file
//
// The entity table (pipeline.entities) can only be changed in the YAML file.
//
// # Path Management
//
// Paths resolves every input and output file against the base directory:
//
//	paths := config.NewPaths(cfg)
//	workbook := paths.MappingWorkbook
//	fact := paths.MasterFactCSV
package config
