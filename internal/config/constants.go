package config

import "globalalpha/pkg/contracts"

// Application constants
const (
	AppName     = "Global Alpha Consolidation"
	AppVersion  = contracts.Version
	ServiceName = "globalalpha"

	// Input workbook and its sheets
	MappingWorkbookFileName = "dim_Mapping_Logic.xlsx.xlsx"
	AccountMappingSheet     = "Account_Mapping"
	CurrencyMasterSheet     = "Currency_Master"

	// Outputs
	MasterFactFileName       = "Master_Consolidated_Fact.csv"
	ROICReportFileName       = "Final_ROIC_Report.csv"
	ExecutiveSummaryFileName = "Executive_Performance_Summary.xlsx"
	ROICChartFileName        = "roic.png"

	// Directories (relative to the base directory)
	DefaultDataDir   = "data"
	DefaultImagesDir = "images"
	DefaultLogsDir   = "logs"

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultMaxParallelLoads = 4

	// Financial assumptions
	DefaultTaxRate    = 0.25 // NOPAT = revenue * (1 - tax)
	DefaultHurdleRate = 10.0 // percent

	DefaultChartDPI = 300

	// Chart colours
	ColorAboveHurdle = "#2ecc71"
	ColorBelowHurdle = "#e74c3c"
)

// DefaultEntitySources returns the subsidiaries consolidated by default, in
// load order.
func DefaultEntitySources() []EntitySource {
	return []EntitySource{
		{Name: "BioGrowth", File: "Raw_BioGrowth.csv.xlsx", Country: "Switzerland"},
		{Name: "CryptoFlow", File: "Raw_CryptoFlow.csv.xlsx", Country: "Brazil"},
		{Name: "FinShield Re", File: "Raw_FinShield.csv.xlsx", Country: "United Kingdom"},
		{Name: "Nexus Strategic", File: "Raw_Nexus.csv.xlsx", Country: "South Africa"},
		{Name: "Omni-Retail", File: "Raw_OmniRetail.csv.xlsx", Country: "Germany (EU)"},
		{Name: "Terra-Grid", File: "Raw_TerraGrid.csv.xlsx", Country: "India"},
	}
}
