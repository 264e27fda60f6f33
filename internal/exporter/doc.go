// Package exporter writes the batch outputs.
//
// This package contains four main components:
//
// CSVWriter: Core CSV writing functionality with support for headers, streaming,
// appending and an optional UTF-8 BOM for Excel compatibility.
//
// FactWriter: Writes the consolidated fact table with one field per column
// and no index column.
//
// ReportWriter: Writes the ROIC report as CSV and as a spreadsheet with a bold
// header row.
//
// RenderROICChart: Draws the ROIC bar chart against the hurdle rate as PNG.
//
// Floats are written with FormatFloat, so re-running a batch on unchanged
// inputs produces byte-identical CSV files.
//
// Example usage:
//
//	writer := exporter.NewReportWriter(paths, logger)
//	err := writer.WriteCSV(ctx, paths.ROICReportCSV, report)
//
//	opts := exporter.DefaultChartOptions(cfg.Report.HurdleRate, cfg.Report.ChartDPI)
//	err = exporter.RenderROICChart(paths.ROICChartPNG, report, opts)
package exporter
