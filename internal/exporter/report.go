package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"globalalpha/internal/config"
	apperrors "globalalpha/internal/errors"
	"globalalpha/pkg/contracts/domain"
)

// ReportSheet is the worksheet holding the ROIC table in the summary workbook
const ReportSheet = "Sheet1"

// ReportWriter exports the ROIC report as CSV and as a spreadsheet
type ReportWriter struct {
	csv    *CSVWriter
	paths  *config.Paths
	logger *slog.Logger
}

// NewReportWriter creates a report writer
func NewReportWriter(paths *config.Paths, logger *slog.Logger) *ReportWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportWriter{
		csv:    NewCSVWriter(paths),
		paths:  paths,
		logger: logger.With("component", "report_writer"),
	}
}

// reportRecords renders the report rows as text cells, nil ROIC as empty
func reportRecords(report *domain.ROICReport) [][]string {
	records := make([][]string, 0, len(report.Rows))
	for _, row := range report.Rows {
		records = append(records, []string{
			row.Entity,
			FormatFloat(row.Revenue),
			FormatFloat(row.Assets),
			FormatFloat(row.NOPAT),
			FormatNullable(row.ROIC),
		})
	}
	return records
}

// WriteCSV overwrites filePath with the report table
func (w *ReportWriter) WriteCSV(ctx context.Context, filePath string, report *domain.ROICReport) error {
	if err := w.csv.WriteSimpleCSV(filePath, domain.ReportColumns, reportRecords(report)); err != nil {
		return err
	}
	w.logger.InfoContext(ctx, "ROIC report CSV written",
		slog.String("file", filePath),
		slog.Int("entities", len(report.Rows)))
	return nil
}

// WriteXLSX overwrites filePath with a workbook holding the report table
// under a bold header row. Numbers are stored as numeric cells and a nil
// ROIC leaves its cell blank.
func (w *ReportWriter) WriteXLSX(ctx context.Context, filePath string, report *domain.ROICReport) error {
	if !filepath.IsAbs(filePath) && w.paths != nil {
		filePath = w.paths.GetDataPath(filePath)
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "top"},
	})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	for col, header := range domain.ReportColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(ReportSheet, cell, header); err != nil {
			return apperrors.NewStorageError("failed to write header", err)
		}
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(domain.ReportColumns), 1)
	if err := f.SetCellStyle(ReportSheet, "A1", lastHeader, headerStyle); err != nil {
		return apperrors.NewStorageError("failed to style header", err)
	}

	for i, row := range report.Rows {
		r := i + 2
		values := []interface{}{row.Entity, row.Revenue, row.Assets, row.NOPAT}
		if row.ROIC != nil {
			values = append(values, *row.ROIC)
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, r)
			if err := f.SetCellValue(ReportSheet, cell, v); err != nil {
				return apperrors.NewStorageError(fmt.Sprintf("failed to write row %d", r), err)
			}
		}
	}

	if err := f.SetColWidth(ReportSheet, "A", "A", 20); err != nil {
		return apperrors.NewStorageError("failed to size entity column", err)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return apperrors.NewStorageError("failed to create directory", err)
	}
	if err := f.SaveAs(filePath); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err)
	}

	w.logger.InfoContext(ctx, "ROIC report workbook written",
		slog.String("file", filePath),
		slog.Int("entities", len(report.Rows)))
	return nil
}
