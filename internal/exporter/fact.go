package exporter

import (
	"context"
	"log/slog"

	"globalalpha/internal/config"
	apperrors "globalalpha/internal/errors"
	"globalalpha/pkg/contracts/domain"
)

// FactWriter writes the consolidated fact table
type FactWriter struct {
	csv    *CSVWriter
	logger *slog.Logger
}

// NewFactWriter creates a fact writer rooted at the data directory of paths
func NewFactWriter(paths *config.Paths, logger *slog.Logger) *FactWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &FactWriter{
		csv:    NewCSVWriter(paths),
		logger: logger.With("component", "fact_writer"),
	}
}

// Write overwrites filePath with the fact table. Short rows are padded with
// empty cells so every record has one field per column.
func (w *FactWriter) Write(ctx context.Context, filePath string, table *domain.Table) error {
	if table == nil || len(table.Columns) == 0 {
		return apperrors.NewValidationError("fact table has no columns")
	}

	stream, err := w.csv.CreateStreamWriter(filePath, table.Columns)
	if err != nil {
		return err
	}

	width := len(table.Columns)
	record := make([]string, width)
	for i, row := range table.Rows {
		if err := ctx.Err(); err != nil {
			stream.Close()
			return err
		}
		for j := range record {
			record[j] = ""
			if j < len(row) {
				record[j] = row[j]
			}
		}
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return apperrors.NewStorageError("failed to write fact row", err).WithContext("row", i)
		}
	}

	if err := stream.Close(); err != nil {
		return apperrors.NewStorageError("failed to close fact table", err)
	}

	w.logger.InfoContext(ctx, "Fact table written",
		slog.String("file", filePath),
		slog.Int("rows", stream.Rows()),
		slog.Int("columns", width))
	return nil
}
