package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	apperrors "globalalpha/internal/errors"
	"globalalpha/internal/files"
	"globalalpha/internal/infrastructure"
	"globalalpha/pkg/contracts/domain"
)

// canonicalColumns maps normalized extract headers to fact table names
var canonicalColumns = map[string]string{
	"ACCOUNTCODE": domain.ColumnAccountCode,
	"LOCALAMOUNT": domain.ColumnLocalAmount,
}

// LoadedExtract is a cleaned subsidiary extract tagged with its entity
type LoadedExtract struct {
	Entity string
	Path   string
	Table  *domain.Table
}

// ExtractLoader reads subsidiary extracts with bounded parallelism
type ExtractLoader struct {
	maxParallel int
	logger      *slog.Logger
	metrics     *infrastructure.BatchMetrics
}

// NewExtractLoader creates a loader reading at most maxParallel files at once
func NewExtractLoader(maxParallel int, logger *slog.Logger, metrics *infrastructure.BatchMetrics) *ExtractLoader {
	if maxParallel < 1 {
		maxParallel = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExtractLoader{
		maxParallel: maxParallel,
		logger:      logger.With("component", "extract_loader"),
		metrics:     metrics,
	}
}

// LoadAll loads every extract found on disk. Missing extracts are skipped.
// The result keeps the order of extracts whatever order the reads finish in.
func (l *ExtractLoader) LoadAll(ctx context.Context, extracts []files.EntityExtract) ([]LoadedExtract, error) {
	results := make([]*LoadedExtract, len(extracts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxParallel)

	for i, ex := range extracts {
		if !ex.Exists {
			l.logger.DebugContext(ctx, "Extract not found, skipping",
				slog.String("entity", ex.Entity),
				slog.String("file", ex.Path))
			l.metrics.AddExtract(ctx, ex.Entity, false)
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table, err := LoadExtract(ex.Path, ex.Entity)
			if err != nil {
				return fmt.Errorf("load %s: %w", ex.Entity, err)
			}
			results[i] = &LoadedExtract{Entity: ex.Entity, Path: ex.Path, Table: table}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	loaded := make([]LoadedExtract, 0, len(extracts))
	for _, r := range results {
		if r == nil {
			continue
		}
		l.logger.InfoContext(ctx, "Extract loaded",
			slog.String("entity", r.Entity),
			slog.Int("rows", r.Table.Len()),
			slog.Int("columns", len(r.Table.Columns)))
		l.metrics.AddExtract(ctx, r.Entity, true)
		loaded = append(loaded, *r)
	}
	return loaded, nil
}

// LoadExtract reads one extract and cleans it: a single packed column is
// split on commas, headers are normalized, the account code and local
// amount columns get their canonical names and every row is tagged with
// entity.
func LoadExtract(filePath, entity string) (*domain.Table, error) {
	table, err := ReadTable(filePath)
	if err != nil {
		return nil, err
	}

	if len(table.Columns) == 1 {
		table, err = splitPackedColumn(table)
		if err != nil {
			return nil, err
		}
	}

	for i, c := range table.Columns {
		table.Columns[i] = NormalizeHeader(c)
	}
	table.RenameColumns(canonicalColumns)

	tags := make([]string, table.Len())
	for i := range tags {
		tags[i] = entity
	}
	table.SetColumn(domain.ColumnEntity, tags)

	return table, nil
}

// NormalizeHeader upper-cases and trims a header and drops spaces and
// underscores: "Account Code" and "account_code" both become "ACCOUNTCODE".
func NormalizeHeader(h string) string {
	h = strings.TrimSpace(strings.ToUpper(h))
	h = strings.ReplaceAll(h, " ", "")
	return strings.ReplaceAll(h, "_", "")
}

// splitPackedColumn expands a one-column export whose header and values are
// comma-joined strings. Short rows are padded with nulls; a row with more
// fields than the header is rejected.
func splitPackedColumn(t *domain.Table) (*domain.Table, error) {
	names := strings.Split(t.Columns[0], ",")
	out := domain.NewTable(names...)
	out.Rows = make([][]string, 0, t.Len())

	for i, row := range t.Rows {
		fields := make([]string, len(names))
		if len(row) > 0 && row[0] != "" {
			parts := strings.Split(row[0], ",")
			if len(parts) > len(names) {
				return nil, apperrors.NewParsingError(
					fmt.Sprintf("packed row has %d fields, header has %d", len(parts), len(names)), nil).
					WithContext("row", i+2)
			}
			copy(fields, parts)
		}
		out.Rows = append(out.Rows, fields)
	}
	return out, nil
}
