package dataprocessing

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "globalalpha/internal/errors"
	"globalalpha/pkg/contracts/domain"
)

// ReadTable reads the first worksheet of a workbook, or a plain .csv file,
// into a table whose header is the first non-blank row.
func ReadTable(filePath string) (*domain.Table, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".csv") {
		return readCSVTable(filePath)
	}

	f, err := openWorkbook(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewParsingError("workbook has no sheets", nil).WithContext("file", filePath)
	}
	return readSheet(f, filePath, sheets[0])
}

func openWorkbook(filePath string) (*excelize.File, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(filePath)
		}
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("file", filePath)
	}
	return f, nil
}

func readSheet(f *excelize.File, filePath, sheet string) (*domain.Table, error) {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx < 0 {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("sheet %q in %s", sheet, filepath.Base(filePath)))
	}

	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read sheet", err).
			WithContext("file", filePath).
			WithContext("sheet", sheet)
	}

	slog.Debug("Read worksheet",
		slog.String("file", filepath.Base(filePath)),
		slog.String("sheet", sheet),
		slog.Int("total_rows", len(rows)))

	return rowsToTable(rows), nil
}

func readCSVTable(filePath string) (*domain.Table, error) {
	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperrors.NewNotFoundError(filePath)
		}
		return nil, apperrors.NewParsingError("failed to open CSV", err).WithContext("file", filePath)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV", err).WithContext("file", filePath)
	}

	// a UTF-8 BOM would otherwise end up in the first header
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rowsToTable(rows), nil
}

// rowsToTable turns raw rows into a rectangular table. Blank rows are
// dropped, missing header cells become "Unnamed: <i>", and repeated header
// names get ".1", ".2" suffixes.
func rowsToTable(rows [][]string) *domain.Table {
	nonBlank := make([][]string, 0, len(rows))
	width := 0
	for _, row := range rows {
		if isBlankRow(row) {
			continue
		}
		nonBlank = append(nonBlank, row)
		if len(row) > width {
			width = len(row)
		}
	}
	if len(nonBlank) == 0 {
		return domain.NewTable()
	}

	header := nonBlank[0]
	columns := make([]string, width)
	seen := make(map[string]int, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if n, dup := seen[name]; dup {
			seen[name] = n + 1
			name = name + "." + strconv.Itoa(n+1)
		} else {
			seen[name] = 0
		}
		columns[i] = name
	}

	table := domain.NewTable(columns...)
	table.Rows = make([][]string, 0, len(nonBlank)-1)
	for _, row := range nonBlank[1:] {
		padded := make([]string, width)
		copy(padded, row)
		table.Rows = append(table.Rows, padded)
	}
	return table
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
