package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type sheetData struct {
	name string
	rows [][]interface{}
}

// writeWorkbook saves a workbook with the given sheets, in order
func writeWorkbook(t *testing.T, path string, sheets ...sheetData) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName(f.GetSheetName(0), s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			row := row
			require.NoError(t, f.SetSheetRow(s.name, cell, &row))
		}
	}

	require.NoError(t, f.SaveAs(path))
}

// writeExtract saves a one-sheet workbook under dir and returns its path
func writeExtract(t *testing.T, dir, name string, rows ...[]interface{}) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeWorkbook(t, path, sheetData{name: "Sheet1", rows: rows})
	return path
}

// writeReference saves a mapping workbook with the standard sheets
func writeReference(t *testing.T, path string, mapping, currencies [][]interface{}) {
	t.Helper()
	writeWorkbook(t, path,
		sheetData{name: "Account_Mapping", rows: mapping},
		sheetData{name: "Currency_Master", rows: currencies},
	)
}

func row(values ...interface{}) []interface{} { return values }
