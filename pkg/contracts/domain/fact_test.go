package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableColumns(t *testing.T) {
	tbl := NewTable("A", "B")
	tbl.Rows = [][]string{{"1", "2"}, {"3"}}

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 1, tbl.ColumnIndex("B"))
	assert.Equal(t, -1, tbl.ColumnIndex("C"))
	assert.Equal(t, "", tbl.Value(1, "B"), "short row reads as null")
	assert.Equal(t, []string{"2", ""}, tbl.Column("B"))
	assert.Equal(t, []string{"", ""}, tbl.Column("missing"))

	tbl.SetColumn("C", []string{"x", "y"})
	require.Equal(t, []string{"A", "B", "C"}, tbl.Columns)
	assert.Equal(t, []string{"3", "", "y"}, tbl.Rows[1])

	tbl.SetColumn("A", []string{"9", "8"})
	assert.Equal(t, []string{"9", "8"}, tbl.Column("A"))
	assert.Len(t, tbl.Columns, 3)

	tbl.RenameColumns(map[string]string{"A": "Alpha"})
	assert.Equal(t, []string{"Alpha", "B", "C"}, tbl.Columns)

	var nilTable *Table
	assert.Equal(t, 0, nilTable.Len())
}

func TestROICReport(t *testing.T) {
	roic := 37.5
	low := 4.2
	report := &ROICReport{Rows: []ROICRow{
		{Entity: "A", ROIC: &roic},
		{Entity: "B"},
		{Entity: "C", ROIC: &low},
	}}

	plottable := report.Plottable()
	require.Len(t, plottable, 2)
	assert.Equal(t, "A", plottable[0].Entity)
	assert.Equal(t, "C", plottable[1].Entity)

	assert.True(t, report.Rows[0].MeetsHurdle(10))
	assert.False(t, report.Rows[1].MeetsHurdle(10))
	assert.False(t, report.Rows[2].MeetsHurdle(10))
	assert.True(t, report.Rows[2].MeetsHurdle(4.2))
}
