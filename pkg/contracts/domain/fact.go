package domain

// Canonical column names of the consolidated fact table
const (
	ColumnAccountCode      = "Account_Code"
	ColumnLocalAmount      = "Local_Amount"
	ColumnEntity           = "Entity"
	ColumnEntityName       = "Entity_Name"
	ColumnLocalAccountCode = "Local_Account_Code"
	ColumnGroupCategory    = "Group_Category"
	ColumnCountry          = "Country"
	ColumnFXRateToUSD      = "FX_Rate_to_USD"
	ColumnAmountUSD        = "Amount_USD"
)

// Suffixes applied to overlapping non-key columns in a left join
const (
	LeftSuffix  = "_x"
	RightSuffix = "_y"
)

// Table is an in-memory rectangular table of text cells. An empty cell is a
// null value.
type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// NewTable creates an empty table with the given columns
func NewTable(columns ...string) *Table {
	return &Table{Columns: append([]string(nil), columns...)}
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ColumnIndex returns the position of the first column called name, or -1
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Value returns the cell at row i of column name, or "" when the column is
// absent or the row is short.
func (t *Table) Value(i int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || idx >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][idx]
}

// Column returns a copy of the values of column name
func (t *Table) Column(name string) []string {
	idx := t.ColumnIndex(name)
	out := make([]string, len(t.Rows))
	if idx < 0 {
		return out
	}
	for i, row := range t.Rows {
		if idx < len(row) {
			out[i] = row[idx]
		}
	}
	return out
}

// SetColumn replaces the values of column name, appending the column when it
// does not exist yet. values must have one entry per row.
func (t *Table) SetColumn(name string, values []string) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		t.Columns = append(t.Columns, name)
		idx = len(t.Columns) - 1
	}
	for i := range t.Rows {
		for len(t.Rows[i]) <= idx {
			t.Rows[i] = append(t.Rows[i], "")
		}
		t.Rows[i][idx] = values[i]
	}
}

// Clone returns a deep copy of the table
func (t *Table) Clone() *Table {
	out := NewTable(t.Columns...)
	out.Rows = make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}

// RenameColumns renames every column found in renames
func (t *Table) RenameColumns(renames map[string]string) {
	for i, c := range t.Columns {
		if to, ok := renames[c]; ok {
			t.Columns[i] = to
		}
	}
}
