package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	apperrors "globalalpha/internal/errors"
	"globalalpha/pkg/contracts/domain"
)

const keySep = "\x1f"

// Concat stacks tables vertically. The result has the union of their
// columns in order of first appearance; cells a table lacks are null.
func Concat(tables ...*domain.Table) *domain.Table {
	var columns []string
	index := make(map[string]int)
	for _, t := range tables {
		for _, c := range t.Columns {
			if _, ok := index[c]; !ok {
				index[c] = len(columns)
				columns = append(columns, c)
			}
		}
	}

	out := domain.NewTable(columns...)
	for _, t := range tables {
		pos := make([]int, len(t.Columns))
		for j, c := range t.Columns {
			pos[j] = index[c]
		}
		for _, row := range t.Rows {
			r := make([]string, len(columns))
			for j, v := range row {
				if j < len(pos) {
					r[pos[j]] = v
				}
			}
			out.Rows = append(out.Rows, r)
		}
	}
	return out
}

// LeftJoin keeps every left row and appends the columns of each right row
// whose key columns equal the left key columns. A left row with several
// matches is repeated once per match, in right order; one with none gets
// null right cells. Rows with a null key cell never match.
//
// A key pair with the same name on both sides yields a single column.
// Other names present on both sides are suffixed "_x" (left) and "_y"
// (right). The second return value holds the match count of every left row.
func LeftJoin(left, right *domain.Table, leftOn, rightOn []string) (*domain.Table, []int, error) {
	if len(leftOn) != len(rightOn) || len(leftOn) == 0 {
		return nil, nil, apperrors.NewValidationError("join needs the same non-zero number of keys on both sides")
	}

	leftKeys, err := columnPositions(left, leftOn)
	if err != nil {
		return nil, nil, err
	}
	rightKeys, err := columnPositions(right, rightOn)
	if err != nil {
		return nil, nil, err
	}

	shared := make(map[string]bool)
	dropRight := make(map[int]bool)
	for i := range leftOn {
		if leftOn[i] == rightOn[i] {
			shared[leftOn[i]] = true
			dropRight[rightKeys[i]] = true
		}
	}

	leftNames := make(map[string]bool, len(left.Columns))
	for _, c := range left.Columns {
		leftNames[c] = true
	}
	rightNames := make(map[string]bool, len(right.Columns))
	var rightKeep []int
	for j, c := range right.Columns {
		if dropRight[j] {
			continue
		}
		rightNames[c] = true
		rightKeep = append(rightKeep, j)
	}

	columns := make([]string, 0, len(left.Columns)+len(rightKeep))
	for _, c := range left.Columns {
		if rightNames[c] && !shared[c] {
			c += domain.LeftSuffix
		}
		columns = append(columns, c)
	}
	for _, j := range rightKeep {
		c := right.Columns[j]
		if leftNames[c] {
			c += domain.RightSuffix
		}
		columns = append(columns, c)
	}

	index := make(map[string][]int, len(right.Rows))
	for j, row := range right.Rows {
		if key, ok := joinKey(row, rightKeys); ok {
			index[key] = append(index[key], j)
		}
	}

	out := domain.NewTable(columns...)
	out.Rows = make([][]string, 0, len(left.Rows))
	matches := make([]int, len(left.Rows))
	width := len(left.Columns)

	for i, row := range left.Rows {
		var hits []int
		if key, ok := joinKey(row, leftKeys); ok {
			hits = index[key]
		}
		matches[i] = len(hits)

		if len(hits) == 0 {
			r := make([]string, len(columns))
			copy(r, row)
			out.Rows = append(out.Rows, r)
			continue
		}
		for _, j := range hits {
			r := make([]string, len(columns))
			copy(r, row)
			for k, col := range rightKeep {
				if col < len(right.Rows[j]) {
					r[width+k] = right.Rows[j][col]
				}
			}
			out.Rows = append(out.Rows, r)
		}
	}
	return out, matches, nil
}

func columnPositions(t *domain.Table, names []string) ([]int, error) {
	pos := make([]int, len(names))
	for i, n := range names {
		pos[i] = t.ColumnIndex(n)
		if pos[i] < 0 {
			return nil, apperrors.NewValidationError(fmt.Sprintf("join column %q not found", n))
		}
	}
	return pos, nil
}

func joinKey(row []string, pos []int) (string, bool) {
	parts := make([]string, len(pos))
	for i, p := range pos {
		if p >= len(row) || row[p] == "" {
			return "", false
		}
		parts[i] = row[p]
	}
	return strings.Join(parts, keySep), true
}

// ParseNumeric coerces a cell to a float. Blank, non-numeric and NaN cells
// report false.
func ParseNumeric(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || strings.ContainsRune(s, '_') {
		return 0, false
	}
	lower := strings.ToLower(strings.TrimLeft(s, "+-"))
	if strings.HasPrefix(lower, "0x") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// NormalizeCode trims and upper-cases an account code
func NormalizeCode(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
