package aggregate

import (
	"strconv"
	"strings"
)

// Classification picks the chart and series treatment for a field table.
type Classification int

const (
	Numeric Classification = iota
	Categorical
)

// String implements fmt.Stringer.
func (c Classification) String() string {
	if c == Numeric {
		return "numeric"
	}

	return "categorical"
}

// Classify inspects the first and the last commit column of the table. If
// either holds a textual or boolean value the field is Categorical,
// otherwise Numeric. A table with a single column checks that column twice.
// The verdict is computed once per table and passed along explicitly;
// consumers never re-inspect values.
func (t *Table) Classify() Classification {
	if t.columnNumeric(0) && t.columnNumeric(len(t.commits)-1) {
		return Numeric
	}

	return Categorical
}

// columnNumeric reports whether every present cell of a column parses as a
// number. Absent cells do not count against the column.
func (t *Table) columnNumeric(col int) bool {
	for _, row := range t.rows {
		cell := row.Cells[col]
		if !cell.Present {
			continue
		}

		if !numericValue(cell.Value) {
			return false
		}
	}

	return true
}

// numericValue reports whether a cell value parses as a number. Boolean
// literals stay textual so true/false fields chart as categories.
func numericValue(v string) bool {
	s := strings.TrimSpace(v)

	switch strings.ToLower(s) {
	case "true", "false":
		return false
	}

	_, err := strconv.ParseFloat(s, 64)

	return err == nil
}
