package inspect

import "github.com/sartorproj/goeda/table"

// Report bundles the quality checks of a table.
type Report struct {
	Rows       int
	Cols       int
	Types      []ColumnType
	Missing    []ColumnCount
	Duplicates int
}

// NewReport runs every quality check on t.
func NewReport(t *table.Table) *Report {
	rows, cols := Shape(t)
	return &Report{
		Rows:       rows,
		Cols:       cols,
		Types:      DTypes(t),
		Missing:    MissingCounts(t),
		Duplicates: DuplicateCount(t),
	}
}

// TotalMissing returns the number of missing entries across all columns.
func (r *Report) TotalMissing() int {
	n := 0
	for _, m := range r.Missing {
		n += m.Count
	}
	return n
}
