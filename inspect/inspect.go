package inspect

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/table"
)

// ColumnType pairs a column with its inferred kind.
type ColumnType struct {
	Column string
	Kind   table.Kind
}

// ColumnCount pairs a column with a count.
type ColumnCount struct {
	Column string
	Count  int
}

// Shape returns the number of rows and columns. A table loaded from a
// header-only file has zero rows and one column per header cell.
func Shape(t *table.Table) (rows, cols int) {
	return t.NumRows(), t.NumCols()
}

// DTypes returns the kind of every column in table order.
func DTypes(t *table.Table) []ColumnType {
	columns := t.Columns()
	out := make([]ColumnType, len(columns))
	for i, c := range columns {
		out[i] = ColumnType{Column: c.Name, Kind: c.Kind}
	}
	return out
}

// MissingCounts returns the number of missing entries of every column in
// table order.
func MissingCounts(t *table.Table) []ColumnCount {
	columns := t.Columns()
	out := make([]ColumnCount, len(columns))
	for i, c := range columns {
		out[i] = ColumnCount{Column: c.Name, Count: c.MissingCount()}
	}
	return out
}

// DuplicateCount returns the number of rows equal, across all columns, to an
// earlier row. Missing entries compare equal to each other.
func DuplicateCount(t *table.Table) int {
	seen := make(map[string]struct{}, t.NumRows())
	dups := 0
	var b strings.Builder
	for i := 0; i < t.NumRows(); i++ {
		b.Reset()
		for _, v := range t.Row(i) {
			b.WriteString(key(v))
			b.WriteByte(0x1f)
		}
		k := b.String()
		if _, ok := seen[k]; ok {
			dups++
			continue
		}
		seen[k] = struct{}{}
	}
	return dups
}

// UniqueValues returns the distinct non-missing values of a column, rendered
// as text and sorted in the column's natural order.
func UniqueValues(t *table.Table, column string) (int, []string, error) {
	c, err := t.Column(column)
	if err != nil {
		return 0, nil, goeda.NewError(goeda.KindColumnNotFound, "unique values", column, nil)
	}

	seen := make(map[string]struct{})
	var distinct []table.Value
	for _, v := range c.Values {
		if v.IsMissing() {
			continue
		}
		k := key(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		distinct = append(distinct, v)
	}

	sort.SliceStable(distinct, func(i, j int) bool {
		return less(distinct[i], distinct[j])
	})

	out := make([]string, len(distinct))
	for i, v := range distinct {
		out[i] = v.String()
	}
	return len(out), out, nil
}

// key identifies a value for equality. Numbers compare by value, so "1" and
// "1.0" are the same.
func key(v table.Value) string {
	switch v.Kind() {
	case table.Missing:
		return "m"
	case table.Numeric:
		f, _ := v.Float()
		return "n" + strconv.FormatFloat(f, 'g', -1, 64)
	case table.Temporal:
		ts, _ := v.Timestamp()
		return "t" + strconv.FormatInt(ts.UnixNano(), 10)
	}
	return "s" + v.String()
}

func less(a, b table.Value) bool {
	if a.Kind() != b.Kind() {
		return a.Kind() < b.Kind()
	}
	switch a.Kind() {
	case table.Numeric:
		x, _ := a.Float()
		y, _ := b.Float()
		return x < y
	case table.Temporal:
		x, _ := a.Timestamp()
		y, _ := b.Timestamp()
		return x.Before(y)
	}
	return a.String() < b.String()
}
