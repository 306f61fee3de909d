// Package table provides the tabular data model shared by the analysis packages.
package table

import (
	"fmt"
	"time"

	"github.com/sartorproj/goeda"
)

// Table is an ordered set of equal-length named columns with an optional
// time index. Tables are treated as values: methods that change the layout
// return a new Table and leave the receiver untouched.
type Table struct {
	columns   []*Column
	byName    map[string]int
	index     []time.Time
	indexName string
}

// New builds a table from columns. All columns must have the same length and
// distinct names.
func New(columns ...*Column) (*Table, error) {
	t := &Table{byName: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, dup := t.byName[c.Name]; dup {
			return nil, goeda.Errorf(goeda.KindInvalidArgument, "new table", c.Name, "duplicate column name")
		}
		if len(t.columns) > 0 && c.Len() != t.columns[0].Len() {
			return nil, goeda.Errorf(goeda.KindInvalidArgument, "new table", c.Name,
				"length %d does not match %d", c.Len(), t.columns[0].Len())
		}
		t.byName[c.Name] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t, nil
}

// Empty returns a table with no columns and no rows.
func Empty() *Table {
	return &Table{byName: map[string]int{}}
}

// NumRows returns the number of rows.
func (t *Table) NumRows() int {
	if len(t.columns) > 0 {
		return t.columns[0].Len()
	}
	return len(t.index)
}

// NumCols returns the number of columns, excluding the index.
func (t *Table) NumCols() int {
	return len(t.columns)
}

// IsEmpty reports whether the table has neither columns nor rows.
func (t *Table) IsEmpty() bool {
	return len(t.columns) == 0 && len(t.index) == 0
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// Columns returns the columns in order.
func (t *Table) Columns() []*Column {
	out := make([]*Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return nil, goeda.NewError(goeda.KindColumnNotFound, "", name, nil)
	}
	return t.columns[i], nil
}

// Floats returns a numeric column as float64 with NaN for missing entries.
func (t *Table) Floats(name string) ([]float64, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	return c.Floats()
}

// NumericNames returns the names of numeric columns in order.
func (t *Table) NumericNames() []string {
	var names []string
	for _, c := range t.columns {
		if c.IsNumeric() {
			names = append(names, c.Name)
		}
	}
	return names
}

// HasIndex reports whether the table carries a time index.
func (t *Table) HasIndex() bool {
	return t.index != nil
}

// Index returns the time index, or nil.
func (t *Table) Index() []time.Time {
	return t.index
}

// IndexName returns the index label, e.g. "Date".
func (t *Table) IndexName() string {
	return t.indexName
}

// Row returns the values of row i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.columns))
	for j, c := range t.columns {
		row[j] = c.Values[i]
	}
	return row
}

func (t *Table) clone() *Table {
	out := &Table{
		columns:   make([]*Column, len(t.columns)),
		byName:    make(map[string]int, len(t.byName)),
		index:     t.index,
		indexName: t.indexName,
	}
	copy(out.columns, t.columns)
	for k, v := range t.byName {
		out.byName[k] = v
	}
	return out
}

// WithColumn returns a table with c appended, or replacing the column of the
// same name.
func (t *Table) WithColumn(c *Column) (*Table, error) {
	if (len(t.columns) > 0 || t.index != nil) && c.Len() != t.NumRows() {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, "set column", c.Name,
			"length %d does not match table length %d", c.Len(), t.NumRows())
	}
	out := t.clone()
	if i, ok := out.byName[c.Name]; ok {
		out.columns[i] = c
		return out, nil
	}
	out.byName[c.Name] = len(out.columns)
	out.columns = append(out.columns, c)
	return out, nil
}

// WithIndex returns a table indexed by idx.
func (t *Table) WithIndex(name string, idx []time.Time) (*Table, error) {
	if len(t.columns) > 0 && len(idx) != t.NumRows() {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, "set index", name,
			"length %d does not match table length %d", len(idx), t.NumRows())
	}
	out := t.clone()
	out.index = idx
	out.indexName = name
	return out, nil
}

// PromoteIndex moves a temporal column into the index.
func (t *Table) PromoteIndex(name string) (*Table, error) {
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if c.Kind != Temporal {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, "set index", name, "index column must be temporal, got %s", c.Kind)
	}
	idx := make([]time.Time, c.Len())
	for i, v := range c.Values {
		ts, ok := v.Timestamp()
		if !ok {
			return nil, goeda.Errorf(goeda.KindMissingValues, "set index", name, "row %d has no date", i)
		}
		idx[i] = ts
	}

	var kept []*Column
	for _, other := range t.columns {
		if other.Name != name {
			kept = append(kept, other)
		}
	}
	out, err := New(kept...)
	if err != nil {
		return nil, err
	}
	out.index = idx
	out.indexName = name
	return out, nil
}

// Take returns a table holding the given rows, in the given order.
func (t *Table) Take(rows []int) *Table {
	out := t.clone()
	for i, c := range out.columns {
		out.columns[i] = c.take(rows)
	}
	if t.index != nil {
		out.index = make([]time.Time, len(rows))
		for i, r := range rows {
			out.index[i] = t.index[r]
		}
	}
	return out
}

// Slice returns rows [start, end).
func (t *Table) Slice(start, end int) *Table {
	if start < 0 {
		start = 0
	}
	if end > t.NumRows() {
		end = t.NumRows()
	}
	if start > end {
		start = end
	}
	rows := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, i)
	}
	return t.Take(rows)
}

// String summarizes the table layout.
func (t *Table) String() string {
	return fmt.Sprintf("Table(%d rows x %d columns)", t.NumRows(), t.NumCols())
}
