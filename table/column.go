package table

import (
	"math"

	"github.com/sartorproj/goeda"
)

// Column is a named sequence of values sharing one inferred kind.
// Values must not be modified once the column belongs to a table.
type Column struct {
	Name   string
	Kind   Kind
	Values []Value
}

// NewNumericColumn builds a numeric column. NaN entries become missing.
func NewNumericColumn(name string, xs []float64) *Column {
	values := make([]Value, len(xs))
	for i, x := range xs {
		values[i] = Number(x)
	}
	return &Column{Name: name, Kind: Numeric, Values: values}
}

// NewTextColumn builds a text column. Empty strings become missing.
func NewTextColumn(name string, xs []string) *Column {
	values := make([]Value, len(xs))
	for i, x := range xs {
		if x == "" {
			values[i] = NA()
		} else {
			values[i] = String(x)
		}
	}
	return &Column{Name: name, Kind: Text, Values: values}
}

// Len returns the number of values.
func (c *Column) Len() int {
	return len(c.Values)
}

// IsNumeric reports whether the column holds numbers.
func (c *Column) IsNumeric() bool {
	return c.Kind == Numeric
}

// Floats returns the column as float64 with NaN for missing entries.
func (c *Column) Floats() ([]float64, error) {
	if c.Kind != Numeric {
		return nil, goeda.NewError(goeda.KindNonNumericColumn, "", c.Name, nil)
	}
	out := make([]float64, len(c.Values))
	for i, v := range c.Values {
		if f, ok := v.Float(); ok {
			out[i] = f
		} else {
			out[i] = math.NaN()
		}
	}
	return out, nil
}

// MissingCount returns the number of missing entries.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}

func (c *Column) take(rows []int) *Column {
	values := make([]Value, len(rows))
	for i, r := range rows {
		values[i] = c.Values[r]
	}
	return &Column{Name: c.Name, Kind: c.Kind, Values: values}
}
