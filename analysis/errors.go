package analysis

import (
	"errors"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/table"
)

// withOp fills in the operation of a lookup error raised by the table layer.
func withOp(err error, op string) error {
	var e *goeda.Error
	if errors.As(err, &e) && e.Op == "" {
		cp := *e
		cp.Op = op
		return &cp
	}
	return err
}

// numeric returns the values of a numeric column, NaN for missing entries.
func numeric(t *table.Table, op, column string) ([]float64, error) {
	xs, err := t.Floats(column)
	if err != nil {
		return nil, withOp(err, op)
	}
	return xs, nil
}
