package analysis

import (
	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// ColumnSummary is the descriptive summary of one numeric column.
type ColumnSummary struct {
	Column string
	stats.Summary
}

// Describe summarizes every numeric column in table order.
func Describe(t *table.Table) ([]ColumnSummary, error) {
	const op = "describe"

	names := t.NumericNames()
	if len(names) == 0 {
		return nil, goeda.Errorf(goeda.KindEmptyData, op, "", "no numeric columns")
	}

	out := make([]ColumnSummary, 0, len(names))
	for _, name := range names {
		xs, err := numeric(t, op, name)
		if err != nil {
			return nil, err
		}
		out = append(out, ColumnSummary{Column: name, Summary: stats.Describe(xs)})
	}
	return out, nil
}
