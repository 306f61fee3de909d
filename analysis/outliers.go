package analysis

import (
	"math"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// OutlierResult holds the IQR fences of a column and the rows outside them.
type OutlierResult struct {
	Column string
	Fences stats.Fences
	// Rows are the positions of the outlying rows, in table order.
	Rows     []int
	Outliers *table.Table
}

// Outliers flags the rows of column lying strictly outside
// [Q1 - 1.5*IQR, Q3 + 1.5*IQR]. Missing values are never flagged.
func Outliers(t *table.Table, column string) (*OutlierResult, error) {
	const op = "outliers"

	xs, err := numeric(t, op, column)
	if err != nil {
		return nil, err
	}
	fences, ok := stats.IQRFences(xs, stats.IQRMultiplier)
	if !ok {
		return nil, goeda.Errorf(goeda.KindEmptyData, op, column, "no values")
	}

	rows := []int{}
	for i, x := range xs {
		if !math.IsNaN(x) && fences.Outside(x) {
			rows = append(rows, i)
		}
	}

	return &OutlierResult{
		Column:   column,
		Fences:   fences,
		Rows:     rows,
		Outliers: t.Take(rows),
	}, nil
}
