package analysis

import (
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
	"github.com/sartorproj/goeda/timeseries"
)

// DefaultDecomposePeriod is one year of trading days.
const DefaultDecomposePeriod = 252

// Decompose splits a numeric column into trend, seasonal and residual
// components. The table index, if any, becomes the component timestamps.
func Decompose(t *table.Table, column string, period int, model stats.Model) (*stats.DecompositionResult, error) {
	series, err := timeseries.FromTable(t, column)
	if err != nil {
		return nil, withOp(err, "decompose")
	}
	return stats.Decompose(series, period, model)
}
