package analysis

import (
	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
	"github.com/sartorproj/goeda/timeseries"
)

// DefaultLags is the number of lags examined when none is given.
const DefaultLags = 20

// AutocorrelationResult holds the ACF of a column and a Ljung-Box test over
// the same lags.
type AutocorrelationResult struct {
	Column      string
	ACF         *stats.ACFResult
	Significant []int
	LjungBox    *stats.LjungBoxResult // nil for fewer than 10 observations
}

// Autocorrelation computes the sample ACF of a numeric column with missing
// values removed.
func Autocorrelation(t *table.Table, column string, lags int) (*AutocorrelationResult, error) {
	const op = "autocorrelation"

	if lags <= 0 {
		lags = DefaultLags
	}
	series, err := timeseries.FromTable(t, column)
	if err != nil {
		return nil, withOp(err, op)
	}
	xs := series.Valid()
	if len(xs) < 3 {
		return nil, goeda.Errorf(goeda.KindInsufficientData, op, column, "need at least 3 values, have %d", len(xs))
	}

	acf := stats.ACFWithConfidence(xs, lags)
	if acf == nil {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, op, column, "series is constant")
	}

	return &AutocorrelationResult{
		Column:      column,
		ACF:         acf,
		Significant: stats.SignificantLags(acf.Values, acf.ConfBounds),
		LjungBox:    stats.LjungBox(xs, len(acf.Values)-1, 0),
	}, nil
}
