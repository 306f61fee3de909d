// Package analysis derives metrics from a table.
//
// Every operation takes a *table.Table and leaves it untouched. Operations
// that add a column (Returns, RollingVolatility) return a new table sharing
// the unchanged columns; the others return a result value. Numeric work is
// delegated to the stats and timeseries packages.
//
// Errors are *goeda.Error values and can be matched with errors.Is against
// the goeda sentinels:
//
//	out, err := analysis.Returns(t, "Close", analysis.ReturnsColumn)
//	if errors.Is(err, goeda.ErrColumnNotFound) {
//	    // no Close column
//	}
package analysis
