// Package stats provides statistical kernels for exploratory analysis.
//
// The functions here work on plain float64 slices or on timeseries.Series
// and treat NaN as a missing observation. Table-level operations that pick
// columns and write results back live in package analysis.
//
// # Quantiles and Outliers
//
// Quantiles use linear interpolation between closest ranks, h = (n-1)q:
//
//	q1 := stats.Quantile(xs, 0.25)
//	f, ok := stats.IQRFences(xs, stats.IQRMultiplier)
//	if ok && f.Outside(x) {
//	    // x is an outlier
//	}
//
// # Correlation
//
// Pearson correlation uses pairwise-complete observations:
//
//	r, n := stats.Pearson(x, y)
//	m := stats.CorrelationMatrix([][]float64{x, y, z})
//
// # Decomposition
//
// Classical decomposition with a centered moving-average trend:
//
//	d, err := stats.Decompose(series, 12, stats.Additive)
//	// d.Trend and d.Residual are NaN for 6 observations at each end
//
// # Autocorrelation
//
//	acf := stats.ACFWithConfidence(returns, 20)
//	significant := stats.SignificantLags(acf.Values, acf.ConfBounds)
//
//	// Ljung-Box test for autocorrelation
//	lb := stats.LjungBox(returns, 10, 0)
//	if lb.PValue < 0.05 {
//	    // returns are autocorrelated
//	}
package stats
