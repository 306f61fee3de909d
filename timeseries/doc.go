// Package timeseries provides time series data structures and utilities.
//
// A Series is a slice of float64 observations with optional timestamps.
// Missing observations are NaN; summary statistics skip them.
//
// # Creating a Series
//
// Create a time series from a slice:
//
//	values := []float64{100, 102, 105, 103, 108, 110}
//	series := timeseries.New(values)
//
// Or take a numeric column of a table, carrying the table's time index:
//
//	series, err := timeseries.FromTable(t, "Close")
//
// # Basic Statistics
//
//	mean := series.Mean()
//	std := series.Std()       // sample standard deviation
//	median := series.Median()
//
// # Transformations
//
//	returns := series.PctChange()                 // one element shorter
//	vol := returns.RollingStd(30)                 // trailing window, NaN-padded
//	trend := series.CenteredMovingAverage(12)     // 2x12 MA for even windows
package timeseries
