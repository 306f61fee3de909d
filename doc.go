// Package goeda provides exploratory statistical analysis over tabular data.
//
// GoEDA loads a table from a delimited text file, a spreadsheet or a remote
// price provider, inspects its shape and quality, and derives metrics from
// its numeric columns: returns, rolling volatility, IQR outliers, pairwise
// correlation and classical seasonal decomposition.
//
// # Quick Start
//
// Load a file and inspect it:
//
//	t, err := table.LoadCSV("prices.csv", table.DefaultLoadOptions())
//	rows, cols := inspect.Shape(t)
//	missing := inspect.MissingCounts(t)
//
// Derive metrics. Engine operations take a table and return a new one, so
// a derived column becomes visible only to the caller that keeps the result:
//
//	res, err := analysis.RollingVolatility(t, analysis.DefaultVolatilityOptions())
//	t = res.Table // now carries Returns and Volatility
//
// Decompose a price series with a yearly cycle of trading days:
//
//	d, err := analysis.Decompose(t, "Close", 252, stats.Additive)
//
// # Packages
//
//   - table: tagged values, columns, tables, CSV and XLSX loading
//   - source: remote price history (Yahoo Finance, InfluxDB)
//   - inspect: shape, types, missing values, duplicates, cardinality
//   - timeseries: float series with timestamps and rolling windows
//   - stats: quantiles, correlation, decomposition, autocorrelation
//   - analysis: table-level derived metrics
//   - session: the interactive analysis session
//   - render: terminal charts and summaries
//   - menu, config, logging: the interactive front end and its settings
//
// Every error produced by these packages carries an [ErrorKind]; use
// errors.Is against the sentinels in this package to branch on it.
package goeda
