// Package table provides the tabular data model shared by the analysis packages.
//
// A Table is an ordered set of named columns of equal length. Each column
// holds tagged values (numeric, text, temporal or missing) whose kind is
// decided once, at load time, from the literal cells.
//
// # Loading
//
//	t, err := table.LoadCSV("world_suicide_rates.csv", table.DefaultLoadOptions())
//	if errors.Is(err, goeda.ErrFileNotFound) {
//	    // t is an empty table
//	}
//
// Spreadsheets load the same way:
//
//	opts := table.DefaultLoadOptions()
//	opts.Sheet = "Bulletin"
//	t, err := table.LoadXLSX("report.xlsx", opts)
//
// Promote a date column to the time index:
//
//	opts.IndexColumn = "Date"
//
// # Derived columns
//
// Tables are never modified in place. WithColumn returns a new table that
// shares the unchanged columns with the receiver:
//
//	next, err := t.WithColumn(table.NewNumericColumn("Returns", returns))
package table
