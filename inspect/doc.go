// Package inspect reports the shape and data quality of a table: column
// kinds, missing values, duplicate rows and distinct values.
package inspect
