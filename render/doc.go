// Package render presents analysis results.
//
// A Sink draws line charts, histograms, heatmaps and tabular summaries.
// Terminal renders them as styled text with lipgloss; Discard drops them.
// The report helpers (Describe, Quality, Outliers and the rest) turn the
// results of the analysis packages into Sink calls, so the menu and the CLI
// show the same output.
package render
