package render

import (
	"fmt"
	"strconv"

	"github.com/sartorproj/goeda/analysis"
	"github.com/sartorproj/goeda/inspect"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// Head shows the first n rows of t.
func Head(s Sink, title string, t *table.Table, n int) {
	headers := t.Names()
	if t.HasIndex() {
		headers = append([]string{t.IndexName()}, headers...)
	}
	n = min(n, t.NumRows())
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		var row []string
		if t.HasIndex() {
			row = append(row, table.Time(t.Index()[i]).String())
		}
		for _, v := range t.Row(i) {
			row = append(row, v.String())
		}
		rows[i] = row
	}
	s.Summary(title, headers, rows)
}

// Overview shows the shape, column kinds and missing counts of t.
func Overview(s Sink, t *table.Table) {
	r := inspect.NewReport(t)
	rows := make([][]string, len(r.Types))
	for i, ct := range r.Types {
		rows[i] = []string{ct.Column, ct.Kind.String(), strconv.Itoa(r.Missing[i].Count)}
	}
	s.Summary(fmt.Sprintf("Dataset: %d rows x %d columns", r.Rows, r.Cols),
		[]string{"Column", "Type", "Missing"}, rows)
	Head(s, "First rows", t, 5)
}

// Quality shows a data-quality report.
func Quality(s Sink, r *inspect.Report) {
	rows := [][]string{
		{"Rows", strconv.Itoa(r.Rows)},
		{"Columns", strconv.Itoa(r.Cols)},
		{"Missing values", strconv.Itoa(r.TotalMissing())},
		{"Duplicate rows", strconv.Itoa(r.Duplicates)},
	}
	for _, m := range r.Missing {
		if m.Count > 0 {
			rows = append(rows, []string{"Missing in " + m.Column, strconv.Itoa(m.Count)})
		}
	}
	s.Summary("Data quality", []string{"Check", "Result"}, rows)
}

// Unique shows the distinct values of a column.
func Unique(s Sink, column string, n int, values []string) {
	rows := make([][]string, len(values))
	for i, v := range values {
		rows[i] = []string{v}
	}
	s.Summary(fmt.Sprintf("%s: %d unique values", column, n), []string{column}, rows)
}

// Describe shows descriptive statistics of the numeric columns.
func Describe(s Sink, summaries []analysis.ColumnSummary) {
	headers := []string{"", "count", "mean", "std", "min", "25%", "50%", "75%", "max"}
	rows := make([][]string, len(summaries))
	for i, c := range summaries {
		rows[i] = []string{
			c.Column,
			strconv.Itoa(c.Count),
			FormatFloat(c.Mean),
			FormatFloat(c.Std),
			FormatFloat(c.Min),
			FormatFloat(c.Q25),
			FormatFloat(c.Median),
			FormatFloat(c.Q75),
			FormatFloat(c.Max),
		}
	}
	s.Summary("Summary statistics", headers, rows)
}

// Distribution shows a histogram of a numeric column with its summary.
func Distribution(s Sink, t *table.Table, column string) error {
	xs, err := t.Floats(column)
	if err != nil {
		return err
	}
	s.Histogram(Chart{Title: "Distribution of " + column, XLabel: column, YLabel: "Frequency"}, xs, DefaultBins)
	Describe(s, []analysis.ColumnSummary{{Column: column, Summary: stats.Describe(xs)}})
	return nil
}

// Outliers shows IQR fences and the outlying rows.
func Outliers(s Sink, res *analysis.OutlierResult) {
	f := res.Fences
	s.Summary("Outliers in "+res.Column, []string{"Q1", "Q3", "IQR", "Lower", "Upper", "Outliers"}, [][]string{{
		FormatFloat(f.Q1), FormatFloat(f.Q3), FormatFloat(f.IQR),
		FormatFloat(f.Lower), FormatFloat(f.Upper), strconv.Itoa(len(res.Rows)),
	}})
	if len(res.Rows) > 0 {
		Head(s, "Outlying rows", res.Outliers, 20)
	}
}

// Correlation shows the correlation matrix as a heatmap.
func Correlation(s Sink, m *analysis.CorrelationMatrix) {
	s.Heatmap("Correlation Matrix", m.Labels, m.Values)
}

// Series plots one column of t.
func Series(s Sink, t *table.Table, column, title string) error {
	ys, err := t.Floats(column)
	if err != nil {
		return err
	}
	s.Line(Chart{Title: title, XLabel: xLabel(t), YLabel: column}, ys)
	return nil
}

// Volatility plots the rolling volatility.
func Volatility(s Sink, res *analysis.VolatilityResult, window int) {
	s.Line(Chart{
		Title:  fmt.Sprintf("Rolling Volatility (%d-row window)", window),
		XLabel: xLabel(res.Table),
		YLabel: res.Series.Name,
	}, res.Series.Values)
}

// Decomposition plots the observed series and its components.
func Decomposition(s Sink, d *stats.DecompositionResult) {
	title := func(name string) string {
		return fmt.Sprintf("%s (%s, period %d)", name, d.Model, d.Period)
	}
	s.Line(Chart{Title: title("Observed")}, d.Observed.Values)
	s.Line(Chart{Title: title("Trend")}, d.Trend.Values)
	s.Line(Chart{Title: title("Seasonal")}, d.Seasonal.Values)
	s.Line(Chart{Title: title("Residual")}, d.Residual.Values)
}

// Autocorrelation shows the ACF with its significant lags and the Ljung-Box
// test.
func Autocorrelation(s Sink, res *analysis.AutocorrelationResult) {
	rows := make([][]string, 0, len(res.ACF.Values))
	for i, v := range res.ACF.Values {
		mark := ""
		if i > 0 && (v > res.ACF.ConfBounds || v < -res.ACF.ConfBounds) {
			mark = "*"
		}
		rows = append(rows, []string{strconv.Itoa(res.ACF.Lags[i]), FormatFloat(v), mark})
	}
	s.Summary(fmt.Sprintf("Autocorrelation of %s (bounds ±%s)", res.Column, FormatFloat(res.ACF.ConfBounds)),
		[]string{"Lag", "ACF", "Significant"}, rows)

	if lb := res.LjungBox; lb != nil {
		s.Summary("Ljung-Box test", []string{"Q", "Lags", "DOF", "p-value"}, [][]string{{
			FormatFloat(lb.Statistic), strconv.Itoa(lb.Lags), strconv.Itoa(lb.DOF), FormatFloat(lb.PValue),
		}})
	}
}

func xLabel(t *table.Table) string {
	if t.HasIndex() {
		return t.IndexName()
	}
	return "Row"
}
