package analysis

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

func priceTable(t *testing.T, prices []float64) *table.Table {
	t.Helper()
	tbl, err := table.New(table.NewNumericColumn("Close", prices))
	require.NoError(t, err)

	idx := make([]time.Time, len(prices))
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range idx {
		idx[i] = start.AddDate(0, 0, i)
	}
	tbl, err = tbl.WithIndex("Date", idx)
	require.NoError(t, err)
	return tbl
}

func TestReturns(t *testing.T) {
	prices := []float64{100, 110, 99, 0, 5, 5.5}
	tbl := priceTable(t, prices)

	out, err := Returns(tbl, "Close", "")
	require.NoError(t, err)
	require.Equal(t, len(prices)-1, out.NumRows())
	assert.Equal(t, 6, tbl.NumRows(), "input table must not change")
	assert.False(t, tbl.HasColumn(ReturnsColumn))

	r, err := out.Floats(ReturnsColumn)
	require.NoError(t, err)
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if prev == 0 {
			assert.True(t, math.IsNaN(r[i-1]), "zero previous price gives missing return")
			continue
		}
		assert.InDelta(t, cur/prev-1, r[i-1], 1e-9)
	}

	closes, err := out.Floats("Close")
	require.NoError(t, err)
	assert.Equal(t, prices[1:], closes)
	assert.Equal(t, tbl.Index()[1:], out.Index())
}

func TestReturnsErrors(t *testing.T) {
	tbl := priceTable(t, []float64{1, 2, 3})
	text, err := tbl.WithColumn(table.NewTextColumn("Ticker", []string{"A", "B", "C"}))
	require.NoError(t, err)

	tests := []struct {
		name  string
		tbl   *table.Table
		price string
		want  error
	}{
		{"missing column", tbl, "Open", goeda.ErrColumnNotFound},
		{"text column", text, "Ticker", goeda.ErrNonNumericColumn},
		{"single row", priceTable(t, []float64{1}), "Close", goeda.ErrEmptyData},
		{"no rows", priceTable(t, nil), "Close", goeda.ErrEmptyData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Returns(tt.tbl, tt.price, ReturnsColumn)
			require.ErrorIs(t, err, tt.want)
		})
	}

	_, err = Returns(tbl, "Open", ReturnsColumn)
	var e *goeda.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "returns", e.Op)
}

func TestEnsureReturns(t *testing.T) {
	tbl := priceTable(t, []float64{1, 2, 4})

	out, computed, err := EnsureReturns(tbl, "Close", ReturnsColumn)
	require.NoError(t, err)
	assert.True(t, computed)
	assert.Equal(t, 2, out.NumRows())

	again, computed, err := EnsureReturns(out, "Close", ReturnsColumn)
	require.NoError(t, err)
	assert.False(t, computed)
	assert.Same(t, out, again)
}

func TestRollingVolatility(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	tbl := priceTable(t, prices)

	opts := DefaultVolatilityOptions()
	res, err := RollingVolatility(tbl, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"returns"}, res.Steps)

	n := len(prices) - 1
	require.Equal(t, n, res.Table.NumRows())
	vol, err := res.Table.Floats(VolatilityColumn)
	require.NoError(t, err)
	require.Len(t, vol, n)

	returns, err := res.Table.Floats(ReturnsColumn)
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		if i < opts.Window-1 {
			assert.True(t, math.IsNaN(vol[i]), "entry %d should be undefined", i)
			continue
		}
		window := returns[i-opts.Window+1 : i+1]
		assert.InDelta(t, sampleStd(window), vol[i], 1e-12, "entry %d", i)
	}

	// A second run reuses the returns column.
	res2, err := RollingVolatility(res.Table, opts)
	require.NoError(t, err)
	assert.Empty(t, res2.Steps)
	assert.Equal(t, n, res2.Table.NumRows())
}

func sampleStd(xs []float64) float64 {
	mean := 0.0
	for _, x := range xs {
		mean += x
	}
	mean /= float64(len(xs))
	ss := 0.0
	for _, x := range xs {
		ss += (x - mean) * (x - mean)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func TestRollingVolatilityMissingReturn(t *testing.T) {
	returns := []float64{0.01, 0.02, math.NaN(), 0.01, 0.03, -0.02, 0.01}
	tbl, err := table.New(table.NewNumericColumn(ReturnsColumn, returns))
	require.NoError(t, err)

	res, err := RollingVolatility(tbl, VolatilityOptions{Window: 3})
	require.NoError(t, err)
	vol := res.Series.Values
	for i := 0; i < 5; i++ {
		assert.True(t, math.IsNaN(vol[i]), "entry %d", i)
	}
	assert.False(t, math.IsNaN(vol[5]))
	assert.False(t, math.IsNaN(vol[6]))
}

func TestRollingVolatilityErrors(t *testing.T) {
	tbl := priceTable(t, []float64{1, 2, 3})

	_, err := RollingVolatility(tbl, VolatilityOptions{Window: 1})
	assert.ErrorIs(t, err, goeda.ErrInvalidArgument)

	_, err = RollingVolatility(tbl, VolatilityOptions{Price: "Open"})
	assert.ErrorIs(t, err, goeda.ErrColumnNotFound)
}

func TestOutliers(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("x", []float64{1, 2, 3, 4, 5, 100}),
		table.NewTextColumn("label", []string{"a", "b", "c", "d", "e", "f"}),
	)
	require.NoError(t, err)

	res, err := Outliers(tbl, "x")
	require.NoError(t, err)
	assert.InDelta(t, 2.25, res.Fences.Q1, 1e-12)
	assert.InDelta(t, 4.75, res.Fences.Q3, 1e-12)
	assert.InDelta(t, -1.5, res.Fences.Lower, 1e-12)
	assert.InDelta(t, 8.5, res.Fences.Upper, 1e-12)
	assert.LessOrEqual(t, res.Fences.Lower, res.Fences.Q1)
	assert.LessOrEqual(t, res.Fences.Q3, res.Fences.Upper)

	assert.Equal(t, []int{5}, res.Rows)
	require.Equal(t, 1, res.Outliers.NumRows())
	label, err := res.Outliers.Column("label")
	require.NoError(t, err)
	assert.Equal(t, "f", label.Values[0].String())
}

func TestOutliersErrors(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("empty", []float64{math.NaN(), math.NaN()}),
		table.NewTextColumn("label", []string{"a", "b"}),
	)
	require.NoError(t, err)

	_, err = Outliers(tbl, "empty")
	assert.ErrorIs(t, err, goeda.ErrEmptyData)
	_, err = Outliers(tbl, "label")
	assert.ErrorIs(t, err, goeda.ErrNonNumericColumn)
	_, err = Outliers(tbl, "nope")
	assert.ErrorIs(t, err, goeda.ErrColumnNotFound)
}

func TestCorrelation(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("a", []float64{1, 2, 3, 4, 5}),
		table.NewTextColumn("name", []string{"v", "w", "x", "y", "z"}),
		table.NewNumericColumn("b", []float64{2, 4, 5, 4, 5}),
		table.NewNumericColumn("c", []float64{5, 3, 2, 2, 1}),
	)
	require.NoError(t, err)

	m, err := Correlation(tbl)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, m.Labels)

	for i := range m.Labels {
		assert.Equal(t, 1.0, m.Values[i][i])
		for j := range m.Labels {
			assert.Equal(t, m.Values[i][j], m.Values[j][i])
		}
	}

	ab, err := m.At("a", "b")
	require.NoError(t, err)
	assert.InDelta(t, 0.7745966692, ab, 1e-9)

	_, err = m.At("a", "name")
	assert.ErrorIs(t, err, goeda.ErrColumnNotFound)
}

func TestCorrelationNeedsTwoNumericColumns(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("a", []float64{1, 2}),
		table.NewTextColumn("name", []string{"x", "y"}),
	)
	require.NoError(t, err)

	_, err = Correlation(tbl)
	assert.ErrorIs(t, err, goeda.ErrEmptyData)
}

func TestDecompose(t *testing.T) {
	period := 4
	pattern := []float64{2, -1, -3, 2}
	prices := make([]float64, 16)
	for i := range prices {
		prices[i] = 50 + float64(i) + pattern[i%period]
	}
	tbl := priceTable(t, prices)

	d, err := Decompose(tbl, "Close", period, stats.Additive)
	require.NoError(t, err)
	assert.Equal(t, tbl.Index(), d.Trend.Timestamps)
	for i := period / 2; i < len(prices)-period/2; i++ {
		sum := d.Trend.Values[i] + d.Seasonal.Values[i] + d.Residual.Values[i]
		assert.InDelta(t, prices[i], sum, 1e-6)
	}

	_, err = Decompose(tbl, "Close", 252, stats.Additive)
	assert.ErrorIs(t, err, goeda.ErrInsufficientData)

	_, err = Decompose(tbl, "Open", period, stats.Additive)
	assert.ErrorIs(t, err, goeda.ErrColumnNotFound)
}

func TestDescribe(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("a", []float64{1, 2, 3, 4}),
		table.NewTextColumn("name", []string{"w", "x", "y", "z"}),
		table.NewNumericColumn("b", []float64{10, math.NaN(), 30, 20}),
	)
	require.NoError(t, err)

	out, err := Describe(tbl)
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, "a", out[0].Column)
	assert.Equal(t, 4, out[0].Count)
	assert.Equal(t, 2.5, out[0].Mean)

	assert.Equal(t, "b", out[1].Column)
	assert.Equal(t, 3, out[1].Count)
	assert.Equal(t, 20.0, out[1].Median)
	assert.Equal(t, 10.0, out[1].Min)
	assert.Equal(t, 30.0, out[1].Max)

	text, err := table.New(table.NewTextColumn("name", []string{"x"}))
	require.NoError(t, err)
	_, err = Describe(text)
	assert.ErrorIs(t, err, goeda.ErrEmptyData)
}

func TestDropMissing(t *testing.T) {
	tbl, err := table.New(
		table.NewNumericColumn("a", []float64{1, math.NaN(), 3, 4}),
		table.NewTextColumn("b", []string{"x", "y", "", "z"}),
	)
	require.NoError(t, err)

	out, dropped := DropMissing(tbl)
	assert.Equal(t, 2, dropped)
	assert.Equal(t, 2, out.NumRows())
	a, err := out.Floats("a")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 4}, a)

	same, dropped := DropMissing(out)
	assert.Zero(t, dropped)
	assert.Same(t, out, same)
}

func TestAutocorrelation(t *testing.T) {
	prices := make([]float64, 80)
	for i := range prices {
		prices[i] = float64(i)
	}
	prices[10] = math.NaN()
	tbl := priceTable(t, prices)

	res, err := Autocorrelation(tbl, "Close", 5)
	require.NoError(t, err)
	assert.Len(t, res.ACF.Values, 6)
	assert.InDelta(t, 1.0, res.ACF.Values[0], 1e-12)
	assert.Contains(t, res.Significant, 1)
	require.NotNil(t, res.LjungBox)
	assert.Less(t, res.LjungBox.PValue, 0.01)

	flat := priceTable(t, []float64{3, 3, 3, 3})
	_, err = Autocorrelation(flat, "Close", 2)
	assert.ErrorIs(t, err, goeda.ErrInvalidArgument)

	short := priceTable(t, []float64{1, 2})
	_, err = Autocorrelation(short, "Close", 2)
	assert.ErrorIs(t, err, goeda.ErrInsufficientData)
}
