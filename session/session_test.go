package session

import (
	"bytes"
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/analysis"
	"github.com/sartorproj/goeda/source"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

type fakeSource struct {
	table *table.Table
	err   error
	reqs  []source.Request
}

func (f *fakeSource) Fetch(_ context.Context, req source.Request) (*table.Table, error) {
	f.reqs = append(f.reqs, req)
	if f.err != nil {
		return table.Empty(), f.err
	}
	return f.table, nil
}

type fakeArchive struct {
	symbols []string
	err     error
}

func (f *fakeArchive) Store(_ context.Context, symbol string, t *table.Table) (int, error) {
	f.symbols = append(f.symbols, symbol)
	return t.NumRows(), f.err
}

func newSession(t *testing.T, opts Options) (*Session, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	opts.Logger = zerolog.New(&buf)
	return New(opts), &buf
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func priceCSV(n int) string {
	var b bytes.Buffer
	b.WriteString("Date,Close,Volume\n")
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		price := 100 + 5*math.Sin(float64(i)/4) + float64(i)/10
		b.WriteString(start.AddDate(0, 0, i).Format("2006-01-02"))
		b.WriteString(",")
		b.WriteString(strconv.FormatFloat(price, 'f', 4, 64))
		b.WriteString(",1000\n")
	}
	return b.String()
}

func TestNoTable(t *testing.T) {
	s, _ := newSession(t, Options{})

	_, err := s.Table()
	assert.ErrorIs(t, err, goeda.ErrNoTable)

	_, _, err = s.Shape()
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	_, err = s.Quality()
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	_, _, err = s.Unique("x")
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	assert.ErrorIs(t, s.Returns(""), goeda.ErrNoTable)
	_, err = s.Volatility(0)
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	_, err = s.Clean()
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	_, err = s.Correlation()
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	_, err = s.Describe()
	assert.ErrorIs(t, err, goeda.ErrNoTable)
	assert.ErrorIs(t, s.Save(filepath.Join(t.TempDir(), "out.csv")), goeda.ErrNoTable)
}

func TestLoadFileAndPipeline(t *testing.T) {
	path := writeCSV(t, priceCSV(80))
	s, buf := newSession(t, Options{
		LoadOptions: &table.LoadOptions{Delimiter: ',', IndexColumn: "Date"},
	})

	require.NoError(t, s.LoadFile(path))
	assert.Equal(t, path, s.Origin())
	rows, cols, err := s.Shape()
	require.NoError(t, err)
	assert.Equal(t, 80, rows)
	assert.Equal(t, 2, cols)

	res, err := s.Volatility(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"returns"}, res.Steps)

	tbl, err := s.Table()
	require.NoError(t, err)
	assert.Equal(t, 79, tbl.NumRows())
	assert.True(t, tbl.HasColumn(analysis.ReturnsColumn))
	assert.True(t, tbl.HasColumn(analysis.VolatilityColumn))

	dropped, err := s.Clean()
	require.NoError(t, err)
	assert.Equal(t, 9, dropped)
	rows, _, _ = s.Shape()
	assert.Equal(t, 70, rows)

	m, err := s.Correlation()
	require.NoError(t, err)
	assert.Len(t, m.Labels, 4)

	acf, err := s.Autocorrelation("", 5)
	require.NoError(t, err)
	assert.Equal(t, analysis.ReturnsColumn, acf.Column)

	d, err := s.Decompose("Close", 7, stats.Additive)
	require.NoError(t, err)
	assert.Equal(t, 70, d.Observed.Len())

	out := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, s.Save(out))
	reloaded, err := table.LoadCSV(out, &table.LoadOptions{Delimiter: ',', IndexColumn: "Date"})
	require.NoError(t, err)
	assert.Equal(t, 70, reloaded.NumRows())

	assert.Contains(t, buf.String(), `"session_id":"`+s.ID+`"`)
	assert.Contains(t, buf.String(), `"step":"returns"`)
}

func TestFailuresKeepTable(t *testing.T) {
	path := writeCSV(t, "Ticker,Close\nA,1\nB,2\nA,3\n")
	s, buf := newSession(t, Options{})
	require.NoError(t, s.LoadFile(path))
	before, _ := s.Table()

	err := s.Returns("Open")
	require.ErrorIs(t, err, goeda.ErrColumnNotFound)
	err = s.Returns("Ticker")
	require.ErrorIs(t, err, goeda.ErrNonNumericColumn)
	_, err = s.Decompose("Close", 0, stats.Additive)
	require.ErrorIs(t, err, goeda.ErrInsufficientData)

	err = s.LoadFile(filepath.Join(t.TempDir(), "missing.csv"))
	require.ErrorIs(t, err, goeda.ErrFileNotFound)

	after, err := s.Table()
	require.NoError(t, err)
	assert.Same(t, before, after)
	assert.Contains(t, buf.String(), `"kind":"COLUMN_NOT_FOUND"`)
	assert.Contains(t, buf.String(), `"kind":"FILE_NOT_FOUND"`)

	n, values, err := s.Unique("Ticker")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"A", "B"}, values)

	report, err := s.Quality()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Duplicates)

	res, err := s.Outliers("Close")
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestFetch(t *testing.T) {
	prices, err := source.BarsToTable([]source.Bar{
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Open: 1, High: 1, Low: 1, Close: 1, AdjClose: 1, Volume: 1},
		{Time: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Open: 2, High: 2, Low: 2, Close: 2, AdjClose: 2, Volume: 2},
	})
	require.NoError(t, err)

	src := &fakeSource{table: prices}
	archive := &fakeArchive{}
	s, _ := newSession(t, Options{Source: src, Archive: archive})

	req := source.Request{Symbol: "AAPL", Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, s.Fetch(context.Background(), req))
	assert.Equal(t, "AAPL", s.Origin())
	assert.Equal(t, []string{"AAPL"}, archive.symbols)

	tbl, err := s.Table()
	require.NoError(t, err)
	assert.Same(t, prices, tbl)

	src.err = goeda.NewError(goeda.KindRemoteFetchFailed, "yahoo fetch", "", errors.New("timeout"))
	err = s.Fetch(context.Background(), req)
	require.ErrorIs(t, err, goeda.ErrRemoteFetchFailed)
	tbl, _ = s.Table()
	assert.Same(t, prices, tbl, "failed fetch keeps the previous table")

	// Archive failures are logged, not returned.
	src.err = nil
	archive.err = errors.New("influx down")
	assert.NoError(t, s.Fetch(context.Background(), req))
}

func TestFetchWithoutSource(t *testing.T) {
	s, _ := newSession(t, Options{})
	err := s.Fetch(context.Background(), source.Request{Symbol: "AAPL"})
	assert.ErrorIs(t, err, goeda.ErrRemoteFetchFailed)
}

func TestDefaults(t *testing.T) {
	s, _ := newSession(t, Options{})
	vol, period := s.Defaults()
	assert.Equal(t, analysis.DefaultVolatilityWindow, vol.Window)
	assert.Equal(t, analysis.DefaultDecomposePeriod, period)
	assert.NotEmpty(t, s.ID)
}
