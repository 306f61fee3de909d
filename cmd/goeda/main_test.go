package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sartorproj/goeda/stats"
)

func writePrices(t *testing.T, rows int) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("Date,Close,Volume\n")
	day := time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&b, "%s,%.2f,%d\n", day.AddDate(0, 0, i).Format(time.DateOnly), 100+float64(i%7)+0.5*float64(i), 1000+10*i)
	}
	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(strings.NewReader(""), &out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootPrintsHelpWithoutTerminal(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "volatility")
}

func TestSummaryCommand(t *testing.T) {
	path := writePrices(t, 40)
	out, err := execute(t, "summary", "--file", path, "--index", "Date")
	require.NoError(t, err)
	assert.Contains(t, out, "Dataset: 40 rows x 2 columns")
}

func TestVolatilityCommand(t *testing.T) {
	path := writePrices(t, 40)
	out, err := execute(t, "volatility", "--file", path, "--index", "Date", "--window", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Rolling Volatility (5-row window)")
}

func TestDecomposeCommand(t *testing.T) {
	path := writePrices(t, 40)
	out, err := execute(t, "decompose", "--file", path, "--index", "Date", "--period", "7")
	require.NoError(t, err)
	assert.Contains(t, out, "additive")
}

func TestCommandErrors(t *testing.T) {
	_, err := execute(t, "describe")
	assert.ErrorContains(t, err, "--file or --symbol")

	_, err = execute(t, "describe", "--file", filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorContains(t, err, "file not found")

	path := writePrices(t, 10)
	_, err = execute(t, "decompose", "--file", path, "--model", "fancy")
	assert.ErrorContains(t, err, "must be additive or multiplicative")

	_, err = execute(t, "summary", "--file", path, "--provider", "bloomberg")
	assert.ErrorContains(t, err, "source.provider")
}

func TestSaveCommand(t *testing.T) {
	path := writePrices(t, 12)
	dst := filepath.Join(t.TempDir(), "out.csv")
	out, err := execute(t, "save", dst, "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved 12 rows x 3 columns")
	assert.FileExists(t, dst)
}

func TestRequestFromFlags(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	req, err := dataFlags{symbol: "aapl"}.request(now)
	require.NoError(t, err)
	assert.Equal(t, "aapl", req.Symbol)
	assert.Equal(t, now.AddDate(-1, 0, 0), req.Start)
	assert.True(t, req.End.IsZero())

	req, err = dataFlags{symbol: "MSFT", start: "2020-01-01", end: "2021-01-01"}.request(now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), req.Start)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), req.End)

	_, err = dataFlags{symbol: "MSFT", start: "01/01/2020"}.request(now)
	assert.ErrorContains(t, err, "--start")
}

func TestModelFlag(t *testing.T) {
	m := modelFlag(stats.Additive)
	require.NoError(t, m.Set("Multiplicative"))
	assert.Equal(t, string(stats.Multiplicative), m.String())
	assert.Error(t, m.Set("log"))
	assert.Equal(t, "model", m.Type())
}
