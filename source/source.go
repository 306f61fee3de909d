package source

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/table"
)

// Column names of a fetched price table.
const (
	IndexName      = "Date"
	OpenColumn     = "Open"
	HighColumn     = "High"
	LowColumn      = "Low"
	CloseColumn    = "Close"
	AdjCloseColumn = "Adj Close"
	VolumeColumn   = "Volume"
)

// DefaultInterval is the bar size requested when none is given.
const DefaultInterval = "1d"

// Source fetches a price table for a symbol.
type Source interface {
	Fetch(ctx context.Context, req Request) (*table.Table, error)
}

// Request selects the symbol and the date range [Start, End] to fetch.
type Request struct {
	Symbol   string
	Start    time.Time
	End      time.Time // zero means now
	Interval string    // e.g. "1d", "1wk"
}

// normalize sanitizes the symbol and fills in defaults.
func (r Request) normalize(now time.Time) (Request, error) {
	symbol, err := SanitizeTicker(r.Symbol)
	if err != nil {
		return r, err
	}
	r.Symbol = symbol
	if r.Interval == "" {
		r.Interval = DefaultInterval
	}
	if r.End.IsZero() {
		r.End = now
	}
	if r.Start.IsZero() {
		return r, fmt.Errorf("start date is required")
	}
	if !r.Start.Before(r.End) {
		return r, fmt.Errorf("start %s is not before end %s", r.Start.Format(time.DateOnly), r.End.Format(time.DateOnly))
	}
	return r, nil
}

// Bar is one row of a price table. Missing fields are NaN.
type Bar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

func emptyBar(ts time.Time) Bar {
	nan := math.NaN()
	return Bar{Time: ts, Open: nan, High: nan, Low: nan, Close: nan, AdjClose: nan, Volume: nan}
}

// BarsToTable builds a Date-indexed price table from bars.
func BarsToTable(bars []Bar) (*table.Table, error) {
	n := len(bars)
	idx := make([]time.Time, n)
	open := make([]float64, n)
	high := make([]float64, n)
	low := make([]float64, n)
	closes := make([]float64, n)
	adj := make([]float64, n)
	volume := make([]float64, n)
	for i, b := range bars {
		idx[i] = b.Time
		open[i], high[i], low[i] = b.Open, b.High, b.Low
		closes[i], adj[i], volume[i] = b.Close, b.AdjClose, b.Volume
	}

	t, err := table.New(
		table.NewNumericColumn(OpenColumn, open),
		table.NewNumericColumn(HighColumn, high),
		table.NewNumericColumn(LowColumn, low),
		table.NewNumericColumn(CloseColumn, closes),
		table.NewNumericColumn(AdjCloseColumn, adj),
		table.NewNumericColumn(VolumeColumn, volume),
	)
	if err != nil {
		return nil, err
	}
	return t.WithIndex(IndexName, idx)
}

func fetchError(provider, symbol string, err error) error {
	return &goeda.Error{
		Kind:   goeda.KindRemoteFetchFailed,
		Op:     provider + " fetch",
		Detail: symbol,
		Cause:  err,
	}
}
