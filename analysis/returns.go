package analysis

import (
	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/table"
	"github.com/sartorproj/goeda/timeseries"
)

// Default column names for derived series.
const (
	PriceColumn      = "Close"
	ReturnsColumn    = "Returns"
	VolatilityColumn = "Volatility"
)

// Returns computes the one-step relative change of the price column,
// r[i] = p[i]/p[i-1] - 1, and returns a table without the first row that
// carries the result in column out. A missing price, or a zero previous
// price, gives a missing return.
func Returns(t *table.Table, price, out string) (*table.Table, error) {
	const op = "returns"

	if price == "" {
		price = PriceColumn
	}
	if out == "" {
		out = ReturnsColumn
	}

	prices, err := numeric(t, op, price)
	if err != nil {
		return nil, err
	}
	if len(prices) < 2 {
		return nil, goeda.Errorf(goeda.KindEmptyData, op, price, "need at least 2 rows, have %d", len(prices))
	}

	changes := timeseries.New(prices).PctChange()
	shifted := t.Slice(1, t.NumRows())
	return shifted.WithColumn(table.NewNumericColumn(out, changes.Values))
}

// EnsureReturns returns t unchanged when it already has a numeric returns
// column, and otherwise computes it from price. computed reports which case
// applied.
func EnsureReturns(t *table.Table, price, returns string) (out *table.Table, computed bool, err error) {
	if returns == "" {
		returns = ReturnsColumn
	}
	if c, err := t.Column(returns); err == nil {
		if !c.IsNumeric() {
			return nil, false, goeda.NewError(goeda.KindNonNumericColumn, "returns", returns, nil)
		}
		return t, false, nil
	}

	out, err = Returns(t, price, returns)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}
