package analysis

import (
	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/table"
	"github.com/sartorproj/goeda/timeseries"
)

// DefaultVolatilityWindow is the rolling window, in rows, used when none is
// configured.
const DefaultVolatilityWindow = 30

// VolatilityOptions configures RollingVolatility.
type VolatilityOptions struct {
	Price   string // price column used when Returns must be computed
	Returns string // returns column
	Output  string // column receiving the volatility
	Window  int
}

// DefaultVolatilityOptions returns the options used by the menu and CLI.
func DefaultVolatilityOptions() VolatilityOptions {
	return VolatilityOptions{
		Price:   PriceColumn,
		Returns: ReturnsColumn,
		Output:  VolatilityColumn,
		Window:  DefaultVolatilityWindow,
	}
}

// VolatilityResult is the outcome of RollingVolatility.
type VolatilityResult struct {
	Table  *table.Table
	Series *timeseries.Series
	// Steps lists the prerequisite steps that ran, e.g. "returns".
	Steps []string
}

// RollingVolatility computes the trailing sample standard deviation of the
// returns column over opts.Window rows. When the returns column is absent it
// is computed first, which drops the first row of the table.
func RollingVolatility(t *table.Table, opts VolatilityOptions) (*VolatilityResult, error) {
	const op = "rolling volatility"

	def := DefaultVolatilityOptions()
	if opts.Returns == "" {
		opts.Returns = def.Returns
	}
	if opts.Output == "" {
		opts.Output = def.Output
	}
	if opts.Window == 0 {
		opts.Window = def.Window
	}
	if opts.Window < 2 {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, op, opts.Output, "window must be at least 2, got %d", opts.Window)
	}

	var steps []string
	t, computed, err := EnsureReturns(t, opts.Price, opts.Returns)
	if err != nil {
		return nil, err
	}
	if computed {
		steps = append(steps, "returns")
	}

	series, err := timeseries.FromTable(t, opts.Returns)
	if err != nil {
		return nil, withOp(err, op)
	}
	vol := series.RollingStd(opts.Window)
	vol.Name = opts.Output

	out, err := t.WithColumn(table.NewNumericColumn(opts.Output, vol.Values))
	if err != nil {
		return nil, err
	}
	return &VolatilityResult{Table: out, Series: vol, Steps: steps}, nil
}
