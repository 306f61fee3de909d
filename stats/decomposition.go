package stats

import (
	"math"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/timeseries"
)

// Model selects how the components combine.
type Model string

const (
	Additive       Model = "additive"       // Y = T + S + R
	Multiplicative Model = "multiplicative" // Y = T * S * R
)

// DecompositionResult represents the decomposition of a time series. All
// components are aligned with Observed; Trend and Residual are NaN for
// period/2 observations at both ends.
type DecompositionResult struct {
	Observed *timeseries.Series
	Trend    *timeseries.Series
	Seasonal *timeseries.Series
	Residual *timeseries.Series
	Period   int
	Model    Model
}

// Decompose performs classical seasonal decomposition of a time series.
// The trend is a centered moving average of length period; the seasonal
// component is the per-phase mean of the detrended series, normalized over
// one cycle and repeated from the first observation.
func Decompose(series *timeseries.Series, period int, model Model) (*DecompositionResult, error) {
	const op = "decompose"

	if period < 2 {
		return nil, goeda.Errorf(goeda.KindInvalidArgument, op, series.Name, "period must be at least 2, got %d", period)
	}
	n := series.Len()
	if n < 2*period {
		return nil, goeda.Errorf(goeda.KindInsufficientData, op, series.Name,
			"need %d observations for period %d, have %d", 2*period, period, n)
	}
	if series.HasMissing() {
		return nil, goeda.NewError(goeda.KindMissingValues, op, series.Name, nil)
	}
	switch model {
	case "", Additive:
		model = Additive
	case Multiplicative:
		for _, v := range series.Values {
			if v <= 0 {
				return nil, goeda.Errorf(goeda.KindInvalidArgument, op, series.Name,
					"multiplicative model needs strictly positive values")
			}
		}
	default:
		return nil, goeda.Errorf(goeda.KindInvalidArgument, op, series.Name, "unknown model %q", model)
	}

	// Step 1: Calculate trend using centered moving average
	trend := series.CenteredMovingAverage(period).Values

	// Step 2: Detrend the series
	detrended := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			detrended[i] = math.NaN()
		case model == Multiplicative:
			detrended[i] = series.Values[i] / trend[i]
		default:
			detrended[i] = series.Values[i] - trend[i]
		}
	}

	// Step 3: Average each phase of the cycle, then normalize
	pattern := make([]float64, period)
	counts := make([]int, period)
	for i, d := range detrended {
		if !math.IsNaN(d) {
			pattern[i%period] += d
			counts[i%period]++
		}
	}
	mean := 0.0
	for i := range pattern {
		if counts[i] > 0 {
			pattern[i] /= float64(counts[i])
		}
		mean += pattern[i]
	}
	mean /= float64(period)
	for i := range pattern {
		if model == Multiplicative {
			pattern[i] /= mean
		} else {
			pattern[i] -= mean
		}
	}

	seasonal := make([]float64, n)
	for i := range seasonal {
		seasonal[i] = pattern[i%period]
	}

	// Step 4: Calculate residual
	residual := make([]float64, n)
	for i := 0; i < n; i++ {
		switch {
		case math.IsNaN(trend[i]):
			residual[i] = math.NaN()
		case model == Multiplicative:
			residual[i] = series.Values[i] / (trend[i] * seasonal[i])
		default:
			residual[i] = series.Values[i] - trend[i] - seasonal[i]
		}
	}

	component := func(values []float64, name string) *timeseries.Series {
		return &timeseries.Series{Values: values, Timestamps: series.Timestamps, Name: name}
	}
	observed := series.Copy()
	observed.Name = "observed"

	return &DecompositionResult{
		Observed: observed,
		Trend:    component(trend, "trend"),
		Seasonal: component(seasonal, "seasonal"),
		Residual: component(residual, "residual"),
		Period:   period,
		Model:    model,
	}, nil
}
