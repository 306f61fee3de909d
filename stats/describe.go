package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// Summary holds descriptive statistics of a sample, in the layout of a
// "describe" report.
type Summary struct {
	Count  int
	Mean   float64
	Std    float64
	Min    float64
	Q25    float64
	Median float64
	Q75    float64
	Max    float64
}

// Describe summarizes the non-missing values of xs. Statistics that are
// undefined for the sample size are NaN.
func Describe(xs []float64) Summary {
	sorted := sortedValid(xs)
	s := Summary{
		Count:  len(sorted),
		Mean:   math.NaN(),
		Std:    math.NaN(),
		Min:    math.NaN(),
		Max:    math.NaN(),
		Q25:    quantileSorted(sorted, 0.25),
		Median: quantileSorted(sorted, 0.5),
		Q75:    quantileSorted(sorted, 0.75),
	}
	if s.Count == 0 {
		return s
	}

	s.Mean = mstats.Mean(sorted)
	s.Min, s.Max = mstats.Bounds(sorted)
	if s.Count > 1 {
		s.Std = mstats.StdDev(sorted)
	}
	return s
}
