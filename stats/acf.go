package stats

import (
	"math"

	mstats "github.com/aclements/go-moremath/stats"
)

// ACF returns the sample autocorrelation of xs at lags 0 through maxLag,
// normalized by the lag-0 sum of squares. maxLag is capped at len(xs)-1.
// Returns nil for an empty or constant sample.
func ACF(xs []float64, maxLag int) []float64 {
	maxLag = min(maxLag, len(xs)-1)
	if maxLag < 0 {
		return nil
	}

	mean := mstats.Mean(xs)
	dev := make([]float64, len(xs))
	for i, x := range xs {
		dev[i] = x - mean
	}
	c0 := dot(dev, dev)
	if c0 == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := range acf {
		acf[k] = dot(dev[k:], dev[:len(dev)-k]) / c0
	}
	return acf
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// ACFResult represents the result of ACF analysis.
type ACFResult struct {
	Lags       []int
	Values     []float64
	ConfBounds float64 // 95% confidence bounds (±1.96/sqrt(n))
}

// ACFWithConfidence calculates ACF with confidence bounds.
func ACFWithConfidence(xs []float64, maxLag int) *ACFResult {
	acf := ACF(xs, maxLag)
	if acf == nil {
		return nil
	}

	lags := make([]int, len(acf))
	for i := range lags {
		lags[i] = i
	}

	return &ACFResult{
		Lags:       lags,
		Values:     acf,
		ConfBounds: 1.96 / math.Sqrt(float64(len(xs))),
	}
}

// SignificantLags returns the lags whose values exceed the confidence bound.
func SignificantLags(values []float64, confBound float64) []int {
	var significant []int
	for i := 1; i < len(values); i++ { // Skip lag 0
		if math.Abs(values[i]) > confBound {
			significant = append(significant, i)
		}
	}
	return significant
}
