// Package timeseries provides core time series data structures and operations.
package timeseries

import (
	"errors"
	"math"
	"sort"
	"time"

	mstats "github.com/aclements/go-moremath/stats"

	"github.com/sartorproj/goeda/table"
)

// Series represents a time series with optional timestamps and values.
// Missing observations are NaN.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a new time series from values.
func New(values []float64) *Series {
	return &Series{Values: values}
}

// NewWithTimestamps creates a time series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// FromTable extracts a numeric column as a series, carrying the table index
// as timestamps when present.
func FromTable(t *table.Table, column string) (*Series, error) {
	values, err := t.Floats(column)
	if err != nil {
		return nil, err
	}
	return &Series{
		Timestamps: t.Index(),
		Values:     values,
		Name:       column,
	}, nil
}

// Len returns the length of the series.
func (s *Series) Len() int {
	return len(s.Values)
}

// Valid returns the non-missing values in order.
func (s *Series) Valid() []float64 {
	out := make([]float64, 0, len(s.Values))
	for _, v := range s.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

// HasMissing reports whether any value is NaN.
func (s *Series) HasMissing() bool {
	for _, v := range s.Values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Mean calculates the arithmetic mean of the non-missing values.
func (s *Series) Mean() float64 {
	valid := s.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	return mstats.Mean(valid)
}

// Variance calculates the sample variance of the non-missing values.
func (s *Series) Variance() float64 {
	valid := s.Valid()
	if len(valid) < 2 {
		return math.NaN()
	}
	return mstats.Variance(valid)
}

// Std calculates the sample standard deviation of the non-missing values.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the minimum non-missing value.
func (s *Series) Min() float64 {
	valid := s.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	min, _ := mstats.Bounds(valid)
	return min
}

// Max returns the maximum non-missing value.
func (s *Series) Max() float64 {
	valid := s.Valid()
	if len(valid) == 0 {
		return math.NaN()
	}
	_, max := mstats.Bounds(valid)
	return max
}

// Median returns the median of the non-missing values.
func (s *Series) Median() float64 {
	sorted := s.Valid()
	if len(sorted) == 0 {
		return math.NaN()
	}
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// PctChange returns the one-step relative change v[i]/v[i-1] - 1 for i >= 1.
// The result is one element shorter than the series. A missing or zero
// previous value gives NaN.
func (s *Series) PctChange() *Series {
	if len(s.Values) < 2 {
		return &Series{Values: []float64{}, Name: s.Name + "_pct_change"}
	}

	result := make([]float64, len(s.Values)-1)
	for i := 1; i < len(s.Values); i++ {
		prev, cur := s.Values[i-1], s.Values[i]
		if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
			result[i-1] = math.NaN()
			continue
		}
		result[i-1] = cur/prev - 1
	}

	var timestamps []time.Time
	if len(s.Timestamps) == len(s.Values) {
		timestamps = make([]time.Time, len(result))
		copy(timestamps, s.Timestamps[1:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     result,
		Name:       s.Name + "_pct_change",
	}
}

// RollingStd returns the trailing sample standard deviation over window
// observations. The result has the same length as the series; the first
// window-1 entries, and any window holding a missing value, are NaN.
func (s *Series) RollingStd(window int) *Series {
	n := len(s.Values)
	result := make([]float64, n)
	for i := range result {
		result[i] = math.NaN()
	}

	if window >= 2 {
		buf := make([]float64, window)
		for i := window - 1; i < n; i++ {
			copy(buf, s.Values[i-window+1:i+1])
			if hasNaN(buf) {
				continue
			}
			result[i] = mstats.StdDev(buf)
		}
	}

	return &Series{
		Timestamps: s.Timestamps,
		Values:     result,
		Name:       s.Name + "_rolling_std",
	}
}

// CenteredMovingAverage returns a centered moving average of length window,
// aligned with the series. Even windows use a 2xwindow average so the result
// stays centered. The first and last window/2 entries are NaN.
func (s *Series) CenteredMovingAverage(window int) *Series {
	n := len(s.Values)
	result := make([]float64, n)
	for i := range result {
		result[i] = math.NaN()
	}

	half := window / 2
	if window >= 1 {
		for i := half; i < n-half; i++ {
			sum := 0.0
			if window%2 == 0 {
				// End points get half weight.
				sum += s.Values[i-half] * 0.5
				sum += s.Values[i+half] * 0.5
				for j := i - half + 1; j < i+half; j++ {
					sum += s.Values[j]
				}
			} else {
				for j := i - half; j <= i+half; j++ {
					sum += s.Values[j]
				}
			}
			result[i] = sum / float64(window)
		}
	}

	return &Series{
		Timestamps: s.Timestamps,
		Values:     result,
		Name:       s.Name + "_cma",
	}
}

// Slice returns a slice of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}, Name: s.Name}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	var timestamps []time.Time
	if len(s.Timestamps) >= end {
		timestamps = make([]time.Time, len(values))
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Copy creates a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	var timestamps []time.Time
	if s.Timestamps != nil {
		timestamps = make([]time.Time, len(s.Timestamps))
		copy(timestamps, s.Timestamps)
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

func hasNaN(xs []float64) bool {
	for _, x := range xs {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}
