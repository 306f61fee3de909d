package stats

import (
	"math"
	"sort"
)

// IQRMultiplier is the fence multiplier of the IQR outlier rule.
const IQRMultiplier = 1.5

// Quantile returns the q-quantile of xs, ignoring NaN, by linear
// interpolation between the closest ranks: h = (n-1)q. Returns NaN when xs
// holds no values.
func Quantile(xs []float64, q float64) float64 {
	return quantileSorted(sortedValid(xs), q)
}

func sortedValid(xs []float64) []float64 {
	out := make([]float64, 0, len(xs))
	for _, x := range xs {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	sort.Float64s(out)
	return out
}

func quantileSorted(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * q
	lo := math.Floor(h)
	i := int(lo)
	if i+1 >= n {
		return sorted[n-1]
	}
	return sorted[i] + (h-lo)*(sorted[i+1]-sorted[i])
}

// Fences holds the quartiles of a sample and the outlier bounds derived
// from them.
type Fences struct {
	Q1    float64
	Q3    float64
	IQR   float64
	Lower float64
	Upper float64
}

// IQRFences computes Q1, Q3 and the bounds [Q1 - k*IQR, Q3 + k*IQR].
// ok is false when xs holds no values.
func IQRFences(xs []float64, k float64) (f Fences, ok bool) {
	sorted := sortedValid(xs)
	if len(sorted) == 0 {
		return Fences{}, false
	}
	f.Q1 = quantileSorted(sorted, 0.25)
	f.Q3 = quantileSorted(sorted, 0.75)
	f.IQR = f.Q3 - f.Q1
	f.Lower = f.Q1 - k*f.IQR
	f.Upper = f.Q3 + k*f.IQR
	return f, true
}

// Outside reports whether x lies strictly outside the bounds. NaN is never
// outside.
func (f Fences) Outside(x float64) bool {
	return x < f.Lower || x > f.Upper
}
