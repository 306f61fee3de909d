package render

import "math"

// DefaultBins is the number of histogram bins used when none is given.
const DefaultBins = 20

// Histogram holds bin counts; bin i covers [Edges[i], Edges[i+1]), the last
// bin is closed on the right.
type Histogram struct {
	Edges  []float64
	Counts []int
}

// NewHistogram bins the finite values of xs. Returns nil when xs holds no
// finite values.
func NewHistogram(xs []float64, bins int) *Histogram {
	if bins <= 0 {
		bins = DefaultBins
	}
	lo, hi, ok := bounds(xs)
	if !ok {
		return nil
	}
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}

	h := &Histogram{Edges: make([]float64, bins+1), Counts: make([]int, bins)}
	width := (hi - lo) / float64(bins)
	for i := range h.Edges {
		h.Edges[i] = lo + float64(i)*width
	}
	h.Edges[bins] = hi

	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		i := min(max(int((x-lo)/width), 0), bins-1)
		h.Counts[i]++
	}
	return h
}
