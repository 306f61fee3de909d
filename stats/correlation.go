package stats

import "math"

// Pearson returns the Pearson correlation of x and y over the rows where
// both are present, and the number of such rows. The result is NaN when
// fewer than two complete rows exist or either side has zero variance.
func Pearson(x, y []float64) (r float64, n int) {
	m := len(x)
	if len(y) < m {
		m = len(y)
	}

	var sumX, sumY float64
	for i := 0; i < m; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		sumX += x[i]
		sumY += y[i]
		n++
	}
	if n < 2 {
		return math.NaN(), n
	}

	meanX, meanY := sumX/float64(n), sumY/float64(n)
	var cov, varX, varY float64
	for i := 0; i < m; i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		dx, dy := x[i]-meanX, y[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return math.NaN(), n
	}

	r = cov / math.Sqrt(varX*varY)
	return math.Max(-1, math.Min(1, r)), n
}

// CorrelationMatrix returns the pairwise-complete Pearson correlation of
// every pair of columns. The matrix is symmetric; the diagonal is exactly 1
// for columns with at least two values and non-zero variance, NaN otherwise.
func CorrelationMatrix(columns [][]float64) [][]float64 {
	k := len(columns)
	m := make([][]float64, k)
	for i := range m {
		m[i] = make([]float64, k)
	}

	for i := 0; i < k; i++ {
		if r, _ := Pearson(columns[i], columns[i]); math.IsNaN(r) {
			m[i][i] = math.NaN()
		} else {
			m[i][i] = 1
		}
		for j := i + 1; j < k; j++ {
			r, _ := Pearson(columns[i], columns[j])
			m[i][j] = r
			m[j][i] = r
		}
	}
	return m
}
