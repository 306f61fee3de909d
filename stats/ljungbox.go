package stats

import "math"

// LjungBoxResult represents the result of a Ljung-Box test.
type LjungBoxResult struct {
	Statistic float64
	PValue    float64
	Lags      int
	DOF       int // Degrees of freedom
}

// LjungBox tests for autocorrelation up to the given lag. The null hypothesis
// is that the sample is free of autocorrelation; a p-value below 0.05 rejects
// it. fitdf is the number of fitted parameters already removed from the
// sample (0 for raw returns). Returns nil for fewer than 10 observations.
func LjungBox(xs []float64, lags, fitdf int) *LjungBoxResult {
	n := len(xs)
	if n < 10 || lags < 1 {
		return nil
	}
	if lags >= n {
		lags = n - 1
	}

	acf := ACF(xs, lags)
	if acf == nil {
		return nil
	}

	q := 0.0
	for k := 1; k <= lags; k++ {
		q += (acf[k] * acf[k]) / float64(n-k)
	}
	q *= float64(n * (n + 2))

	dof := lags - fitdf
	if dof < 1 {
		dof = 1
	}

	return &LjungBoxResult{
		Statistic: q,
		PValue:    1 - chiSquaredCDF(q, dof),
		Lags:      lags,
		DOF:       dof,
	}
}

// chiSquaredCDF is P(k/2, x/2), the regularized lower incomplete gamma.
func chiSquaredCDF(x float64, k int) float64 {
	if x <= 0 {
		return 0
	}
	return regularizedGammaP(float64(k)/2, x/2)
}

func regularizedGammaP(a, x float64) float64 {
	const (
		maxIter = 200
		eps     = 1e-12
		fpmin   = 1e-300
	)
	lg, _ := math.Lgamma(a)
	prefix := math.Exp(-x + a*math.Log(x) - lg)

	if x < a+1 {
		// Series expansion
		ap, sum := a, 1/a
		del := sum
		for i := 0; i < maxIter; i++ {
			ap++
			del *= x / ap
			sum += del
			if math.Abs(del) < math.Abs(sum)*eps {
				break
			}
		}
		return sum * prefix
	}

	// Continued fraction for Q(a, x), Lentz's method
	b := x + 1 - a
	c := 1 / fpmin
	d := 1 / b
	h := d
	for i := 1; i < maxIter; i++ {
		an := -float64(i) * (float64(i) - a)
		b += 2
		d = an*d + b
		if math.Abs(d) < fpmin {
			d = fpmin
		}
		c = b + an/c
		if math.Abs(c) < fpmin {
			c = fpmin
		}
		d = 1 / d
		del := d * c
		h *= del
		if math.Abs(del-1) < eps {
			break
		}
	}
	return 1 - prefix*h
}
