package analysis

import (
	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// CorrelationMatrix is a labelled symmetric matrix of Pearson coefficients.
type CorrelationMatrix struct {
	Labels []string
	Values [][]float64
}

// At returns the coefficient of the named pair.
func (m *CorrelationMatrix) At(a, b string) (float64, error) {
	i, j := -1, -1
	for k, l := range m.Labels {
		if l == a {
			i = k
		}
		if l == b {
			j = k
		}
	}
	switch {
	case i < 0:
		return 0, goeda.NewError(goeda.KindColumnNotFound, "correlation", a, nil)
	case j < 0:
		return 0, goeda.NewError(goeda.KindColumnNotFound, "correlation", b, nil)
	}
	return m.Values[i][j], nil
}

// Correlation computes the pairwise-complete Pearson correlation of every
// pair of numeric columns. Non-numeric columns are ignored.
func Correlation(t *table.Table) (*CorrelationMatrix, error) {
	const op = "correlation"

	labels := t.NumericNames()
	if len(labels) < 2 {
		return nil, goeda.Errorf(goeda.KindEmptyData, op, "", "need at least 2 numeric columns, have %d", len(labels))
	}

	columns := make([][]float64, len(labels))
	for i, name := range labels {
		xs, err := numeric(t, op, name)
		if err != nil {
			return nil, err
		}
		columns[i] = xs
	}

	return &CorrelationMatrix{
		Labels: labels,
		Values: stats.CorrelationMatrix(columns),
	}, nil
}
