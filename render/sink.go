package render

// Chart describes a plot.
type Chart struct {
	Title  string
	XLabel string
	YLabel string
}

// Sink receives presentation requests. Implementations report their own
// failures; callers never inspect a result.
type Sink interface {
	Line(c Chart, ys []float64)
	Histogram(c Chart, xs []float64, bins int)
	Heatmap(title string, labels []string, m [][]float64)
	Summary(title string, headers []string, rows [][]string)
}

// Discard is a Sink that draws nothing.
var Discard Sink = discard{}

type discard struct{}

func (discard) Line(Chart, []float64)                 {}
func (discard) Histogram(Chart, []float64, int)       {}
func (discard) Heatmap(string, []string, [][]float64) {}
func (discard) Summary(string, []string, [][]string)  {}
