package render

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
)

// Palette
var (
	colorTitle    = lipgloss.Color("#2CD7C7")
	colorAxis     = lipgloss.Color("#2C4A54")
	colorLine     = lipgloss.Color("#20B9B4")
	colorBorder   = lipgloss.Color("#16858E")
	colorPositive = lipgloss.Color("#E74C3C")
	colorNegative = lipgloss.Color("#3498DB")
	colorNeutral  = lipgloss.Color("#F4D03F")
)

const blocks = "▁▂▃▄▅▆▇█"

// Options configures a Terminal.
type Options struct {
	Width  int  // plot width in cells
	Height int  // line chart height in rows
	Color  bool // style output with colors
}

// Terminal draws to a text stream.
type Terminal struct {
	w      io.Writer
	width  int
	height int

	title  lipgloss.Style
	muted  lipgloss.Style
	line   lipgloss.Style
	border lipgloss.Style
	cell   lipgloss.Style
	header lipgloss.Style
	heat   func(v float64) lipgloss.Style
}

// NewTerminal creates a Terminal writing to w.
func NewTerminal(w io.Writer, opts Options) *Terminal {
	if opts.Width <= 0 {
		opts.Width = 60
	}
	if opts.Height <= 0 {
		opts.Height = 8
	}

	r := lipgloss.NewRenderer(w)
	t := &Terminal{
		w:      w,
		width:  opts.Width,
		height: opts.Height,
		title:  r.NewStyle().Bold(true),
		muted:  r.NewStyle(),
		line:   r.NewStyle(),
		border: r.NewStyle(),
		cell:   r.NewStyle().Padding(0, 1),
		header: r.NewStyle().Bold(true).Padding(0, 1),
	}
	t.heat = func(float64) lipgloss.Style { return t.cell }

	if opts.Color {
		t.title = t.title.Foreground(colorTitle)
		t.muted = t.muted.Foreground(colorAxis)
		t.line = t.line.Foreground(colorLine)
		t.border = t.border.Foreground(colorBorder)
		t.header = t.header.Foreground(colorTitle)
		t.heat = func(v float64) lipgloss.Style {
			switch {
			case math.IsNaN(v):
				return t.cell.Foreground(colorAxis)
			case v >= 0.5:
				return t.cell.Foreground(colorPositive).Bold(true)
			case v <= -0.5:
				return t.cell.Foreground(colorNegative).Bold(true)
			case math.Abs(v) >= 0.2:
				return t.cell.Foreground(colorNeutral)
			}
			return t.cell
		}
	}
	return t
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.w, format, args...)
}

func (t *Terminal) heading(c Chart) {
	t.printf("%s\n", t.title.Render(c.Title))
	if c.YLabel != "" || c.XLabel != "" {
		t.printf("%s\n", t.muted.Render(strings.TrimSpace(c.YLabel+" vs "+c.XLabel)))
	}
}

// Line draws ys as a block chart, resampled to the terminal width. Missing
// values leave a gap.
func (t *Terminal) Line(c Chart, ys []float64) {
	t.heading(c)
	cols := resample(ys, t.width)
	lo, hi, ok := bounds(cols)
	if !ok {
		t.printf("%s\n\n", t.muted.Render("(no data)"))
		return
	}

	levels := make([]int, len(cols))
	steps := t.height * 8
	for i, v := range cols {
		switch {
		case math.IsNaN(v):
			levels[i] = -1
		case math.IsInf(v, 1):
			levels[i] = steps - 1
		case math.IsInf(v, -1):
			levels[i] = 0
		case hi == lo:
			levels[i] = steps / 2
		default:
			levels[i] = int(math.Round((v - lo) / (hi - lo) * float64(steps-1)))
		}
	}

	label := func(v float64) string { return fmt.Sprintf("%10s ", FormatFloat(v)) }
	pad := strings.Repeat(" ", 11)
	for row := t.height - 1; row >= 0; row-- {
		var b strings.Builder
		for _, lvl := range levels {
			switch {
			case lvl < 0 || lvl < row*8:
				b.WriteByte(' ')
			case lvl >= row*8+7:
				b.WriteString(string([]rune(blocks)[7]))
			default:
				b.WriteString(string([]rune(blocks)[lvl-row*8]))
			}
		}
		prefix := pad
		switch row {
		case t.height - 1:
			prefix = label(hi)
		case 0:
			prefix = label(lo)
		}
		t.printf("%s%s\n", t.muted.Render(prefix), t.line.Render(b.String()))
	}
	t.printf("%s%s\n\n", pad, t.muted.Render(fmt.Sprintf("%d points, last %s", len(ys), FormatFloat(last(ys)))))
}

// Histogram draws the distribution of xs over equal-width bins.
func (t *Terminal) Histogram(c Chart, xs []float64, bins int) {
	t.heading(c)
	h := NewHistogram(xs, bins)
	if h == nil {
		t.printf("%s\n\n", t.muted.Render("(no data)"))
		return
	}

	peak := 0
	for _, n := range h.Counts {
		peak = max(peak, n)
	}
	barWidth := max(t.width-30, 10)
	for i, n := range h.Counts {
		width := 0
		if peak > 0 {
			width = int(math.Round(float64(n) / float64(peak) * float64(barWidth)))
		}
		label := fmt.Sprintf("%10s – %-10s", FormatFloat(h.Edges[i]), FormatFloat(h.Edges[i+1]))
		t.printf("%s %s %d\n", t.muted.Render(label), t.line.Render(strings.Repeat("█", width)), n)
	}
	t.printf("\n")
}

// Heatmap draws a labelled matrix with cells shaded by value.
func (t *Terminal) Heatmap(title string, labels []string, m [][]float64) {
	t.printf("%s\n", t.title.Render(title))
	rows := make([][]string, len(m))
	for i, r := range m {
		rows[i] = make([]string, len(r)+1)
		rows[i][0] = labels[i]
		for j, v := range r {
			rows[i][j+1] = fmt.Sprintf("%.2f", v)
		}
	}

	tbl := ltable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(t.border).
		Headers(append([]string{""}, labels...)...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == ltable.HeaderRow:
				return t.header
			case col == 0:
				return t.header
			}
			return t.heat(m[row][col-1])
		})
	t.printf("%s\n\n", tbl.String())
}

// Summary draws a titled table.
func (t *Terminal) Summary(title string, headers []string, rows [][]string) {
	t.printf("%s\n", t.title.Render(title))
	tbl := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(t.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return t.header
			}
			return t.cell
		})
	t.printf("%s\n\n", tbl.String())
}

// FormatFloat renders a number compactly; NaN renders as "NaN".
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case v != 0 && (math.Abs(v) >= 1e7 || math.Abs(v) < 1e-4):
		return fmt.Sprintf("%.4g", v)
	}
	return fmt.Sprintf("%.4f", v)
}

// resample averages ys into at most width buckets, ignoring NaN. A bucket
// with no values is NaN.
func resample(ys []float64, width int) []float64 {
	if len(ys) <= width {
		return ys
	}
	out := make([]float64, width)
	for i := range out {
		start := i * len(ys) / width
		end := (i + 1) * len(ys) / width
		sum, n := 0.0, 0
		for _, v := range ys[start:end] {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			out[i] = math.NaN()
		} else {
			out[i] = sum / float64(n)
		}
	}
	return out
}

// bounds returns the range of the finite values of xs.
func bounds(xs []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
		ok = true
	}
	return lo, hi, ok
}

func last(xs []float64) float64 {
	for i := len(xs) - 1; i >= 0; i-- {
		if !math.IsNaN(xs[i]) {
			return xs[i]
		}
	}
	return math.NaN()
}
