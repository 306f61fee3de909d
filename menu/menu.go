// Package menu runs the interactive line-based menu over a session.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/sartorproj/goeda/analysis"
	"github.com/sartorproj/goeda/render"
	"github.com/sartorproj/goeda/session"
	"github.com/sartorproj/goeda/source"
	"github.com/sartorproj/goeda/stats"
)

// errQuit ends the loop.
var errQuit = errors.New("quit")

// errEOF reports that input ended inside a prompt.
var errEOF = errors.New("end of input")

type action struct {
	key   string
	label string
	run   func(m *Menu, ctx context.Context) error
}

// Menu reads choices from in and writes prompts and messages to out.
// Results are drawn on the sink.
type Menu struct {
	s       *session.Session
	sink    render.Sink
	in      *bufio.Scanner
	out     io.Writer
	actions []action
}

// New creates a menu over s.
func New(s *session.Session, sink render.Sink, in io.Reader, out io.Writer) *Menu {
	m := &Menu{s: s, sink: sink, in: bufio.NewScanner(in), out: out}
	m.actions = []action{
		{"1", "Load data file", (*Menu).load},
		{"2", "Download stock data", (*Menu).fetch},
		{"3", "Summarize data", (*Menu).summary},
		{"4", "Analyze column", (*Menu).column},
		{"5", "Data quality", (*Menu).quality},
		{"6", "Summary statistics", (*Menu).describe},
		{"7", "Plot prices", (*Menu).prices},
		{"8", "Detect outliers", (*Menu).outliers},
		{"9", "Correlation matrix", (*Menu).correlation},
		{"10", "Daily returns", (*Menu).returns},
		{"11", "Rolling volatility", (*Menu).volatility},
		{"12", "Decompose time series", (*Menu).decompose},
		{"13", "Autocorrelation", (*Menu).autocorrelation},
		{"14", "Clean data", (*Menu).clean},
		{"15", "Save data", (*Menu).save},
		{"0", "Exit", func(*Menu, context.Context) error { return errQuit }},
	}
	return m
}

// Run shows the menu until the user exits or input ends. Failed actions are
// reported and the loop continues.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.show()
		choice, err := m.prompt("Enter your choice", "")
		if errors.Is(err, errEOF) {
			return nil
		}

		a, ok := m.lookup(choice)
		if !ok {
			m.printf("Invalid choice %q. Please try again.\n", choice)
			continue
		}

		err = a.run(m, ctx)
		switch {
		case errors.Is(err, errQuit), errors.Is(err, errEOF):
			m.printf("Goodbye.\n")
			return nil
		case err != nil:
			m.printf("Error: %v\n", err)
		}
	}
}

func (m *Menu) show() {
	m.printf("\nExploratory Data Analysis\n")
	if origin := m.s.Origin(); origin != "" {
		m.printf("Current data: %s\n", origin)
	}
	for _, a := range m.actions {
		m.printf("%3s. %s\n", a.key, a.label)
	}
}

func (m *Menu) lookup(choice string) (action, bool) {
	switch strings.ToLower(choice) {
	case "q", "quit", "exit":
		choice = "0"
	}
	for _, a := range m.actions {
		if a.key == choice {
			return a, true
		}
	}
	return action{}, false
}

func (m *Menu) printf(format string, args ...any) {
	fmt.Fprintf(m.out, format, args...)
}

// prompt reads one trimmed line, returning def for an empty answer.
func (m *Menu) prompt(label, def string) (string, error) {
	if def != "" {
		m.printf("%s [%s]: ", label, def)
	} else {
		m.printf("%s: ", label)
	}
	if !m.in.Scan() {
		return "", errEOF
	}
	answer := strings.TrimSpace(m.in.Text())
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

func (m *Menu) promptInt(label string, def int) (int, error) {
	answer, err := m.prompt(label, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", label, answer)
	}
	return n, nil
}

func (m *Menu) promptDate(label, def string) (time.Time, error) {
	answer, err := m.prompt(label, def)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.DateOnly, answer)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %q is not a YYYY-MM-DD date", label, answer)
	}
	return t, nil
}

func (m *Menu) load(_ context.Context) error {
	path, err := m.prompt("Enter the CSV or XLSX file name", "")
	if err != nil {
		return err
	}
	if err := m.s.LoadFile(path); err != nil {
		return err
	}
	rows, cols, _ := m.s.Shape()
	m.printf("Loaded %d rows x %d columns from %s\n", rows, cols, path)
	return nil
}

func (m *Menu) fetch(ctx context.Context) error {
	symbol, err := m.prompt("Ticker", "^GSPC")
	if err != nil {
		return err
	}
	start, err := m.promptDate("Start date", "2020-01-01")
	if err != nil {
		return err
	}
	end, err := m.promptDate("End date", "2023-01-01")
	if err != nil {
		return err
	}
	if err := m.s.Fetch(ctx, source.Request{Symbol: symbol, Start: start, End: end}); err != nil {
		return err
	}
	rows, _, _ := m.s.Shape()
	m.printf("Downloaded %d rows for %s\n", rows, strings.ToUpper(symbol))
	return nil
}

func (m *Menu) summary(_ context.Context) error {
	t, err := m.s.Table()
	if err != nil {
		return err
	}
	render.Overview(m.sink, t)
	return nil
}

func (m *Menu) column(_ context.Context) error {
	name, err := m.prompt("Column name", "")
	if err != nil {
		return err
	}
	n, values, err := m.s.Unique(name)
	if err != nil {
		return err
	}
	render.Unique(m.sink, name, n, values)
	return nil
}

func (m *Menu) quality(_ context.Context) error {
	r, err := m.s.Quality()
	if err != nil {
		return err
	}
	render.Quality(m.sink, r)
	return nil
}

func (m *Menu) describe(_ context.Context) error {
	out, err := m.s.Describe()
	if err != nil {
		return err
	}
	render.Describe(m.sink, out)
	return nil
}

func (m *Menu) prices(_ context.Context) error {
	t, err := m.s.Table()
	if err != nil {
		return err
	}
	vol, _ := m.s.Defaults()
	column, err := m.prompt("Price column", vol.Price)
	if err != nil {
		return err
	}
	if err := render.Series(m.sink, t, column, "Stock Price Over Time"); err != nil {
		return err
	}
	return render.Distribution(m.sink, t, column)
}

func (m *Menu) outliers(_ context.Context) error {
	name, err := m.prompt("Column name", "")
	if err != nil {
		return err
	}
	res, err := m.s.Outliers(name)
	if err != nil {
		return err
	}
	render.Outliers(m.sink, res)
	return nil
}

func (m *Menu) correlation(_ context.Context) error {
	c, err := m.s.Correlation()
	if err != nil {
		return err
	}
	render.Correlation(m.sink, c)
	return nil
}

func (m *Menu) returns(_ context.Context) error {
	vol, _ := m.s.Defaults()
	price, err := m.prompt("Price column", vol.Price)
	if err != nil {
		return err
	}
	if err := m.s.Returns(price); err != nil {
		return err
	}
	t, err := m.s.Table()
	if err != nil {
		return err
	}
	xs, err := t.Floats(vol.Returns)
	if err != nil {
		return err
	}
	m.sink.Histogram(render.Chart{Title: "Distribution of Daily Returns", XLabel: vol.Returns, YLabel: "Frequency"}, xs, render.DefaultBins)
	return nil
}

func (m *Menu) volatility(_ context.Context) error {
	vol, _ := m.s.Defaults()
	window, err := m.promptInt("Window (rows)", vol.Window)
	if err != nil {
		return err
	}
	res, err := m.s.Volatility(window)
	if err != nil {
		return err
	}
	for _, step := range res.Steps {
		m.printf("Computed %s first.\n", step)
	}
	render.Volatility(m.sink, res, window)
	return nil
}

func (m *Menu) decompose(_ context.Context) error {
	vol, period := m.s.Defaults()
	column, err := m.prompt("Column", vol.Price)
	if err != nil {
		return err
	}
	period, err = m.promptInt("Period", period)
	if err != nil {
		return err
	}
	model, err := m.prompt("Model (additive/multiplicative)", string(stats.Additive))
	if err != nil {
		return err
	}
	d, err := m.s.Decompose(column, period, stats.Model(strings.ToLower(model)))
	if err != nil {
		return err
	}
	render.Decomposition(m.sink, d)
	return nil
}

func (m *Menu) autocorrelation(_ context.Context) error {
	vol, _ := m.s.Defaults()
	column, err := m.prompt("Column", vol.Returns)
	if err != nil {
		return err
	}
	lags, err := m.promptInt("Lags", analysis.DefaultLags)
	if err != nil {
		return err
	}
	res, err := m.s.Autocorrelation(column, lags)
	if err != nil {
		return err
	}
	render.Autocorrelation(m.sink, res)
	return nil
}

func (m *Menu) clean(_ context.Context) error {
	dropped, err := m.s.Clean()
	if err != nil {
		return err
	}
	m.printf("Removed %d rows with missing values.\n", dropped)
	return nil
}

func (m *Menu) save(_ context.Context) error {
	path, err := m.prompt("Output CSV file", "")
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New("no file name given")
	}
	if err := m.s.Save(path); err != nil {
		return err
	}
	m.printf("Saved to %s\n", path)
	return nil
}
