package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sartorproj/goeda"
	"github.com/sartorproj/goeda/analysis"
	"github.com/sartorproj/goeda/inspect"
	"github.com/sartorproj/goeda/source"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// Archive stores fetched tables, e.g. in InfluxDB.
type Archive interface {
	Store(ctx context.Context, symbol string, t *table.Table) (int, error)
}

// Options configures a Session.
type Options struct {
	Logger      zerolog.Logger
	Source      source.Source // remote provider used by Fetch
	Archive     Archive       // optional; receives every fetched table
	LoadOptions *table.LoadOptions
	Volatility  analysis.VolatilityOptions
	Period      int // default decomposition period
}

// Session is an analysis session over one current table. It is not safe for
// concurrent use.
type Session struct {
	ID     string
	log    zerolog.Logger
	opts   Options
	table  *table.Table
	origin string
}

// New creates an empty session.
func New(opts Options) *Session {
	if opts.LoadOptions == nil {
		opts.LoadOptions = table.DefaultLoadOptions()
	}
	def := analysis.DefaultVolatilityOptions()
	if opts.Volatility.Window == 0 {
		opts.Volatility.Window = def.Window
	}
	if opts.Volatility.Price == "" {
		opts.Volatility.Price = def.Price
	}
	if opts.Volatility.Returns == "" {
		opts.Volatility.Returns = def.Returns
	}
	if opts.Volatility.Output == "" {
		opts.Volatility.Output = def.Output
	}
	if opts.Period == 0 {
		opts.Period = analysis.DefaultDecomposePeriod
	}

	id := uuid.NewString()
	return &Session{
		ID:   id,
		log:  opts.Logger.With().Str("session_id", id).Logger(),
		opts: opts,
	}
}

// Table returns the current table.
func (s *Session) Table() (*table.Table, error) {
	if s.table == nil {
		return nil, goeda.NewError(goeda.KindNoTable, "", "", nil)
	}
	return s.table, nil
}

// Origin describes where the current table came from: a path or a symbol.
func (s *Session) Origin() string {
	return s.origin
}

// Defaults returns the effective volatility options and decomposition period.
func (s *Session) Defaults() (analysis.VolatilityOptions, int) {
	return s.opts.Volatility, s.opts.Period
}

// current returns the table for op, logging when there is none.
func (s *Session) current(op string) (*table.Table, error) {
	if s.table == nil {
		err := goeda.NewError(goeda.KindNoTable, op, "", nil)
		s.log.Warn().Str("op", op).Msg("No table loaded")
		return nil, err
	}
	return s.table, nil
}

func (s *Session) fail(op string, err error) error {
	s.log.Error().Err(err).Str("op", op).Str("kind", string(goeda.KindOf(err))).Msg("Operation failed")
	return err
}

// swap installs t as the current table.
func (s *Session) swap(op string, t *table.Table) {
	ev := s.log.Info().Str("op", op).Int("rows", t.NumRows()).Int("cols", t.NumCols())
	if s.table != nil {
		ev = ev.Int("prev_rows", s.table.NumRows()).Int("prev_cols", s.table.NumCols())
	}
	ev.Msg("Table updated")
	s.table = t
}

// LoadFile replaces the current table with the contents of a CSV or XLSX
// file.
func (s *Session) LoadFile(path string) error {
	const op = "load"
	t, err := table.Load(path, s.opts.LoadOptions)
	if err != nil {
		return s.fail(op, err)
	}
	s.origin = path
	s.swap(op, t)
	return nil
}

// Fetch replaces the current table with prices from the remote source.
func (s *Session) Fetch(ctx context.Context, req source.Request) error {
	const op = "fetch"
	if s.opts.Source == nil {
		return s.fail(op, goeda.Errorf(goeda.KindRemoteFetchFailed, op, "", "no remote source configured"))
	}

	t, err := s.opts.Source.Fetch(ctx, req)
	if err != nil {
		return s.fail(op, err)
	}
	s.origin = req.Symbol
	s.swap(op, t)

	if s.opts.Archive != nil {
		n, err := s.opts.Archive.Store(ctx, req.Symbol, t)
		if err != nil {
			s.log.Warn().Err(err).Str("symbol", req.Symbol).Msg("Archiving fetched prices failed")
		} else {
			s.log.Debug().Str("symbol", req.Symbol).Int("points", n).Msg("Archived fetched prices")
		}
	}
	return nil
}

// Save writes the current table to a CSV file.
func (s *Session) Save(path string) error {
	const op = "save"
	t, err := s.current(op)
	if err != nil {
		return err
	}
	if err := table.SaveCSV(t, path); err != nil {
		return s.fail(op, err)
	}
	s.log.Info().Str("path", path).Int("rows", t.NumRows()).Msg("Table saved")
	return nil
}

// Shape returns the row and column counts of the current table.
func (s *Session) Shape() (rows, cols int, err error) {
	t, err := s.current("shape")
	if err != nil {
		return 0, 0, err
	}
	rows, cols = inspect.Shape(t)
	return rows, cols, nil
}

// Quality runs the data-quality checks on the current table.
func (s *Session) Quality() (*inspect.Report, error) {
	t, err := s.current("quality")
	if err != nil {
		return nil, err
	}
	return inspect.NewReport(t), nil
}

// Unique returns the distinct values of a column.
func (s *Session) Unique(column string) (int, []string, error) {
	const op = "unique values"
	t, err := s.current(op)
	if err != nil {
		return 0, nil, err
	}
	n, values, err := inspect.UniqueValues(t, column)
	if err != nil {
		return 0, nil, s.fail(op, err)
	}
	return n, values, nil
}

// Returns adds the returns column computed from the price column and drops
// the first row.
func (s *Session) Returns(price string) error {
	const op = "returns"
	t, err := s.current(op)
	if err != nil {
		return err
	}
	if price == "" {
		price = s.opts.Volatility.Price
	}
	out, err := analysis.Returns(t, price, s.opts.Volatility.Returns)
	if err != nil {
		return s.fail(op, err)
	}
	s.swap(op, out)
	return nil
}

// Volatility adds the rolling volatility column, computing returns first
// when needed. A window of 0 uses the session default.
func (s *Session) Volatility(window int) (*analysis.VolatilityResult, error) {
	const op = "rolling volatility"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	opts := s.opts.Volatility
	if window != 0 {
		opts.Window = window
	}
	res, err := analysis.RollingVolatility(t, opts)
	if err != nil {
		return nil, s.fail(op, err)
	}
	for _, step := range res.Steps {
		s.log.Info().Str("op", op).Str("step", step).Msg("Computed prerequisite")
	}
	s.swap(op, res.Table)
	return res, nil
}

// Clean drops every row holding a missing value and returns how many rows
// were removed.
func (s *Session) Clean() (int, error) {
	const op = "clean"
	t, err := s.current(op)
	if err != nil {
		return 0, err
	}
	out, dropped := analysis.DropMissing(t)
	if dropped > 0 {
		s.swap(op, out)
	}
	return dropped, nil
}

// Outliers flags the IQR outliers of a column.
func (s *Session) Outliers(column string) (*analysis.OutlierResult, error) {
	const op = "outliers"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	res, err := analysis.Outliers(t, column)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return res, nil
}

// Correlation computes the correlation matrix of the numeric columns.
func (s *Session) Correlation() (*analysis.CorrelationMatrix, error) {
	const op = "correlation"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	m, err := analysis.Correlation(t)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return m, nil
}

// Decompose splits a column into trend, seasonal and residual components.
// A period of 0 uses the session default.
func (s *Session) Decompose(column string, period int, model stats.Model) (*stats.DecompositionResult, error) {
	const op = "decompose"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	if column == "" {
		column = s.opts.Volatility.Price
	}
	if period == 0 {
		period = s.opts.Period
	}
	d, err := analysis.Decompose(t, column, period, model)
	if err != nil {
		return nil, s.fail(op, fmt.Errorf("decompose %s with period %d: %w", column, period, err))
	}
	return d, nil
}

// Describe summarizes the numeric columns.
func (s *Session) Describe() ([]analysis.ColumnSummary, error) {
	const op = "describe"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	out, err := analysis.Describe(t)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return out, nil
}

// Autocorrelation computes the ACF and Ljung-Box test of a column.
func (s *Session) Autocorrelation(column string, lags int) (*analysis.AutocorrelationResult, error) {
	const op = "autocorrelation"
	t, err := s.current(op)
	if err != nil {
		return nil, err
	}
	if column == "" {
		column = s.opts.Volatility.Returns
	}
	res, err := analysis.Autocorrelation(t, column, lags)
	if err != nil {
		return nil, s.fail(op, err)
	}
	return res, nil
}
