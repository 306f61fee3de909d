package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sartorproj/goeda/render"
	"github.com/sartorproj/goeda/session"
	"github.com/sartorproj/goeda/stats"
)

func addDataFlags(fs *pflag.FlagSet, d *dataFlags) {
	fs.StringVarP(&d.file, "file", "f", "", "CSV or XLSX file to load")
	fs.StringVar(&d.sheet, "sheet", "", "XLSX sheet name (default first sheet)")
	fs.StringVar(&d.index, "index", "", "column to use as the row index")
	fs.StringVarP(&d.symbol, "symbol", "s", "", "ticker to download instead of loading a file")
	fs.StringVar(&d.start, "start", "", "first date to download, YYYY-MM-DD (default one year ago)")
	fs.StringVar(&d.end, "end", "", "last date to download, YYYY-MM-DD (default today)")
	fs.StringVar(&d.provider, "provider", "", "price provider (yahoo|influx)")
}

// modelFlag parses a decomposition model.
type modelFlag stats.Model

var _ pflag.Value = (*modelFlag)(nil)

func (m *modelFlag) String() string { return string(*m) }

func (m *modelFlag) Set(v string) error {
	switch model := stats.Model(strings.ToLower(v)); model {
	case stats.Additive, stats.Multiplicative:
		*m = modelFlag(model)
		return nil
	default:
		return fmt.Errorf("must be additive or multiplicative")
	}
}

func (m *modelFlag) Type() string { return "model" }

// withSession runs fn over a session holding the table selected by the data
// flags.
func (a *app) withSession(fn func(cmd *cobra.Command, s *session.Session, sink render.Sink, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s := a.newSession()
		if err := a.open(cmd.Context(), s); err != nil {
			return err
		}
		return fn(cmd, s, a.sink(), args)
	}
}

func (a *app) menuCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		Args:  cobra.NoArgs,
		RunE:  a.runMenu,
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show the shape and first rows of the table",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			t, err := s.Table()
			if err != nil {
				return err
			}
			render.Overview(sink, t)
			return nil
		}),
	}
}

func (a *app) qualityCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quality",
		Short: "Report column types, missing values and duplicate rows",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			r, err := s.Quality()
			if err != nil {
				return err
			}
			render.Quality(sink, r)
			return nil
		}),
	}
}

func (a *app) uniqueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unique <column>",
		Short: "List the distinct values of a column",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, args []string) error {
			n, values, err := s.Unique(args[0])
			if err != nil {
				return err
			}
			render.Unique(sink, args[0], n, values)
			return nil
		}),
	}
}

func (a *app) describeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Summary statistics of the numeric columns",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			out, err := s.Describe()
			if err != nil {
				return err
			}
			render.Describe(sink, out)
			return nil
		}),
	}
}

func (a *app) outliersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outliers <column>",
		Short: "Flag values outside the 1.5 IQR fences",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, args []string) error {
			t, err := s.Table()
			if err != nil {
				return err
			}
			res, err := s.Outliers(args[0])
			if err != nil {
				return err
			}
			if err := render.Distribution(sink, t, args[0]); err != nil {
				return err
			}
			render.Outliers(sink, res)
			return nil
		}),
	}
}

func (a *app) correlationCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "corr",
		Aliases: []string{"correlation"},
		Short:   "Pearson correlation matrix of the numeric columns",
		Args:    cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			m, err := s.Correlation()
			if err != nil {
				return err
			}
			render.Correlation(sink, m)
			return nil
		}),
	}
}

func (a *app) returnsCmd() *cobra.Command {
	var price string
	cmd := &cobra.Command{
		Use:   "returns",
		Short: "Compute simple returns of the price column",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			if err := s.Returns(price); err != nil {
				return err
			}
			t, _ := s.Table()
			opts, _ := s.Defaults()
			if err := render.Series(sink, t, opts.Returns, "Daily Returns"); err != nil {
				return err
			}
			return render.Distribution(sink, t, opts.Returns)
		}),
	}
	cmd.Flags().StringVar(&price, "price", "", "price column (default from config)")
	return cmd
}

func (a *app) volatilityCmd() *cobra.Command {
	var window int
	cmd := &cobra.Command{
		Use:   "volatility",
		Short: "Rolling standard deviation of returns",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			res, err := s.Volatility(window)
			if err != nil {
				return err
			}
			if window == 0 {
				opts, _ := s.Defaults()
				window = opts.Window
			}
			render.Volatility(sink, res, window)
			return nil
		}),
	}
	cmd.Flags().IntVarP(&window, "window", "w", 0, "rolling window in rows (default from config)")
	return cmd
}

func (a *app) decomposeCmd() *cobra.Command {
	var (
		column string
		period int
		model  = modelFlag(stats.Additive)
	)
	cmd := &cobra.Command{
		Use:   "decompose",
		Short: "Split a column into trend, seasonal and residual components",
		Args:  cobra.NoArgs,
		RunE: a.withSession(func(cmd *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			m := stats.Model(model)
			if !cmd.Flags().Changed("model") {
				m = stats.Model(a.cfg.Analysis.DecomposeModel)
			}
			d, err := s.Decompose(column, period, m)
			if err != nil {
				return err
			}
			render.Decomposition(sink, d)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&column, "column", "c", "", "column to decompose (default the price column)")
	cmd.Flags().IntVarP(&period, "period", "p", 0, "seasonal period in rows (default from config)")
	cmd.Flags().Var(&model, "model", "decomposition model (additive|multiplicative)")
	return cmd
}

func (a *app) autocorrelationCmd() *cobra.Command {
	var (
		column string
		lags   int
	)
	cmd := &cobra.Command{
		Use:     "acf",
		Aliases: []string{"autocorrelation"},
		Short:   "Autocorrelation and Ljung-Box test of a column",
		Args:    cobra.NoArgs,
		RunE: a.withSession(func(_ *cobra.Command, s *session.Session, sink render.Sink, _ []string) error {
			if column == "" {
				opts, _ := s.Defaults()
				column = opts.Returns
				t, err := s.Table()
				if err != nil {
					return err
				}
				if !t.HasColumn(column) {
					if err := s.Returns(""); err != nil {
						return err
					}
				}
			}
			if lags == 0 {
				lags = a.cfg.Analysis.Lags
			}
			res, err := s.Autocorrelation(column, lags)
			if err != nil {
				return err
			}
			render.Autocorrelation(sink, res)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&column, "column", "c", "", "column to test (default returns, computed when absent)")
	cmd.Flags().IntVar(&lags, "lags", 0, "number of lags (default from config)")
	return cmd
}

func (a *app) saveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <path>",
		Short: "Write the table to a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: a.withSession(func(cmd *cobra.Command, s *session.Session, _ render.Sink, args []string) error {
			if err := s.Save(args[0]); err != nil {
				return err
			}
			rows, cols, _ := s.Shape()
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d rows x %d columns to %s\n", rows, cols, args[0])
			return nil
		}),
	}
}
