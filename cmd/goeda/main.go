// Command goeda explores tabular and price data from the terminal.
//
// Run it without arguments in a terminal to open the interactive menu. The
// subcommands run a single analysis over a file or a downloaded symbol:
//
//	goeda summary --file prices.csv --index Date
//	goeda volatility --symbol AAPL --start 2022-01-01 --window 30
//	goeda decompose --symbol ^GSPC --start 2020-01-01 --period 252
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sartorproj/goeda/config"
	"github.com/sartorproj/goeda/logging"
	"github.com/sartorproj/goeda/menu"
	"github.com/sartorproj/goeda/render"
	"github.com/sartorproj/goeda/session"
	"github.com/sartorproj/goeda/source"
)

const appName = "goeda"

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := root.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// app carries the state shared by the root command and its subcommands.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	data       dataFlags

	cfg     *config.Config
	log     zerolog.Logger
	closers []func()
}

// dataFlags select the table a subcommand works on.
type dataFlags struct {
	file     string
	sheet    string
	index    string
	symbol   string
	start    string
	end      string
	provider string
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	root := &cobra.Command{
		Use:     appName,
		Short:   "Exploratory data analysis for tables and price series",
		Version: version,
		Long: `goeda loads a CSV or XLSX table, or downloads daily prices for a ticker,
and runs quality checks, derived metrics and time-series decomposition.

Run 'goeda' in a terminal for the interactive menu. The subcommands are
shims for scripted, non-interactive use.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
		RunE:              a.runDefault,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML configuration file")
	pf.StringVar(&a.logLevel, "log-level", "", "log level (debug|info|warn|error)")
	addDataFlags(pf, &a.data)

	root.AddCommand(
		a.menuCmd(),
		a.summaryCmd(),
		a.qualityCmd(),
		a.uniqueCmd(),
		a.describeCmd(),
		a.outliersCmd(),
		a.correlationCmd(),
		a.returnsCmd(),
		a.volatilityCmd(),
		a.decomposeCmd(),
		a.autocorrelationCmd(),
		a.saveCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and creates the
// logger. Log lines go to the error stream so reports stay clean.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.data.provider != "" {
		cfg.Source.Provider = a.data.provider
	}
	if a.data.sheet != "" {
		cfg.Load.Sheet = a.data.sheet
	}
	if a.data.index != "" {
		cfg.Load.IndexColumn = a.data.index
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.Setup(cfg.Log.Level, cfg.Log.Format, a.errOut)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = logger.With().Str("command", cmd.Name()).Logger()
	return nil
}

func (a *app) close() {
	for _, c := range a.closers {
		c()
	}
	a.closers = nil
}

// runDefault opens the menu on a terminal and prints help otherwise.
func (a *app) runDefault(cmd *cobra.Command, _ []string) error {
	if !isTerminal(a.in) {
		return cmd.Help()
	}
	return a.runMenu(cmd, nil)
}

func (a *app) runMenu(cmd *cobra.Command, _ []string) error {
	s := a.newSession()
	if a.data.file != "" || a.data.symbol != "" {
		if err := a.open(cmd.Context(), s); err != nil {
			return err
		}
	}
	a.log.Info().Str("session_id", s.ID).Msg("Starting interactive menu")
	return menu.New(s, a.sink(), a.in, a.out).Run(cmd.Context())
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// newSession wires the configured price source, plus the InfluxDB archive
// when Yahoo prices should be stored.
func (a *app) newSession() *session.Session {
	opts := session.Options{
		Logger:      a.log,
		LoadOptions: a.cfg.LoadOptions(),
		Volatility:  a.cfg.VolatilityOptions(),
		Period:      a.cfg.Analysis.DecomposePeriod,
	}

	switch a.cfg.Source.Provider {
	case "influx":
		in := source.NewInflux(a.cfg.InfluxOptions())
		a.closers = append(a.closers, in.Close)
		opts.Source = in
	default:
		opts.Source = source.NewYahoo(a.cfg.YahooOptions())
		if a.cfg.Source.Influx.Archive {
			in := source.NewInflux(a.cfg.InfluxOptions())
			a.closers = append(a.closers, in.Close)
			opts.Archive = in
		}
	}
	return session.New(opts)
}

func (a *app) sink() render.Sink {
	return render.NewTerminal(a.out, render.Options{
		Width:  a.cfg.Render.Width,
		Height: a.cfg.Render.Height,
		Color:  a.cfg.Render.Color,
	})
}

// open loads the table named by --file or downloads the one named by
// --symbol.
func (a *app) open(ctx context.Context, s *session.Session) error {
	switch {
	case a.data.file != "":
		return s.LoadFile(a.data.file)
	case a.data.symbol != "":
		req, err := a.data.request(time.Now())
		if err != nil {
			return err
		}
		return s.Fetch(ctx, req)
	default:
		return fmt.Errorf("one of --file or --symbol is required")
	}
}

// request builds a fetch request from the flags. The start date defaults to
// one year before now.
func (d dataFlags) request(now time.Time) (source.Request, error) {
	req := source.Request{Symbol: d.symbol, Start: now.AddDate(-1, 0, 0)}
	if d.start != "" {
		t, err := time.Parse(time.DateOnly, d.start)
		if err != nil {
			return req, fmt.Errorf("--start: %q is not a YYYY-MM-DD date", d.start)
		}
		req.Start = t
	}
	if d.end != "" {
		t, err := time.Parse(time.DateOnly, d.end)
		if err != nil {
			return req, fmt.Errorf("--end: %q is not a YYYY-MM-DD date", d.end)
		}
		req.End = t
	}
	return req, nil
}
