// Package config loads goeda settings from defaults, an optional YAML file
// and GOEDA_* environment variables, in that order of precedence.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/sartorproj/goeda/analysis"
	"github.com/sartorproj/goeda/source"
	"github.com/sartorproj/goeda/stats"
	"github.com/sartorproj/goeda/table"
)

// EnvPrefix prefixes every environment override, e.g. GOEDA_LOG_LEVEL.
const EnvPrefix = "GOEDA"

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig      `yaml:"log" envconfig:"LOG"`
	Load     LoadConfig     `yaml:"load" envconfig:"LOAD"`
	Analysis AnalysisConfig `yaml:"analysis" envconfig:"ANALYSIS"`
	Source   SourceConfig   `yaml:"source" envconfig:"SOURCE"`
	Render   RenderConfig   `yaml:"render" envconfig:"RENDER"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" validate:"required"`
	Format string `yaml:"format" envconfig:"FORMAT" validate:"oneof=console json"`
}

// LoadConfig contains file loading options
type LoadConfig struct {
	Delimiter   string `yaml:"delimiter" envconfig:"DELIMITER" validate:"len=1"`
	SkipRows    int    `yaml:"skip_rows" envconfig:"SKIP_ROWS" validate:"min=0"`
	IndexColumn string `yaml:"index_column" envconfig:"INDEX_COLUMN"`
	DateFormat  string `yaml:"date_format" envconfig:"DATE_FORMAT"`
	Sheet       string `yaml:"sheet" envconfig:"SHEET"`
}

// AnalysisConfig contains defaults for derived metrics
type AnalysisConfig struct {
	PriceColumn      string `yaml:"price_column" envconfig:"PRICE_COLUMN" validate:"required"`
	VolatilityWindow int    `yaml:"volatility_window" envconfig:"VOLATILITY_WINDOW" validate:"min=2"`
	DecomposePeriod  int    `yaml:"decompose_period" envconfig:"DECOMPOSE_PERIOD" validate:"min=2"`
	DecomposeModel   string `yaml:"decompose_model" envconfig:"DECOMPOSE_MODEL" validate:"oneof=additive multiplicative"`
	Lags             int    `yaml:"lags" envconfig:"LAGS" validate:"min=1"`
}

// SourceConfig selects and configures the remote price provider
type SourceConfig struct {
	Provider string       `yaml:"provider" envconfig:"PROVIDER" validate:"oneof=yahoo influx"`
	Yahoo    YahooConfig  `yaml:"yahoo" envconfig:"YAHOO"`
	Influx   InfluxConfig `yaml:"influx" envconfig:"INFLUX"`
}

// YahooConfig contains Yahoo Finance client settings
type YahooConfig struct {
	BaseURL         string        `yaml:"base_url" envconfig:"BASE_URL"`
	Timeout         time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
	Rate            float64       `yaml:"rate" envconfig:"RATE" validate:"gt=0"`
	Burst           int           `yaml:"burst" envconfig:"BURST" validate:"min=1"`
	BreakerFailures uint32        `yaml:"breaker_failures" envconfig:"BREAKER_FAILURES"`
	BreakerTimeout  time.Duration `yaml:"breaker_timeout" envconfig:"BREAKER_TIMEOUT"`
}

// InfluxConfig contains InfluxDB connection settings
type InfluxConfig struct {
	URL         string `yaml:"url" envconfig:"URL"`
	Token       string `yaml:"token" envconfig:"TOKEN"`
	Org         string `yaml:"org" envconfig:"ORG"`
	Bucket      string `yaml:"bucket" envconfig:"BUCKET"`
	Measurement string `yaml:"measurement" envconfig:"MEASUREMENT"`
	// Archive stores prices fetched from Yahoo in InfluxDB.
	Archive bool `yaml:"archive" envconfig:"ARCHIVE"`
}

// RenderConfig contains terminal output settings
type RenderConfig struct {
	Width  int  `yaml:"width" envconfig:"WIDTH" validate:"min=10"`
	Height int  `yaml:"height" envconfig:"HEIGHT" validate:"min=1"`
	Color  bool `yaml:"color" envconfig:"COLOR"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info", Format: "console"},
		Load: LoadConfig{
			Delimiter:  ",",
			DateFormat: "2006-01-02",
		},
		Analysis: AnalysisConfig{
			PriceColumn:      analysis.PriceColumn,
			VolatilityWindow: analysis.DefaultVolatilityWindow,
			DecomposePeriod:  analysis.DefaultDecomposePeriod,
			DecomposeModel:   string(stats.Additive),
			Lags:             analysis.DefaultLags,
		},
		Source: SourceConfig{
			Provider: "yahoo",
			Yahoo: YahooConfig{
				BaseURL:         source.DefaultYahooURL,
				Timeout:         15 * time.Second,
				Rate:            2,
				Burst:           1,
				BreakerFailures: 3,
				BreakerTimeout:  30 * time.Second,
			},
			Influx: InfluxConfig{
				URL:         "http://localhost:8086",
				Bucket:      "prices",
				Measurement: source.DefaultMeasurement,
			},
		},
		Render: RenderConfig{Width: 60, Height: 8, Color: true},
	}
}

// Load builds the configuration. path may be empty, in which case only
// defaults and environment overrides apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := cfg.decodeYAML(data); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// decodeYAML overlays a YAML document on c. Unknown keys are rejected.
func (c *Config) decodeYAML(data []byte) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

var validate = newValidator()

// newValidator reports fields by their YAML path, e.g. source.provider.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks value ranges and enumerations.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fieldMessage(fe)
		}
		return errors.New(strings.Join(msgs, "; "))
	}
	if c.Source.Provider == "influx" && (c.Source.Influx.URL == "" || c.Source.Influx.Bucket == "") {
		return fmt.Errorf("source.influx.url and source.influx.bucket are required")
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", field, fe.Param(), fe.Value())
	case "len":
		return fmt.Sprintf("%s must be %s character long, got %q", field, fe.Param(), fe.Value())
	case "min":
		return fmt.Sprintf("%s must be at least %s, got %v", field, fe.Param(), fe.Value())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s, got %v", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
}

// LoadOptions returns the table loading options.
func (c *Config) LoadOptions() *table.LoadOptions {
	delim, _ := utf8.DecodeRuneInString(c.Load.Delimiter)
	return &table.LoadOptions{
		Delimiter:   delim,
		SkipRows:    c.Load.SkipRows,
		IndexColumn: c.Load.IndexColumn,
		DateFormat:  c.Load.DateFormat,
		Sheet:       c.Load.Sheet,
	}
}

// VolatilityOptions returns the rolling volatility options.
func (c *Config) VolatilityOptions() analysis.VolatilityOptions {
	opts := analysis.DefaultVolatilityOptions()
	opts.Price = c.Analysis.PriceColumn
	opts.Window = c.Analysis.VolatilityWindow
	return opts
}

// YahooOptions returns the Yahoo client options.
func (c *Config) YahooOptions() source.YahooOptions {
	y := c.Source.Yahoo
	return source.YahooOptions{
		BaseURL: y.BaseURL,
		Timeout: y.Timeout,
		Rate:    y.Rate,
		Burst:   y.Burst,
		Breaker: source.BreakerSettings{
			MaxFailures: y.BreakerFailures,
			OpenTimeout: y.BreakerTimeout,
		},
	}
}

// InfluxOptions returns the InfluxDB connection options.
func (c *Config) InfluxOptions() source.InfluxOptions {
	in := c.Source.Influx
	return source.InfluxOptions{
		URL:         in.URL,
		Token:       in.Token,
		Org:         in.Org,
		Bucket:      in.Bucket,
		Measurement: in.Measurement,
	}
}
