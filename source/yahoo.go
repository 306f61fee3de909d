package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/sartorproj/goeda/table"
)

// DefaultYahooURL is the host of the Yahoo Finance chart API.
const DefaultYahooURL = "https://query1.finance.yahoo.com"

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// HTTPClient interface allows injecting mock HTTP clients for testing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// BreakerSettings configures the circuit breaker in front of a provider.
type BreakerSettings struct {
	MaxFailures uint32        // consecutive failures before the circuit opens
	OpenTimeout time.Duration // time spent open before a probe is allowed
}

// YahooOptions configures a Yahoo source. Zero fields take defaults.
type YahooOptions struct {
	BaseURL string
	Client  HTTPClient
	Timeout time.Duration
	Rate    float64 // requests per second
	Burst   int
	Breaker BreakerSettings
	Now     func() time.Time
}

// Yahoo fetches daily bars from the Yahoo Finance v8 chart endpoint.
type Yahoo struct {
	baseURL string
	client  HTTPClient
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	now     func() time.Time
}

// NewYahoo creates a Yahoo source.
func NewYahoo(opts YahooOptions) *Yahoo {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultYahooURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Client == nil {
		opts.Client = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Rate <= 0 {
		opts.Rate = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 1
	}
	if opts.Breaker.MaxFailures == 0 {
		opts.Breaker.MaxFailures = 3
	}
	if opts.Breaker.OpenTimeout == 0 {
		opts.Breaker.OpenTimeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	maxFailures := opts.Breaker.MaxFailures
	settings := gobreaker.Settings{
		Name:        "yahoo",
		MaxRequests: 1,
		Timeout:     opts.Breaker.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
	}

	return &Yahoo{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		client:  opts.Client,
		limiter: rate.NewLimiter(rate.Limit(opts.Rate), opts.Burst),
		breaker: gobreaker.NewCircuitBreaker(settings),
		now:     opts.Now,
	}
}

// Fetch downloads the bars of req.Symbol between req.Start and req.End.
func (y *Yahoo) Fetch(ctx context.Context, req Request) (*table.Table, error) {
	req, err := req.normalize(y.now())
	if err != nil {
		return table.Empty(), fetchError("yahoo", req.Symbol, err)
	}
	if err := y.limiter.Wait(ctx); err != nil {
		return table.Empty(), fetchError("yahoo", req.Symbol, err)
	}

	result, err := y.breaker.Execute(func() (interface{}, error) {
		return y.fetchBars(ctx, req)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			err = fmt.Errorf("provider unavailable: %w", err)
		}
		return table.Empty(), fetchError("yahoo", req.Symbol, err)
	}

	t, err := BarsToTable(result.([]Bar))
	if err != nil {
		return table.Empty(), fetchError("yahoo", req.Symbol, err)
	}
	return t, nil
}

func (y *Yahoo) chartURL(req Request) string {
	q := url.Values{}
	q.Set("period1", strconv.FormatInt(req.Start.Unix(), 10))
	q.Set("period2", strconv.FormatInt(req.End.Unix(), 10))
	q.Set("interval", req.Interval)
	q.Set("events", "history")
	return y.baseURL + "/v8/finance/chart/" + url.PathEscape(req.Symbol) + "?" + q.Encode()
}

func (y *Yahoo) fetchBars(ctx context.Context, req Request) ([]Bar, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, y.chartURL(req), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("User-Agent", userAgent)

	resp, err := y.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call yahoo API: %w", err)
	}
	defer resp.Body.Close()

	var chart yahooChartResponse
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 32<<20)).Decode(&chart)
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo API error: %s", chart.Chart.Error)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo API returned status %s", resp.Status)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode Yahoo JSON: %w", decodeErr)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("no results for ticker %s", req.Symbol)
	}

	bars := chart.Chart.Result[0].bars()
	if len(bars) == 0 {
		return nil, fmt.Errorf("no data for %s between %s and %s", req.Symbol,
			req.Start.Format(time.DateOnly), req.End.Format(time.DateOnly))
	}
	return bars, nil
}

type yahooChartResponse struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *yahooError   `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *yahooError) String() string {
	return e.Code + ": " + e.Description
}

type yahooResult struct {
	Meta struct {
		Symbol       string `json:"symbol"`
		ExchangeName string `json:"exchangeName"`
		Timezone     string `json:"exchangeTimezoneName"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*float64 `json:"volume"`
		} `json:"quote"`
		AdjClose []struct {
			AdjClose []*float64 `json:"adjclose"`
		} `json:"adjclose"`
	} `json:"indicators"`
}

// bars converts the columnar response into rows. Timestamps are truncated to
// the calendar day in the exchange time zone.
func (r *yahooResult) bars() []Bar {
	loc := time.UTC
	if r.Meta.Timezone != "" {
		if l, err := time.LoadLocation(r.Meta.Timezone); err == nil {
			loc = l
		}
	}

	at := func(xs []*float64, i int, dst *float64) {
		if i < len(xs) && xs[i] != nil {
			*dst = *xs[i]
		}
	}

	bars := make([]Bar, 0, len(r.Timestamp))
	for i, ts := range r.Timestamp {
		local := time.Unix(ts, 0).In(loc)
		b := emptyBar(time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC))
		if len(r.Indicators.Quote) > 0 {
			q := r.Indicators.Quote[0]
			at(q.Open, i, &b.Open)
			at(q.High, i, &b.High)
			at(q.Low, i, &b.Low)
			at(q.Close, i, &b.Close)
			at(q.Volume, i, &b.Volume)
		}
		if len(r.Indicators.AdjClose) > 0 {
			at(r.Indicators.AdjClose[0].AdjClose, i, &b.AdjClose)
		}
		bars = append(bars, b)
	}
	return bars
}
