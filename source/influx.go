package source

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/sartorproj/goeda/table"
)

// DefaultMeasurement is the measurement holding price points.
const DefaultMeasurement = "stock_prices"

// Field keys of a stored price point.
var influxFields = map[string]func(*Bar) *float64{
	"open":      func(b *Bar) *float64 { return &b.Open },
	"high":      func(b *Bar) *float64 { return &b.High },
	"low":       func(b *Bar) *float64 { return &b.Low },
	"close":     func(b *Bar) *float64 { return &b.Close },
	"adj_close": func(b *Bar) *float64 { return &b.AdjClose },
	"volume":    func(b *Bar) *float64 { return &b.Volume },
}

// Querier runs a Flux query. api.QueryAPI satisfies it.
type Querier interface {
	Query(ctx context.Context, query string) (*api.QueryTableResult, error)
}

// PointWriter writes points synchronously. api.WriteAPIBlocking satisfies it.
type PointWriter interface {
	WritePoint(ctx context.Context, point ...*write.Point) error
}

// fluxRecord is the part of *query.FluxRecord read by the converter.
type fluxRecord interface {
	Time() time.Time
	ValueByKey(key string) interface{}
}

// InfluxOptions configures an InfluxDB source.
type InfluxOptions struct {
	URL         string
	Token       string
	Org         string
	Bucket      string
	Measurement string
}

// Influx reads and stores price points in an InfluxDB 2.x bucket. Points
// carry the symbol in the "ticker" tag.
type Influx struct {
	query       Querier
	write       PointWriter
	bucket      string
	measurement string
	close       func()
}

// NewInflux connects to an InfluxDB server.
func NewInflux(opts InfluxOptions) *Influx {
	client := influxdb2.NewClient(opts.URL, opts.Token)
	in := NewInfluxWithAPI(client.QueryAPI(opts.Org), client.WriteAPIBlocking(opts.Org, opts.Bucket), opts.Bucket, opts.Measurement)
	in.close = client.Close
	return in
}

// NewInfluxWithAPI builds an Influx source over existing query and write
// APIs. w may be nil for a read-only source.
func NewInfluxWithAPI(q Querier, w PointWriter, bucket, measurement string) *Influx {
	if measurement == "" {
		measurement = DefaultMeasurement
	}
	return &Influx{query: q, write: w, bucket: bucket, measurement: measurement}
}

// Close releases the client connection.
func (in *Influx) Close() {
	if in.close != nil {
		in.close()
	}
}

func (in *Influx) fluxQuery(req Request) string {
	return fmt.Sprintf(`
		from(bucket: %q)
		  |> range(start: %s, stop: %s)
		  |> filter(fn: (r) => r._measurement == %q)
		  |> filter(fn: (r) => r.ticker == %q)
		  |> pivot(rowKey:["_time"], columnKey: ["_field"], valueColumn: "_value")
		  |> sort(columns: ["_time"], desc: false)
	`, in.bucket, req.Start.UTC().Format(time.RFC3339), req.End.UTC().Format(time.RFC3339), in.measurement, req.Symbol)
}

// Fetch reads the stored points of req.Symbol between req.Start and req.End.
func (in *Influx) Fetch(ctx context.Context, req Request) (*table.Table, error) {
	req, err := req.normalize(time.Now())
	if err != nil {
		return table.Empty(), fetchError("influx", req.Symbol, err)
	}

	result, err := in.query.Query(ctx, in.fluxQuery(req))
	if err != nil {
		return table.Empty(), fetchError("influx", req.Symbol, fmt.Errorf("query failed: %w", err))
	}
	if result == nil {
		return table.Empty(), fetchError("influx", req.Symbol, errors.New("query returned no result"))
	}
	defer result.Close()

	var bars []Bar
	for result.Next() {
		bars = append(bars, barFromRecord(result.Record()))
	}
	if err := result.Err(); err != nil {
		return table.Empty(), fetchError("influx", req.Symbol, fmt.Errorf("query result error: %w", err))
	}
	if len(bars) == 0 {
		return table.Empty(), fetchError("influx", req.Symbol, errors.New("no data in range"))
	}

	t, err := BarsToTable(bars)
	if err != nil {
		return table.Empty(), fetchError("influx", req.Symbol, err)
	}
	return t, nil
}

func barFromRecord(r fluxRecord) Bar {
	b := emptyBar(r.Time().UTC())
	for key, field := range influxFields {
		switch v := r.ValueByKey(key).(type) {
		case float64:
			*field(&b) = v
		case int64:
			*field(&b) = float64(v)
		case uint64:
			*field(&b) = float64(v)
		}
	}
	return b
}

// Store writes every row of a price table as a point tagged with symbol.
// Missing fields are left out of the point; rows with no fields are skipped.
func (in *Influx) Store(ctx context.Context, symbol string, t *table.Table) (int, error) {
	if in.write == nil {
		return 0, errors.New("influx store: source is read-only")
	}
	symbol, err := SanitizeTicker(symbol)
	if err != nil {
		return 0, fmt.Errorf("influx store: %w", err)
	}
	if !t.HasIndex() {
		return 0, errors.New("influx store: table has no date index")
	}

	columns := map[string]string{
		"open":      OpenColumn,
		"high":      HighColumn,
		"low":       LowColumn,
		"close":     CloseColumn,
		"adj_close": AdjCloseColumn,
		"volume":    VolumeColumn,
	}
	values := make(map[string][]float64, len(columns))
	for key, name := range columns {
		if xs, err := t.Floats(name); err == nil {
			values[key] = xs
		}
	}

	var points []*write.Point
	for i, ts := range t.Index() {
		fields := make(map[string]interface{}, len(values))
		for key, xs := range values {
			if !math.IsNaN(xs[i]) {
				fields[key] = xs[i]
			}
		}
		if len(fields) == 0 {
			continue
		}
		points = append(points, influxdb2.NewPoint(
			in.measurement,
			map[string]string{"ticker": symbol},
			fields,
			ts,
		))
	}
	if len(points) == 0 {
		return 0, nil
	}
	if err := in.write.WritePoint(ctx, points...); err != nil {
		return 0, fmt.Errorf("influx store: %w", err)
	}
	return len(points), nil
}
