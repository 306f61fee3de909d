package timeseries

import (
	"math"
	"testing"
	"time"

	"github.com/sartorproj/goeda/table"
)

func TestNew(t *testing.T) {
	values := []float64{1, 2, 3, 4, 5}
	s := New(values)

	if s.Len() != 5 {
		t.Errorf("Expected length 5, got %d", s.Len())
	}

	for i, v := range s.Values {
		if v != values[i] {
			t.Errorf("Expected value %f at index %d, got %f", values[i], i, v)
		}
	}
}

func TestNewWithTimestampsLengthMismatch(t *testing.T) {
	_, err := NewWithTimestamps([]time.Time{time.Now()}, []float64{1, 2})
	if err == nil {
		t.Error("Expected error for mismatched lengths")
	}
}

func TestFromTable(t *testing.T) {
	base, err := table.New(
		table.NewNumericColumn("Close", []float64{10, 11}),
		table.NewTextColumn("Ticker", []string{"SPY", "SPY"}),
	)
	if err != nil {
		t.Fatalf("Failed to build table: %v", err)
	}
	days := []time.Time{
		time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC),
	}
	tbl, err := base.WithIndex("Date", days)
	if err != nil {
		t.Fatalf("Failed to set index: %v", err)
	}

	s, err := FromTable(tbl, "Close")
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}
	if s.Name != "Close" || len(s.Timestamps) != 2 {
		t.Errorf("Unexpected series %q with %d timestamps", s.Name, len(s.Timestamps))
	}

	if _, err := FromTable(tbl, "Ticker"); err == nil {
		t.Error("Expected error for text column")
	}
}

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"simple", []float64{1, 2, 3, 4, 5}, 3.0},
		{"single", []float64{5}, 5.0},
		{"negative", []float64{-1, -2, -3}, -2.0},
		{"mixed", []float64{-1, 0, 1}, 0.0},
		{"skips missing", []float64{1, math.NaN(), 3}, 2.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Mean()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected mean %f, got %f", tt.expected, result)
			}
		})
	}

	if !math.IsNaN(New([]float64{}).Mean()) {
		t.Error("Expected NaN mean for empty series")
	}
}

func TestVariance(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := 4.571428571428571

	result := s.Variance()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected variance %f, got %f", expected, result)
	}
}

func TestStd(t *testing.T) {
	s := New([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	expected := math.Sqrt(4.571428571428571)

	result := s.Std()
	if math.Abs(result-expected) > 1e-10 {
		t.Errorf("Expected std %f, got %f", expected, result)
	}
}

func TestMinMax(t *testing.T) {
	s := New([]float64{5, 2, math.NaN(), 8, 1, 9, 3})

	if s.Min() != 1 {
		t.Errorf("Expected min 1, got %f", s.Min())
	}

	if s.Max() != 9 {
		t.Errorf("Expected max 9, got %f", s.Max())
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"odd", []float64{1, 3, 5}, 3.0},
		{"even", []float64{1, 2, 3, 4}, 2.5},
		{"single", []float64{5}, 5.0},
		{"unsorted", []float64{5, 1, 3}, 3.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.values)
			result := s.Median()
			if math.Abs(result-tt.expected) > 1e-10 {
				t.Errorf("Expected median %f, got %f", tt.expected, result)
			}
		})
	}
}

func TestPctChange(t *testing.T) {
	s := New([]float64{100, 110, 99, 0, 5})
	pct := s.PctChange()

	expected := []float64{0.1, -0.1, -1}
	if pct.Len() != 4 {
		t.Fatalf("Expected length 4, got %d", pct.Len())
	}
	for i, v := range expected {
		if math.Abs(pct.Values[i]-v) > 1e-9 {
			t.Errorf("Expected %f at index %d, got %f", v, i, pct.Values[i])
		}
	}
	// Previous value of zero has no defined change.
	if !math.IsNaN(pct.Values[3]) {
		t.Errorf("Expected NaN after zero price, got %f", pct.Values[3])
	}
}

func TestRollingStd(t *testing.T) {
	values := []float64{1, 2, 4, 7, 11, math.NaN(), 3, 5}
	s := New(values)
	rolled := s.RollingStd(3)

	if rolled.Len() != len(values) {
		t.Fatalf("Expected length %d, got %d", len(values), rolled.Len())
	}
	for i := 0; i < 2; i++ {
		if !math.IsNaN(rolled.Values[i]) {
			t.Errorf("Expected NaN at index %d, got %f", i, rolled.Values[i])
		}
	}

	// Sample std of {1, 2, 4}
	if math.Abs(rolled.Values[2]-New([]float64{1, 2, 4}).Std()) > 1e-12 {
		t.Errorf("Unexpected std at index 2: %f", rolled.Values[2])
	}
	// Windows touching the missing value are undefined.
	for _, i := range []int{5, 6, 7} {
		if !math.IsNaN(rolled.Values[i]) {
			t.Errorf("Expected NaN at index %d, got %f", i, rolled.Values[i])
		}
	}
}

func TestCenteredMovingAverage(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5, 6, 7})

	odd := s.CenteredMovingAverage(3)
	expected := []float64{math.NaN(), 2, 3, 4, 5, 6, math.NaN()}
	for i, v := range expected {
		got := odd.Values[i]
		if math.IsNaN(v) != math.IsNaN(got) || (!math.IsNaN(v) && math.Abs(v-got) > 1e-10) {
			t.Errorf("Odd window: expected %f at index %d, got %f", v, i, got)
		}
	}

	// 2x4 MA of a linear series reproduces the series.
	even := s.CenteredMovingAverage(4)
	for i, v := range even.Values {
		if i < 2 || i > 4 {
			if !math.IsNaN(v) {
				t.Errorf("Even window: expected NaN at index %d, got %f", i, v)
			}
			continue
		}
		if math.Abs(v-s.Values[i]) > 1e-10 {
			t.Errorf("Even window: expected %f at index %d, got %f", s.Values[i], i, v)
		}
	}
}

func TestSlice(t *testing.T) {
	s := New([]float64{1, 2, 3, 4, 5})
	sliced := s.Slice(1, 4)

	expected := []float64{2, 3, 4}
	if len(sliced.Values) != len(expected) {
		t.Errorf("Expected length %d, got %d", len(expected), len(sliced.Values))
	}

	for i, v := range sliced.Values {
		if math.Abs(v-expected[i]) > 1e-10 {
			t.Errorf("Expected %f at index %d, got %f", expected[i], i, v)
		}
	}
}

func TestCopy(t *testing.T) {
	s := New([]float64{1, 2, 3})
	copied := s.Copy()

	// Modify original
	s.Values[0] = 100

	// Copy should be unchanged
	if copied.Values[0] != 1 {
		t.Errorf("Copy was modified when original changed")
	}
}
